package bridge

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// requestTimeout is the fixed ceiling on every bridge call. There is no
// retry and no cancellation beyond it; a slow bridge just loses the call.
const requestTimeout = 60 * time.Second

// Reason classifies why a bridge call failed.
type Reason string

const (
	ReasonTimeout      Reason = "timeout"
	ReasonUnreachable  Reason = "unreachable"
	ReasonUnauthorized Reason = "unauthorized"
	ReasonBadStatus    Reason = "bad_status"
	ReasonBadBody      Reason = "bad_body"
)

// UpstreamError is returned for every failed bridge call. Status is the
// HTTP status code when one was received, 0 otherwise.
type UpstreamError struct {
	Reason  Reason
	Status  int
	Message string
}

func (e *UpstreamError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("bridge request failed (%s, status %d): %s", e.Reason, e.Status, e.Message)
	}
	return fmt.Sprintf("bridge request failed (%s): %s", e.Reason, e.Message)
}

// Record is one raw CRM record as the bridge returns it: an upstream
// identifier plus an opaque property map. No normalization happens here.
type Record struct {
	ID           string                     `json:"id"`
	Properties   map[string]interface{}     `json:"properties"`
	Associations map[string]associationList `json:"associations"`
}

type associationList struct {
	Results []associationRef `json:"results"`
}

type associationRef struct {
	ID string `json:"id"`
}

// Property renders a property value as a string regardless of the JSON
// type the bridge used. Absent or null properties become "".
func (r *Record) Property(name string) string {
	value, ok := r.Properties[name]
	if !ok || value == nil {
		return ""
	}
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// AssociatedCompanyID returns the first company the record is associated
// with, falling back to the associatedcompanyid property. "" when the
// record has no company reference.
func (r *Record) AssociatedCompanyID() string {
	if companies, ok := r.Associations["companies"]; ok && len(companies.Results) > 0 {
		return companies.Results[0].ID
	}
	return r.Property("associatedcompanyid")
}

// Client talks to the CRM bridge. Every call is authenticated with the
// shared secret and bounded by requestTimeout.
type Client struct {
	baseURL string
	secret  string
	http    *http.Client
}

func NewClient(baseURL, secret string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		secret:  secret,
		http:    &http.Client{Timeout: requestTimeout},
	}
}

// FetchPage requests one page of records of the given kind from the
// bridge search endpoint. kind is the endpoint segment ("tickets",
// "companies", "contacts", "deals").
func (c *Client) FetchPage(ctx context.Context, kind string, limit int, properties []string) ([]Record, error) {
	payload := map[string]interface{}{
		"limit":      limit,
		"properties": properties,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/%s/search", c.baseURL, kind)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", c.secret)

	resp, err := c.http.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, &UpstreamError{Reason: ReasonTimeout, Message: err.Error()}
		}
		return nil, &UpstreamError{Reason: ReasonUnreachable, Message: err.Error()}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &UpstreamError{Reason: ReasonBadBody, Status: resp.StatusCode, Message: err.Error()}
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, &UpstreamError{Reason: ReasonUnauthorized, Status: resp.StatusCode, Message: string(respBody)}
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &UpstreamError{Reason: ReasonBadStatus, Status: resp.StatusCode, Message: string(respBody)}
	}

	var result struct {
		Results []Record `json:"results"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, &UpstreamError{Reason: ReasonBadBody, Status: resp.StatusCode, Message: err.Error()}
	}

	return result.Results, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
