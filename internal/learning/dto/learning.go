package dto

import (
	"time"

	"crm-learner/internal/learning/repository"
)

// Suggestion is one human-readable recommendation derived from the
// stored CRM data.
type Suggestion struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// Suggestion types.
const (
	SuggestionTypeDataQuality = "data_quality"
	SuggestionTypeWorkflow    = "workflow"
)

type SuggestionsResponse struct {
	GeneratedAt  time.Time                 `json:"generated_at"`
	Suggestions  []Suggestion              `json:"suggestions"`
	KBCandidates []repository.SubjectCount `json:"kb_candidates"`
}

type KBCandidatesResponse struct {
	KBCandidates []repository.SubjectCount `json:"kb_candidates"`
}

// StatusResponse reports per-kind row counts of the local store.
type StatusResponse struct {
	Tickets   int64 `json:"tickets"`
	Companies int64 `json:"companies"`
	Contacts  int64 `json:"contacts"`
	Deals     int64 `json:"deals"`
}
