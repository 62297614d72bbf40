package usecase

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"crm-learner/internal/crm/domain"
	"crm-learner/internal/crm/repository"
	"crm-learner/pkg/bridge"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// pageSize is the fixed page size per kind per cycle. Only the most
// recent page is synchronized each cycle; full coverage comes from
// frequent polling, not pagination.
const pageSize = 100

// fetchProperties is the fixed property list requested per kind.
var fetchProperties = map[domain.Kind][]string{
	domain.KindTicket:  {"subject", "content", "createdate", "hs_pipeline_stage"},
	domain.KindCompany: {"name", "domain"},
	domain.KindContact: {"email", "firstname", "lastname", "associatedcompanyid"},
	domain.KindDeal:    {"dealname", "amount", "dealstage", "associatedcompanyid"},
}

// PageFetcher fetches one page of raw records of a kind from the bridge.
type PageFetcher interface {
	FetchPage(ctx context.Context, kind string, limit int, properties []string) ([]bridge.Record, error)
}

// SyncUsecase runs one fetch-and-merge cycle across all entity kinds.
type SyncUsecase interface {
	SyncAll(ctx context.Context)
}

// syncUsecase implements SyncUsecase
type syncUsecase struct {
	entities repository.EntityRepository
	fetcher  PageFetcher
	now      func() time.Time
}

// NewSyncUsecase creates a new instance of syncUsecase
func NewSyncUsecase(entities repository.EntityRepository, fetcher PageFetcher) SyncUsecase {
	return &syncUsecase{
		entities: entities,
		fetcher:  fetcher,
		now:      time.Now,
	}
}

// SyncAll runs one cycle: for each kind in its fixed order, fetch one
// page, normalize and upsert every record with the shared cycle start
// time as last_seen. A failure for one kind never blocks the others,
// and nothing in here ever escapes the cycle boundary.
func (u *syncUsecase) SyncAll(ctx context.Context) {
	startedAt := u.now().UTC()
	logCtx := log.WithField("cycle_id", uuid.New().String())

	defer func() {
		if r := recover(); r != nil {
			logCtx.WithField("panic", r).Error("Sync cycle aborted. Work for this cycle is lost.")
		}
	}()

	for _, kind := range domain.SyncOrder {
		u.syncKind(ctx, logCtx, kind, startedAt)
	}
}

func (u *syncUsecase) syncKind(ctx context.Context, logCtx *log.Entry, kind domain.Kind, seenAt time.Time) {
	logCtx = logCtx.WithField("kind", string(kind))

	records, err := u.fetcher.FetchPage(ctx, string(kind), pageSize, fetchProperties[kind])
	if err != nil {
		logCtx.WithError(err).Error("Failed to fetch page from bridge. Kind skipped until next cycle.")
		return
	}

	var stored, failed int
	for i := range records {
		if err := u.storeRecord(kind, &records[i], seenAt); err != nil {
			logCtx.WithError(err).WithField("record_id", records[i].ID).Error("Failed to store record.")
			failed++
			continue
		}
		stored++
	}

	logCtx.WithFields(log.Fields{"stored": stored, "failed": failed}).Info("Synced kind.")
}

func (u *syncUsecase) storeRecord(kind domain.Kind, record *bridge.Record, seenAt time.Time) error {
	switch kind {
	case domain.KindTicket:
		return u.entities.UpsertTicket(normalizeTicket(record, seenAt))
	case domain.KindCompany:
		return u.entities.UpsertCompany(normalizeCompany(record, seenAt))
	case domain.KindContact:
		return u.entities.UpsertContact(normalizeContact(record, seenAt))
	case domain.KindDeal:
		return u.entities.UpsertDeal(normalizeDeal(record, seenAt))
	default:
		return fmt.Errorf("unknown entity kind %q", kind)
	}
}

func normalizeTicket(record *bridge.Record, seenAt time.Time) *domain.Ticket {
	return &domain.Ticket{
		ID:        record.ID,
		Subject:   record.Property("subject"),
		Content:   record.Property("content"),
		Stage:     record.Property("hs_pipeline_stage"),
		CompanyID: record.AssociatedCompanyID(),
		CreatedAt: parseUpstreamTime(record.Property("createdate")),
		LastSeen:  seenAt,
	}
}

func normalizeCompany(record *bridge.Record, seenAt time.Time) *domain.Company {
	return &domain.Company{
		ID:       record.ID,
		Name:     record.Property("name"),
		Domain:   record.Property("domain"),
		LastSeen: seenAt,
	}
}

func normalizeContact(record *bridge.Record, seenAt time.Time) *domain.Contact {
	return &domain.Contact{
		ID:        record.ID,
		Email:     record.Property("email"),
		Firstname: record.Property("firstname"),
		Lastname:  record.Property("lastname"),
		CompanyID: record.AssociatedCompanyID(),
		LastSeen:  seenAt,
	}
}

func normalizeDeal(record *bridge.Record, seenAt time.Time) *domain.Deal {
	amount, _ := strconv.ParseFloat(record.Property("amount"), 64)
	return &domain.Deal{
		ID:        record.ID,
		DealName:  record.Property("dealname"),
		Amount:    amount,
		Stage:     record.Property("dealstage"),
		CompanyID: record.AssociatedCompanyID(),
		LastSeen:  seenAt,
	}
}

// parseUpstreamTime parses an upstream creation date, which arrives
// either as RFC 3339 or as epoch milliseconds. Anything else is treated
// as unknown (zero), never an error.
func parseUpstreamTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	if ts, err := time.Parse(time.RFC3339, value); err == nil {
		return ts.UTC()
	}
	if millis, err := strconv.ParseInt(value, 10, 64); err == nil {
		return time.UnixMilli(millis).UTC()
	}
	return time.Time{}
}
