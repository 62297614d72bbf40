package usecase

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"crm-learner/internal/crm/domain"
	"crm-learner/internal/crm/repository"
	"crm-learner/pkg/bridge"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// fakeFetcher serves canned pages per kind and fails the kinds listed
// in errs, standing in for an unreliable bridge.
type fakeFetcher struct {
	pages map[string][]bridge.Record
	errs  map[string]error
}

func (f *fakeFetcher) FetchPage(_ context.Context, kind string, _ int, _ []string) ([]bridge.Record, error) {
	if err, ok := f.errs[kind]; ok {
		return nil, err
	}
	return f.pages[kind], nil
}

func openSyncTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Ticket{}, &domain.Company{}, &domain.Contact{}, &domain.Deal{}))
	return db
}

func record(id string, properties map[string]interface{}) bridge.Record {
	return bridge.Record{ID: id, Properties: properties}
}

func TestSyncAllStoresEveryKind(t *testing.T) {
	db := openSyncTestDB(t)
	entities := repository.NewEntityRepository(db)

	fetcher := &fakeFetcher{pages: map[string][]bridge.Record{
		"tickets":   {record("t1", map[string]interface{}{"subject": "billing issue", "content": "charged twice", "createdate": "2026-01-10T09:00:00Z", "hs_pipeline_stage": "open"})},
		"companies": {record("c1", map[string]interface{}{"name": "Acme", "domain": "acme.com"})},
		"contacts":  {record("p1", map[string]interface{}{"email": "a@b.com", "firstname": "Ada", "lastname": "B", "associatedcompanyid": "c1"})},
		"deals":     {record("d1", map[string]interface{}{"dealname": "Big deal", "amount": "1200.5", "dealstage": "open", "associatedcompanyid": "c1"})},
	}}

	cycleStart := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	uc := &syncUsecase{entities: entities, fetcher: fetcher, now: func() time.Time { return cycleStart }}
	uc.SyncAll(context.Background())

	for _, kind := range domain.SyncOrder {
		count, err := entities.CountByKind(kind)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count, "expected one stored row for %s", kind)
	}

	var ticket domain.Ticket
	require.NoError(t, db.First(&ticket, "id = ?", "t1").Error)
	assert.Equal(t, "billing issue", ticket.Subject)
	assert.Equal(t, "open", ticket.Stage)
	assert.True(t, ticket.CreatedAt.Equal(time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)))
	assert.True(t, ticket.LastSeen.Equal(cycleStart))

	var deal domain.Deal
	require.NoError(t, db.First(&deal, "id = ?", "d1").Error)
	assert.Equal(t, 1200.5, deal.Amount)
	assert.Equal(t, "c1", deal.CompanyID)

	// All records of a cycle share the single cycle start time.
	var company domain.Company
	require.NoError(t, db.First(&company, "id = ?", "c1").Error)
	assert.True(t, company.LastSeen.Equal(ticket.LastSeen))
}

func TestSyncAllIsolatesFailingKind(t *testing.T) {
	db := openSyncTestDB(t)
	entities := repository.NewEntityRepository(db)

	fetcher := &fakeFetcher{
		pages: map[string][]bridge.Record{
			"tickets":   {record("t1", map[string]interface{}{"subject": "a"})},
			"companies": {record("c1", map[string]interface{}{"name": "Acme"})},
			"contacts":  {record("p1", map[string]interface{}{"email": "a@b.com"})},
		},
		errs: map[string]error{
			"deals": &bridge.UpstreamError{Reason: bridge.ReasonTimeout, Message: "deadline exceeded"},
		},
	}

	uc := NewSyncUsecase(entities, fetcher)
	uc.SyncAll(context.Background())

	for _, kind := range []domain.Kind{domain.KindTicket, domain.KindCompany, domain.KindContact} {
		count, err := entities.CountByKind(kind)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count, "a deals failure must not block %s", kind)
	}

	deals, err := entities.CountByKind(domain.KindDeal)
	require.NoError(t, err)
	assert.Equal(t, int64(0), deals)
}

func TestSyncAllRefreshesLastSeen(t *testing.T) {
	db := openSyncTestDB(t)
	entities := repository.NewEntityRepository(db)

	fetcher := &fakeFetcher{pages: map[string][]bridge.Record{
		"tickets": {record("t1", map[string]interface{}{"subject": "a", "createdate": "2026-01-10T09:00:00Z"})},
	}}

	first := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	second := first.Add(10 * time.Minute)

	clock := first
	uc := &syncUsecase{entities: entities, fetcher: fetcher, now: func() time.Time { return clock }}

	uc.SyncAll(context.Background())
	clock = second
	uc.SyncAll(context.Background())

	count, err := entities.CountByKind(domain.KindTicket)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	var ticket domain.Ticket
	require.NoError(t, db.First(&ticket, "id = ?", "t1").Error)
	assert.True(t, ticket.LastSeen.Equal(second), "last_seen must follow the most recent observing cycle")
	assert.True(t, ticket.CreatedAt.Equal(time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)))
}

func TestSyncAllRecoversFromPanic(t *testing.T) {
	db := openSyncTestDB(t)
	entities := repository.NewEntityRepository(db)

	uc := &syncUsecase{entities: entities, fetcher: panickingFetcher{}, now: time.Now}

	assert.NotPanics(t, func() {
		uc.SyncAll(context.Background())
	})
}

type panickingFetcher struct{}

func (panickingFetcher) FetchPage(context.Context, string, int, []string) ([]bridge.Record, error) {
	panic("bridge client broke an invariant")
}

func TestNormalizeMissingPropertiesBecomeZeroValues(t *testing.T) {
	rec := record("t1", map[string]interface{}{})

	ticket := normalizeTicket(&rec, time.Now())
	assert.Equal(t, "t1", ticket.ID)
	assert.Empty(t, ticket.Subject)
	assert.Empty(t, ticket.Content)
	assert.Empty(t, ticket.CompanyID)
	assert.True(t, ticket.CreatedAt.IsZero())

	deal := normalizeDeal(&rec, time.Now())
	assert.Zero(t, deal.Amount)
	assert.Empty(t, deal.Stage)
}

func TestParseUpstreamTime(t *testing.T) {
	rfc := parseUpstreamTime("2026-01-10T09:00:00Z")
	assert.True(t, rfc.Equal(time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)))

	millis := parseUpstreamTime("1767956400000")
	assert.True(t, millis.Equal(time.UnixMilli(1767956400000).UTC()))

	assert.True(t, parseUpstreamTime("").IsZero())
	assert.True(t, parseUpstreamTime("not a date").IsZero())
}
