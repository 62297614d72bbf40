package repository

import "time"

// SubjectCount is one ticket subject with its frequency.
type SubjectCount struct {
	Subject string `json:"subject"`
	Count   int64  `json:"count"`
}

// CompanyDealCount is one company id with the number of deals that
// reference it.
type CompanyDealCount struct {
	CompanyID string `json:"company_id"`
	Count     int64  `json:"count"`
}

// InsightRepository is the read-only query surface the learning
// endpoints are built on. It never mutates the store and computes every
// answer from current store state.
type InsightRepository interface {
	CountCompaniesMissingDomain() (int64, error)
	CountContactsMissingEmail() (int64, error)
	CountDealsMissingStage() (int64, error)
	CountDealsWithoutCompany() (int64, error)
	// CountStaleOpenTickets counts unresolved tickets created before the
	// cutoff. Tickets with an unknown creation date are excluded.
	CountStaleOpenTickets(before time.Time) (int64, error)
	// TopTicketSubjects returns the most frequent non-empty ticket
	// subjects, descending, ties broken by subject.
	TopTicketSubjects(limit int) ([]SubjectCount, error)
	// CompaniesWithDealsOver returns company ids referenced by strictly
	// more than minDeals deals.
	CompaniesWithDealsOver(minDeals int64) ([]CompanyDealCount, error)
}
