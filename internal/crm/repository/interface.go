package repository

import "crm-learner/internal/crm/domain"

// EntityRepository is the local store for CRM records pulled from the
// bridge. Upserts are keyed by the upstream identifier: a record is
// created on first sight and overwritten on every later sight, except
// for kind-specific preserved fields (a ticket's upstream creation
// date). Records are never deleted by a sync cycle.
type EntityRepository interface {
	UpsertTicket(ticket *domain.Ticket) error
	UpsertCompany(company *domain.Company) error
	UpsertContact(contact *domain.Contact) error
	UpsertDeal(deal *domain.Deal) error
	// CountByKind returns the total number of stored rows for a kind.
	CountByKind(kind domain.Kind) (int64, error)
}
