package repository

import (
	"fmt"

	"crm-learner/internal/crm/domain"

	"gorm.io/gorm"
)

// entityRepository implements EntityRepository using GORM
type entityRepository struct {
	db *gorm.DB
}

// NewEntityRepository creates a new GORM-based EntityRepository
func NewEntityRepository(db *gorm.DB) EntityRepository {
	return &entityRepository{db: db}
}

// UpsertTicket inserts or overwrites a ticket. An existing non-zero
// upstream creation date always wins over the incoming one, so a
// re-fetch never erases when the ticket was originally opened.
func (r *entityRepository) UpsertTicket(ticket *domain.Ticket) error {
	var existing domain.Ticket
	err := r.db.Where("id = ?", ticket.ID).First(&existing).Error
	if err == gorm.ErrRecordNotFound {
		return r.db.Create(ticket).Error
	}
	if err != nil {
		return err
	}

	if !existing.CreatedAt.IsZero() {
		ticket.CreatedAt = existing.CreatedAt
	}
	return r.db.Save(ticket).Error
}

func (r *entityRepository) UpsertCompany(company *domain.Company) error {
	var existing domain.Company
	err := r.db.Where("id = ?", company.ID).First(&existing).Error
	if err == gorm.ErrRecordNotFound {
		return r.db.Create(company).Error
	}
	if err != nil {
		return err
	}
	return r.db.Save(company).Error
}

func (r *entityRepository) UpsertContact(contact *domain.Contact) error {
	var existing domain.Contact
	err := r.db.Where("id = ?", contact.ID).First(&existing).Error
	if err == gorm.ErrRecordNotFound {
		return r.db.Create(contact).Error
	}
	if err != nil {
		return err
	}
	return r.db.Save(contact).Error
}

func (r *entityRepository) UpsertDeal(deal *domain.Deal) error {
	var existing domain.Deal
	err := r.db.Where("id = ?", deal.ID).First(&existing).Error
	if err == gorm.ErrRecordNotFound {
		return r.db.Create(deal).Error
	}
	if err != nil {
		return err
	}
	return r.db.Save(deal).Error
}

func (r *entityRepository) CountByKind(kind domain.Kind) (int64, error) {
	var count int64
	var err error
	switch kind {
	case domain.KindTicket:
		err = r.db.Model(&domain.Ticket{}).Count(&count).Error
	case domain.KindCompany:
		err = r.db.Model(&domain.Company{}).Count(&count).Error
	case domain.KindContact:
		err = r.db.Model(&domain.Contact{}).Count(&count).Error
	case domain.KindDeal:
		err = r.db.Model(&domain.Deal{}).Count(&count).Error
	default:
		return 0, fmt.Errorf("unknown entity kind %q", kind)
	}
	return count, err
}
