package repository

import (
	"time"

	crmdomain "crm-learner/internal/crm/domain"

	"gorm.io/gorm"
)

// insightRepository implements InsightRepository using GORM
type insightRepository struct {
	db *gorm.DB
}

// NewInsightRepository creates a new GORM-based InsightRepository
func NewInsightRepository(db *gorm.DB) InsightRepository {
	return &insightRepository{db: db}
}

func (r *insightRepository) CountCompaniesMissingDomain() (int64, error) {
	var count int64
	err := r.db.Model(&crmdomain.Company{}).Where("domain = ''").Count(&count).Error
	return count, err
}

func (r *insightRepository) CountContactsMissingEmail() (int64, error) {
	var count int64
	err := r.db.Model(&crmdomain.Contact{}).Where("email = ''").Count(&count).Error
	return count, err
}

func (r *insightRepository) CountDealsMissingStage() (int64, error) {
	var count int64
	err := r.db.Model(&crmdomain.Deal{}).Where("stage = ''").Count(&count).Error
	return count, err
}

func (r *insightRepository) CountDealsWithoutCompany() (int64, error) {
	var count int64
	err := r.db.Model(&crmdomain.Deal{}).Where("company_id = ''").Count(&count).Error
	return count, err
}

func (r *insightRepository) CountStaleOpenTickets(before time.Time) (int64, error) {
	var count int64
	// created_at > zero filters out tickets whose upstream creation
	// date never arrived.
	err := r.db.Model(&crmdomain.Ticket{}).
		Where("stage <> ?", crmdomain.StageClosed).
		Where("created_at < ?", before).
		Where("created_at > ?", time.Time{}).
		Count(&count).Error
	return count, err
}

func (r *insightRepository) TopTicketSubjects(limit int) ([]SubjectCount, error) {
	var rows []SubjectCount
	err := r.db.Model(&crmdomain.Ticket{}).
		Select("subject, COUNT(*) AS count").
		Where("subject <> ''").
		Group("subject").
		Order("count DESC, subject ASC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

func (r *insightRepository) CompaniesWithDealsOver(minDeals int64) ([]CompanyDealCount, error) {
	var rows []CompanyDealCount
	err := r.db.Model(&crmdomain.Deal{}).
		Select("company_id, COUNT(*) AS count").
		Where("company_id <> ''").
		Group("company_id").
		Having("COUNT(*) > ?", minDeals).
		Order("count DESC, company_id ASC").
		Scan(&rows).Error
	return rows, err
}
