package usecase

import (
	"fmt"
	"time"

	"crm-learner/internal/crm/domain"
	crmrepo "crm-learner/internal/crm/repository"
	"crm-learner/internal/learning/dto"
	"crm-learner/internal/learning/repository"
)

const (
	kbCandidateLimit      = 5
	workflowDealThreshold = 5
	staleTicketAge        = 30 * 24 * time.Hour
)

// InsightUsecase derives descriptive suggestions from the entity store.
// Every call re-reads current store state; nothing is cached and nothing
// is written.
type InsightUsecase interface {
	Status() (*dto.StatusResponse, error)
	Suggestions() (*dto.SuggestionsResponse, error)
	KBCandidates() ([]repository.SubjectCount, error)
}

// insightUsecase implements InsightUsecase
type insightUsecase struct {
	entities crmrepo.EntityRepository
	insights repository.InsightRepository
	now      func() time.Time
}

// NewInsightUsecase creates a new instance of insightUsecase
func NewInsightUsecase(entities crmrepo.EntityRepository, insights repository.InsightRepository) InsightUsecase {
	return &insightUsecase{
		entities: entities,
		insights: insights,
		now:      time.Now,
	}
}

func (u *insightUsecase) Status() (*dto.StatusResponse, error) {
	status := &dto.StatusResponse{}
	counts := []struct {
		kind domain.Kind
		dest *int64
	}{
		{domain.KindTicket, &status.Tickets},
		{domain.KindCompany, &status.Companies},
		{domain.KindContact, &status.Contacts},
		{domain.KindDeal, &status.Deals},
	}
	for _, c := range counts {
		count, err := u.entities.CountByKind(c.kind)
		if err != nil {
			return nil, err
		}
		*c.dest = count
	}
	return status, nil
}

func (u *insightUsecase) Suggestions() (*dto.SuggestionsResponse, error) {
	suggestions := make([]dto.Suggestion, 0)

	dataQuality, err := u.dataQualitySuggestions()
	if err != nil {
		return nil, err
	}
	suggestions = append(suggestions, dataQuality...)

	workflow, err := u.workflowSuggestions()
	if err != nil {
		return nil, err
	}
	suggestions = append(suggestions, workflow...)

	kbCandidates, err := u.KBCandidates()
	if err != nil {
		return nil, err
	}

	return &dto.SuggestionsResponse{
		GeneratedAt:  u.now().UTC(),
		Suggestions:  suggestions,
		KBCandidates: kbCandidates,
	}, nil
}

func (u *insightUsecase) KBCandidates() ([]repository.SubjectCount, error) {
	candidates, err := u.insights.TopTicketSubjects(kbCandidateLimit)
	if err != nil {
		return nil, err
	}
	if candidates == nil {
		candidates = make([]repository.SubjectCount, 0)
	}
	return candidates, nil
}

func (u *insightUsecase) dataQualitySuggestions() ([]dto.Suggestion, error) {
	suggestions := make([]dto.Suggestion, 0)

	gaps := []struct {
		count   func() (int64, error)
		message string
	}{
		{u.insights.CountCompaniesMissingDomain, "%d companies are missing a website domain."},
		{u.insights.CountContactsMissingEmail, "%d contacts are missing an email address."},
		{u.insights.CountDealsMissingStage, "%d deals have no stage set."},
	}
	for _, gap := range gaps {
		count, err := gap.count()
		if err != nil {
			return nil, err
		}
		if count > 0 {
			suggestions = append(suggestions, dto.Suggestion{
				Type:    dto.SuggestionTypeDataQuality,
				Message: fmt.Sprintf(gap.message, count),
			})
		}
	}

	return suggestions, nil
}

func (u *insightUsecase) workflowSuggestions() ([]dto.Suggestion, error) {
	suggestions := make([]dto.Suggestion, 0)

	busyCompanies, err := u.insights.CompaniesWithDealsOver(workflowDealThreshold)
	if err != nil {
		return nil, err
	}
	for _, company := range busyCompanies {
		suggestions = append(suggestions, dto.Suggestion{
			Type:    dto.SuggestionTypeWorkflow,
			Message: fmt.Sprintf("Company %s has %d deals. Consider a dedicated deal workflow.", company.CompanyID, company.Count),
		})
	}

	staleTickets, err := u.insights.CountStaleOpenTickets(u.now().UTC().Add(-staleTicketAge))
	if err != nil {
		return nil, err
	}
	if staleTickets > 0 {
		suggestions = append(suggestions, dto.Suggestion{
			Type:    dto.SuggestionTypeWorkflow,
			Message: fmt.Sprintf("%d unresolved tickets are older than 30 days. Consider an escalation workflow.", staleTickets),
		})
	}

	orphanDeals, err := u.insights.CountDealsWithoutCompany()
	if err != nil {
		return nil, err
	}
	if orphanDeals > 0 {
		suggestions = append(suggestions, dto.Suggestion{
			Type:    dto.SuggestionTypeWorkflow,
			Message: fmt.Sprintf("%d deals have no associated company.", orphanDeals),
		})
	}

	return suggestions, nil
}
