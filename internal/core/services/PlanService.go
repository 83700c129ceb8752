package services

import (
	"context"
	"time"

	"github.com/lloydngcobo/PCO/internal/cache"
	"github.com/lloydngcobo/PCO/internal/core/domain"
	"github.com/lloydngcobo/PCO/internal/core/ports"
)

const (
	prefixGetServiceTypes    = "get_service_types"
	prefixGetServiceTypeByID = "get_service_type_by_id"
	prefixGetPlans           = "get_plans"
	prefixGetPlanByID        = "get_plan_by_id"
	prefixGetTeams           = "get_teams"
	prefixGetTeamByID        = "get_team_by_id"
	prefixGetTeamPositions   = "get_team_positions"
	prefixGetPlanPeople      = "get_plan_people"
)

// Service types rarely change; plans do, and schedules churn the most.
const (
	serviceTypesTTL = time.Hour
	plansTTL        = 5 * time.Minute
	teamsTTL        = 10 * time.Minute
	planPeopleTTL   = 3 * time.Minute
)

const defaultPlanOrder = "-sort_date"

// planListTag groups every cached plan list of one service type, so a
// plan mutation can evict all of them at once instead of guessing which
// filter/order combinations are cached.
func planListTag(serviceTypeID string) string {
	return "service_type:" + serviceTypeID + ":plans"
}

type PlanService struct {
	client ports.PCOClient
	cache  ports.CachePort
	logger ports.LoggerPort
}

func NewPlanService(
	client ports.PCOClient,
	cachePort ports.CachePort,
	logger ports.LoggerPort,
) *PlanService {
	return &PlanService{
		client: client,
		cache:  cachePort,
		logger: logger,
	}
}

func (s *PlanService) GetServiceTypes(ctx context.Context) ([]domain.ServiceType, error) {
	return cache.GetOrFetchSlice(ctx, s.cache, prefixGetServiceTypes, serviceTypesTTL, nil,
		func(ctx context.Context) ([]domain.ServiceType, error) {
			return s.client.ListServiceTypes(ctx)
		})
}

func (s *PlanService) GetServiceTypeByID(ctx context.Context, serviceTypeID string) (*domain.ServiceType, error) {
	return cache.GetOrFetch(ctx, s.cache, prefixGetServiceTypeByID, serviceTypesTTL,
		func(ctx context.Context) (*domain.ServiceType, error) {
			return s.client.GetServiceType(ctx, serviceTypeID)
		}, serviceTypeID)
}

func (s *PlanService) GetPlans(ctx context.Context, serviceTypeID string, filter ports.PlanFilter, order string) ([]domain.Plan, error) {
	if order == "" {
		order = defaultPlanOrder
	}
	return cache.GetOrFetchSlice(ctx, s.cache, prefixGetPlans, plansTTL,
		[]string{planListTag(serviceTypeID)},
		func(ctx context.Context) ([]domain.Plan, error) {
			return s.client.ListPlans(ctx, serviceTypeID, filter, order)
		}, serviceTypeID, cache.KV{"filter": string(filter), "order": order})
}

func (s *PlanService) GetPlanByID(ctx context.Context, serviceTypeID, planID string) (*domain.Plan, error) {
	return cache.GetOrFetch(ctx, s.cache, prefixGetPlanByID, plansTTL,
		func(ctx context.Context) (*domain.Plan, error) {
			return s.client.GetPlan(ctx, serviceTypeID, planID)
		}, serviceTypeID, planID)
}

func (s *PlanService) CreatePlan(ctx context.Context, serviceTypeID string, plan *domain.Plan) (*domain.Plan, error) {
	created, err := s.client.CreatePlan(ctx, serviceTypeID, plan)
	if err != nil {
		s.logger.Error("Failed to create plan", map[string]interface{}{
			"service_type_id": serviceTypeID,
			"error":           err.Error(),
		})
		return nil, err
	}

	s.invalidatePlanLists(ctx, serviceTypeID)

	s.logger.Info("Plan created", map[string]interface{}{
		"id":              created.ID,
		"service_type_id": serviceTypeID,
	})
	return created, nil
}

func (s *PlanService) UpdatePlan(ctx context.Context, serviceTypeID, planID string, attributes map[string]any) (*domain.Plan, error) {
	updated, err := s.client.UpdatePlan(ctx, serviceTypeID, planID, attributes)
	if err != nil {
		s.logger.Error("Failed to update plan", map[string]interface{}{
			"plan_id": planID,
			"error":   err.Error(),
		})
		return nil, err
	}

	s.cache.Invalidate(ctx, prefixGetPlanByID, serviceTypeID, planID)
	s.invalidatePlanLists(ctx, serviceTypeID)

	return updated, nil
}

func (s *PlanService) DeletePlan(ctx context.Context, serviceTypeID, planID string) error {
	if err := s.client.DeletePlan(ctx, serviceTypeID, planID); err != nil {
		s.logger.Error("Failed to delete plan", map[string]interface{}{
			"plan_id": planID,
			"error":   err.Error(),
		})
		return err
	}

	s.cache.Invalidate(ctx, prefixGetPlanByID, serviceTypeID, planID)
	s.invalidatePlanLists(ctx, serviceTypeID)

	return nil
}

func (s *PlanService) GetUpcomingPlans(ctx context.Context, serviceTypeID string, limit int) ([]domain.Plan, error) {
	plans, err := s.GetPlans(ctx, serviceTypeID, ports.PlanFilterFuture, "sort_date")
	if err != nil {
		return nil, err
	}
	return capPlans(plans, limit), nil
}

func (s *PlanService) GetPastPlans(ctx context.Context, serviceTypeID string, limit int) ([]domain.Plan, error) {
	plans, err := s.GetPlans(ctx, serviceTypeID, ports.PlanFilterPast, defaultPlanOrder)
	if err != nil {
		return nil, err
	}
	return capPlans(plans, limit), nil
}

// FindPlanByDate scans the cached plan list for one whose sort date
// falls on the given day (YYYY-MM-DD). Nil when no plan matches.
func (s *PlanService) FindPlanByDate(ctx context.Context, serviceTypeID, date string) (*domain.Plan, error) {
	plans, err := s.GetPlans(ctx, serviceTypeID, ports.PlanFilterNone, "")
	if err != nil {
		return nil, err
	}

	for _, plan := range plans {
		if !plan.SortDate.IsZero() && plan.SortDate.Format("2006-01-02") == date {
			return &plan, nil
		}
	}
	return nil, nil
}

func (s *PlanService) GetTeams(ctx context.Context, serviceTypeID string) ([]domain.Team, error) {
	return cache.GetOrFetchSlice(ctx, s.cache, prefixGetTeams, teamsTTL, nil,
		func(ctx context.Context) ([]domain.Team, error) {
			return s.client.ListTeams(ctx, serviceTypeID)
		}, serviceTypeID)
}

func (s *PlanService) GetTeamByID(ctx context.Context, serviceTypeID, teamID string) (*domain.Team, error) {
	return cache.GetOrFetch(ctx, s.cache, prefixGetTeamByID, teamsTTL,
		func(ctx context.Context) (*domain.Team, error) {
			return s.client.GetTeam(ctx, serviceTypeID, teamID)
		}, serviceTypeID, teamID)
}

func (s *PlanService) GetTeamPositions(ctx context.Context, serviceTypeID, teamID string) ([]domain.TeamPosition, error) {
	return cache.GetOrFetchSlice(ctx, s.cache, prefixGetTeamPositions, teamsTTL, nil,
		func(ctx context.Context) ([]domain.TeamPosition, error) {
			return s.client.ListTeamPositions(ctx, serviceTypeID, teamID)
		}, serviceTypeID, teamID)
}

func (s *PlanService) GetPlanPeople(ctx context.Context, serviceTypeID, planID string) ([]domain.TeamMember, error) {
	return cache.GetOrFetchSlice(ctx, s.cache, prefixGetPlanPeople, planPeopleTTL, nil,
		func(ctx context.Context) ([]domain.TeamMember, error) {
			return s.client.ListPlanPeople(ctx, serviceTypeID, planID)
		}, serviceTypeID, planID)
}

func (s *PlanService) AddPersonToPlan(ctx context.Context, serviceTypeID, planID, personID, teamID, teamPositionID, status string) (*domain.TeamMember, error) {
	member, err := s.client.AddPlanPerson(ctx, serviceTypeID, planID, personID, teamID, teamPositionID, status)
	if err != nil {
		s.logger.Error("Failed to add person to plan", map[string]interface{}{
			"plan_id":   planID,
			"person_id": personID,
			"error":     err.Error(),
		})
		return nil, err
	}

	s.cache.Invalidate(ctx, prefixGetPlanPeople, serviceTypeID, planID)

	s.logger.Info("Person added to plan", map[string]interface{}{
		"member_id": member.ID,
		"plan_id":   planID,
	})
	return member, nil
}

func (s *PlanService) UpdatePlanPersonStatus(ctx context.Context, serviceTypeID, planID, teamMemberID, status string) (*domain.TeamMember, error) {
	member, err := s.client.UpdatePlanPersonStatus(ctx, serviceTypeID, planID, teamMemberID, status)
	if err != nil {
		s.logger.Error("Failed to update plan person status", map[string]interface{}{
			"member_id": teamMemberID,
			"error":     err.Error(),
		})
		return nil, err
	}

	s.cache.Invalidate(ctx, prefixGetPlanPeople, serviceTypeID, planID)

	return member, nil
}

func (s *PlanService) RemovePersonFromPlan(ctx context.Context, serviceTypeID, planID, teamMemberID string) error {
	if err := s.client.RemovePlanPerson(ctx, serviceTypeID, planID, teamMemberID); err != nil {
		s.logger.Error("Failed to remove person from plan", map[string]interface{}{
			"member_id": teamMemberID,
			"error":     err.Error(),
		})
		return err
	}

	s.cache.Invalidate(ctx, prefixGetPlanPeople, serviceTypeID, planID)

	return nil
}

// invalidatePlanLists evicts the default plan list key plus every
// tagged filter/order variant for the service type.
func (s *PlanService) invalidatePlanLists(ctx context.Context, serviceTypeID string) {
	s.cache.Invalidate(ctx, prefixGetPlans, serviceTypeID,
		cache.KV{"filter": "", "order": defaultPlanOrder})
	s.cache.InvalidateTags(ctx, planListTag(serviceTypeID))
}

func capPlans(plans []domain.Plan, limit int) []domain.Plan {
	if limit > 0 && len(plans) > limit {
		return plans[:limit]
	}
	return plans
}

var _ ports.PlanService = (*PlanService)(nil)
