package ports

import (
	"context"

	"github.com/lloydngcobo/PCO/internal/core/domain"
)

// PlanFilter narrows ListPlans to a subset of the service type's plans.
// Values mirror the upstream filter parameter.
type PlanFilter string

const (
	PlanFilterNone   PlanFilter = ""
	PlanFilterFuture PlanFilter = "future"
	PlanFilterPast   PlanFilter = "past"
)

// PCOClient wraps the Planning Center Online REST API. A nil result with
// a nil error means the resource does not exist upstream.
type PCOClient interface {
	SearchPeople(ctx context.Context, firstName, lastName string) (*domain.Person, error)
	GetPerson(ctx context.Context, personID string) (*domain.Person, error)
	CreatePerson(ctx context.Context, person *domain.Person) (*domain.Person, error)
	UpdatePerson(ctx context.Context, personID string, attributes map[string]any) (*domain.Person, error)
	DeletePerson(ctx context.Context, personID string) error

	ListEmails(ctx context.Context, personID string) ([]domain.EmailAddress, error)
	AddEmail(ctx context.Context, personID string, email *domain.EmailAddress) (*domain.EmailAddress, error)
	UpdateEmail(ctx context.Context, emailID string, attributes map[string]any) (*domain.EmailAddress, error)
	DeleteEmail(ctx context.Context, emailID string) error

	ListServiceTypes(ctx context.Context) ([]domain.ServiceType, error)
	GetServiceType(ctx context.Context, serviceTypeID string) (*domain.ServiceType, error)
	ListPlans(ctx context.Context, serviceTypeID string, filter PlanFilter, order string) ([]domain.Plan, error)
	GetPlan(ctx context.Context, serviceTypeID, planID string) (*domain.Plan, error)
	CreatePlan(ctx context.Context, serviceTypeID string, plan *domain.Plan) (*domain.Plan, error)
	UpdatePlan(ctx context.Context, serviceTypeID, planID string, attributes map[string]any) (*domain.Plan, error)
	DeletePlan(ctx context.Context, serviceTypeID, planID string) error
	ListTeams(ctx context.Context, serviceTypeID string) ([]domain.Team, error)
	GetTeam(ctx context.Context, serviceTypeID, teamID string) (*domain.Team, error)
	ListTeamPositions(ctx context.Context, serviceTypeID, teamID string) ([]domain.TeamPosition, error)

	ListPlanPeople(ctx context.Context, serviceTypeID, planID string) ([]domain.TeamMember, error)
	AddPlanPerson(ctx context.Context, serviceTypeID, planID, personID, teamID, teamPositionID, status string) (*domain.TeamMember, error)
	UpdatePlanPersonStatus(ctx context.Context, serviceTypeID, planID, teamMemberID, status string) (*domain.TeamMember, error)
	RemovePlanPerson(ctx context.Context, serviceTypeID, planID, teamMemberID string) error
}
