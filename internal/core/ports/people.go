package ports

import (
	"context"

	"github.com/lloydngcobo/PCO/internal/core/domain"
)

type PeopleService interface {
	FindPersonByName(ctx context.Context, firstName, lastName string) (*domain.Person, error)
	GetPersonByID(ctx context.Context, personID string) (*domain.Person, error)
	AddPerson(ctx context.Context, person *domain.Person, checkDuplicate bool) (*domain.Person, error)
	UpdatePersonAttributes(ctx context.Context, personID string, attributes map[string]any) (*domain.Person, error)
	DeletePerson(ctx context.Context, personID string) error

	GetPersonEmails(ctx context.Context, personID string) ([]domain.EmailAddress, error)
	AddEmail(ctx context.Context, personID string, email *domain.EmailAddress) (*domain.EmailAddress, error)
	UpdateEmail(ctx context.Context, personID, emailID string, attributes map[string]any) (*domain.EmailAddress, error)
	DeleteEmail(ctx context.Context, personID, emailID string) error
}

type PlanService interface {
	GetServiceTypes(ctx context.Context) ([]domain.ServiceType, error)
	GetServiceTypeByID(ctx context.Context, serviceTypeID string) (*domain.ServiceType, error)
	GetPlans(ctx context.Context, serviceTypeID string, filter PlanFilter, order string) ([]domain.Plan, error)
	GetPlanByID(ctx context.Context, serviceTypeID, planID string) (*domain.Plan, error)
	CreatePlan(ctx context.Context, serviceTypeID string, plan *domain.Plan) (*domain.Plan, error)
	UpdatePlan(ctx context.Context, serviceTypeID, planID string, attributes map[string]any) (*domain.Plan, error)
	DeletePlan(ctx context.Context, serviceTypeID, planID string) error
	GetUpcomingPlans(ctx context.Context, serviceTypeID string, limit int) ([]domain.Plan, error)
	GetPastPlans(ctx context.Context, serviceTypeID string, limit int) ([]domain.Plan, error)
	FindPlanByDate(ctx context.Context, serviceTypeID, date string) (*domain.Plan, error)

	GetTeams(ctx context.Context, serviceTypeID string) ([]domain.Team, error)
	GetTeamByID(ctx context.Context, serviceTypeID, teamID string) (*domain.Team, error)
	GetTeamPositions(ctx context.Context, serviceTypeID, teamID string) ([]domain.TeamPosition, error)

	GetPlanPeople(ctx context.Context, serviceTypeID, planID string) ([]domain.TeamMember, error)
	AddPersonToPlan(ctx context.Context, serviceTypeID, planID, personID, teamID, teamPositionID, status string) (*domain.TeamMember, error)
	UpdatePlanPersonStatus(ctx context.Context, serviceTypeID, planID, teamMemberID, status string) (*domain.TeamMember, error)
	RemovePersonFromPlan(ctx context.Context, serviceTypeID, planID, teamMemberID string) error
}
