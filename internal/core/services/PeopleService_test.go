package services

import (
	"context"
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"

	"github.com/lloydngcobo/PCO/internal/adapter/memory"
	"github.com/lloydngcobo/PCO/internal/cache"
	"github.com/lloydngcobo/PCO/internal/core/domain"
	"github.com/lloydngcobo/PCO/internal/core/ports"
)

type nopLogger struct{}

func (nopLogger) Info(string, map[string]interface{})  {}
func (nopLogger) Error(string, map[string]interface{}) {}
func (nopLogger) Debug(string, map[string]interface{}) {}
func (nopLogger) Warn(string, map[string]interface{})  {}

// fakeClient counts upstream calls so tests can tell a cache hit from a
// refetch. Fields hold the canned responses.
type fakeClient struct {
	searchResult *domain.Person
	person       *domain.Person
	emails       []domain.EmailAddress
	serviceTypes []domain.ServiceType
	serviceType  *domain.ServiceType
	plans        []domain.Plan
	plan         *domain.Plan
	teams        []domain.Team
	team         *domain.Team
	positions    []domain.TeamPosition
	members      []domain.TeamMember
	member       *domain.TeamMember
	err          error

	searchCalls        int
	getPersonCalls     int
	createPersonCalls  int
	listEmailCalls     int
	listTypeCalls      int
	getTypeCalls       int
	listPlanCalls      int
	getPlanCalls       int
	listTeamCalls      int
	getTeamCalls       int
	listPositionCalls  int
	listMemberCalls    int
	addMemberCalls     int
	updateMemberCalls  int
	removeMemberCalls  int
}

func (f *fakeClient) SearchPeople(ctx context.Context, firstName, lastName string) (*domain.Person, error) {
	f.searchCalls++
	return f.searchResult, f.err
}

func (f *fakeClient) GetPerson(ctx context.Context, personID string) (*domain.Person, error) {
	f.getPersonCalls++
	return f.person, f.err
}

func (f *fakeClient) CreatePerson(ctx context.Context, person *domain.Person) (*domain.Person, error) {
	f.createPersonCalls++
	created := *person
	created.ID = "created-1"
	return &created, f.err
}

func (f *fakeClient) UpdatePerson(ctx context.Context, personID string, attributes map[string]any) (*domain.Person, error) {
	return f.person, f.err
}

func (f *fakeClient) DeletePerson(ctx context.Context, personID string) error { return f.err }

func (f *fakeClient) ListEmails(ctx context.Context, personID string) ([]domain.EmailAddress, error) {
	f.listEmailCalls++
	return f.emails, f.err
}

func (f *fakeClient) AddEmail(ctx context.Context, personID string, email *domain.EmailAddress) (*domain.EmailAddress, error) {
	return email, f.err
}

func (f *fakeClient) UpdateEmail(ctx context.Context, emailID string, attributes map[string]any) (*domain.EmailAddress, error) {
	return &domain.EmailAddress{ID: emailID}, f.err
}

func (f *fakeClient) DeleteEmail(ctx context.Context, emailID string) error { return f.err }

func (f *fakeClient) ListServiceTypes(ctx context.Context) ([]domain.ServiceType, error) {
	f.listTypeCalls++
	return f.serviceTypes, f.err
}

func (f *fakeClient) GetServiceType(ctx context.Context, serviceTypeID string) (*domain.ServiceType, error) {
	f.getTypeCalls++
	return f.serviceType, f.err
}

func (f *fakeClient) ListPlans(ctx context.Context, serviceTypeID string, filter ports.PlanFilter, order string) ([]domain.Plan, error) {
	f.listPlanCalls++
	return f.plans, f.err
}

func (f *fakeClient) GetPlan(ctx context.Context, serviceTypeID, planID string) (*domain.Plan, error) {
	f.getPlanCalls++
	return f.plan, f.err
}

func (f *fakeClient) CreatePlan(ctx context.Context, serviceTypeID string, plan *domain.Plan) (*domain.Plan, error) {
	created := *plan
	created.ID = "plan-1"
	return &created, f.err
}

func (f *fakeClient) UpdatePlan(ctx context.Context, serviceTypeID, planID string, attributes map[string]any) (*domain.Plan, error) {
	return f.plan, f.err
}

func (f *fakeClient) DeletePlan(ctx context.Context, serviceTypeID, planID string) error {
	return f.err
}

func (f *fakeClient) ListTeams(ctx context.Context, serviceTypeID string) ([]domain.Team, error) {
	f.listTeamCalls++
	return f.teams, f.err
}

func (f *fakeClient) GetTeam(ctx context.Context, serviceTypeID, teamID string) (*domain.Team, error) {
	f.getTeamCalls++
	return f.team, f.err
}

func (f *fakeClient) ListTeamPositions(ctx context.Context, serviceTypeID, teamID string) ([]domain.TeamPosition, error) {
	f.listPositionCalls++
	return f.positions, f.err
}

func (f *fakeClient) ListPlanPeople(ctx context.Context, serviceTypeID, planID string) ([]domain.TeamMember, error) {
	f.listMemberCalls++
	return f.members, f.err
}

func (f *fakeClient) AddPlanPerson(ctx context.Context, serviceTypeID, planID, personID, teamID, teamPositionID, status string) (*domain.TeamMember, error) {
	f.addMemberCalls++
	return &domain.TeamMember{ID: "member-1", Status: status}, f.err
}

func (f *fakeClient) UpdatePlanPersonStatus(ctx context.Context, serviceTypeID, planID, teamMemberID, status string) (*domain.TeamMember, error) {
	f.updateMemberCalls++
	return &domain.TeamMember{ID: teamMemberID, Status: status}, f.err
}

func (f *fakeClient) RemovePlanPerson(ctx context.Context, serviceTypeID, planID, teamMemberID string) error {
	f.removeMemberCalls++
	return f.err
}

var _ ports.PCOClient = (*fakeClient)(nil)

func newPeopleService(client ports.PCOClient) *PeopleService {
	manager := cache.NewManager(memory.NewMemoryBackend(), nil, nil)
	return NewPeopleService(client, manager, nopLogger{}, validator.New())
}

func TestPeopleService_GetPersonByIDCached(t *testing.T) {
	ctx := context.Background()
	client := &fakeClient{person: &domain.Person{ID: "1", FirstName: "Ada", LastName: "Lovelace"}}
	svc := newPeopleService(client)

	for i := 0; i < 3; i++ {
		person, err := svc.GetPersonByID(ctx, "1")
		if err != nil {
			t.Fatalf("GetPersonByID() error: %v", err)
		}
		if person.FirstName != "Ada" {
			t.Fatalf("GetPersonByID() = %+v", person)
		}
	}

	if client.getPersonCalls != 1 {
		t.Errorf("upstream called %d times, want 1", client.getPersonCalls)
	}
}

func TestPeopleService_NegativeSearchNotCached(t *testing.T) {
	ctx := context.Background()
	client := &fakeClient{}
	svc := newPeopleService(client)

	for i := 0; i < 2; i++ {
		person, err := svc.FindPersonByName(ctx, "No", "Body")
		if err != nil {
			t.Fatalf("FindPersonByName() error: %v", err)
		}
		if person != nil {
			t.Fatalf("FindPersonByName() = %+v, want nil", person)
		}
	}
	if client.searchCalls != 2 {
		t.Fatalf("negative result was cached: %d calls, want 2", client.searchCalls)
	}

	// A person created after the misses is visible immediately.
	client.searchResult = &domain.Person{ID: "9", FirstName: "No", LastName: "Body"}
	person, err := svc.FindPersonByName(ctx, "No", "Body")
	if err != nil {
		t.Fatalf("FindPersonByName() error: %v", err)
	}
	if person == nil || person.ID != "9" {
		t.Errorf("FindPersonByName() = %+v, want person 9", person)
	}
}

func TestPeopleService_PositiveSearchCached(t *testing.T) {
	ctx := context.Background()
	client := &fakeClient{searchResult: &domain.Person{ID: "1", FirstName: "Ada", LastName: "Lovelace"}}
	svc := newPeopleService(client)

	svc.FindPersonByName(ctx, "Ada", "Lovelace")
	svc.FindPersonByName(ctx, "Ada", "Lovelace")

	if client.searchCalls != 1 {
		t.Errorf("upstream called %d times, want 1", client.searchCalls)
	}
}

func TestPeopleService_AddPersonRejectsDuplicate(t *testing.T) {
	ctx := context.Background()
	client := &fakeClient{searchResult: &domain.Person{ID: "1", FirstName: "Ada", LastName: "Lovelace"}}
	svc := newPeopleService(client)

	_, err := svc.AddPerson(ctx, &domain.Person{FirstName: "Ada", LastName: "Lovelace"}, true)
	if !errors.Is(err, ErrPersonExists) {
		t.Errorf("AddPerson() error = %v, want ErrPersonExists", err)
	}
	if client.createPersonCalls != 0 {
		t.Errorf("duplicate was created upstream anyway")
	}
}

func TestPeopleService_AddPersonValidation(t *testing.T) {
	ctx := context.Background()
	client := &fakeClient{}
	svc := newPeopleService(client)

	if _, err := svc.AddPerson(ctx, &domain.Person{FirstName: "Ada"}, false); err == nil {
		t.Error("AddPerson() accepted a person without a last name")
	}
	if client.createPersonCalls != 0 {
		t.Error("invalid person reached upstream")
	}
}

func TestPeopleService_AddPersonInvalidatesSearch(t *testing.T) {
	ctx := context.Background()
	client := &fakeClient{searchResult: &domain.Person{ID: "old", FirstName: "Ada", LastName: "Lovelace"}}
	svc := newPeopleService(client)

	svc.FindPersonByName(ctx, "Ada", "Lovelace")

	if _, err := svc.AddPerson(ctx, &domain.Person{FirstName: "Ada", LastName: "Lovelace"}, false); err != nil {
		t.Fatalf("AddPerson() error: %v", err)
	}

	client.searchResult = &domain.Person{ID: "created-1", FirstName: "Ada", LastName: "Lovelace"}
	person, err := svc.FindPersonByName(ctx, "Ada", "Lovelace")
	if err != nil {
		t.Fatalf("FindPersonByName() error: %v", err)
	}
	if person.ID != "created-1" {
		t.Errorf("stale search result served after create: got %q", person.ID)
	}
	if client.searchCalls != 2 {
		t.Errorf("search key not invalidated: %d calls, want 2", client.searchCalls)
	}
}

func TestPeopleService_UpdateEvictsPersonAndEmails(t *testing.T) {
	ctx := context.Background()
	client := &fakeClient{
		person: &domain.Person{ID: "1", FirstName: "Ada", LastName: "Lovelace"},
		emails: []domain.EmailAddress{{ID: "e1", Address: "ada@example.com"}},
	}
	svc := newPeopleService(client)

	svc.GetPersonByID(ctx, "1")
	svc.GetPersonEmails(ctx, "1")

	if _, err := svc.UpdatePersonAttributes(ctx, "1", map[string]any{"last_name": "King"}); err != nil {
		t.Fatalf("UpdatePersonAttributes() error: %v", err)
	}

	svc.GetPersonByID(ctx, "1")
	svc.GetPersonEmails(ctx, "1")

	if client.getPersonCalls != 2 {
		t.Errorf("person entry not evicted: %d calls, want 2", client.getPersonCalls)
	}
	if client.listEmailCalls != 2 {
		t.Errorf("emails entry not evicted: %d calls, want 2", client.listEmailCalls)
	}
}

func TestPeopleService_EmailsCachedPerPerson(t *testing.T) {
	ctx := context.Background()
	client := &fakeClient{emails: []domain.EmailAddress{{ID: "e1", Address: "ada@example.com"}}}
	svc := newPeopleService(client)

	svc.GetPersonEmails(ctx, "1")
	svc.GetPersonEmails(ctx, "1")
	svc.GetPersonEmails(ctx, "2")

	if client.listEmailCalls != 2 {
		t.Errorf("upstream called %d times, want 2 (one per person)", client.listEmailCalls)
	}
}

func TestPeopleService_AddEmailInvalidatesList(t *testing.T) {
	ctx := context.Background()
	client := &fakeClient{emails: []domain.EmailAddress{}}
	svc := newPeopleService(client)

	svc.GetPersonEmails(ctx, "1")

	_, err := svc.AddEmail(ctx, "1", &domain.EmailAddress{Address: "ada@example.com"})
	if err != nil {
		t.Fatalf("AddEmail() error: %v", err)
	}

	svc.GetPersonEmails(ctx, "1")
	if client.listEmailCalls != 2 {
		t.Errorf("email list not refetched after add: %d calls, want 2", client.listEmailCalls)
	}
}
