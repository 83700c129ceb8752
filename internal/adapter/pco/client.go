package pco

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/lloydngcobo/PCO/internal/core/domain"
	"github.com/lloydngcobo/PCO/internal/core/ports"
)

const defaultPageSize = 100

var errNotFound = errors.New("pco: resource not found")

// Client talks to the Planning Center Online JSON:API using HTTP basic
// auth with a personal access token (app id + secret). Collection
// endpoints are paginated; list methods follow links.next until the
// collection is exhausted.
type Client struct {
	appID      string
	secret     string
	baseURL    string
	httpClient *http.Client
	logger     ports.LoggerPort
}

func NewClient(appID, secret, baseURL string, logger ports.LoggerPort) *Client {
	return &Client{
		appID:   appID,
		secret:  secret,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

// resource is a single JSON:API object.
type resource struct {
	Type          string                  `json:"type"`
	ID            string                  `json:"id,omitempty"`
	Attributes    json.RawMessage         `json:"attributes,omitempty"`
	Relationships map[string]relationship `json:"relationships,omitempty"`
}

type relationship struct {
	Data struct {
		Type string `json:"type"`
		ID   string `json:"id"`
	} `json:"data"`
}

type document struct {
	Data resource `json:"data"`
}

type collection struct {
	Data     []resource `json:"data"`
	Included []resource `json:"included"`
	Links    struct {
		Next string `json:"next"`
	} `json:"links"`
}

// included indexes side-loaded resources by "Type/ID" so relationship
// references can be resolved to their attributes.
type included map[string]resource

func (inc included) lookup(res resource, name string) (resource, bool) {
	rel, ok := res.Relationships[name]
	if !ok {
		return resource{}, false
	}
	r, ok := inc[rel.Data.Type+"/"+rel.Data.ID]
	return r, ok
}

type personAttributes struct {
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Gender    string    `json:"gender"`
	Birthdate string    `json:"birthdate"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type emailAttributes struct {
	Address  string `json:"address"`
	Location string `json:"location"`
	Primary  bool   `json:"primary"`
}

type serviceTypeAttributes struct {
	Name       string    `json:"name"`
	Sequence   int       `json:"sequence"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	ArchivedAt string    `json:"archived_at"`
}

type planAttributes struct {
	Title       string    `json:"title"`
	SeriesTitle string    `json:"series_title"`
	Dates       string    `json:"dates"`
	ShortDates  string    `json:"short_dates"`
	SortDate    time.Time `json:"sort_date"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type teamPositionAttributes struct {
	Name      string    `json:"name"`
	Sequence  int       `json:"sequence"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type teamMemberAttributes struct {
	Status           string    `json:"status"`
	TeamPositionName string    `json:"team_position_name"`
	ScheduledByName  string    `json:"scheduled_by_name"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type personNameAttributes struct {
	FullName string `json:"full_name"`
}

type nameAttributes struct {
	Name string `json:"name"`
}

type teamAttributes struct {
	Name          string    `json:"name"`
	Sequence      int       `json:"sequence"`
	ScheduleTo    string    `json:"schedule_to"`
	DefaultStatus string    `json:"default_status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (c *Client) SearchPeople(ctx context.Context, firstName, lastName string) (*domain.Person, error) {
	query := url.Values{}
	query.Set("where[first_name]", firstName)
	query.Set("where[last_name]", lastName)

	resources, err := c.iterate(ctx, "/people/v2/people", query)
	if err != nil {
		return nil, err
	}
	if len(resources) == 0 {
		return nil, nil
	}
	return toPerson(resources[0])
}

func (c *Client) GetPerson(ctx context.Context, personID string) (*domain.Person, error) {
	doc, err := c.getOne(ctx, "/people/v2/people/"+personID)
	if err != nil {
		if errors.Is(err, errNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return toPerson(doc.Data)
}

func (c *Client) CreatePerson(ctx context.Context, person *domain.Person) (*domain.Person, error) {
	attributes := map[string]any{
		"first_name": person.FirstName,
		"last_name":  person.LastName,
	}
	if person.Gender != "" {
		attributes["gender"] = person.Gender
	}
	if person.Birthdate != "" {
		attributes["birthdate"] = person.Birthdate
	}

	doc, err := c.write(ctx, http.MethodPost, "/people/v2/people", "Person", attributes)
	if err != nil {
		return nil, err
	}
	return toPerson(doc.Data)
}

func (c *Client) UpdatePerson(ctx context.Context, personID string, attributes map[string]any) (*domain.Person, error) {
	doc, err := c.write(ctx, http.MethodPatch, "/people/v2/people/"+personID, "Person", attributes)
	if err != nil {
		if errors.Is(err, errNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return toPerson(doc.Data)
}

func (c *Client) DeletePerson(ctx context.Context, personID string) error {
	return c.delete(ctx, "/people/v2/people/"+personID)
}

func (c *Client) ListEmails(ctx context.Context, personID string) ([]domain.EmailAddress, error) {
	resources, err := c.iterate(ctx, "/people/v2/people/"+personID+"/emails", nil)
	if err != nil {
		return nil, err
	}

	emails := make([]domain.EmailAddress, 0, len(resources))
	for _, res := range resources {
		email, err := toEmail(res)
		if err != nil {
			return nil, err
		}
		emails = append(emails, *email)
	}
	return emails, nil
}

func (c *Client) AddEmail(ctx context.Context, personID string, email *domain.EmailAddress) (*domain.EmailAddress, error) {
	attributes := map[string]any{
		"address": email.Address,
		"primary": email.Primary,
	}
	if email.Location != "" {
		attributes["location"] = email.Location
	}

	doc, err := c.write(ctx, http.MethodPost, "/people/v2/people/"+personID+"/emails", "Email", attributes)
	if err != nil {
		return nil, err
	}
	return toEmail(doc.Data)
}

func (c *Client) UpdateEmail(ctx context.Context, emailID string, attributes map[string]any) (*domain.EmailAddress, error) {
	doc, err := c.write(ctx, http.MethodPatch, "/people/v2/emails/"+emailID, "Email", attributes)
	if err != nil {
		if errors.Is(err, errNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return toEmail(doc.Data)
}

func (c *Client) DeleteEmail(ctx context.Context, emailID string) error {
	return c.delete(ctx, "/people/v2/emails/"+emailID)
}

func (c *Client) ListServiceTypes(ctx context.Context) ([]domain.ServiceType, error) {
	resources, err := c.iterate(ctx, "/services/v2/service_types", nil)
	if err != nil {
		return nil, err
	}

	types := make([]domain.ServiceType, 0, len(resources))
	for _, res := range resources {
		st, err := toServiceType(res)
		if err != nil {
			return nil, err
		}
		types = append(types, *st)
	}
	return types, nil
}

func (c *Client) GetServiceType(ctx context.Context, serviceTypeID string) (*domain.ServiceType, error) {
	doc, err := c.getOne(ctx, "/services/v2/service_types/"+serviceTypeID)
	if err != nil {
		if errors.Is(err, errNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return toServiceType(doc.Data)
}

func (c *Client) ListPlans(ctx context.Context, serviceTypeID string, filter ports.PlanFilter, order string) ([]domain.Plan, error) {
	query := url.Values{}
	if order != "" {
		query.Set("order", order)
	}
	if filter != ports.PlanFilterNone {
		query.Set("filter", string(filter))
	}

	resources, err := c.iterate(ctx, "/services/v2/service_types/"+serviceTypeID+"/plans", query)
	if err != nil {
		return nil, err
	}

	plans := make([]domain.Plan, 0, len(resources))
	for _, res := range resources {
		plan, err := toPlan(res, serviceTypeID)
		if err != nil {
			return nil, err
		}
		plans = append(plans, *plan)
	}
	return plans, nil
}

func (c *Client) GetPlan(ctx context.Context, serviceTypeID, planID string) (*domain.Plan, error) {
	doc, err := c.getOne(ctx, "/services/v2/service_types/"+serviceTypeID+"/plans/"+planID)
	if err != nil {
		if errors.Is(err, errNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return toPlan(doc.Data, serviceTypeID)
}

func (c *Client) CreatePlan(ctx context.Context, serviceTypeID string, plan *domain.Plan) (*domain.Plan, error) {
	attributes := map[string]any{
		"title": plan.Title,
	}
	if plan.Dates != "" {
		attributes["dates"] = plan.Dates
	}
	if plan.SeriesTitle != "" {
		attributes["series_title"] = plan.SeriesTitle
	}

	doc, err := c.write(ctx, http.MethodPost, "/services/v2/service_types/"+serviceTypeID+"/plans", "Plan", attributes)
	if err != nil {
		return nil, err
	}
	return toPlan(doc.Data, serviceTypeID)
}

func (c *Client) UpdatePlan(ctx context.Context, serviceTypeID, planID string, attributes map[string]any) (*domain.Plan, error) {
	doc, err := c.write(ctx, http.MethodPatch, "/services/v2/service_types/"+serviceTypeID+"/plans/"+planID, "Plan", attributes)
	if err != nil {
		if errors.Is(err, errNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return toPlan(doc.Data, serviceTypeID)
}

func (c *Client) DeletePlan(ctx context.Context, serviceTypeID, planID string) error {
	return c.delete(ctx, "/services/v2/service_types/"+serviceTypeID+"/plans/"+planID)
}

func (c *Client) ListTeams(ctx context.Context, serviceTypeID string) ([]domain.Team, error) {
	resources, err := c.iterate(ctx, "/services/v2/service_types/"+serviceTypeID+"/teams", nil)
	if err != nil {
		return nil, err
	}

	teams := make([]domain.Team, 0, len(resources))
	for _, res := range resources {
		team, err := toTeam(res)
		if err != nil {
			return nil, err
		}
		teams = append(teams, *team)
	}
	return teams, nil
}

func (c *Client) GetTeam(ctx context.Context, serviceTypeID, teamID string) (*domain.Team, error) {
	doc, err := c.getOne(ctx, "/services/v2/service_types/"+serviceTypeID+"/teams/"+teamID)
	if err != nil {
		if errors.Is(err, errNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return toTeam(doc.Data)
}

func (c *Client) ListTeamPositions(ctx context.Context, serviceTypeID, teamID string) ([]domain.TeamPosition, error) {
	resources, err := c.iterate(ctx, "/services/v2/service_types/"+serviceTypeID+"/teams/"+teamID+"/team_positions", nil)
	if err != nil {
		return nil, err
	}

	positions := make([]domain.TeamPosition, 0, len(resources))
	for _, res := range resources {
		position, err := toTeamPosition(res)
		if err != nil {
			return nil, err
		}
		positions = append(positions, *position)
	}
	return positions, nil
}

func (c *Client) ListPlanPeople(ctx context.Context, serviceTypeID, planID string) ([]domain.TeamMember, error) {
	query := url.Values{}
	query.Set("include", "person,team")

	resources, inc, err := c.iterateWithIncluded(ctx, "/services/v2/service_types/"+serviceTypeID+"/plans/"+planID+"/team_members", query)
	if err != nil {
		return nil, err
	}

	members := make([]domain.TeamMember, 0, len(resources))
	for _, res := range resources {
		member, err := toTeamMember(res, inc)
		if err != nil {
			return nil, err
		}
		members = append(members, *member)
	}
	return members, nil
}

func (c *Client) AddPlanPerson(ctx context.Context, serviceTypeID, planID, personID, teamID, teamPositionID, status string) (*domain.TeamMember, error) {
	payload := map[string]any{
		"data": map[string]any{
			"type": "TeamMember",
			"attributes": map[string]any{
				"status": status,
			},
			"relationships": map[string]any{
				"person": map[string]any{
					"data": map[string]any{"type": "Person", "id": personID},
				},
				"team": map[string]any{
					"data": map[string]any{"type": "Team", "id": teamID},
				},
				"team_position": map[string]any{
					"data": map[string]any{"type": "TeamPosition", "id": teamPositionID},
				},
			},
		},
	}

	doc, err := c.writeDocument(ctx, http.MethodPost, "/services/v2/service_types/"+serviceTypeID+"/plans/"+planID+"/team_members", payload)
	if err != nil {
		return nil, err
	}
	return toTeamMember(doc.Data, nil)
}

func (c *Client) UpdatePlanPersonStatus(ctx context.Context, serviceTypeID, planID, teamMemberID, status string) (*domain.TeamMember, error) {
	doc, err := c.write(ctx, http.MethodPatch,
		"/services/v2/service_types/"+serviceTypeID+"/plans/"+planID+"/team_members/"+teamMemberID,
		"TeamMember", map[string]any{"status": status})
	if err != nil {
		if errors.Is(err, errNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return toTeamMember(doc.Data, nil)
}

func (c *Client) RemovePlanPerson(ctx context.Context, serviceTypeID, planID, teamMemberID string) error {
	return c.delete(ctx, "/services/v2/service_types/"+serviceTypeID+"/plans/"+planID+"/team_members/"+teamMemberID)
}

// iterate fetches a collection endpoint page by page, following
// links.next until the upstream reports no more pages.
func (c *Client) iterate(ctx context.Context, path string, query url.Values) ([]resource, error) {
	resources, _, err := c.iterateWithIncluded(ctx, path, query)
	return resources, err
}

// iterateWithIncluded additionally indexes the side-loaded resources of
// every page, for endpoints queried with the include parameter.
func (c *Client) iterateWithIncluded(ctx context.Context, path string, query url.Values) ([]resource, included, error) {
	if query == nil {
		query = url.Values{}
	}
	query.Set("per_page", fmt.Sprintf("%d", defaultPageSize))

	next := c.baseURL + path + "?" + query.Encode()
	var resources []resource
	inc := included{}

	for next != "" {
		body, err := c.do(ctx, http.MethodGet, next, nil)
		if err != nil {
			return nil, nil, err
		}

		var page collection
		if err := json.Unmarshal(body, &page); err != nil {
			return nil, nil, fmt.Errorf("decode collection page: %w", err)
		}

		resources = append(resources, page.Data...)
		for _, res := range page.Included {
			inc[res.Type+"/"+res.ID] = res
		}
		next = page.Links.Next
	}

	return resources, inc, nil
}

func (c *Client) getOne(ctx context.Context, path string) (*document, error) {
	body, err := c.do(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}

	var doc document
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return &doc, nil
}

// write sends a JSON:API payload built from a resource type and its
// attributes, mirroring upstream's template/post convention.
func (c *Client) write(ctx context.Context, method, path, resourceType string, attributes map[string]any) (*document, error) {
	return c.writeDocument(ctx, method, path, map[string]any{
		"data": map[string]any{
			"type":       resourceType,
			"attributes": attributes,
		},
	})
}

func (c *Client) writeDocument(ctx context.Context, method, path string, payload map[string]any) (*document, error) {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}

	body, err := c.do(ctx, method, c.baseURL+path, encoded)
	if err != nil {
		return nil, err
	}

	var doc document
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return &doc, nil
}

func (c *Client) delete(ctx context.Context, path string) error {
	_, err := c.do(ctx, http.MethodDelete, c.baseURL+path, nil)
	if errors.Is(err, errNotFound) {
		return nil
	}
	return err
}

func (c *Client) do(ctx context.Context, method, rawURL string, payload []byte) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(c.appID, c.secret)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, errNotFound
	case resp.StatusCode >= 400:
		c.logger.Warn("PCO request failed", map[string]interface{}{
			"method": method,
			"url":    rawURL,
			"status": resp.StatusCode,
		})
		return nil, fmt.Errorf("pco: %s %s returned %d", method, rawURL, resp.StatusCode)
	}

	return data, nil
}

func toPerson(res resource) (*domain.Person, error) {
	var attrs personAttributes
	if err := json.Unmarshal(res.Attributes, &attrs); err != nil {
		return nil, fmt.Errorf("decode person attributes: %w", err)
	}
	return &domain.Person{
		ID:        res.ID,
		FirstName: attrs.FirstName,
		LastName:  attrs.LastName,
		Gender:    attrs.Gender,
		Birthdate: attrs.Birthdate,
		Status:    attrs.Status,
		CreatedAt: attrs.CreatedAt,
		UpdatedAt: attrs.UpdatedAt,
	}, nil
}

func toEmail(res resource) (*domain.EmailAddress, error) {
	var attrs emailAttributes
	if err := json.Unmarshal(res.Attributes, &attrs); err != nil {
		return nil, fmt.Errorf("decode email attributes: %w", err)
	}
	return &domain.EmailAddress{
		ID:       res.ID,
		Address:  attrs.Address,
		Location: attrs.Location,
		Primary:  attrs.Primary,
	}, nil
}

func toServiceType(res resource) (*domain.ServiceType, error) {
	var attrs serviceTypeAttributes
	if err := json.Unmarshal(res.Attributes, &attrs); err != nil {
		return nil, fmt.Errorf("decode service type attributes: %w", err)
	}
	return &domain.ServiceType{
		ID:         res.ID,
		Name:       attrs.Name,
		Sequence:   attrs.Sequence,
		CreatedAt:  attrs.CreatedAt,
		UpdatedAt:  attrs.UpdatedAt,
		ArchivedAt: attrs.ArchivedAt,
	}, nil
}

func toPlan(res resource, serviceTypeID string) (*domain.Plan, error) {
	var attrs planAttributes
	if err := json.Unmarshal(res.Attributes, &attrs); err != nil {
		return nil, fmt.Errorf("decode plan attributes: %w", err)
	}
	return &domain.Plan{
		ID:            res.ID,
		ServiceTypeID: serviceTypeID,
		Title:         attrs.Title,
		SeriesTitle:   attrs.SeriesTitle,
		Dates:         attrs.Dates,
		ShortDates:    attrs.ShortDates,
		SortDate:      attrs.SortDate,
		CreatedAt:     attrs.CreatedAt,
		UpdatedAt:     attrs.UpdatedAt,
	}, nil
}

func toTeamPosition(res resource) (*domain.TeamPosition, error) {
	var attrs teamPositionAttributes
	if err := json.Unmarshal(res.Attributes, &attrs); err != nil {
		return nil, fmt.Errorf("decode team position attributes: %w", err)
	}
	return &domain.TeamPosition{
		ID:        res.ID,
		Name:      attrs.Name,
		Sequence:  attrs.Sequence,
		CreatedAt: attrs.CreatedAt,
		UpdatedAt: attrs.UpdatedAt,
	}, nil
}

// toTeamMember resolves the person and team names from the side-loaded
// resources when available; write responses carry no includes and leave
// the names empty.
func toTeamMember(res resource, inc included) (*domain.TeamMember, error) {
	var attrs teamMemberAttributes
	if err := json.Unmarshal(res.Attributes, &attrs); err != nil {
		return nil, fmt.Errorf("decode team member attributes: %w", err)
	}

	member := &domain.TeamMember{
		ID:               res.ID,
		Status:           attrs.Status,
		TeamPositionName: attrs.TeamPositionName,
		ScheduledByName:  attrs.ScheduledByName,
		CreatedAt:        attrs.CreatedAt,
		UpdatedAt:        attrs.UpdatedAt,
	}

	if person, ok := inc.lookup(res, "person"); ok {
		var name personNameAttributes
		if err := json.Unmarshal(person.Attributes, &name); err == nil {
			member.PersonName = name.FullName
		}
	}
	if team, ok := inc.lookup(res, "team"); ok {
		var name nameAttributes
		if err := json.Unmarshal(team.Attributes, &name); err == nil {
			member.TeamName = name.Name
		}
	}

	return member, nil
}

func toTeam(res resource) (*domain.Team, error) {
	var attrs teamAttributes
	if err := json.Unmarshal(res.Attributes, &attrs); err != nil {
		return nil, fmt.Errorf("decode team attributes: %w", err)
	}
	return &domain.Team{
		ID:            res.ID,
		Name:          attrs.Name,
		Sequence:      attrs.Sequence,
		ScheduleTo:    attrs.ScheduleTo,
		DefaultStatus: attrs.DefaultStatus,
		CreatedAt:     attrs.CreatedAt,
		UpdatedAt:     attrs.UpdatedAt,
	}, nil
}

var _ ports.PCOClient = (*Client)(nil)
