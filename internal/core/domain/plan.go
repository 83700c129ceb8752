package domain

import "time"

// swagger:model domain.ServiceType
type ServiceType struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Sequence   int       `json:"sequence"`
	CreatedAt  time.Time `json:"created_at,omitempty"`
	UpdatedAt  time.Time `json:"updated_at,omitempty"`
	ArchivedAt string    `json:"archived_at,omitempty"`
}

// swagger:model domain.Plan
type Plan struct {
	ID            string    `json:"id"`
	ServiceTypeID string    `json:"service_type_id"`
	Title         string    `json:"title" validate:"required,min=1"`
	SeriesTitle   string    `json:"series_title,omitempty"`
	Dates         string    `json:"dates,omitempty"`
	ShortDates    string    `json:"short_dates,omitempty"`
	SortDate      time.Time `json:"sort_date,omitempty"`
	CreatedAt     time.Time `json:"created_at,omitempty"`
	UpdatedAt     time.Time `json:"updated_at,omitempty"`
}

// swagger:model domain.TeamPosition
type TeamPosition struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Sequence  int       `json:"sequence"`
	CreatedAt time.Time `json:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// TeamMember is a person scheduled onto a plan. Status is the upstream
// single-letter code: C confirmed, U unconfirmed, D declined.
// swagger:model domain.TeamMember
type TeamMember struct {
	ID               string    `json:"id"`
	PersonName       string    `json:"person_name,omitempty"`
	TeamName         string    `json:"team_name,omitempty"`
	Status           string    `json:"status"`
	TeamPositionName string    `json:"team_position_name,omitempty"`
	ScheduledByName  string    `json:"scheduled_by_name,omitempty"`
	CreatedAt        time.Time `json:"created_at,omitempty"`
	UpdatedAt        time.Time `json:"updated_at,omitempty"`
}

// swagger:model domain.Team
type Team struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Sequence      int       `json:"sequence"`
	ScheduleTo    string    `json:"schedule_to,omitempty"`
	DefaultStatus string    `json:"default_status,omitempty"`
	CreatedAt     time.Time `json:"created_at,omitempty"`
	UpdatedAt     time.Time `json:"updated_at,omitempty"`
}
