package domain

import "time"

// swagger:model domain.Person
type Person struct {
	ID        string    `json:"id"`
	FirstName string    `json:"first_name" validate:"required,min=1,max=50"`
	LastName  string    `json:"last_name" validate:"required,min=1,max=50"`
	Gender    string    `json:"gender,omitempty" validate:"omitempty,oneof=Male Female"`
	Birthdate string    `json:"birthdate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Status    string    `json:"status,omitempty"`
	CreatedAt time.Time `json:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// swagger:model domain.EmailAddress
type EmailAddress struct {
	ID       string `json:"id"`
	Address  string `json:"address" validate:"required,email"`
	Location string `json:"location,omitempty"`
	Primary  bool   `json:"primary"`
}
