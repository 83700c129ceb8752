package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/lloydngcobo/PCO/internal/cache"
	"github.com/lloydngcobo/PCO/internal/core/domain"
	"github.com/lloydngcobo/PCO/internal/core/ports"
)

// Key prefixes of the memoized reads. Mutations must invalidate with
// the same prefix and argument signature the read used.
const (
	prefixFindPersonByName = "find_person_by_name"
	prefixGetPersonByID    = "get_person_by_id"
	prefixGetPersonEmails  = "get_person_emails"
)

const (
	personSearchTTL = 5 * time.Minute
	personTTL       = 10 * time.Minute
	emailsTTL       = 10 * time.Minute
)

var ErrPersonExists = errors.New("person already exists")

func personTag(personID string) string {
	return "person:" + personID
}

type PeopleService struct {
	client   ports.PCOClient
	cache    ports.CachePort
	logger   ports.LoggerPort
	validate *validator.Validate
}

func NewPeopleService(
	client ports.PCOClient,
	cachePort ports.CachePort,
	logger ports.LoggerPort,
	validate *validator.Validate,
) *PeopleService {
	return &PeopleService{
		client:   client,
		cache:    cachePort,
		logger:   logger,
		validate: validate,
	}
}

// FindPersonByName returns the first matching person, nil when nobody
// matches. A nil result is never cached so a person added moments later
// is found on the next call.
func (ps *PeopleService) FindPersonByName(ctx context.Context, firstName, lastName string) (*domain.Person, error) {
	return cache.GetOrFetch(ctx, ps.cache, prefixFindPersonByName, personSearchTTL,
		func(ctx context.Context) (*domain.Person, error) {
			return ps.client.SearchPeople(ctx, firstName, lastName)
		}, firstName, lastName)
}

func (ps *PeopleService) GetPersonByID(ctx context.Context, personID string) (*domain.Person, error) {
	return cache.GetOrFetchTagged(ctx, ps.cache, prefixGetPersonByID, personTTL,
		[]string{personTag(personID)},
		func(ctx context.Context) (*domain.Person, error) {
			return ps.client.GetPerson(ctx, personID)
		}, personID)
}

func (ps *PeopleService) AddPerson(ctx context.Context, person *domain.Person, checkDuplicate bool) (*domain.Person, error) {
	if err := ps.validate.Struct(person); err != nil {
		ps.logger.Error("Validation failed", map[string]interface{}{
			"error":  err.Error(),
			"method": "AddPerson",
		})
		return nil, fmt.Errorf("validation failed: %s", err.Error())
	}

	if checkDuplicate {
		existing, err := ps.FindPersonByName(ctx, person.FirstName, person.LastName)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			ps.logger.Info("Person already exists", map[string]interface{}{
				"id":         existing.ID,
				"first_name": person.FirstName,
				"last_name":  person.LastName,
			})
			return nil, ErrPersonExists
		}
	}

	created, err := ps.client.CreatePerson(ctx, person)
	if err != nil {
		ps.logger.Error("Failed to create person upstream", map[string]interface{}{
			"error":  err.Error(),
			"method": "AddPerson",
		})
		return nil, err
	}

	// The name lookup may hold a stale "not found" path result.
	ps.cache.Invalidate(ctx, prefixFindPersonByName, person.FirstName, person.LastName)

	ps.logger.Info("Person created", map[string]interface{}{
		"id": created.ID,
	})
	return created, nil
}

func (ps *PeopleService) UpdatePersonAttributes(ctx context.Context, personID string, attributes map[string]any) (*domain.Person, error) {
	updated, err := ps.client.UpdatePerson(ctx, personID, attributes)
	if err != nil {
		ps.logger.Error("Failed to update person", map[string]interface{}{
			"id":    personID,
			"error": err.Error(),
		})
		return nil, err
	}

	ps.cache.Invalidate(ctx, prefixGetPersonByID, personID)
	ps.cache.InvalidateTags(ctx, personTag(personID))

	return updated, nil
}

func (ps *PeopleService) DeletePerson(ctx context.Context, personID string) error {
	if err := ps.client.DeletePerson(ctx, personID); err != nil {
		ps.logger.Error("Failed to delete person", map[string]interface{}{
			"id":    personID,
			"error": err.Error(),
		})
		return err
	}

	ps.cache.Invalidate(ctx, prefixGetPersonByID, personID)
	ps.cache.InvalidateTags(ctx, personTag(personID))

	ps.logger.Info("Person deleted", map[string]interface{}{
		"id": personID,
	})
	return nil
}

func (ps *PeopleService) GetPersonEmails(ctx context.Context, personID string) ([]domain.EmailAddress, error) {
	return cache.GetOrFetchSlice(ctx, ps.cache, prefixGetPersonEmails, emailsTTL,
		[]string{personTag(personID)},
		func(ctx context.Context) ([]domain.EmailAddress, error) {
			return ps.client.ListEmails(ctx, personID)
		}, personID)
}

func (ps *PeopleService) AddEmail(ctx context.Context, personID string, email *domain.EmailAddress) (*domain.EmailAddress, error) {
	if err := ps.validate.Struct(email); err != nil {
		ps.logger.Error("Validation failed", map[string]interface{}{
			"error":  err.Error(),
			"method": "AddEmail",
		})
		return nil, fmt.Errorf("validation failed: %s", err.Error())
	}

	created, err := ps.client.AddEmail(ctx, personID, email)
	if err != nil {
		ps.logger.Error("Failed to add email", map[string]interface{}{
			"id":    personID,
			"error": err.Error(),
		})
		return nil, err
	}

	ps.cache.Invalidate(ctx, prefixGetPersonEmails, personID)

	return created, nil
}

func (ps *PeopleService) UpdateEmail(ctx context.Context, personID, emailID string, attributes map[string]any) (*domain.EmailAddress, error) {
	updated, err := ps.client.UpdateEmail(ctx, emailID, attributes)
	if err != nil {
		ps.logger.Error("Failed to update email", map[string]interface{}{
			"email_id": emailID,
			"error":    err.Error(),
		})
		return nil, err
	}

	ps.cache.Invalidate(ctx, prefixGetPersonEmails, personID)

	return updated, nil
}

func (ps *PeopleService) DeleteEmail(ctx context.Context, personID, emailID string) error {
	if err := ps.client.DeleteEmail(ctx, emailID); err != nil {
		ps.logger.Error("Failed to delete email", map[string]interface{}{
			"email_id": emailID,
			"error":    err.Error(),
		})
		return err
	}

	ps.cache.Invalidate(ctx, prefixGetPersonEmails, personID)

	return nil
}

var _ ports.PeopleService = (*PeopleService)(nil)
