package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lloydngcobo/PCO/internal/core/domain"
)

type nopLogger struct{}

func (nopLogger) Info(string, map[string]interface{})  {}
func (nopLogger) Error(string, map[string]interface{}) {}
func (nopLogger) Debug(string, map[string]interface{}) {}
func (nopLogger) Warn(string, map[string]interface{})  {}

type nopMetrics struct{}

func (nopMetrics) IncrementCounter(string, map[string]string)               {}
func (nopMetrics) RecordDuration(string, time.Duration, map[string]string) {}
func (nopMetrics) RecordMetrics(*gin.Context, time.Time)                   {}
func (nopMetrics) CacheHit(string)                                         {}
func (nopMetrics) CacheMiss(string)                                        {}
func (nopMetrics) CacheSet(string)                                         {}
func (nopMetrics) CacheEviction(string)                                    {}

// stubPeopleService returns canned values; only the methods a test
// drives need meaningful behavior.
type stubPeopleService struct {
	person *domain.Person
	email  *domain.EmailAddress
	emails []domain.EmailAddress
	err    error
}

func (s *stubPeopleService) FindPersonByName(ctx context.Context, firstName, lastName string) (*domain.Person, error) {
	return s.person, s.err
}

func (s *stubPeopleService) GetPersonByID(ctx context.Context, personID string) (*domain.Person, error) {
	return s.person, s.err
}

func (s *stubPeopleService) AddPerson(ctx context.Context, person *domain.Person, checkDuplicate bool) (*domain.Person, error) {
	return s.person, s.err
}

func (s *stubPeopleService) UpdatePersonAttributes(ctx context.Context, personID string, attributes map[string]any) (*domain.Person, error) {
	return s.person, s.err
}

func (s *stubPeopleService) DeletePerson(ctx context.Context, personID string) error {
	return s.err
}

func (s *stubPeopleService) GetPersonEmails(ctx context.Context, personID string) ([]domain.EmailAddress, error) {
	return s.emails, s.err
}

func (s *stubPeopleService) AddEmail(ctx context.Context, personID string, email *domain.EmailAddress) (*domain.EmailAddress, error) {
	return s.email, s.err
}

func (s *stubPeopleService) UpdateEmail(ctx context.Context, personID, emailID string, attributes map[string]any) (*domain.EmailAddress, error) {
	return s.email, s.err
}

func (s *stubPeopleService) DeleteEmail(ctx context.Context, personID, emailID string) error {
	return s.err
}

func newPeopleTestRouter(svc *stubPeopleService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewPeopleHandler(svc, nopLogger{}, nopMetrics{})

	router := gin.New()
	router.PATCH("/api/people/:id/emails/:email_id", h.UpdateEmail)
	router.PATCH("/api/people/:id", h.Update)
	return router
}

func TestPeopleHandler_UpdateEmailMissingIs404(t *testing.T) {
	router := newPeopleTestRouter(&stubPeopleService{})

	req := httptest.NewRequest(http.MethodPatch, "/api/people/1/emails/999",
		strings.NewReader(`{"address":"new@example.com"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d for missing email", rec.Code, http.StatusNotFound)
	}
}

func TestPeopleHandler_UpdateEmailFound(t *testing.T) {
	router := newPeopleTestRouter(&stubPeopleService{
		email: &domain.EmailAddress{ID: "e1", Address: "new@example.com"},
	})

	req := httptest.NewRequest(http.MethodPatch, "/api/people/1/emails/e1",
		strings.NewReader(`{"address":"new@example.com"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestPeopleHandler_UpdatePersonMissingIs404(t *testing.T) {
	router := newPeopleTestRouter(&stubPeopleService{})

	req := httptest.NewRequest(http.MethodPatch, "/api/people/999",
		strings.NewReader(`{"last_name":"King"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d for missing person", rec.Code, http.StatusNotFound)
	}
}
