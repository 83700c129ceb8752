package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lloydngcobo/PCO/internal/core/domain"
	"github.com/lloydngcobo/PCO/internal/core/ports"
	"github.com/lloydngcobo/PCO/internal/core/services"
)

type PeopleHandler struct {
	peopleService ports.PeopleService
	logger        ports.LoggerPort
	metrics       ports.MetricsPort
}

type PersonRequest struct {
	FirstName      string `json:"first_name" binding:"required" example:"John"`
	LastName       string `json:"last_name" binding:"required" example:"Doe"`
	Gender         string `json:"gender,omitempty" example:"Male"`
	Birthdate      string `json:"birthdate,omitempty" example:"1990-01-01"`
	CheckDuplicate *bool  `json:"check_duplicate,omitempty" example:"true"`
}

type EmailRequest struct {
	Address  string `json:"address" binding:"required" example:"john@example.com"`
	Location string `json:"location,omitempty" example:"Home"`
	Primary  bool   `json:"primary" example:"true"`
}

type AttributesRequest map[string]any

func NewPeopleHandler(
	peopleService ports.PeopleService,
	logger ports.LoggerPort,
	metrics ports.MetricsPort,
) *PeopleHandler {
	return &PeopleHandler{
		peopleService: peopleService,
		logger:        logger,
		metrics:       metrics,
	}
}

// @Summary Search for a person by name
// @Tags people
// @Produce json
// @Param first_name query string true "First name"
// @Param last_name query string true "Last name"
// @Success 200 {object} successResponse "Person found"
// @Failure 404 {object} errorResponse "Person not found"
// @Router /api/people/search [get]
func (h *PeopleHandler) Search(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	firstName := c.Query("first_name")
	lastName := c.Query("last_name")
	if firstName == "" || lastName == "" {
		newErrorResponse(c, http.StatusBadRequest, "first_name and last_name are required")
		return
	}

	person, err := h.peopleService.FindPersonByName(c.Request.Context(), firstName, lastName)
	if err != nil {
		h.logger.Error("Person search failed", map[string]interface{}{
			"error": err.Error(),
		})
		newErrorResponse(c, http.StatusBadGateway, "Upstream request failed")
		return
	}
	if person == nil {
		newErrorResponse(c, http.StatusNotFound, "Person not found")
		return
	}

	newSuccessResponse(c, http.StatusOK, "", person)
}

// @Summary Get a person by ID
// @Tags people
// @Produce json
// @Param id path string true "Person ID"
// @Success 200 {object} successResponse "Person"
// @Failure 404 {object} errorResponse "Person not found"
// @Router /api/people/{id} [get]
func (h *PeopleHandler) Get(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	person, err := h.peopleService.GetPersonByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		newErrorResponse(c, http.StatusBadGateway, "Upstream request failed")
		return
	}
	if person == nil {
		newErrorResponse(c, http.StatusNotFound, "Person not found")
		return
	}

	newSuccessResponse(c, http.StatusOK, "", person)
}

// @Summary Add a person
// @Tags people
// @Accept json
// @Produce json
// @Param request body PersonRequest true "Person data"
// @Success 201 {object} successResponse "Person created"
// @Failure 409 {object} errorResponse "Person already exists"
// @Router /api/people [post]
func (h *PeopleHandler) Create(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	var req PersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	checkDuplicate := true
	if req.CheckDuplicate != nil {
		checkDuplicate = *req.CheckDuplicate
	}

	person := &domain.Person{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Gender:    req.Gender,
		Birthdate: req.Birthdate,
	}

	created, err := h.peopleService.AddPerson(c.Request.Context(), person, checkDuplicate)
	if err != nil {
		if errors.Is(err, services.ErrPersonExists) {
			newErrorResponse(c, http.StatusConflict, "Person already exists")
			return
		}
		newErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	newSuccessResponse(c, http.StatusCreated, "Person created", created)
}

// @Summary Update person attributes
// @Tags people
// @Accept json
// @Produce json
// @Param id path string true "Person ID"
// @Param request body AttributesRequest true "Attributes to update"
// @Success 200 {object} successResponse "Person updated"
// @Router /api/people/{id} [patch]
func (h *PeopleHandler) Update(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	var attributes AttributesRequest
	if err := c.ShouldBindJSON(&attributes); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	updated, err := h.peopleService.UpdatePersonAttributes(c.Request.Context(), c.Param("id"), attributes)
	if err != nil {
		newErrorResponse(c, http.StatusBadGateway, "Upstream request failed")
		return
	}
	if updated == nil {
		newErrorResponse(c, http.StatusNotFound, "Person not found")
		return
	}

	newSuccessResponse(c, http.StatusOK, "Person updated", updated)
}

// @Summary Delete a person
// @Tags people
// @Produce json
// @Param id path string true "Person ID"
// @Success 200 {object} successResponse "Person deleted"
// @Router /api/people/{id} [delete]
func (h *PeopleHandler) Delete(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	if err := h.peopleService.DeletePerson(c.Request.Context(), c.Param("id")); err != nil {
		newErrorResponse(c, http.StatusBadGateway, "Upstream request failed")
		return
	}

	newSuccessResponse(c, http.StatusOK, "Person deleted", nil)
}

// @Summary List a person's email addresses
// @Tags people
// @Produce json
// @Param id path string true "Person ID"
// @Success 200 {object} listResponse "Email addresses"
// @Router /api/people/{id}/emails [get]
func (h *PeopleHandler) ListEmails(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	emails, err := h.peopleService.GetPersonEmails(c.Request.Context(), c.Param("id"))
	if err != nil {
		newErrorResponse(c, http.StatusBadGateway, "Upstream request failed")
		return
	}

	newListResponse(c, len(emails), emails)
}

func (h *PeopleHandler) AddEmail(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	var req EmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	email := &domain.EmailAddress{
		Address:  req.Address,
		Location: req.Location,
		Primary:  req.Primary,
	}

	created, err := h.peopleService.AddEmail(c.Request.Context(), c.Param("id"), email)
	if err != nil {
		newErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	newSuccessResponse(c, http.StatusCreated, "Email added", created)
}

func (h *PeopleHandler) UpdateEmail(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	var attributes AttributesRequest
	if err := c.ShouldBindJSON(&attributes); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	updated, err := h.peopleService.UpdateEmail(c.Request.Context(), c.Param("id"), c.Param("email_id"), attributes)
	if err != nil {
		newErrorResponse(c, http.StatusBadGateway, "Upstream request failed")
		return
	}
	if updated == nil {
		newErrorResponse(c, http.StatusNotFound, "Email not found")
		return
	}

	newSuccessResponse(c, http.StatusOK, "Email updated", updated)
}

func (h *PeopleHandler) DeleteEmail(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	if err := h.peopleService.DeleteEmail(c.Request.Context(), c.Param("id"), c.Param("email_id")); err != nil {
		newErrorResponse(c, http.StatusBadGateway, "Upstream request failed")
		return
	}

	newSuccessResponse(c, http.StatusOK, "Email deleted", nil)
}
