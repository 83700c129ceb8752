package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lloydngcobo/PCO/internal/core/domain"
	"github.com/lloydngcobo/PCO/internal/core/ports"
)

type PlansHandler struct {
	planService ports.PlanService
	logger      ports.LoggerPort
	metrics     ports.MetricsPort
}

type PlanRequest struct {
	Title       string `json:"title" binding:"required" example:"Sunday Service"`
	Dates       string `json:"dates,omitempty" example:"January 1, 2024"`
	SeriesTitle string `json:"series_title,omitempty" example:"New Year Series"`
}

type ScheduleRequest struct {
	PersonID       string `json:"person_id" binding:"required" example:"123"`
	TeamID         string `json:"team_id" binding:"required" example:"456"`
	TeamPositionID string `json:"team_position_id" binding:"required" example:"789"`
	Status         string `json:"status,omitempty" example:"C"`
}

type StatusRequest struct {
	Status string `json:"status" binding:"required" example:"C"`
}

func NewPlansHandler(
	planService ports.PlanService,
	logger ports.LoggerPort,
	metrics ports.MetricsPort,
) *PlansHandler {
	return &PlansHandler{
		planService: planService,
		logger:      logger,
		metrics:     metrics,
	}
}

// @Summary List service types
// @Tags services
// @Produce json
// @Success 200 {object} listResponse "Service types"
// @Router /api/services/service-types [get]
func (h *PlansHandler) ListServiceTypes(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	types, err := h.planService.GetServiceTypes(c.Request.Context())
	if err != nil {
		newErrorResponse(c, http.StatusBadGateway, "Upstream request failed")
		return
	}

	newListResponse(c, len(types), types)
}

func (h *PlansHandler) GetServiceType(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	serviceType, err := h.planService.GetServiceTypeByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		newErrorResponse(c, http.StatusBadGateway, "Upstream request failed")
		return
	}
	if serviceType == nil {
		newErrorResponse(c, http.StatusNotFound, "Service type not found")
		return
	}

	newSuccessResponse(c, http.StatusOK, "", serviceType)
}

// @Summary List plans for a service type
// @Tags services
// @Produce json
// @Param id path string true "Service type ID"
// @Param filter query string false "Filter (future, past)"
// @Param order query string false "Sort order"
// @Success 200 {object} listResponse "Plans"
// @Router /api/services/service-types/{id}/plans [get]
func (h *PlansHandler) ListPlans(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	filter := ports.PlanFilter(c.Query("filter"))
	order := c.Query("order")

	plans, err := h.planService.GetPlans(c.Request.Context(), c.Param("id"), filter, order)
	if err != nil {
		newErrorResponse(c, http.StatusBadGateway, "Upstream request failed")
		return
	}

	newListResponse(c, len(plans), plans)
}

func (h *PlansHandler) ListUpcomingPlans(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	limit := parseLimit(c.Query("limit"))
	plans, err := h.planService.GetUpcomingPlans(c.Request.Context(), c.Param("id"), limit)
	if err != nil {
		newErrorResponse(c, http.StatusBadGateway, "Upstream request failed")
		return
	}

	newListResponse(c, len(plans), plans)
}

func (h *PlansHandler) ListPastPlans(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	limit := parseLimit(c.Query("limit"))
	plans, err := h.planService.GetPastPlans(c.Request.Context(), c.Param("id"), limit)
	if err != nil {
		newErrorResponse(c, http.StatusBadGateway, "Upstream request failed")
		return
	}

	newListResponse(c, len(plans), plans)
}

func (h *PlansHandler) GetPlan(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	plan, err := h.planService.GetPlanByID(c.Request.Context(), c.Param("id"), c.Param("plan_id"))
	if err != nil {
		newErrorResponse(c, http.StatusBadGateway, "Upstream request failed")
		return
	}
	if plan == nil {
		newErrorResponse(c, http.StatusNotFound, "Plan not found")
		return
	}

	newSuccessResponse(c, http.StatusOK, "", plan)
}

// @Summary Create a plan
// @Tags services
// @Accept json
// @Produce json
// @Param id path string true "Service type ID"
// @Param request body PlanRequest true "Plan data"
// @Success 201 {object} successResponse "Plan created"
// @Router /api/services/service-types/{id}/plans [post]
func (h *PlansHandler) CreatePlan(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	var req PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	plan := &domain.Plan{
		Title:       req.Title,
		Dates:       req.Dates,
		SeriesTitle: req.SeriesTitle,
	}

	created, err := h.planService.CreatePlan(c.Request.Context(), c.Param("id"), plan)
	if err != nil {
		newErrorResponse(c, http.StatusBadGateway, "Upstream request failed")
		return
	}

	newSuccessResponse(c, http.StatusCreated, "Plan created", created)
}

func (h *PlansHandler) UpdatePlan(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	var attributes AttributesRequest
	if err := c.ShouldBindJSON(&attributes); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	updated, err := h.planService.UpdatePlan(c.Request.Context(), c.Param("id"), c.Param("plan_id"), attributes)
	if err != nil {
		newErrorResponse(c, http.StatusBadGateway, "Upstream request failed")
		return
	}
	if updated == nil {
		newErrorResponse(c, http.StatusNotFound, "Plan not found")
		return
	}

	newSuccessResponse(c, http.StatusOK, "Plan updated", updated)
}

func (h *PlansHandler) DeletePlan(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	if err := h.planService.DeletePlan(c.Request.Context(), c.Param("id"), c.Param("plan_id")); err != nil {
		newErrorResponse(c, http.StatusBadGateway, "Upstream request failed")
		return
	}

	newSuccessResponse(c, http.StatusOK, "Plan deleted", nil)
}

func (h *PlansHandler) ListTeams(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	teams, err := h.planService.GetTeams(c.Request.Context(), c.Param("id"))
	if err != nil {
		newErrorResponse(c, http.StatusBadGateway, "Upstream request failed")
		return
	}

	newListResponse(c, len(teams), teams)
}

func (h *PlansHandler) GetTeam(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	team, err := h.planService.GetTeamByID(c.Request.Context(), c.Param("id"), c.Param("team_id"))
	if err != nil {
		newErrorResponse(c, http.StatusBadGateway, "Upstream request failed")
		return
	}
	if team == nil {
		newErrorResponse(c, http.StatusNotFound, "Team not found")
		return
	}

	newSuccessResponse(c, http.StatusOK, "", team)
}

func (h *PlansHandler) ListTeamPositions(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	positions, err := h.planService.GetTeamPositions(c.Request.Context(), c.Param("id"), c.Param("team_id"))
	if err != nil {
		newErrorResponse(c, http.StatusBadGateway, "Upstream request failed")
		return
	}

	newListResponse(c, len(positions), positions)
}

// @Summary List people scheduled on a plan
// @Tags services
// @Produce json
// @Param id path string true "Service type ID"
// @Param plan_id path string true "Plan ID"
// @Success 200 {object} listResponse "Scheduled people"
// @Router /api/services/service-types/{id}/plans/{plan_id}/team-members [get]
func (h *PlansHandler) ListPlanPeople(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	people, err := h.planService.GetPlanPeople(c.Request.Context(), c.Param("id"), c.Param("plan_id"))
	if err != nil {
		newErrorResponse(c, http.StatusBadGateway, "Upstream request failed")
		return
	}

	newListResponse(c, len(people), people)
}

// @Summary Schedule a person onto a plan
// @Tags services
// @Accept json
// @Produce json
// @Param id path string true "Service type ID"
// @Param plan_id path string true "Plan ID"
// @Param request body ScheduleRequest true "Schedule data"
// @Success 201 {object} successResponse "Person added to plan"
// @Router /api/services/service-types/{id}/plans/{plan_id}/team-members [post]
func (h *PlansHandler) AddPlanPerson(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	var req ScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "person_id, team_id and team_position_id are required")
		return
	}

	status := req.Status
	if status == "" {
		status = "C"
	}

	member, err := h.planService.AddPersonToPlan(c.Request.Context(),
		c.Param("id"), c.Param("plan_id"), req.PersonID, req.TeamID, req.TeamPositionID, status)
	if err != nil {
		newErrorResponse(c, http.StatusBadGateway, "Upstream request failed")
		return
	}

	newSuccessResponse(c, http.StatusCreated, "Person added to plan", member)
}

func (h *PlansHandler) UpdatePlanPersonStatus(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "status is required")
		return
	}

	member, err := h.planService.UpdatePlanPersonStatus(c.Request.Context(),
		c.Param("id"), c.Param("plan_id"), c.Param("member_id"), req.Status)
	if err != nil {
		newErrorResponse(c, http.StatusBadGateway, "Upstream request failed")
		return
	}
	if member == nil {
		newErrorResponse(c, http.StatusNotFound, "Team member not found")
		return
	}

	newSuccessResponse(c, http.StatusOK, "Person status updated", member)
}

func (h *PlansHandler) RemovePlanPerson(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	if err := h.planService.RemovePersonFromPlan(c.Request.Context(),
		c.Param("id"), c.Param("plan_id"), c.Param("member_id")); err != nil {
		newErrorResponse(c, http.StatusBadGateway, "Upstream request failed")
		return
	}

	newSuccessResponse(c, http.StatusOK, "Person removed from plan", nil)
}

// @Summary Find a plan by date
// @Tags services
// @Produce json
// @Param id path string true "Service type ID"
// @Param date query string true "Target date (YYYY-MM-DD)"
// @Success 200 {object} successResponse "Plan"
// @Failure 404 {object} errorResponse "No plan on that date"
// @Router /api/services/service-types/{id}/plans/find-by-date [get]
func (h *PlansHandler) FindPlanByDate(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	date := c.Query("date")
	if date == "" {
		newErrorResponse(c, http.StatusBadRequest, "date parameter is required")
		return
	}

	plan, err := h.planService.FindPlanByDate(c.Request.Context(), c.Param("id"), date)
	if err != nil {
		newErrorResponse(c, http.StatusBadGateway, "Upstream request failed")
		return
	}
	if plan == nil {
		newErrorResponse(c, http.StatusNotFound, "No plan found for date")
		return
	}

	newSuccessResponse(c, http.StatusOK, "", plan)
}

func parseLimit(raw string) int {
	if raw == "" {
		return 0
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		return 0
	}
	return limit
}
