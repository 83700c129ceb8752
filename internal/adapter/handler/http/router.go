package http

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/lloydngcobo/PCO/internal/config"
	"github.com/lloydngcobo/PCO/internal/core/ports"
)

type Router struct {
	*gin.Engine
}

func NewRouter(
	config *config.HTTP,
	tokenService ports.TokenService,
	peopleHandler *PeopleHandler,
	plansHandler *PlansHandler,
	cacheHandler *CacheAdminHandler,
	authHandler *AuthHandler,
) (*Router, error) {
	if config.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	// CORS
	ginConfig := cors.DefaultConfig()
	allowedOrigins := config.AllowedOrigins
	originsList := strings.Split(allowedOrigins, ",")
	ginConfig.AllowOrigins = originsList

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery(), cors.New(ginConfig), RequestIDMiddleware())

	// Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"backend": cacheHandler.backendType,
		})
	})

	router.POST("/auth/token", authHandler.IssueToken)

	people := router.Group("/api/people")
	{
		people.GET("/search", peopleHandler.Search)
		people.POST("", peopleHandler.Create)
		people.GET("/:id", peopleHandler.Get)
		people.PATCH("/:id", peopleHandler.Update)
		people.DELETE("/:id", peopleHandler.Delete)
		people.GET("/:id/emails", peopleHandler.ListEmails)
		people.POST("/:id/emails", peopleHandler.AddEmail)
		people.PATCH("/:id/emails/:email_id", peopleHandler.UpdateEmail)
		people.DELETE("/:id/emails/:email_id", peopleHandler.DeleteEmail)
	}

	serviceTypes := router.Group("/api/services/service-types")
	{
		serviceTypes.GET("", plansHandler.ListServiceTypes)
		serviceTypes.GET("/:id", plansHandler.GetServiceType)
		serviceTypes.GET("/:id/plans", plansHandler.ListPlans)
		serviceTypes.GET("/:id/plans/upcoming", plansHandler.ListUpcomingPlans)
		serviceTypes.GET("/:id/plans/past", plansHandler.ListPastPlans)
		serviceTypes.GET("/:id/plans/find-by-date", plansHandler.FindPlanByDate)
		serviceTypes.GET("/:id/plans/:plan_id", plansHandler.GetPlan)
		serviceTypes.POST("/:id/plans", plansHandler.CreatePlan)
		serviceTypes.PATCH("/:id/plans/:plan_id", plansHandler.UpdatePlan)
		serviceTypes.DELETE("/:id/plans/:plan_id", plansHandler.DeletePlan)
		serviceTypes.GET("/:id/plans/:plan_id/team-members", plansHandler.ListPlanPeople)
		serviceTypes.POST("/:id/plans/:plan_id/team-members", plansHandler.AddPlanPerson)
		serviceTypes.PATCH("/:id/plans/:plan_id/team-members/:member_id", plansHandler.UpdatePlanPersonStatus)
		serviceTypes.DELETE("/:id/plans/:plan_id/team-members/:member_id", plansHandler.RemovePlanPerson)
		serviceTypes.GET("/:id/teams", plansHandler.ListTeams)
		serviceTypes.GET("/:id/teams/:team_id", plansHandler.GetTeam)
		serviceTypes.GET("/:id/teams/:team_id/positions", plansHandler.ListTeamPositions)
	}

	admin := router.Group("/admin/cache")
	admin.Use(AuthMiddleware(tokenService))
	{
		admin.GET("", cacheHandler.Status)
		admin.POST("/clear", cacheHandler.Clear)
		admin.POST("/enable", cacheHandler.Enable)
		admin.POST("/disable", cacheHandler.Disable)
	}

	return &Router{
		Engine: router,
	}, nil
}

// Starts the HTTP server
func (r *Router) Serve(listenAddr string) error {
	return r.Run(listenAddr)
}
