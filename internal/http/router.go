package api

import (
	"log"
	stdhttp "net/http"

	intconfig "transitlog/internal/config"
	h "transitlog/internal/http/handlers"
	"transitlog/internal/http/middleware"
	"transitlog/internal/repositories"
	"transitlog/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Deps are the long-lived components shared by every request.
type Deps struct {
	Transit *services.TransitService
	// Archive is nil when the MySQL archive is disabled.
	Archive *repositories.TripArchiveRepository
}

func NewRouter(env intconfig.Env, deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS(env.CORSAllowedOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	system := &h.SystemHandler{Archive: deps.Archive, Engine: r}
	transit := h.TransitHandler{Transit: deps.Transit, PageSize: env.PageSize}
	reports := h.ReportHandler{Reports: services.ReportService{Transit: deps.Transit}}

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		api.GET("/health", system.Health)
		api.GET("/db-check", system.DBCheck)
		api.GET("/routes", system.Routes)

		// Forms
		api.POST("/check-ins", transit.CheckIn)
		api.POST("/check-outs", transit.CheckOut)
		api.GET("/passengers/:name/pending", transit.PendingTrip)

		// Tables
		api.GET("/travel-log", transit.TravelLog)
		api.GET("/average-times", transit.AverageTimes)
		api.GET("/trips", transit.CompletedTrips)
		api.GET("/stations", transit.Stations)

		// Reports
		api.GET("/reports/summary.pdf", reports.Summary)
	}

	return r
}
