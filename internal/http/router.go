package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"github.com/terminalhome/ims-backend/internal/http/handlers"
)

func NewRouter() http.Handler {
	r := chi.NewRouter()

	r.Group(func(r chi.Router) {
		r.Use(RateLimitMiddleware)
		r.Post("/login", handlers.LoginHandler)
		r.Post("/register", handlers.RegisterHandler)
	})

	r.Get("/inventory", handlers.GetInventoryHandler)
	r.Get("/inventory/{id}", handlers.GetInventoryLineHandler)
	r.Get("/movements", handlers.GetMovementsHandler)
	r.Get("/movements/export", handlers.ExportMovementsHandler)
	r.Get("/alerts", handlers.GetAlertsHandler)
	r.Get("/forecast", handlers.GetForecastHandler)
	r.Get("/metrics/dashboard", handlers.GetDashboardStatsHandler)

	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware)
		r.Post("/inventory", handlers.CreateInventoryHandler)
		r.Put("/inventory/{id}", handlers.UpdateInventoryHandler)
		r.Post("/movements", handlers.RecordMovementHandler)
		r.Put("/alerts/read", handlers.MarkAlertsReadHandler)
		r.Post("/reorder/check", handlers.CheckReorderHandler)
	})

	r.Get("/swagger/*", httpSwagger.Handler())

	return r
}
