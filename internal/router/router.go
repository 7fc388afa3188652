package router

import (
	"net/http"

	"github.com/senyabanana/tender-lifecycle/internal/handlers"
	"github.com/senyabanana/tender-lifecycle/internal/logger"

	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

// InitRoutes регистрирует маршруты и оборачивает их логированием запросов и CORS.
func InitRoutes(tenderHandler *handlers.TenderHandler, ping http.HandlerFunc, log zerolog.Logger, allowedOrigins []string) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/ping", ping)
	mux.HandleFunc("POST /api/tenders/new", tenderHandler.CreateTender)
	mux.HandleFunc("GET /api/tenders/{tenderId}/status", tenderHandler.GetTenderStatus)
	mux.HandleFunc("PUT /api/tenders/{tenderId}/status", tenderHandler.UpdateTenderStatus)
	mux.HandleFunc("PATCH /api/tenders/{tenderId}/edit", tenderHandler.EditTender)

	corsMiddleware := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch},
		AllowedHeaders: []string{"Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"X-Request-Id"},
	})

	return logger.Middleware(log)(corsMiddleware.Handler(mux))
}
