package http

import (
	"net/http"

	_ "github.com/DRSN-tech/go-catalog/docs" // Импорт сгенерированных файлов
	"github.com/DRSN-tech/go-catalog/internal/usecase"
	"github.com/DRSN-tech/go-catalog/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

type Router struct {
	router *chi.Mux
	logger logger.Logger
}

func NewRouter(router *chi.Mux, logger logger.Logger) *Router {
	return &Router{router: router, logger: logger}
}

// Init регистрирует маршруты API. Если events равен nil, поток событий не регистрируется.
func (r *Router) Init(catalogUC usecase.CatalogUC, events http.HandlerFunc) {
	r.router.Use(middleware.RequestID, middleware.Recoverer)

	r.router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	r.router.Route("/api/v1", func(v1 chi.Router) {
		handler := NewCatalogHandler(catalogUC, r.logger)
		registerCatalogRoutes(v1, handler)

		if events != nil {
			v1.Get("/ws/events", events)
		}
	})
}

func registerCatalogRoutes(router chi.Router, h *CatalogHandler) {
	router.Route("/categories", func(cr chi.Router) {
		cr.Get("/", h.listCategories)
		cr.Route("/{name}", func(c chi.Router) {
			c.Get("/", h.getCategory)
			c.Get("/products", h.listProducts)
			c.Post("/products", h.addProduct)
			c.Patch("/products/{product}/price", h.setPrice)
		})
	})

	router.Post("/orders", h.placeOrder)
	router.Get("/stats", h.stats)
	router.Post("/catalog/reload", h.reload)
}
