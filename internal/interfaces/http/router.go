package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/werb210/staff-portal-api/internal/application/auth"
	"github.com/werb210/staff-portal-api/internal/application/silo"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Registry  *silo.Registry
	AuthUC    *auth.AuthUseCase
	JWTSecret string
}

// Router registra las rutas de la API. Todo lo que vive bajo
// /api/silos/:silo pasa por AuthMiddleware y SiloMiddleware: primero el
// token, después la membresía del silo.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas por silo (requieren Bearer Token + membresía)
	silos := api.Group("/silos/:silo", AuthMiddleware(deps.JWTSecret), SiloMiddleware(deps.Registry))

	// Applications
	applications := silos.Group("/applications")
	applicationHandler := NewApplicationHandler()
	applications.Post("/", applicationHandler.Create)
	applications.Get("/", applicationHandler.List)
	applications.Get("/:id", applicationHandler.GetByID)
	applications.Delete("/:id", applicationHandler.Delete)
	applications.Post("/:id/submit", applicationHandler.Submit)
	applications.Post("/:id/review", applicationHandler.Review)
	applications.Post("/:id/approve", applicationHandler.Approve)
	applications.Post("/:id/complete", applicationHandler.Complete)
	applications.Put("/:id/assign", applicationHandler.Assign)
	applications.Get("/:id/summary.pdf", applicationHandler.SummaryPDF)

	// Documents (anidados en la solicitud para alta/listado)
	documentHandler := NewDocumentHandler()
	applications.Post("/:id/documents", documentHandler.Upload)
	applications.Get("/:id/documents", documentHandler.List)
	documents := silos.Group("/documents")
	documents.Get("/:docID/content", documentHandler.Download)
	documents.Post("/:docID/review", documentHandler.Review)
	documents.Delete("/:docID", documentHandler.Delete)

	// Pipeline
	pipelineGroup := silos.Group("/pipeline")
	pipelineHandler := NewPipelineHandler()
	pipelineGroup.Get("/board", pipelineHandler.Board)
	pipelineGroup.Get("/stages/:stage", pipelineHandler.ListByStage)
	pipelineGroup.Get("/applications/:id/stage", pipelineHandler.GetStage)
	pipelineGroup.Post("/applications/:id/move", pipelineHandler.Move)
	pipelineGroup.Put("/applications/:id/assign", pipelineHandler.Assign)
	pipelineGroup.Get("/applications/:id/history", pipelineHandler.History)

	// Lender products (mutaciones solo para admin)
	products := silos.Group("/products")
	productHandler := NewLenderProductHandler()
	adminOnly := RequireRole("admin")
	products.Post("/", adminOnly, productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", adminOnly, productHandler.Update)
}
