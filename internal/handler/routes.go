package handler

import (
	"github.com/gofiber/fiber/v2"

	"blood-connect/internal/middleware"
	"blood-connect/internal/service/auth"
)

// SetupRoutes mounts every API route. The catch-all 404 must stay last.
func SetupRoutes(app *fiber.App, h *Handlers, authService auth.Service) {
	optional := middleware.OptionalAuth(authService)
	required := middleware.AuthRequired(authService)
	admin := middleware.RequireAdmin()

	app.Get("/", h.System.Root)

	api := app.Group("/api")
	api.Get("/health", h.System.Health)

	authGroup := api.Group("/auth")
	authGroup.Post("/register", h.Auth.Register)
	authGroup.Post("/login", h.Auth.Login)
	authGroup.Post("/google", h.Auth.GoogleAuth)
	authGroup.Post("/refresh", h.Auth.RefreshToken)
	authGroup.Post("/logout", h.Auth.Logout)
	authGroup.Get("/me", required, h.Auth.Me)
	authGroup.Put("/profile", required, h.Auth.UpdateProfile)

	requests := api.Group("/blood-requests")
	requests.Post("/", optional, h.BloodRequest.Create)
	requests.Get("/", h.BloodRequest.List)
	requests.Get("/:id/match", h.BloodRequest.Match)
	requests.Patch("/:id/accept", h.BloodRequest.Accept)
	requests.Get("/:id", h.BloodRequest.GetByID)
	requests.Put("/:id", required, h.BloodRequest.Update)
	requests.Patch("/:id", optional, h.BloodRequest.SetStatus)
	requests.Delete("/:id", required, h.BloodRequest.Delete)

	donors := api.Group("/donors")
	donors.Post("/", optional, h.Donor.Register)
	donors.Get("/", h.Donor.List)
	donors.Get("/export", required, admin, h.Donor.Export)
	donors.Get("/me", required, h.Donor.GetMine)
	donors.Put("/me", required, h.Donor.UpdateMine)
	donors.Get("/:id", h.Donor.GetByID)
	donors.Put("/:id", required, admin, h.Donor.Update)
	donors.Patch("/:id/block", required, admin, h.Donor.Block)
	donors.Patch("/:id/unblock", required, admin, h.Donor.Unblock)

	alerts := api.Group("/alerts")
	alerts.Get("/", h.Alert.List)
	alerts.Get("/unread-count", h.Alert.UnreadCount)
	alerts.Patch("/read-all", h.Alert.MarkAllAsRead)
	alerts.Patch("/:id/read", h.Alert.MarkAsRead)

	stories := api.Group("/success-stories")
	stories.Get("/", h.Story.List)
	stories.Post("/", optional, h.Story.Create)
	stories.Get("/:id", h.Story.GetByID)
	stories.Put("/:id", required, h.Story.Update)
	stories.Delete("/:id", required, h.Story.Delete)
	stories.Post("/:id/react", required, h.Story.React)
	stories.Post("/:id/comments", required, h.Story.AddComment)
	stories.Put("/:id/comments/:commentId", required, h.Story.UpdateComment)
	stories.Delete("/:id/comments/:commentId", required, h.Story.DeleteComment)
	stories.Post("/:id/comments/:commentId/like", required, h.Story.LikeComment)
	stories.Post("/:id/comments/:commentId/replies", required, h.Story.AddReply)
	stories.Post("/:id/comments/:commentId/replies/:replyId/like", required, h.Story.LikeReply)

	patients := api.Group("/patients")
	patients.Post("/", h.Patient.Register)
	patients.Get("/", h.Patient.List)
	patients.Get("/:id", h.Patient.GetByID)

	audit := api.Group("/audit", required, admin)
	audit.Get("/recent", h.Audit.GetRecentActivities)
	audit.Get("/", h.Audit.List)
	audit.Get("/:entityType/:entityId", h.Audit.ListByEntity)

	api.Get("/dashboard/stats", required, admin, h.Dashboard.GetStats)

	app.Use(h.System.NotFound)
}
