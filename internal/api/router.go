package api

import (
	"estate-hub/docs"
	"estate-hub/internal/api/handlers"
	"estate-hub/pkg/auth"
	"estate-hub/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

type Handlers struct {
	Auth           *handlers.AuthHandler
	Property       *handlers.PropertyHandler
	Favorite       *handlers.FavoriteHandler
	Recommendation *handlers.RecommendationHandler
	Admin          *handlers.AdminHandler
}

func SetupRouter(
	h Handlers,
	jwtManager *auth.JWTManager,
	uploadDir string,
	appLogger *zap.Logger,
) *fiber.App {
	app := fiber.New(fiber.Config{
		BodyLimit: 64 * 1024 * 1024,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))
	app.Use(logger.New())

	// Swagger - importing the docs package registers the documentation via init()
	_ = docs.SwaggerInfo
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Uploaded property images
	app.Static("/uploads", uploadDir)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	// Public routes
	api.Post("/request-otp", h.Auth.RequestOTP)
	api.Post("/signup", h.Auth.Signup)
	api.Post("/login", h.Auth.Login)
	api.Post("/forgot-password", h.Auth.ForgotPassword)
	api.Post("/reset-password", h.Auth.ResetPassword)
	api.Get("/properties", h.Property.List)
	api.Get("/properties/:id", h.Property.Get)

	// Protected routes
	authRequired := middleware.AuthRequired(jwtManager, appLogger)

	api.Get("/me", authRequired, h.Auth.Me)
	api.Put("/me", authRequired, h.Auth.UpdateMe)
	api.Put("/change-password", authRequired, h.Auth.ChangePassword)

	api.Post("/properties", authRequired, h.Property.Create)
	api.Put("/properties/:id", authRequired, h.Property.Update)
	api.Delete("/properties/:id", authRequired, h.Property.Delete)
	api.Post("/properties/:id/comments", authRequired, h.Property.AddComment)
	api.Delete("/properties/:id/comments/:commentId", authRequired, h.Property.DeleteComment)

	api.Get("/favorites", authRequired, h.Favorite.List)
	api.Put("/favorites", authRequired, h.Favorite.Toggle)

	api.Get("/recommendations", authRequired, h.Recommendation.Recommendations)

	// Admin routes
	admin := api.Group("/admin", authRequired, middleware.AdminRequired())
	admin.Get("/stats", h.Admin.Stats)
	admin.Get("/users", h.Admin.ListUsers)
	admin.Delete("/users/:id", h.Admin.DeleteUser)

	api.Post("/email/test-email", authRequired, middleware.AdminRequired(), h.Admin.TestEmail)

	return app
}
