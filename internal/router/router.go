package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"workboard/internal/auth"
	"workboard/internal/config"
	"workboard/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	tokenStore auth.TokenStoreInterface,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	workmanHandler *handler.WorkmanHandler,
	stageHandler *handler.StageHandler,
	orderHandler *handler.OrderHandler,
	noteHandler *handler.NoteHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/login", authHandler.Login)

	// Secured routes (require a valid, unrevoked credential)
	secured := api.Group("",
		echojwt.WithConfig(echojwt.Config{
			SigningKey: []byte(cfg.JWTSecret),
			NewClaimsFunc: func(c echo.Context) jwt.Claims {
				return new(auth.Claims)
			},
		}),
		auth.CheckRevoked(tokenStore),
	)

	secured.POST("/auth/logout", authHandler.Logout)

	secured.GET("/workmen", workmanHandler.ListWorkmen)
	secured.GET("/stages", stageHandler.ListStages)
	secured.PUT("/stages/:id/reprioritize", stageHandler.Reprioritize)

	secured.GET("/orders", orderHandler.ListOrders)
	secured.GET("/orders/:id", orderHandler.GetOrder)
	secured.PUT("/orders/:id/move", orderHandler.MoveOrder)

	secured.GET("/orders/:id/notes", noteHandler.ListNotes)
	secured.POST("/orders/:id/notes", noteHandler.CreateNote)
	secured.DELETE("/notes/:id", noteHandler.DeleteNote)

	// Admin-only routes
	admin := secured.Group("", auth.RequireAdmin)

	admin.POST("/auth/register", authHandler.Register)

	admin.GET("/users", userHandler.ListUsers)
	admin.GET("/users/:id", userHandler.GetUser)
	admin.PUT("/users/:id", userHandler.UpdateUser)
	admin.DELETE("/users/:id", userHandler.DeleteUser)

	admin.POST("/workmen", workmanHandler.CreateWorkman)
	admin.PUT("/workmen/:id", workmanHandler.UpdateWorkman)
	admin.DELETE("/workmen/:id", workmanHandler.DeleteWorkman)

	admin.POST("/stages", stageHandler.CreateStage)
	admin.PUT("/stages/reorder", stageHandler.ReorderStages)
	admin.PUT("/stages/:id", stageHandler.UpdateStage)
	admin.DELETE("/stages/:id", stageHandler.DeleteStage)

	admin.POST("/orders", orderHandler.CreateOrder)
	admin.PUT("/orders/:id", orderHandler.UpdateOrder)
	admin.DELETE("/orders/:id", orderHandler.DeleteOrder)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
