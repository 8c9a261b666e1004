package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"review-system-api/config"
	"review-system-api/internal/handlers"
	mw "review-system-api/internal/middleware"
	"review-system-api/internal/storage"
)

type Validator struct {
	validate *validator.Validate
}

func (v *Validator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

// New builds the echo application with every route registered.
func New(cfg *config.Config, store *storage.FileStore) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = &Validator{validate: validator.New()}

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{cfg.FrontendURL},
		AllowMethods: []string{echo.GET, echo.POST, echo.PUT, echo.DELETE},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	authHandler := handlers.NewAuthHandler(cfg)
	roleHandler := handlers.NewRoleHandler()
	userHandler := handlers.NewUserHandler()
	teamHandler := handlers.NewTeamHandler()
	assignmentHandler := handlers.NewAssignmentHandler()
	subtaskHandler := handlers.NewSubtaskHandler()
	submissionHandler := handlers.NewSubmissionHandler()
	reviewHandler := handlers.NewReviewHandler()
	commentHandler := handlers.NewReviewCommentHandler()
	attachmentHandler := handlers.NewAttachmentHandler(store)

	e.POST("/signup", authHandler.SignUp)
	e.POST("/login", authHandler.Login)
	e.GET("/login/channeli", authHandler.ChanneliLogin)
	e.GET("/home", authHandler.Home)

	api := e.Group("/api")
	api.Use(mw.AuthMiddleware(cfg.JWTSecret))

	api.GET("/auth/me", authHandler.Me)

	api.GET("/roles", roleHandler.List)
	api.POST("/roles", roleHandler.Create)
	api.GET("/roles/:id", roleHandler.Get)
	api.PUT("/roles/:id", roleHandler.Update)
	api.DELETE("/roles/:id", roleHandler.Delete)

	api.GET("/users", userHandler.List)
	api.POST("/users", userHandler.Create)
	api.GET("/users/:id", userHandler.Get)
	api.PUT("/users/:id", userHandler.Update)
	api.DELETE("/users/:id", userHandler.Delete)

	api.GET("/teams", teamHandler.List)
	api.POST("/teams", teamHandler.Create)
	api.GET("/teams/:id", teamHandler.Get)
	api.PUT("/teams/:id", teamHandler.Update)
	api.DELETE("/teams/:id", teamHandler.Delete)

	api.GET("/assignments", assignmentHandler.List)
	api.POST("/assignments", assignmentHandler.Create)
	api.GET("/assignments/:id", assignmentHandler.Get)
	api.PUT("/assignments/:id", assignmentHandler.Update)
	api.DELETE("/assignments/:id", assignmentHandler.Delete)

	api.GET("/subtasks", subtaskHandler.List)
	api.POST("/subtasks", subtaskHandler.Create)
	api.GET("/subtasks/:id", subtaskHandler.Get)
	api.PUT("/subtasks/:id", subtaskHandler.Update)
	api.DELETE("/subtasks/:id", subtaskHandler.Delete)

	api.GET("/submissions", submissionHandler.List)
	api.POST("/submissions", submissionHandler.Create)
	api.GET("/submissions/:id", submissionHandler.Get)
	api.PUT("/submissions/:id", submissionHandler.Update)
	api.DELETE("/submissions/:id", submissionHandler.Delete)

	api.GET("/reviews", reviewHandler.List)
	api.POST("/reviews", reviewHandler.Create)
	api.GET("/reviews/:id", reviewHandler.Get)
	api.PUT("/reviews/:id", reviewHandler.Update)
	api.DELETE("/reviews/:id", reviewHandler.Delete)

	api.GET("/comments", commentHandler.List)
	api.POST("/comments", commentHandler.Create)
	api.GET("/comments/:id", commentHandler.Get)
	api.PUT("/comments/:id", commentHandler.Update)
	api.DELETE("/comments/:id", commentHandler.Delete)

	api.GET("/attachments", attachmentHandler.List)
	api.POST("/attachments", attachmentHandler.Create)
	api.GET("/attachments/:id", attachmentHandler.Get)
	api.GET("/attachments/:id/file", attachmentHandler.Download)
	api.PUT("/attachments/:id", attachmentHandler.Update)
	api.DELETE("/attachments/:id", attachmentHandler.Delete)

	return e
}
