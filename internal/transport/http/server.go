package http

import (
	"time"

	"github.com/gin-gonic/gin"

	appsvc "notekeeper/internal/app"
	"notekeeper/internal/bootstrap"
	"notekeeper/internal/cache"
	"notekeeper/internal/platform/rabbitmq"
	"notekeeper/internal/repository"
	"notekeeper/internal/transport/http/handler"
	"notekeeper/internal/transport/http/middleware"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	healthHandler := handler.NewHealthHandler(app)
	router.GET("/healthz", healthHandler.Check)

	userRepo := repository.NewUserRepository(app.MySQL)
	noteRepo := repository.NewNoteRepository(app.MySQL)
	noteCache := cache.NewNoteCache(
		app.Redis,
		time.Duration(app.Config.Redis.NotesTTLSeconds)*time.Second,
		time.Duration(app.Config.Redis.NotesDirtyTTLSeconds)*time.Second,
	)
	activityPublisher := rabbitmq.NewActivityPublisher(app.MQConn, app.Config.RabbitMQ.ActivityQueue)

	authService := appsvc.NewAuthService(
		userRepo,
		app.Config.Auth.JWTSecret,
		time.Duration(app.Config.Auth.JWTExpireMinute)*time.Minute,
	)
	noteService := appsvc.NewNoteService(noteRepo, activityPublisher, noteCache)

	authHandler := handler.NewAuthHandler(authService)
	noteHandler := handler.NewNoteHandler(noteService)
	userHandler := handler.NewUserHandler(authService)

	v1 := router.Group("/api/v1")

	authGroup := v1.Group("/auth")
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)
	authGroup.GET("/me", middleware.AuthJWT(app.Config.Auth.JWTSecret), authHandler.Me)

	// No auth gate on the user listing; kept open on purpose.
	v1.GET("/users", userHandler.List)

	noteGroup := v1.Group("/notes")
	noteGroup.Use(middleware.AuthJWT(app.Config.Auth.JWTSecret))
	noteGroup.GET("", noteHandler.List)
	noteGroup.POST("", noteHandler.Create)
	noteGroup.DELETE("/:id", noteHandler.Delete)

	return router
}
