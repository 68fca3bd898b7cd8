package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/flowchartsman/retry"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/sportmeet/api/config"
	"github.com/sportmeet/api/controller"
	"github.com/sportmeet/api/entity"
	"github.com/sportmeet/api/middleware"
	"github.com/sportmeet/api/repository"
	"github.com/sportmeet/api/service"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

func main() {
	cfg := config.Load()

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if cfg.IsDevelopment() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connect failed")
	}
	defer mongoClient.Disconnect(context.Background())

	// The database may come up after us; retry the first ping only. Request
	// handling never retries.
	retrier := retry.NewRetrier(5, 500*time.Millisecond, 5*time.Second)
	err = retrier.RunContext(ctx, func(ctx context.Context) error {
		return mongoClient.Ping(ctx, readpref.Primary())
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo ping failed")
	}

	userRepository := repository.NewUserRepository(mongoClient, cfg.DatabaseName)
	if err := userRepository.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("creating user indexes failed")
	}
	eventRepository := repository.NewEventRepository(mongoClient, cfg.DatabaseName)
	categoryRepository := repository.NewTaxonomyRepository[entity.Category](mongoClient, cfg.DatabaseName, "categories")
	cityRepository := repository.NewTaxonomyRepository[entity.City](mongoClient, cfg.DatabaseName, "cities")
	areaRepository := repository.NewTaxonomyRepository[entity.Area](mongoClient, cfg.DatabaseName, "areas")
	contactRepository := repository.NewContactRepository(mongoClient, cfg.DatabaseName)

	tokenService := service.NewTokenService(cfg.JWTSecret, cfg.JWTExpiry)
	authService := service.NewAuthService(userRepository, tokenService)
	userService := service.NewUserService(userRepository)
	eventService := service.NewEventService(eventRepository, userRepository, categoryRepository, cityRepository, areaRepository)
	adminService := service.NewAdminService(userRepository, eventRepository, contactRepository)
	contactService := service.NewContactService(contactRepository)
	categoryService := service.NewTaxonomyService[entity.Category](categoryRepository)
	cityService := service.NewTaxonomyService[entity.City](cityRepository)
	areaService := service.NewTaxonomyService[entity.Area](areaRepository)

	auth := middleware.NewAuth(tokenService, userRepository)

	authController := &controller.AuthController{AuthService: authService}
	userController := &controller.UserController{UserService: userService}
	eventController := &controller.EventController{EventService: eventService}
	adminController := &controller.AdminController{AdminService: adminService}
	contactController := &controller.ContactController{ContactService: contactService}
	taxonomyController := &controller.TaxonomyController{
		CategoryService: categoryService,
		CityService:     cityService,
		AreaService:     areaService,
	}

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestLogger, gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSOrigins
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	r.Use(cors.New(corsConfig))

	api := r.Group("/api")

	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK", "timestamp": time.Now().Format(time.RFC3339)})
	})

	authRoutes := api.Group("/auth")
	{
		authRoutes.POST("/register", authController.Register)
		authRoutes.POST("/login", authController.Login)
		authRoutes.GET("/me", auth.RequireAuthenticated, authController.Me)
	}

	eventRoutes := api.Group("/events")
	{
		eventRoutes.GET("/featured", eventController.Featured)
		eventRoutes.GET("/search", eventController.Search)
		eventRoutes.GET("/user", auth.RequireAuthenticated, eventController.Created)
		eventRoutes.GET("/joined", auth.RequireAuthenticated, eventController.Joined)
		eventRoutes.GET("", eventController.List)
		eventRoutes.GET("/:id", eventController.Get)
		eventRoutes.POST("", auth.RequireAuthenticated, eventController.Create)
		eventRoutes.PUT("/:id", auth.RequireAuthenticated, eventController.Update)
		eventRoutes.DELETE("/:id", auth.RequireAuthenticated, eventController.Delete)
		eventRoutes.POST("/:id/join", auth.RequireAuthenticated, eventController.Join)
		eventRoutes.POST("/:id/leave", auth.RequireAuthenticated, eventController.Leave)
	}

	userRoutes := api.Group("/users")
	{
		userRoutes.GET("/profile", auth.RequireAuthenticated, userController.GetProfile)
		userRoutes.PUT("/profile", auth.RequireAuthenticated, userController.UpdateProfile)
		userRoutes.GET("/:id", userController.GetUser)
	}

	categoryRoutes := api.Group("/categories")
	{
		categoryRoutes.GET("", taxonomyController.ListCategories)
		categoryRoutes.GET("/:id", taxonomyController.GetCategory)
		categoryRoutes.POST("", auth.RequireAuthenticated, auth.RequireAdmin, taxonomyController.CreateCategory)
		categoryRoutes.PUT("/:id", auth.RequireAuthenticated, auth.RequireAdmin, taxonomyController.UpdateCategory)
		categoryRoutes.DELETE("/:id", auth.RequireAuthenticated, auth.RequireAdmin, taxonomyController.DeleteCategory)
	}

	cityRoutes := api.Group("/cities")
	{
		cityRoutes.GET("", taxonomyController.ListCities)
		cityRoutes.GET("/:id", taxonomyController.GetCity)
		cityRoutes.POST("", auth.RequireAuthenticated, auth.RequireAdmin, taxonomyController.CreateCity)
		cityRoutes.PUT("/:id", auth.RequireAuthenticated, auth.RequireAdmin, taxonomyController.UpdateCity)
		cityRoutes.DELETE("/:id", auth.RequireAuthenticated, auth.RequireAdmin, taxonomyController.DeleteCity)
	}

	areaRoutes := api.Group("/areas")
	{
		areaRoutes.GET("", taxonomyController.ListAreas)
		areaRoutes.GET("/:id", taxonomyController.GetArea)
		areaRoutes.POST("", auth.RequireAuthenticated, auth.RequireAdmin, taxonomyController.CreateArea)
		areaRoutes.PUT("/:id", auth.RequireAuthenticated, auth.RequireAdmin, taxonomyController.UpdateArea)
		areaRoutes.DELETE("/:id", auth.RequireAuthenticated, auth.RequireAdmin, taxonomyController.DeleteArea)
	}

	contactRoutes := api.Group("/contacts")
	{
		contactRoutes.POST("", contactController.Create)
		contactRoutes.GET("", auth.RequireAuthenticated, auth.RequireAdmin, contactController.List)
	}

	adminRoutes := api.Group("/admin", auth.RequireAuthenticated, auth.RequireAdmin)
	{
		adminRoutes.GET("/users", adminController.ListUsers)
		adminRoutes.PUT("/users/:id/role", adminController.UpdateUserRole)
		adminRoutes.DELETE("/users/:id", adminController.DeleteUser)
		adminRoutes.GET("/events", adminController.ListEvents)
		adminRoutes.DELETE("/events/:id", adminController.DeleteEvent)
		adminRoutes.GET("/stats", adminController.Stats)
	}

	log.Info().Str("port", cfg.Port).Msg("starting server")
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
