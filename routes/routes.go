package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"salonmarket-backend/cache"
	"salonmarket-backend/config"
	"salonmarket-backend/controllers"
	"salonmarket-backend/models"
	"salonmarket-backend/policy"
	"salonmarket-backend/services"
	"salonmarket-backend/utils"
)

// Store is everything the HTTP layer reads and writes. *repository.Repository implements it.
type Store interface {
	controllers.UserStore
	controllers.CatalogStore
	controllers.BookingStore
	controllers.CartStore
	controllers.DashboardStore
	controllers.ResourceStore
}

type Deps struct {
	Config         *config.Config
	Logger         *zap.Logger
	Store          Store
	Tokens         *utils.TokenService
	Slots          *services.SlotCalculator
	SlotCache      *cache.SlotCache
	Notifier       controllers.BookingNotifier
	BookingLimiter *utils.RateLimiter
	Now            func() time.Time
}

var (
	ownerOrAdmin = policy.AnyOf(policy.IsResourceOwner{}, policy.Role(models.RoleAdmin))
	selfOrAdmin  = policy.AnyOf(policy.IsSelf{}, policy.Role(models.RoleAdmin))
	providers    = policy.Role(models.RoleProvider, models.RoleAdmin)
)

func SetupRouter(d Deps) *gin.Engine {
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.Slots == nil {
		d.Slots = services.NewSlotCalculator(services.DefaultSlotStep)
	}

	r := gin.New()
	r.Use(gin.Recovery())

	origins := d.Config.AllowedOrigins()
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger(d.Logger))

	authController := controllers.NewAuthController(d.Store, d.Tokens, d.Logger, d.Now)
	profileController := controllers.NewProfileController(d.Store, d.Logger)
	catalogController := controllers.NewCatalogController(d.Store, d.SlotCache, d.Logger, d.Now)
	availabilityController := controllers.NewAvailabilityController(d.Store, d.Slots, d.SlotCache, d.Logger)
	bookingController := controllers.NewBookingController(d.Store, d.SlotCache, d.Notifier, d.Logger, d.Now)
	cartController := controllers.NewCartController(d.Store, d.Logger, d.Now)
	dashboardController := controllers.NewDashboardController(d.Store, d.Logger, d.Now)

	salonOwner := policy.Require(ownerOrAdmin, controllers.SalonResource(d.Store, "id"))
	serviceOwner := policy.Require(ownerOrAdmin, controllers.ServiceResource(d.Store, "id"))
	promotionOwner := policy.Require(ownerOrAdmin, controllers.PromotionResource(d.Store, "id"))

	auth := r.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.GET("/me", utils.AuthMiddleware(d.Tokens), authController.Me)
	}

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware(d.Tokens))
	{
		users := api.Group("/users")
		{
			self := policy.Require(selfOrAdmin, controllers.UserResource("id"))
			users.GET("/:id", self, profileController.GetProfile)
			users.PUT("/:id", self, profileController.UpdateProfile)
		}

		// Salon routes
		salons := api.Group("/salons")
		{
			salons.POST("", policy.Require(providers, nil), catalogController.CreateSalon)
			salons.GET("/:id", catalogController.GetSalon)
			salons.GET("/:id/hours", catalogController.GetHours)
			salons.PUT("/:id/hours", salonOwner, catalogController.ReplaceHours)
			salons.GET("/:id/services", catalogController.ListServices)
			salons.POST("/:id/services", salonOwner, catalogController.CreateService)
			salons.GET("/:id/availability", availabilityController.GetAvailability)
			salons.GET("/:id/dashboard", salonOwner, dashboardController.GetDashboardOverview)
		}

		// Service routes
		catalog := api.Group("/services")
		{
			catalog.GET("/:id", catalogController.GetService)
			catalog.PUT("/:id", serviceOwner, catalogController.UpdateService)
			catalog.DELETE("/:id", serviceOwner, catalogController.DeleteService)
			catalog.GET("/:id/price", catalogController.GetPrice)
			catalog.GET("/:id/promotions", catalogController.ListPromotions)
			catalog.POST("/:id/promotions", serviceOwner, catalogController.CreatePromotion)
		}

		api.DELETE("/promotions/:id", promotionOwner, catalogController.DeletePromotion)

		bookings := api.Group("/bookings")
		{
			create := []gin.HandlerFunc{bookingController.CreateBooking}
			if d.BookingLimiter != nil {
				create = append([]gin.HandlerFunc{d.BookingLimiter.Middleware()}, create...)
			}
			bookings.POST("", create...)
			bookings.GET("", bookingController.ListBookings)
			bookings.POST("/:id/cancel", bookingController.CancelBooking)
		}

		cart := api.Group("/cart")
		{
			cart.GET("", cartController.GetCart)
			cart.POST("", cartController.AddToCart)
			cart.PUT("/:id", cartController.UpdateCartItem)
			cart.DELETE("/:id", cartController.RemoveCartItem)
		}

		favorites := api.Group("/favorites")
		{
			favorites.GET("", cartController.ListFavorites)
			favorites.POST("", cartController.AddFavorite)
			favorites.DELETE("/:id", cartController.RemoveFavorite)
		}
	}

	return r
}
