package bootstrap

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/weddingmoments/studio-backend/config"
	"github.com/weddingmoments/studio-backend/internal/analytics"
	httpapi "github.com/weddingmoments/studio-backend/internal/api/http"
	reqid "github.com/weddingmoments/studio-backend/internal/api/http/middleware"
	"github.com/weddingmoments/studio-backend/internal/auth"
	authhttp "github.com/weddingmoments/studio-backend/internal/auth/http"
	"github.com/weddingmoments/studio-backend/internal/auth/middleware"
	bookingshttp "github.com/weddingmoments/studio-backend/internal/bookings/http"
	bookingssvc "github.com/weddingmoments/studio-backend/internal/bookings/service"
	catalogdomain "github.com/weddingmoments/studio-backend/internal/catalog/domain"
	cataloghttp "github.com/weddingmoments/studio-backend/internal/catalog/http"
	catalogsvc "github.com/weddingmoments/studio-backend/internal/catalog/service"
	"github.com/weddingmoments/studio-backend/internal/checkout"
	checkouthttp "github.com/weddingmoments/studio-backend/internal/checkout/http"
	offershttp "github.com/weddingmoments/studio-backend/internal/offers/http"
	offerssvc "github.com/weddingmoments/studio-backend/internal/offers/service"
	usershttp "github.com/weddingmoments/studio-backend/internal/users/http"
	userssvc "github.com/weddingmoments/studio-backend/internal/users/service"
)

type RouterDeps struct {
	ServiceName string
	Version     string
	CORSOrigins []string
	Studio      config.StudioConfig

	// Optional; bookings routes and the DB health check are skipped when nil.
	DB       *DB
	Bookings *bookingssvc.BookingService

	Gate      *auth.Gate
	SignIn    authhttp.PasswordSigner
	Catalog   *catalogsvc.Store
	Offers    *offerssvc.Store
	Users     *userssvc.Directory
	Checkout  *checkout.Service
	RateLimit *checkout.ClientLimiter
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.Default()
	r.Use(reqid.RequestIDMiddleware())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     dep.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", reqid.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", reqid.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	var pinger httpapi.Pinger
	if dep.DB != nil {
		pinger = dep.DB.Pool
	}
	httpapi.NewHealthHandler(dep.ServiceName, dep.Version, pinger).
		WithStore("services", dep.Catalog.Feed().Status).
		WithStore("offers", dep.Offers.Feed().Status).
		WithStore("users", dep.Users.Feed().Status).
		RegisterRoutes(r)

	authhttp.New(dep.Gate, dep.SignIn, dep.Users).Register(r.Group("/auth"))

	catalogHandler := cataloghttp.New(dep.Catalog)
	offersHandler := offershttp.New(dep.Offers)

	api := r.Group("/api/v1")
	catalogHandler.RegisterPublic(api)
	offersHandler.RegisterPublic(api)
	checkouthttp.New(dep.Checkout, dep.RateLimit, dep.Studio).RegisterPublic(api)

	admin := api.Group("/admin")
	admin.Use(middleware.RequireAuth(dep.Gate))

	catalogHandler.RegisterAdmin(admin.Group("", middleware.RequirePermission(auth.PermManageCatalog)))
	offersHandler.RegisterAdmin(admin.Group("", middleware.RequirePermission(auth.PermManageOffers)))
	analytics.NewHandler(analytics.CatalogFunc(func() []catalogdomain.Service {
		return dep.Catalog.List(catalogsvc.ViewAdmin)
	})).Register(admin.Group("", middleware.RequirePermission(auth.PermViewDashboard)))
	usershttp.New(dep.Users).RegisterAdmin(admin)

	if dep.Bookings != nil {
		bookingshttp.New(dep.Bookings).RegisterAdmin(admin.Group("", middleware.RequirePermission(auth.PermManageBookings)))
	}

	return r
}
