package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/SvAkshayKumar/SmartCart-GenAI/api/controllers"
	"github.com/SvAkshayKumar/SmartCart-GenAI/api/middleware"
	"github.com/SvAkshayKumar/SmartCart-GenAI/internal/assist"
	cartsvc "github.com/SvAkshayKumar/SmartCart-GenAI/internal/cart"
	"github.com/SvAkshayKumar/SmartCart-GenAI/internal/catalog"
	checkoutsvc "github.com/SvAkshayKumar/SmartCart-GenAI/internal/checkout"
	"github.com/SvAkshayKumar/SmartCart-GenAI/internal/prefs"
	staffsvc "github.com/SvAkshayKumar/SmartCart-GenAI/internal/staff"
	"github.com/SvAkshayKumar/SmartCart-GenAI/pkg/config"
	"github.com/SvAkshayKumar/SmartCart-GenAI/pkg/db"
	"github.com/SvAkshayKumar/SmartCart-GenAI/pkg/logger"
	"github.com/SvAkshayKumar/SmartCart-GenAI/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	catalogStore *catalog.Store,
	carts *cartsvc.Manager,
	checkoutService *checkoutsvc.Service,
	assistService *assist.Service,
	prefsService *prefs.Service,
	staffService *staffsvc.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	// A typed nil *redis.Client must not reach the limiter interface.
	var limiter middleware.RateLimiter
	if redisClient != nil {
		limiter = redisClient
	}
	assistLimit := middleware.AssistRateLimit(limiter, cfg.Assist.RateLimitMax, cfg.Assist.RateLimitWindow, logg)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisClient))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Session(logg))

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ProductList(catalogStore, logg))
			r.Get("/{productID}", controllers.ProductDetail(catalogStore, logg))
			r.With(assistLimit).Post("/{productID}/describe", controllers.ProductDescribe(assistService, logg))
			r.With(assistLimit).Post("/{productID}/ask", controllers.ProductAsk(assistService, logg))
		})
		r.With(assistLimit).Get("/recommendations", controllers.Recommendations(assistService, logg))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartFetch(carts, logg))
			r.Delete("/", controllers.CartClear(carts, logg))
			r.Post("/items", controllers.CartAddItem(carts, catalogStore, logg))
			r.Put("/items/{productID}", controllers.CartUpdateItem(carts, logg))
			r.Delete("/items/{productID}", controllers.CartRemoveItem(carts, logg))
			r.Post("/coupon", controllers.CartApplyCoupon(carts, logg))
		})

		r.Post("/checkout", controllers.CheckoutSubmit(checkoutService, logg))
		r.Post("/contact", controllers.ContactSubmit(checkoutService, logg))
		r.Post("/newsletter", controllers.NewsletterSubscribe(checkoutService, logg))

		r.Get("/theme", controllers.ThemeFetch(prefsService, logg))
		r.Put("/theme", controllers.ThemeUpdate(prefsService, logg))

		r.Route("/staff", func(r chi.Router) {
			r.Post("/login", controllers.StaffLogin(staffService, logg))
			r.Group(func(r chi.Router) {
				r.Use(middleware.StaffAuth(cfg.JWT, logg))
				r.Get("/dashboard", controllers.StaffDashboard(staffService, logg))
				r.Get("/insights", controllers.StaffInsights(assistService, logg))
			})
		})
	})

	return r
}
