package api

import (
	"log"
	stdhttp "net/http"

	intconfig "smartparking/internal/config"
	h "smartparking/internal/http/handlers"
	"smartparking/internal/http/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// Options carries the optional infrastructure the router wires in.
type Options struct {
	RateLimit intconfig.RateLimitConfig
	Redis     *redis.Client
}

func NewRouter(env intconfig.Env, hs *h.Handlers, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS(env.CORSAllowedOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"code":   "not_found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	limit := middleware.RateLimit(opts.RateLimit, opts.Redis)

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)
		api.GET("/routes", h.Routes)

		// Catalog
		api.GET("/locations", hs.ListLocations)
		api.GET("/locations/:location/zones", hs.ListZones)
		api.GET("/locations/:location/zones/:zone/timings", hs.ListTimings)

		// Availability
		api.GET("/seats", hs.GetSeats)
		api.GET("/availability", hs.GetAvailability)

		// Bookings
		api.POST("/book", limit, hs.CreateBooking)
		api.POST("/cancel", limit, hs.CancelBooking)
		api.GET("/bookings/:customer_id", hs.GetBooking)
		api.GET("/bookings/:customer_id/receipt", hs.GetReceiptPDF)

		// Live seat map
		api.GET("/ws/seats", hs.SeatEvents)
	}

	h.SetRouter(r)
	return r
}
