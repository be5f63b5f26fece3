package server

import (
	"time"

	"github.com/candies-app/candies/handlers"
	"github.com/candies-app/candies/internal/candy/handler"
	"github.com/candies-app/candies/internal/candy/service"
	"github.com/candies-app/candies/internal/config"
	"github.com/candies-app/candies/internal/views"
	"github.com/candies-app/candies/pkg/middleware"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

// Deps are the collaborators the router is assembled from. Service is
// required; everything else is optional.
type Deps struct {
	Service   *service.Service
	Verifier  middleware.Verifier
	Redis     *redis.Client
	RateLimit config.RateLimitConfig
	Ready     handlers.ReadinessFunc
	Gatherer  prometheus.Gatherer
	Started   time.Time
}

// NewRouter builds the gin engine. Middleware order: request logging,
// recovery, CORS, rate limiting, templates, static files, routes.
func NewRouter(d Deps) (*gin.Engine, error) {
	r := gin.New()
	r.Use(middleware.RequestLogger(), gin.Recovery())
	r.Use(cors)

	if d.RateLimit.Enabled {
		if d.RateLimit.UseRedis && d.Redis != nil {
			win := time.Duration(d.RateLimit.WindowSeconds) * time.Second
			r.Use(middleware.RedisRateLimitMiddleware(d.Redis, d.RateLimit.RPS, d.RateLimit.Burst, win))
		} else {
			r.Use(middleware.RateLimitMiddleware(d.RateLimit.RPS, d.RateLimit.Burst))
		}
	}

	if err := views.Register(r); err != nil {
		return nil, err
	}
	r.NoRoute(views.StaticHandler())

	ready := d.Ready
	if ready == nil {
		ready = func() map[string]bool { return map[string]bool{"store": d.Service != nil} }
	}
	started := d.Started
	if started.IsZero() {
		started = time.Now()
	}
	handlers.RegisterSystemRoutes(r, started, ready)
	handlers.RegisterSwagger(r)

	gatherer := d.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	var guard []gin.HandlerFunc
	if d.Verifier != nil {
		guard = append(guard, middleware.AuthMiddleware(d.Verifier))
	}
	handler.RegisterCandyRoutes(r, d.Service, guard...)
	return r, nil
}

// cors sets permissive CORS headers and answers preflight requests.
func cors(c *gin.Context) {
	h := c.Writer.Header()
	h.Set("Access-Control-Allow-Origin", "*")
	h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
	h.Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
	h.Set("Access-Control-Expose-Headers", "Content-Length")
	if c.Request.Method == "OPTIONS" {
		c.AbortWithStatus(200)
		return
	}
	c.Next()
}
