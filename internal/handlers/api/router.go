// Package api exposes the mint pipeline and period administration over HTTP.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/KirkDiggler/vertical-mint/internal/domain/artperiod"
	"github.com/KirkDiggler/vertical-mint/internal/domain/traits"
	"github.com/KirkDiggler/vertical-mint/internal/services/generation"
	"github.com/KirkDiggler/vertical-mint/internal/strategy"
	"github.com/KirkDiggler/vertical-mint/internal/uuid"
)

// PeriodRegistry is the period registry as the API uses it
type PeriodRegistry interface {
	Now() time.Time
	Current(now time.Time) *artperiod.ArtPeriod
	Upcoming(now time.Time) *artperiod.ArtPeriod
	All() []*artperiod.ArtPeriod
	Retired() []*artperiod.ArtPeriod
	Get(id string) (*artperiod.ArtPeriod, error)
	Add(ctx context.Context, period *artperiod.ArtPeriod) error
	Retire(ctx context.Context, id string) error
}

// StrategyResolver resolves and previews strategies
type StrategyResolver interface {
	Current() strategy.Strategy
	Preview(periodID string, selected *traits.SelectedTraits) (*strategy.PromptResult, error)
}

// Handler serves the HTTP API
type Handler struct {
	generation generation.Service
	periods    PeriodRegistry
	strategies StrategyResolver
	adminToken string
	ids        uuid.Generator
	logger     *zap.Logger
}

// HandlerConfig holds configuration for the API handler
type HandlerConfig struct {
	Generation generation.Service
	Periods    PeriodRegistry
	Strategies StrategyResolver
	// AdminToken guards period administration; empty disables those routes
	AdminToken string
	// IDs generates request ids; defaults to random UUIDs
	IDs    uuid.Generator
	Logger *zap.Logger
}

// NewHandler creates the API handler
func NewHandler(cfg *HandlerConfig) *Handler {
	if cfg == nil {
		panic("handler config is required")
	}
	if cfg.Generation == nil {
		panic("generation service is required")
	}
	if cfg.Periods == nil {
		panic("period registry is required")
	}
	if cfg.Strategies == nil {
		panic("strategy resolver is required")
	}

	h := &Handler{
		generation: cfg.Generation,
		periods:    cfg.Periods,
		strategies: cfg.Strategies,
		adminToken: cfg.AdminToken,
		ids:        cfg.IDs,
		logger:     cfg.Logger,
	}
	if h.ids == nil {
		h.ids = uuid.NewRandom()
	}
	if h.logger == nil {
		h.logger = zap.NewNop()
	}
	return h
}

// Router builds the gin engine with every route mounted
func (h *Handler) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(recovery(h.logger))
	r.Use(requestID(h.ids))
	r.Use(requestLogger(h.logger))
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:    []string{"Origin", "Content-Length", "Content-Type", "Authorization", RequestIDHeader},
		ExposeHeaders:   []string{"Content-Length", "Content-Type", RequestIDHeader},
		MaxAge:          time.Hour,
	}))

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v := r.Group("/api")
	v.GET("/health", h.health)

	v.POST("/generate", h.generate)
	v.POST("/traits/random", h.randomTraits)
	v.POST("/prompt", h.prompt)

	v.GET("/tokens", h.recentTokens)
	v.GET("/tokens/:id", h.tokenRecord)
	v.GET("/tokens/:id/uri", h.tokenURI)

	p := v.Group("/periods")
	p.GET("", h.listPeriods)
	p.GET("/current", h.currentPeriod)
	p.GET("/upcoming", h.upcomingPeriod)
	p.GET("/retired", h.retiredPeriods)
	p.POST("/:id/preview", h.previewPeriod)

	admin := p.Group("", adminAuth(h.adminToken))
	admin.POST("", h.addPeriod)
	admin.POST("/:id/retire", h.retirePeriod)

	return r
}

func (h *Handler) health(c *gin.Context) {
	strat := h.strategies.Current()
	body := gin.H{
		"status":   "ok",
		"strategy": strat.Name(),
	}
	if p := strat.Period(); p != nil {
		body["period"] = p.ID
	}
	c.JSON(http.StatusOK, body)
}
