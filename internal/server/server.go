package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/pdushie/bundle-management-app-sub001/internal/config"
	orderdomain "github.com/pdushie/bundle-management-app-sub001/internal/order/domain"
	pricingdomain "github.com/pdushie/bundle-management-app-sub001/internal/pricing/domain"
)

type Params struct {
	fx.In

	Log        *zap.Logger
	Cfg        *config.Config
	PricingSvc pricingdomain.Service
	OrderSvc   orderdomain.CostService
}

type Server struct {
	log        *zap.Logger
	cfg        *config.Config
	pricingSvc pricingdomain.Service
	orderSvc   orderdomain.CostService
}

func New(p Params) *Server {
	return &Server{
		log:        p.Log.Named("server"),
		cfg:        p.Cfg,
		pricingSvc: p.PricingSvc,
		orderSvc:   p.OrderSvc,
	}
}

func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/healthz", s.Healthz)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/v1")
	{
		v1.GET("/profiles", s.ListProfiles)
		v1.GET("/profiles/:id", s.GetProfileByID)
		v1.GET("/users/:id/profile", s.GetUserProfile)
		v1.POST("/pricing/quote", s.QuoteAllocation)
		v1.POST("/pricing/validate", s.ValidatePricing)
		v1.GET("/orders/:id", s.GetOrderByID)
		v1.POST("/orders/:id/recompute", s.RecomputeOrder)
	}

	return r
}

func (s *Server) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func Start(lc fx.Lifecycle, s *Server) {
	srv := &http.Server{
		Addr:    s.cfg.HTTPAddr,
		Handler: s.Router(),
	}

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			s.log.Info("http server starting", zap.String("addr", s.cfg.HTTPAddr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					s.log.Error("http server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})
}

var Module = fx.Module("server",
	fx.Provide(New),
	fx.Invoke(Start),
)
