// Package server exposes the engine's small operational surface: manual
// "sync now", the last run summary, health and metrics.
package server

import (
	"context"
	"net/http"

	"github.com/felixmixwr/gestao-sync/internal/config"
	findomain "github.com/felixmixwr/gestao-sync/internal/finsync/domain"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Server struct {
	log     *zap.Logger
	finSync findomain.Service
}

func NewEngine(cfg config.Config) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	return engine
}

type Params struct {
	fx.In

	Log     *zap.Logger
	FinSync findomain.Service
}

func NewServer(p Params) *Server {
	return &Server{
		log:     p.Log.Named("server"),
		finSync: p.FinSync,
	}
}

func (s *Server) RegisterRoutes(engine *gin.Engine) {
	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := engine.Group("/v1")
	v1.POST("/finance/sync", s.RunFinanceSync)
	v1.GET("/finance/sync/last", s.LastFinanceSync)
}

func RunHTTP(lc fx.Lifecycle, engine *gin.Engine, s *Server, cfg config.Config, log *zap.Logger) {
	s.RegisterRoutes(engine)

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: engine,
	}

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Error("http server stopped", zap.Error(err))
				}
			}()
			log.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})
}

// Module wires the HTTP surface.
var Module = fx.Module("server",
	fx.Provide(NewEngine),
	fx.Provide(NewServer),
	fx.Invoke(RunHTTP),
)
