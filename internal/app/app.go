package app

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/NdopnnoabasiJames/Backend-Template/internal/config"
)

// Run wires the full application and serves HTTP until the listener fails.
func Run(cfg *config.Config) error {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)
	gin.SetMode(cfg.GinMode)

	c, err := NewContainer(cfg, logger)
	if err != nil {
		return err
	}
	defer c.Close()

	if err := c.SeedDefaultPolicies(); err != nil {
		return err
	}
	if err := c.EnsureBootstrapAdmin(context.Background()); err != nil {
		return err
	}

	r := c.BuildRouter()

	addr := ":" + cfg.Port
	logger.Info("listening", "addr", addr)
	return http.ListenAndServe(addr, r)
}
