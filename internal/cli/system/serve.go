package system

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/julianstephens/lifegrid/internal/api"
	"github.com/julianstephens/lifegrid/internal/cli"
	"github.com/julianstephens/lifegrid/internal/logger"
)

// ServeCmd runs the HTTP API until SIGINT or SIGTERM.
type ServeCmd struct{}

func (c *ServeCmd) Run(ctx *cli.Context) error {
	ctx.PerformAutomaticBackup()

	// Creates the schema on first start.
	if err := ctx.Store.Init(); err != nil {
		return err
	}
	logger.Info("Storage ready", "driver", ctx.Store.Driver(), "config", ctx.Config.String())
	if ctx.Config.AllowAllOrigins() {
		logger.Warn("CORS allows every origin")
	} else if len(ctx.Config.CORSOrigins) == 0 {
		logger.Warn("CORS origin list is empty; browser requests from other origins will be refused")
	}

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return api.NewServer(ctx.Service(), ctx.Config).ListenAndServe(sigCtx)
}
