package server

import (
	"context"
	"fmt"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"evostudio/convert"
	"evostudio/state"
)

// Run is serve action: HTTP API runs until interrupted.
func Run(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("serve")

	if listen := cmd.String("listen"); len(listen) > 0 {
		env.Cfg.Server.Listen = listen
	}

	rnd, err := convert.NewRenderer(&env.Cfg.Report, log)
	if err != nil {
		return fmt.Errorf("unable to prepare renderer: %w", err)
	}

	log.Info("Server starting", zap.String("listen", env.Cfg.Server.Listen), zap.Stringer("style", rnd.Style()))
	defer func() {
		log.Info("Server stopped", zap.Duration("uptime", env.Uptime()))
	}()

	return New(&env.Cfg.Server, rnd, env.Log).Run(ctx)
}
