package main

import (
	"context"
	"log/slog"

	"bankcap-backend/cmd/bankcap-cli/commands"
	"bankcap-backend/lib/telemetry"
)

func main() {
	ctx := context.Background()
	tel, err := telemetry.SetupFromEnv(ctx, "bankcap-cli")
	if err != nil {
		slog.Warn("failed to setup telemetry, continuing without it", "err", err)
	} else {
		defer tel.Shutdown(context.Background())
	}
	telemetry.InitSlog(false)
	commands.ExecuteContext(ctx)
}
