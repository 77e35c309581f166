package main

import (
	"context"

	"opinionlens-backend/cmd/ytscrape/commands"
	"opinionlens-backend/lib/telemetry"
)

func main() {
	ctx := context.Background()
	telemetry.InitSlog(false)
	if err := telemetry.SetupFromEnv(ctx, "ytscrape"); err != nil {
		panic(err)
	}
	defer telemetry.Shutdown(ctx)

	commands.ExecuteContext(ctx)
}
