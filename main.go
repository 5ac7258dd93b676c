// main is the entry point for the streak CLI.
package main

import (
	"context"

	"github.com/huangsam/commitstreak/cmd"
	"github.com/huangsam/commitstreak/internal/contract"
	"github.com/huangsam/commitstreak/internal/iocache"
	"github.com/huangsam/commitstreak/internal/telemetry"
)

func main() {
	ctx := context.Background()

	shutdown, err := telemetry.Setup(ctx, "streak")
	if err != nil {
		contract.LogWarn("Tracing disabled", err)
	}

	cmd.SetCacheManager(iocache.Manager)
	err = cmd.Execute()

	_ = shutdown(ctx)
	iocache.CloseCaching()
	if err != nil {
		contract.LogFatal("Command failed", err)
	}
}
