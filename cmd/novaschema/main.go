package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/tuannm99/novaschema/cmd/novaschema/internal/cmdapi"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := cmdapi.NewRoot().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
