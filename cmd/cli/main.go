package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"gitreadme/internal/buildinfo"
	"gitreadme/internal/client/cli"
	"gitreadme/internal/client/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()
	app, err := cli.NewApp(cfg)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
