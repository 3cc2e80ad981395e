package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/naijatax/internal/buildinfo"
	"github.com/dmitrijs2005/naijatax/internal/client/cli"
	"github.com/dmitrijs2005/naijatax/internal/client/config"
	"github.com/dmitrijs2005/naijatax/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		log.Fatalf("%v", err)
	}

	ctx := context.Background()

	logger := logging.NewTextLogger(os.Stderr, cfg.LogLevel)

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(ctx)

}
