package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/metakv/internal/buildinfo"
	"github.com/dmitrijs2005/metakv/internal/cli"
	"github.com/dmitrijs2005/metakv/internal/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stderr)

	ctx := context.Background()
	cfg := config.LoadConfig()
	app := cli.NewApp(cfg)

	if err := app.Run(ctx); err != nil {
		log.Fatalf("%v", err)
	}
}
