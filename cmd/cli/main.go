package main

import (
	"context"
	"log"
	"os"

	"github.com/planfold/planfold/internal/admincli"
	"github.com/planfold/planfold/internal/buildinfo"
	"github.com/planfold/planfold/internal/server/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	app := admincli.NewApp(cfg)

	if err := app.Run(ctx); err != nil {
		log.Fatalf("%v", err)
	}

}
