package main

import (
	"fmt"
	"os"

	"github.com/cinemadrums/spap"
	"github.com/cinemadrums/spap/analytics"
	"github.com/cinemadrums/spap/charmlog"
	"github.com/cinemadrums/spap/storage"
)

func main() {
	conf := spap.LoadConfig()
	logger := charmlog.NewLogger(charmlog.Options{
		Level:  conf.LogLevel,
		Prefix: "spapadmin",
	})

	store, err := storage.Open(conf.DataPath, logger)
	if err != nil {
		logger.Fatal("failed store open", "error", err)
	}
	defer store.Close() //nolint:errcheck

	cli := commandLine{
		store:   store,
		weights: analytics.LoadWeights(conf.WeightsPath),
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			fmt.Println("error:", err)
		}
		os.Exit(1)
	}
}
