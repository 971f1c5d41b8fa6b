package main

import (
	"flag"
	"fmt"
	"os"
	"quranbot/internal/di"
	"quranbot/internal/structures"
)

func main() {
	flags := &structures.CliFlags{}
	flag.StringVar(&flags.ConfigPath, "config", "config.yaml", "path to the configuration file")
	flag.BoolVar(&flags.DebugMode, "debug", false, "also log to the console")
	flag.BoolVar(&flags.Daemon, "daemon", false, "keep running and post on the configured interval")
	flag.BoolVar(&flags.DryRun, "dry-run", false, "fetch and print the next tweet without posting")
	flag.Parse()

	if _, err := di.InitApp(flags); err != nil {
		fmt.Fprintf(os.Stderr, "quranbot: %s\n", err)
		os.Exit(1)
	}
}
