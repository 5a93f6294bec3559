package main

import (
	"log/slog"
	"os"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	if err := newRootCmd(log).Execute(); err != nil {
		log.Error("command failed", "err", err)
		os.Exit(1)
	}
}
