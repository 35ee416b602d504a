// Command sarcasm-cli classifies texts offline with the same pipeline as the API
package main

import (
	"os"

	"sarcasm/internal/platform/logger"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	// stdout carries results
	lopt := logger.FromEnv()
	lopt.Writer = os.Stderr
	if lopt.Service == "" {
		lopt.Service = "sarcasm-cli"
	}
	logger.Init(lopt)

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
