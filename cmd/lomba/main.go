// Package main is the entry point for the lomba CLI and API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"lomba-poster/internal/cli"
)

func main() {
	_ = godotenv.Load()

	if err := cli.NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
