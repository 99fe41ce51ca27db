package main

import (
	"os"

	"github.com/wonny/buyside/cmd/buyside/commands"
)

// main is the entry point for the buyside CLI
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
