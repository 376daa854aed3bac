// Package main is the entry point for the healthwatch server.
package main

import (
	"os"

	"github.com/donaldgifford/healthwatch/cmd/healthwatch/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
