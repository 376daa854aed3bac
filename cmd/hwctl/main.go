// Package main is the entry point for the hwctl CLI.
package main

import "github.com/donaldgifford/healthwatch/cmd/hwctl/cmd"

func main() {
	cmd.Execute()
}
