// Package main generates the hwctl CLI reference and the HTTP API's OpenAPI
// document.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/danielgtaylor/huma/v2/adapters/humaecho"
	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra/doc"

	"github.com/donaldgifford/healthwatch/api/openapi"
	hwcmd "github.com/donaldgifford/healthwatch/cmd/healthwatch/cmd"
	"github.com/donaldgifford/healthwatch/cmd/hwctl/cmd"
	"github.com/donaldgifford/healthwatch/internal/api/handlers"
)

func main() {
	output := flag.String("output", "docs/cli", "output directory for generated markdown")
	spec := flag.String("openapi", "docs/api/openapi.json", "path for the generated OpenAPI document (empty to skip)")
	flag.Parse()

	if err := os.MkdirAll(*output, 0o750); err != nil {
		log.Fatalf("creating output directory: %v", err)
	}

	root := cmd.Root()
	root.DisableAutoGenTag = true

	if err := doc.GenMarkdownTree(root, *output); err != nil {
		log.Fatalf("generating docs: %v", err)
	}
	fmt.Printf("CLI docs generated in %s/\n", *output)

	if *spec == "" {
		return
	}
	if err := writeSpec(*spec); err != nil {
		log.Fatalf("generating openapi document: %v", err)
	}
	fmt.Printf("OpenAPI document written to %s\n", *spec)
}

// writeSpec registers every route against handlers with no backing services.
// Registration only reflects on the input and output types.
func writeSpec(path string) error {
	api := humaecho.New(echo.New(), openapi.Config(hwcmd.Version))
	handlers.RegisterEventRoutes(api, handlers.NewEventsHandler(nil, nil))
	handlers.RegisterMonitoringRoutes(api, handlers.NewMonitoringHandler(nil))
	handlers.RegisterRuleRoutes(api, handlers.NewRulesHandler(nil))

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return err
	}
	f, err := os.Create(path) //nolint:gosec // path comes from a flag
	if err != nil {
		return err
	}
	defer f.Close()

	return openapi.Write(f, api)
}
