package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	stationreg "github.com/goliatone/go-stationreg"
	pkgopenapi "github.com/goliatone/go-stationreg/pkg/openapi"
	"github.com/goliatone/go-stationreg/pkg/orchestrator"
	"github.com/goliatone/go-stationreg/pkg/render"
	"github.com/goliatone/go-stationreg/pkg/renderers/tui"
	"github.com/goliatone/go-stationreg/pkg/renderers/vanilla"
)

const usage = `usage: stationreg <command> [flags]

commands:
  render   write the step 1 form with the chosen renderer (HTML by default)
  intake   fill in step 1 interactively in the terminal`

func main() {
	log.SetFlags(0)
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	ctx := context.Background()
	switch os.Args[1] {
	case "render":
		runRender(ctx, os.Args[2:])
	case "intake":
		runIntake(ctx, os.Args[2:])
	case "-h", "--help", "help":
		fmt.Println(usage)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s\n", os.Args[1], usage)
		os.Exit(2)
	}
}

func runRender(ctx context.Context, args []string) {
	flags := flag.NewFlagSet("render", flag.ExitOnError)
	rendererName := flags.String("renderer", vanilla.Name, "renderer to use (vanilla or tui)")
	output := flags.String("output", "", "output file (stdout if empty)")
	source := flags.String("source", "", "OpenAPI document path (embedded registration document if empty)")
	operation := flags.String("operation", "", "operation ID to render (registerStation if empty)")
	themeName := flags.String("theme", "", "theme name")
	variant := flags.String("variant", "", "theme variant (dark, high-contrast)")
	assets := flags.String("assets", "", "URL prefix for external stylesheet and runtime script")
	_ = flags.Parse(args)

	rendererOpts := []vanilla.Option{}
	if *assets != "" {
		rendererOpts = append(rendererOpts, vanilla.WithAssetsURL(*assets))
	}
	htmlRenderer, err := vanilla.New(rendererOpts...)
	if err != nil {
		log.Fatalf("Failed to create renderer: %v", err)
	}
	terminal, err := tui.New()
	if err != nil {
		log.Fatalf("Failed to create renderer: %v", err)
	}
	registry := render.NewRegistry()
	registry.MustRegister(htmlRenderer)
	registry.MustRegister(terminal)

	selector, err := stationreg.DefaultThemeSelector("")
	if err != nil {
		log.Fatalf("Failed to load themes: %v", err)
	}

	req := request(*source, *operation)
	req.Renderer = *rendererName
	req.ThemeName = *themeName
	req.ThemeVariant = *variant

	gen := stationreg.RegistrationOrchestrator(
		orchestrator.WithRegistry(registry),
		orchestrator.WithThemeSelector(selector),
	)
	outputHTML, err := gen.Generate(ctx, req)
	if err != nil {
		log.Fatalf("Failed to generate form: %v", err)
	}

	if *output != "" {
		if err := os.WriteFile(*output, outputHTML, 0o644); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}
		fmt.Printf("Form written to %s\n", *output)
		return
	}
	fmt.Println(string(outputHTML))
}

func runIntake(ctx context.Context, args []string) {
	flags := flag.NewFlagSet("intake", flag.ExitOnError)
	format := flags.String("format", string(tui.OutputFormatPrettyText), "output format: json, form or pretty")
	output := flags.String("output", "", "output file (stdout if empty)")
	attempts := flags.Int("max-attempts", 0, "re-prompts allowed per field (0 for unlimited)")
	_ = flags.Parse(args)

	outputFormat, ok := tui.ParseOutputFormat(*format)
	if !ok {
		log.Fatalf("unsupported format %q", *format)
	}

	terminal, err := tui.New(
		tui.WithOutputFormat(outputFormat),
		tui.WithMaxAttempts(*attempts),
		tui.WithTheme(tui.Theme{InfoPrefix: "» ", ErrorPrefix: "✗ "}),
	)
	if err != nil {
		log.Fatalf("Failed to create terminal renderer: %v", err)
	}
	registry := render.NewRegistry()
	registry.MustRegister(terminal)

	req := stationreg.RegistrationRequest()
	req.Renderer = tui.Name

	gen := stationreg.RegistrationOrchestrator(orchestrator.WithRegistry(registry))
	result, err := gen.Generate(ctx, req)
	if err != nil {
		log.Fatalf("Registration not completed: %v", err)
	}

	if *output != "" {
		if err := os.WriteFile(*output, result, 0o600); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}
		fmt.Printf("Step 1 written to %s\n", *output)
		return
	}
	fmt.Println(string(result))
}

func request(source, operation string) orchestrator.Request {
	req := stationreg.RegistrationRequest()
	if path := strings.TrimSpace(source); path != "" {
		req.Source = pkgopenapi.SourceFromFile(path)
	}
	if op := strings.TrimSpace(operation); op != "" {
		req.OperationID = op
	}
	return req
}
