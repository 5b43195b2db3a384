package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	blogconv "github.com/goliatone/go-blogconv"
	"github.com/goliatone/go-blogconv/internal/logging/gologger"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatalf("blogconv: %v", err)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("blogconv", flag.ExitOnError)
	direction := fs.String("direction", string(blogconv.DirectionWPToGhost), "Conversion direction: wp-to-ghost or ghost-to-wp")
	in := fs.String("in", "", "Input file (WXR XML or Ghost export JSON)")
	out := fs.String("out", "", "Output file (defaults to stdout)")
	ghostVersion := fs.String("ghost-version", "", "Target Ghost version recorded in the export meta")
	logLevel := fs.String("log-level", "warn", "Log level: trace, debug, info, warn, error")
	logFormat := fs.String("log-format", "console", "Log format: json, console, pretty")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *in == "" {
		return fmt.Errorf("an input file is required (-in)")
	}

	payload, err := os.ReadFile(*in)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	provider, err := gologger.NewProvider(gologger.Config{
		Level:  *logLevel,
		Format: *logFormat,
	})
	if err != nil {
		return err
	}

	result, err := blogconv.Convert(string(payload), blogconv.Direction(*direction), blogconv.Options{
		GhostVersion: *ghostVersion,
		Logging:      provider,
	})
	if err != nil {
		return err
	}

	if *out == "" {
		fmt.Println(result)
		return nil
	}
	if err := os.WriteFile(*out, []byte(result), 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
