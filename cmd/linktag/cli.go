package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/linktag/linktag"
	"github.com/linktag/linktag/pipeline"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	Source   linktag.URLSource
	Store    linktag.RecordStore
	Pipeline *pipeline.Pipeline

	// Mode is resolved by Main.Run before any network clients are
	// constructed; abort never reaches CLI.Run.
	Mode linktag.Mode

	// SelectMode prompts the user when existing output is found and no
	// --mode flag was given. Tests replace it to avoid the terminal.
	SelectMode func() (linktag.Mode, error)
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Input       string        `arg:"" help:"URL list file, or a site URL for sitemap discovery"`
	Output      string        `short:"o" default:"url_data.json" help:"Output JSON file"`
	CacheDir    string        `default:"./html" help:"Directory for cached HTML files"`
	Concurrency int           `short:"c" default:"5" help:"Concurrent URL limit"`
	Timeout     time.Duration `default:"10s" help:"Per-request fetch timeout"`
	Mode        string        `enum:"full,topup,abort," default:"" help:"Run mode when output exists (full, topup, abort)"`
	Browser     bool          `help:"Fetch pages with a headless browser"`
	Extractor   string        `enum:"goquery,readability" default:"goquery" help:"Content extraction strategy"`
	Store       string        `enum:"json,sqlite" default:"json" help:"Record storage backend"`
	CacheMaxAge time.Duration `help:"Treat cached HTML older than this as stale (0 disables)"`
	Rate        float64       `default:"1" help:"Max requests per second per domain"`
	Verbose     bool          `short:"v" help:"Log fetch and tagging activity"`
}

// Run executes the pipeline with the wired dependencies.
func (c *CLI) Run(deps *Dependencies) error {
	progress := func(e pipeline.ProgressEvent) {
		if e.Err != nil {
			fmt.Fprintf(deps.Stderr, "  [%d/%d] %s: %s (%v)\n", e.Completed, e.Total, e.URL, e.Outcome, e.Err)
			return
		}
		fmt.Fprintf(deps.Stdout, "  [%d/%d] %s: %s\n", e.Completed, e.Total, e.URL, e.Outcome)
	}

	result, err := deps.Pipeline.Run(deps.Ctx, deps.Mode, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", linktag.ErrorMessage(err))
		return err
	}

	printSummary(deps.Stdout, deps.Mode, result, c.Output)
	return nil
}

// resolveMode decides the run mode. An explicit --mode flag always
// wins; otherwise the user is prompted only when previous output
// exists.
func resolveMode(flag string, store linktag.RecordStore, selectMode func() (linktag.Mode, error)) (linktag.Mode, error) {
	switch flag {
	case "full":
		return linktag.ModeFullProcess, nil
	case "topup":
		return linktag.ModeTopUp, nil
	case "abort":
		return linktag.ModeAbort, nil
	}
	if !store.Exists() {
		return linktag.ModeFullProcess, nil
	}
	return selectMode()
}

// promptMode asks what to do with existing output.
func promptMode() (linktag.Mode, error) {
	var mode linktag.Mode
	err := huh.NewSelect[linktag.Mode]().
		Title("Output file already exists. What would you like to do?").
		Options(
			huh.NewOption("Process all URLs again", linktag.ModeFullProcess),
			huh.NewOption("Only generate missing hashtags", linktag.ModeTopUp),
			huh.NewOption("Abort", linktag.ModeAbort),
		).
		Value(&mode).
		Run()
	if err != nil {
		return linktag.ModeAbort, err
	}
	return mode, nil
}

func printSummary(w io.Writer, mode linktag.Mode, result *pipeline.Result, output string) {
	if mode == linktag.ModeTopUp {
		if result.UpToDate {
			fmt.Fprintln(w, "All records already have hashtags.")
			return
		}
		fmt.Fprintf(w, "Updated %d of %d records", result.Updated, result.Processed)
		if result.TagFailed > 0 {
			fmt.Fprintf(w, " (%d failed)", result.TagFailed)
		}
		fmt.Fprintf(w, ", saved to %s\n", output)
		return
	}

	fmt.Fprintf(w, "Processed %d URLs (%d cached, %d fetched", result.Processed, result.FromCache, result.Fetched)
	if result.FetchFailed > 0 {
		fmt.Fprintf(w, ", %d fetch failures", result.FetchFailed)
	}
	if result.TagFailed > 0 {
		fmt.Fprintf(w, ", %d tagging failures", result.TagFailed)
	}
	fmt.Fprintf(w, "), saved to %s\n", output)
}
