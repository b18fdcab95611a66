package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"google.golang.org/genai"

	"github.com/linktag/linktag"
	"github.com/linktag/linktag/fs"
	"github.com/linktag/linktag/gemini"
	"github.com/linktag/linktag/goquery"
	linkhttp "github.com/linktag/linktag/http"
	"github.com/linktag/linktag/pipeline"
	"github.com/linktag/linktag/readability"
	"github.com/linktag/linktag/rod"
	ltslog "github.com/linktag/linktag/slog"
	"github.com/linktag/linktag/sqlite"
)

func main() {
	ctx := context.Background()

	m := NewMain()
	defer m.Close()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// SQLite database, opened only with --store sqlite.
	DB *sqlite.DB

	// Fetcher kept for closing the browser when --browser is used.
	Fetcher linktag.Fetcher
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.Fetcher != nil {
		if err := m.Fetcher.Close(); err != nil {
			return err
		}
	}
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	// A missing .env file is fine; the environment may already be set.
	_ = godotenv.Load()

	deps := &Dependencies{
		Ctx:        ctx,
		Stdout:     stdout,
		Stderr:     stderr,
		SelectMode: promptMode,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("linktag"),
		kong.Description("Fetch web pages, extract their content, and enrich them with hashtags."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 || args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		if len(args) == 0 {
			return fmt.Errorf("no input specified. Run 'linktag --help' for usage")
		}
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(stderr, nil))

	// The store must exist before mode resolution, and the mode before
	// any network client: aborting (explicitly or at the prompt) needs
	// neither credentials nor a browser.
	switch cli.Store {
	case "sqlite":
		m.DB = sqlite.NewDB(cli.Output)
		if err := m.DB.Open(); err != nil {
			return fmt.Errorf("failed to open database at %q: %w", cli.Output, err)
		}
		deps.Store = sqlite.NewRecordStore(m.DB)
	default:
		deps.Store = fs.NewStore(cli.Output)
	}

	mode, err := resolveMode(cli.Mode, deps.Store, deps.SelectMode)
	if err != nil {
		return err
	}
	if mode == linktag.ModeAbort {
		fmt.Fprintln(stdout, "Aborted.")
		return nil
	}
	deps.Mode = mode

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
		return fmt.Errorf("GEMINI_API_KEY not set. Get a key at https://aistudio.google.com/apikey")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
		return fmt.Errorf("failed to connect to Gemini API: %w", err)
	}
	var tagger linktag.Tagger = gemini.NewTagger(client, gemini.DefaultModel)

	if strings.HasPrefix(cli.Input, "http://") || strings.HasPrefix(cli.Input, "https://") {
		deps.Source = linkhttp.NewSitemapSource(nil, cli.Input)
	} else {
		deps.Source = fs.NewFileSource(cli.Input)
	}

	var cacheOpts []fs.CacheOption
	if cli.CacheMaxAge > 0 {
		cacheOpts = append(cacheOpts, fs.WithMaxAge(cli.CacheMaxAge))
	}
	cache, err := fs.NewCache(cli.CacheDir, cacheOpts...)
	if err != nil {
		return fmt.Errorf("failed to create cache directory at %q: %w", cli.CacheDir, err)
	}

	var fetcher linktag.Fetcher
	if cli.Browser {
		fetcher, err = rod.NewFetcher(rod.WithFetchTimeout(cli.Timeout))
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
			return fmt.Errorf("failed to start browser: %w", err)
		}
	} else {
		fetcher = linkhttp.NewFetcher(linkhttp.WithTimeout(cli.Timeout))
	}
	m.Fetcher = fetcher

	if cli.Verbose {
		fetcher = ltslog.NewLoggingFetcher(fetcher, logger)
		tagger = ltslog.NewLoggingTagger(tagger, logger)
	}

	limiter := pipeline.NewDomainLimiter(cli.Rate)

	deps.Pipeline = &pipeline.Pipeline{
		Source:      deps.Source,
		Fetch:       pipeline.NewCachedFetcher(cache, fetcher, limiter, logger),
		Extractor:   newExtractor(cli.Extractor),
		Tagger:      tagger,
		Store:       deps.Store,
		Concurrency: cli.Concurrency,
		Logger:      logger,
	}

	return kongCtx.Run(deps)
}

func newExtractor(name string) linktag.Extractor {
	if name == "readability" {
		return readability.NewExtractor()
	}
	return goquery.NewExtractor()
}
