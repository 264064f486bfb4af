package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rydeebs/getlogo/internal/app"
)

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

func main() {
	// Logging setup
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	var (
		cfgPath string
		cfg     app.Config
	)

	flag.StringVar(&cfg.InputPath, "input", "websites.csv", "Path to input table of website URLs (.csv, .xlsx or .xls)")
	flag.StringVar(&cfg.URLColumn, "url.column", os.Getenv("GETLOGO_URL_COLUMN"), "Name of the column containing website URLs (default: first column)")
	flag.StringVar(&cfg.OutDir, "out.dir", "logos", "Directory for downloaded logo images")
	flag.StringVar(&cfg.ResultsPath, "results", "logos_extraction_results.xlsx", "Path for the results table (.xlsx or .csv)")
	flag.StringVar(&cfg.MappingPath, "mapping", "logo_mapping.csv", "Path for the URL-to-filename mapping CSV")
	flag.StringVar(&cfg.ArchivePath, "archive", "all_logos.zip", "Path for the ZIP archive of extracted logos")
	flag.StringVar(&cfg.SheetPath, "sheet", "", "Optional path for a PDF contact sheet of extracted logos")
	flag.StringVar(&cfg.StatePath, "state", ".getlogo-state.json", "Path for the run state file used to resume batches")
	flag.IntVar(&cfg.BatchSize, "batch.size", 20, "Number of URLs per batch")
	flag.BoolVar(&cfg.SingleBatch, "batch.one", false, "Process a single batch and exit; rerun to resume")
	flag.DurationVar(&cfg.Delay, "delay", 200*time.Millisecond, "Politeness delay between processed URLs")
	flag.DurationVar(&cfg.Timeout, "timeout", 5*time.Second, "Timeout per outbound request")
	flag.StringVar(&cfg.UserAgent, "ua", defaultUserAgent, "User-Agent header for outbound requests")
	flag.BoolVar(&cfg.Reset, "reset", false, "Discard saved run state and start over")
	flag.StringVar(&cfgPath, "config", os.Getenv("GETLOGO_CONFIG"), "Optional YAML config file; explicit flags take precedence")
	flag.BoolVar(&cfg.Verbose, "v", false, "Verbose logging")
	flag.Parse()

	if cfgPath != "" {
		fc, err := app.LoadFileConfig(cfgPath)
		if err != nil {
			log.Fatal().Err(err).Str("config", cfgPath).Msg("cannot load config file")
		}
		explicit := map[string]bool{}
		flag.Visit(func(f *flag.Flag) { explicit[f.Name] = true })
		if err := app.ApplyFileConfig(&cfg, fc, explicit); err != nil {
			log.Fatal().Err(err).Str("config", cfgPath).Msg("invalid config file")
		}
	}

	if cfg.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	a := app.New(cfg)
	if err := a.Run(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("getlogo failed")
	}
}
