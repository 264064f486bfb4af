package app

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	progressbar "github.com/schollz/progressbar/v2"

	"github.com/rydeebs/getlogo/internal/extractor"
	"github.com/rydeebs/getlogo/internal/fetch"
	"github.com/rydeebs/getlogo/internal/report"
	"github.com/rydeebs/getlogo/internal/table"
)

const defaultBatchSize = 20

type App struct {
	cfg Config
}

func New(cfg Config) *App {
	return &App{cfg: cfg}
}

// Run loads the input table and processes it batch by batch, rewriting the
// output artifacts from accumulated state after every batch so a partial run
// always leaves consistent files behind. Per-URL failures never abort a
// batch; only malformed input halts the run before extraction begins.
func (a *App) Run(ctx context.Context) error {
	tbl, err := table.Load(a.cfg.InputPath)
	if err != nil {
		return fmt.Errorf("load input table: %w", err)
	}
	col, err := tbl.Column(a.cfg.URLColumn)
	if err != nil {
		return err
	}

	if a.cfg.Reset {
		if err := os.Remove(a.cfg.StatePath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("reset state: %w", err)
		}
	}
	st, err := loadState(a.cfg.StatePath)
	if err != nil {
		return fmt.Errorf("load state: %w", err)
	}

	ext := &extractor.Extractor{
		Client: &fetch.Client{UserAgent: a.cfg.UserAgent, Timeout: a.cfg.Timeout},
		OutDir: a.cfg.OutDir,
	}

	total := len(tbl.Rows)
	batchSize := a.cfg.BatchSize
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	totalBatches := (total + batchSize - 1) / batchSize

	for st.Cursor < total {
		start := st.Cursor
		end := start + batchSize
		if end > total {
			end = total
		}
		log.Info().
			Int("batch", start/batchSize+1).
			Int("batches", totalBatches).
			Int("from", start+1).
			Int("to", end).
			Int("total", total).
			Msg("processing batch")

		if err := a.runBatch(ctx, ext, tbl, col, st, start, end); err != nil {
			return err
		}

		st.Cursor = end
		if err := saveState(a.cfg.StatePath, st); err != nil {
			return fmt.Errorf("save state: %w", err)
		}
		if err := a.writeOutputs(tbl, st); err != nil {
			return err
		}
		if a.cfg.SingleBatch {
			break
		}
	}

	log.Info().
		Int("processed", st.Cursor).
		Int("total", total).
		Int("extracted", len(st.Records)).
		Msg("run complete")
	return nil
}

func (a *App) runBatch(ctx context.Context, ext *extractor.Extractor, tbl *table.Table, col int, st *RunState, start, end int) error {
	bar := progressbar.NewOptions(end-start, progressbar.OptionSetWriter(os.Stderr))
	for i := start; i < end; i++ {
		rawURL := strings.TrimSpace(tbl.Cell(i, col))
		if rawURL == "" {
			log.Debug().Int("row", i+1).Msg("skipping row with empty URL")
			st.Results[i] = table.Result{}
			_ = bar.Add(1)
			continue
		}

		rec, err := ext.Extract(ctx, rawURL)
		switch {
		case err != nil:
			// Page-level failure: report and move on. A single bad site
			// never aborts the batch.
			log.Warn().Err(err).Str("url", rawURL).Msg("error processing url")
			st.Results[i] = table.Result{}
		case rec == nil:
			log.Debug().Str("url", rawURL).Msg("no logo found")
			st.Results[i] = table.Result{}
		default:
			log.Debug().Str("url", rawURL).Str("file", rec.Filename).Msg("logo extracted")
			st.Results[i] = table.Result{Found: true, Filename: rec.Filename}
			st.Records = append(st.Records, *rec)
		}
		_ = bar.Add(1)

		// Politeness delay between URLs, not after the last one.
		if i+1 < end && a.cfg.Delay > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(a.cfg.Delay):
			}
		}
	}
	return nil
}

func (a *App) writeOutputs(tbl *table.Table, st *RunState) error {
	out := tbl.WithResults(st.Results)
	if err := table.Write(a.cfg.ResultsPath, out); err != nil {
		return fmt.Errorf("write results table: %w", err)
	}

	if len(st.Records) == 0 {
		return nil
	}
	rows := make([]report.MappingRow, 0, len(st.Records))
	for _, rec := range st.Records {
		rows = append(rows, report.MappingRow{
			WebsiteURL:   rec.SiteURL,
			Domain:       rec.Domain,
			LogoFilename: rec.Filename,
		})
	}
	if err := report.WriteMapping(a.cfg.MappingPath, rows); err != nil {
		return fmt.Errorf("write mapping file: %w", err)
	}
	if err := report.WriteArchive(a.cfg.ArchivePath, st.Records); err != nil {
		return fmt.Errorf("write archive: %w", err)
	}
	if a.cfg.SheetPath != "" {
		if err := report.WriteContactSheet(a.cfg.SheetPath, st.Records); err != nil {
			return fmt.Errorf("write contact sheet: %w", err)
		}
	}
	return nil
}
