package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"sync"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"routeplan/adapters/optimizer"
	"routeplan/adapters/postgres"
	"routeplan/domain/core"
	"routeplan/domain/schema"
	"routeplan/internal/config"
	"routeplan/internal/ingest"
	"routeplan/internal/quality"
)

type fileReport struct {
	File    string               `json:"file"`
	Result  *schema.ParseResult  `json:"result"`
	Profile quality.BatchProfile `json:"profile"`
}

func main() {
	resetPerFile := flag.Bool("reset-per-file", false, "restart fallback ID sequences for every file")
	store := flag.Bool("store", false, "persist parsed batches (requires DATABASE_URL)")
	dispatch := flag.Bool("dispatch", false, "send parsed jobs and salesmen to the optimizer (requires OPTIMIZER_URL)")
	workers := flag.Int("workers", 4, "number of files parsed concurrently")
	flag.Parse()

	files := flag.Args()
	if len(files) == 0 {
		fmt.Fprintln(os.Stderr, "usage: routeplan [flags] <file.csv|file.xlsx> ...")
		flag.PrintDefaults()
		os.Exit(2)
	}

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fatal("failed to load configuration: %v", err)
	}

	ctx := context.Background()

	var repo *postgres.BatchRepository
	if *store {
		if cfg.Database.URL == "" {
			fatal("-store requires DATABASE_URL")
		}
		db, err := postgres.Connect(cfg.Database.URL)
		if err != nil {
			fatal("failed to connect to database: %v", err)
		}
		defer db.Close()

		repo = postgres.NewBatchRepository(db)
		if err := repo.EnsureSchema(ctx); err != nil {
			fatal("failed to ensure database schema: %v", err)
		}
	}

	seq := core.NewSequenceGenerator()
	pipeline := ingest.NewPipeline(seq)

	// Per-file sequence reset only makes sense when files parse one at a
	// time; otherwise concurrent files would race on the shared counters.
	if *resetPerFile {
		*workers = 1
	}

	var mu sync.Mutex
	reports := make([]fileReport, 0, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(*workers)
	for _, file := range files {
		g.Go(func() error {
			if *resetPerFile {
				seq.Reset()
			}
			res := pipeline.ParseFile(file)

			if repo != nil && res.RecordCount() > 0 {
				if err := repo.Save(gctx, &res, file); err != nil {
					return fmt.Errorf("%s: %w", file, err)
				}
			}

			mu.Lock()
			reports = append(reports, fileReport{File: file, Result: &res, Profile: quality.Profile(res)})
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		fatal("%v", err)
	}

	if *dispatch {
		if err := dispatchBatches(ctx, cfg, reports); err != nil {
			fatal("dispatch failed: %v", err)
		}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(reports); err != nil {
		fatal("failed to encode output: %v", err)
	}

	for _, r := range reports {
		if r.Result.RecordCount() == 0 {
			os.Exit(1)
		}
	}
}

// dispatchBatches pools the parsed records across every input file and sends
// them to the assignment service in one request.
func dispatchBatches(ctx context.Context, cfg *config.Config, reports []fileReport) error {
	if cfg.Optimizer.BaseURL == "" {
		return fmt.Errorf("-dispatch requires OPTIMIZER_URL")
	}

	var jobs []schema.Job
	var salesmen []schema.Salesman
	for _, r := range reports {
		jobs = append(jobs, r.Result.Jobs...)
		salesmen = append(salesmen, r.Result.Salesmen...)
	}

	client := optimizer.NewClient(cfg.Optimizer.BaseURL, cfg.Optimizer.Timeout)
	assignment, err := client.Assign(ctx, jobs, salesmen)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "assigned %d salesmen, %d unassigned jobs: %s\n",
		len(assignment.Jobs), len(assignment.UnassignedJobs), assignment.Message)
	return nil
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
