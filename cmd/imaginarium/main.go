// Command imaginarium loads a definitions directory, builds an ontology,
// generates one invention from it, and prints the result.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gitrdm/imaginarium/internal/config"
	"github.com/gitrdm/imaginarium/internal/logging"
	"github.com/gitrdm/imaginarium/internal/metrics"
	"github.com/gitrdm/imaginarium/internal/watch"
	"github.com/gitrdm/imaginarium/pkg/imaginarium"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "imaginarium: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configPath string
		root       string
		count      int
	)
	flag.StringVar(&configPath, "config", "", "path to a YAML config file (overrides defaults)")
	flag.StringVar(&root, "root", "", "common noun to generate instances of, e.g. \"cats\"")
	flag.IntVar(&count, "count", 1, "number of root individuals to generate")
	flag.Parse()

	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.LoadFromFile(configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger := logging.SetDefault("imaginarium", cfg.Logging.Format)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if cfg.Metrics.Addr != "" {
		go func() {
			if err := metrics.Serve(cfg.Metrics.Addr); err != nil {
				logger.Error("metrics server exited", slog.String("error", err.Error()))
			}
		}()
		logger.Info("metrics listening", slog.String("addr", cfg.Metrics.Addr))
	}

	o := imaginarium.NewOntologyWithLogger(logger)
	if err := imaginarium.LoadDefinitions(o, cfg.Definitions.Dir, true); err != nil {
		switch {
		case errors.Is(err, fs.ErrNotExist):
			logger.Info("no definitions directory, starting empty", slog.String("dir", cfg.Definitions.Dir))
		default:
			loadErrs, ok := err.(imaginarium.LoadErrors)
			if !ok {
				return fmt.Errorf("load definitions: %w", err)
			}
			for _, e := range loadErrs {
				logger.Warn("definition error", slog.String("detail", e.Error()))
			}
		}
	}
	if cfg.Definitions.Locked {
		o.Lock()
	}

	if cfg.Definitions.Watch {
		w, err := watch.NewDefinitionsWatcher(watch.Config{Dir: cfg.Definitions.Dir}, logger, func(dir string) error {
			return imaginarium.LoadDefinitions(o, dir, true)
		})
		if err != nil {
			return fmt.Errorf("start watcher: %w", err)
		}
		if err := w.Start(ctx); err != nil {
			return fmt.Errorf("start watcher: %w", err)
		}
		defer w.Stop()
	}

	if root == "" {
		logger.Info("no -root given; ontology loaded, nothing to generate")
		<-ctx.Done()
		return nil
	}

	concept, ok := o.Concept(imaginarium.Tokenize(root))
	if !ok || concept.IsAdjective {
		return fmt.Errorf("%q is not a known common noun", root)
	}

	opts := imaginarium.GenerateOptions{Retries: cfg.Solver.Retries, Timeout: cfg.Solver.Timeout}
	inv, err := imaginarium.Generate(o, concept.ID, nil, count, opts)
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}

	for _, ind := range inv.Individuals() {
		if !inv.IsA(ind, concept.ID) {
			continue
		}
		fmt.Println(inv.NameString(ind))
		fmt.Println(inv.Description(ind))
		fmt.Println()
	}

	if cfg.Metrics.Addr != "" {
		// Give any in-flight scrape a moment before exiting.
		time.Sleep(100 * time.Millisecond)
	}
	return nil
}
