package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/wadjakorntonsri/go-click-counter/pkg/adapters/repository"
	"github.com/wadjakorntonsri/go-click-counter/pkg/adapters/statsclient"
	"github.com/wadjakorntonsri/go-click-counter/pkg/config"
	"github.com/wadjakorntonsri/go-click-counter/pkg/core/domain"
	"github.com/wadjakorntonsri/go-click-counter/pkg/core/services"
	"github.com/wadjakorntonsri/go-click-counter/pkg/logger"
	"github.com/wadjakorntonsri/go-click-counter/pkg/ports"
)

const usage = "expected 'export', 'import', 'purge' or 'priorities' subcommands"

func main() {
	exportCmd := flag.NewFlagSet("export", flag.ExitOnError)
	importCmd := flag.NewFlagSet("import", flag.ExitOnError)
	importFile := importCmd.String("file", "", "JSON file to import")
	purgeCmd := flag.NewFlagSet("purge", flag.ExitOnError)
	prioritiesCmd := flag.NewFlagSet("priorities", flag.ExitOnError)
	affiliatesFile := prioritiesCmd.String("file", "", "affiliates.json to update (default AFFILIATES_PATH)")
	days := prioritiesCmd.Int("days", 0, "stats window in days (default STATS_DAYS)")

	if len(os.Args) < 2 {
		fmt.Println(usage)
		os.Exit(1)
	}

	cfg := config.Load()
	logger.Init(cfg.AppName, cfg.LogLevel, cfg.IsProduction())
	ctx := context.Background()

	switch os.Args[1] {
	case "export":
		exportCmd.Parse(os.Args[2:])
		store, closeStore := openStore(ctx, cfg)
		defer closeStore()
		doExport(ctx, services.NewClickService(store))
	case "import":
		importCmd.Parse(os.Args[2:])
		if *importFile == "" {
			importCmd.PrintDefaults()
			os.Exit(1)
		}
		store, closeStore := openStore(ctx, cfg)
		defer closeStore()
		doImport(ctx, services.NewClickService(store), *importFile)
	case "purge":
		purgeCmd.Parse(os.Args[2:])
		store, closeStore := openStore(ctx, cfg)
		defer closeStore()
		purged, err := purgeExpired(ctx, store)
		if err != nil {
			log.Fatal().Err(err).Msg("Purge failed")
		}
		log.Info().Int64("purged", purged).Msg("Purge done")
	case "priorities":
		prioritiesCmd.Parse(os.Args[2:])
		path := *affiliatesFile
		if path == "" {
			path = cfg.AffiliatesPath
		}
		window := *days
		if window <= 0 {
			window = cfg.StatsDays
		}
		fetcher := statsclient.NewClient(cfg.StatsEndpoint, cfg.StatsToken)
		doPriorities(ctx, services.NewPriorityService(fetcher), path, window)
	default:
		fmt.Println(usage)
		os.Exit(1)
	}
}

func openStore(ctx context.Context, cfg *config.Config) (ports.CounterStore, func()) {
	store, closeStore, err := repository.Open(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open counter store")
	}
	return store, func() {
		if err := closeStore(); err != nil {
			log.Error().Err(err).Msg("Failed to close counter store")
		}
	}
}

type expiryPurger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

// purgeExpired deletes expired rows from the sqlite store. Redis expires keys
// natively and the memory store does not outlive the process.
func purgeExpired(ctx context.Context, store ports.CounterStore) (int64, error) {
	p, ok := store.(expiryPurger)
	if !ok {
		log.Info().Msg("store expires keys itself, nothing to purge")
		return 0, nil
	}
	return p.PurgeExpired(ctx)
}

func doExport(ctx context.Context, service *services.ClickService) {
	records, err := service.Export(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Export failed")
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(records); err != nil {
		log.Fatal().Err(err).Msg("Encode failed")
	}
}

func doImport(ctx context.Context, service *services.ClickService, filename string) {
	file, err := os.Open(filename)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open file")
	}
	defer file.Close()

	var records []domain.Record
	if err := json.NewDecoder(file).Decode(&records); err != nil {
		log.Fatal().Err(err).Msg("Decode failed")
	}

	count, err := service.Import(ctx, records)
	if err != nil {
		log.Fatal().Err(err).Int("imported", count).Msg("Import failed")
	}
	log.Info().Int("imported", count).Msg("Import done")
}

func doPriorities(ctx context.Context, service *services.PriorityService, path string, days int) {
	affiliates, err := readAffiliates(path)
	if err != nil {
		log.Fatal().Err(err).Str("path", path).Msg("Failed to read affiliates")
	}

	changed, err := service.Refresh(ctx, affiliates, days)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to refresh priorities")
	}
	if !changed {
		log.Info().Msg("no changes")
		return
	}

	if err := writeAffiliates(path, affiliates); err != nil {
		log.Fatal().Err(err).Str("path", path).Msg("Failed to write affiliates")
	}
	log.Info().Str("path", path).Msg("affiliates updated")
}

// readAffiliates treats a missing or unparsable file as an empty document.
func readAffiliates(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]any{}, nil
	}
	if err != nil {
		return nil, err
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil || doc == nil {
		log.Warn().Err(err).Str("path", path).Msg("affiliates file is not a JSON object, starting empty")
		return map[string]any{}, nil
	}
	return doc, nil
}

func writeAffiliates(path string, doc map[string]any) error {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(doc); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}
