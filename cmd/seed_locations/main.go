package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/yungbote/tripcraft-backend/internal/clients/redis"
	"github.com/yungbote/tripcraft-backend/internal/data/catalog"
	"github.com/yungbote/tripcraft-backend/internal/data/db"
	"github.com/yungbote/tripcraft-backend/internal/data/repos"
	"github.com/yungbote/tripcraft-backend/internal/modules/replacement"
	"github.com/yungbote/tripcraft-backend/internal/pkg/dbctx"
	"github.com/yungbote/tripcraft-backend/internal/platform/envutil"
	"github.com/yungbote/tripcraft-backend/internal/platform/logger"
	"github.com/yungbote/tripcraft-backend/internal/services"
)

type fileList []string

func (l *fileList) String() string { return fmt.Sprint(*l) }
func (l *fileList) Set(v string) error {
	if v != "" {
		*l = append(*l, v)
	}
	return nil
}

func main() {
	var (
		files       fileList
		dryRun      bool
		strict      bool
		concurrency int
		batchSize   int
	)
	flag.Var(&files, "file", "catalog file, YAML or JSON (repeatable)")
	flag.BoolVar(&dryRun, "dry-run", false, "validate and report without writing")
	flag.BoolVar(&strict, "strict", false, "abort when any entry is invalid")
	flag.IntVar(&concurrency, "concurrency", 4, "parallel upsert batches")
	flag.IntVar(&batchSize, "batch", 200, "rows per upsert batch")
	flag.Parse()

	_ = godotenv.Load()

	log, err := logger.New(envutil.String("LOG_MODE", "development"))
	if err != nil {
		fmt.Printf("init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if concurrency < 1 {
		concurrency = 1
	}
	if len(files) == 0 {
		fmt.Println("usage: seed_locations -file catalog.yaml [-file more.json] [-dry-run] [-concurrency N]")
		os.Exit(2)
	}

	var entries []catalog.Entry
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			log.Fatal("Read catalog failed", "file", path, "error", err)
		}
		parsed, err := catalog.Parse(data, path)
		if err != nil {
			log.Fatal("Parse catalog failed", "file", path, "error", err)
		}
		entries = append(entries, parsed...)
	}

	locs, invalid := catalog.Locations(entries)
	for _, e := range invalid {
		log.Warn("Skipping catalog entry", "error", e)
	}
	log.Info("Catalog loaded", "entries", len(entries), "valid", len(locs), "invalid", len(invalid))
	if strict && len(invalid) > 0 {
		log.Fatal("Aborting: invalid entries with -strict", "count", len(invalid))
	}
	if dryRun || len(locs) == 0 {
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pg, err := db.NewPostgresService(db.PostgresConfigFromEnv(), log)
	if err != nil {
		log.Fatal("Postgres init failed", "error", err)
	}
	defer pg.Close()
	if err := db.AutoMigrateAll(pg.DB()); err != nil {
		log.Fatal("Postgres automigrate failed", "error", err)
	}
	locationRepo := repos.NewLocationRepo(pg.DB(), log)

	var written atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, batch := range catalog.Batches(locs, batchSize) {
		i, batch := i, batch
		g.Go(func() error {
			n, err := locationRepo.Upsert(dbctx.Context{Ctx: gctx}, batch)
			if err != nil {
				return fmt.Errorf("batch %d: %w", i, err)
			}
			written.Add(n)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Fatal("Seeding failed", "error", err, "written", written.Load())
	}
	log.Info("Seeded locations", "rows", written.Load())

	invalidateCache(ctx, log, services.NewLocationStore(locationRepo), catalog.Cities(locs), catalog.IDs(locs))
}

// invalidateCache drops cached city lists and single-location entries so the
// API serves the new rows before the TTL runs out.
func invalidateCache(ctx context.Context, log *logger.Logger, store replacement.LocationStore, cities, ids []string) {
	addr := envutil.String("REDIS_ADDR", "")
	if addr == "" || (len(cities) == 0 && len(ids) == 0) {
		return
	}
	backend, err := redis.NewBackend(addr, log)
	if err != nil {
		log.Warn("Redis unavailable, cached city lists expire on their own", "error", err)
		return
	}
	defer backend.Close()

	cache := redis.NewCachedLocationStore(store, backend, 0, log)
	if err := cache.Invalidate(ctx, cities...); err != nil {
		log.Warn("Cache invalidation failed", "cities", cities, "error", err)
		return
	}
	if err := cache.InvalidateLocations(ctx, ids...); err != nil {
		log.Warn("Cache invalidation failed", "locations", len(ids), "error", err)
		return
	}
	log.Info("Invalidated cached locations", "cities", cities, "locations", len(ids))
}
