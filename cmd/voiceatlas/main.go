package main

import (
	"context"
	"log"
	"net/http"

	"github.com/joho/godotenv"
	"github.com/pitabwire/frame"
	"github.com/pitabwire/frame/config"

	vaconfig "github.com/voiceatlas/voiceatlas/config"
	cataloghandler "github.com/voiceatlas/voiceatlas/internal/catalog/handler"
	"github.com/voiceatlas/voiceatlas/internal/httputil"
	"github.com/voiceatlas/voiceatlas/internal/payload"
	"github.com/voiceatlas/voiceatlas/pkg/events"
)

func main() {
	ctx := context.Background()

	// Local development convenience; a missing .env is fine.
	_ = godotenv.Load()

	cfg, err := config.LoadWithOIDC[vaconfig.CatalogConfig](ctx)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	eventRef := cfg.GetEventsQueueName()
	eventURL := cfg.GetEventsQueueURL()

	ctx, srv := frame.NewService(
		frame.WithConfig(&cfg),
		frame.WithName("voiceatlas"),
		frame.WithRegisterPublisher(eventRef, eventURL),
	)
	defer srv.Stop(ctx)

	pool, err := srv.WorkManager().GetPool()
	if err != nil {
		log.Fatalf("getting worker pool: %v", err)
	}

	pub := events.NewPublisher(srv.QueueManager(), "catalog", eventRef)

	// The payload loads exactly once before the service starts serving;
	// an unavailable payload is terminal.
	loader := payload.NewLoader(cfg.PayloadSource, cfg.PayloadOverlay, cfg.PayloadFetchTimeout())
	if err := loader.Load(ctx); err != nil {
		log.Fatalf("loading payload: %v", err)
	}
	snap := loader.Catalog()
	_ = pub.Emit(ctx, events.CatalogLoaded, &events.CatalogLoadedData{
		Source:      cfg.PayloadSource,
		Voices:      len(snap.Voices()),
		Solutions:   len(snap.Solutions()),
		GeneratedAt: snap.GeneratedAt(),
	})

	loader.OnReload = func(reloadErr error) {
		if reloadErr != nil {
			_ = pub.Emit(ctx, events.CatalogReloadFailed, &events.CatalogReloadFailedData{
				Source: cfg.PayloadSource,
				Error:  reloadErr.Error(),
			})
			return
		}
		c := loader.Catalog()
		_ = pub.Emit(ctx, events.CatalogReloaded, &events.CatalogLoadedData{
			Source:      cfg.PayloadSource,
			Voices:      len(c.Voices()),
			Solutions:   len(c.Solutions()),
			GeneratedAt: c.GeneratedAt(),
		})
	}
	if cfg.WatchPayload {
		if submitErr := pool.Submit(ctx, func() {
			if watchErr := loader.WatchAndReload(ctx, ctx.Done()); watchErr != nil {
				log.Printf("payload watcher stopped: %v", watchErr)
			}
		}); submitErr != nil {
			log.Printf("warning: starting payload watcher: %v", submitErr)
		}
	}

	handler := cataloghandler.NewCatalogHandler(loader, pub, cataloghandler.PageSizes{
		Voices:    cfg.VoicesPageSize,
		Solutions: cfg.SolutionsPageSize,
		Matches:   cfg.MatchesPageSize,
	})
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)

	root := httputil.RequestLogger(httputil.RateLimit(mux, cfg.RateLimitRPS, cfg.RateLimitBurst))
	srv.Init(ctx,
		frame.WithRegisterSubscriber(eventRef+".stream", eventURL, &events.Subscriber{Pub: pub}),
		frame.WithHTTPHandler(httputil.H2CHandler(root)),
	)

	if err := srv.Run(ctx, ""); err != nil {
		log.Fatalf("service exited: %v", err)
	}
}
