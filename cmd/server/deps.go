package main

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/ddb-converter/internal/clients/dndbeyond"
	"github.com/KirkDiggler/ddb-converter/internal/clients/external"
	"github.com/KirkDiggler/ddb-converter/internal/config"
	"github.com/KirkDiggler/ddb-converter/internal/errors"
	"github.com/KirkDiggler/ddb-converter/internal/flags"
	"github.com/KirkDiggler/ddb-converter/internal/orchestrators/conversion"
	"github.com/KirkDiggler/ddb-converter/internal/pkg/clock"
	"github.com/KirkDiggler/ddb-converter/internal/pkg/idgen"
	"github.com/KirkDiggler/ddb-converter/internal/redis"
	charactercache "github.com/KirkDiggler/ddb-converter/internal/repositories/character_cache"
)

// buildConversionService wires the orchestrator from configuration. The
// cache is only used when a Redis URL is configured and reachable.
func buildConversionService(ctx context.Context, cfg *config.Config, fl flags.Set) (conversion.Service, error) {
	ddbClient, err := dndbeyond.New(&cfg.DNDBeyond)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create D&D Beyond client")
	}

	srdClient, err := external.New(&cfg.SRD)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create SRD client")
	}

	var cache charactercache.Repository
	if cfg.RedisURL != "" {
		cache, err = buildCache(ctx, cfg)
		if err != nil {
			slog.WarnContext(ctx, "Character cache disabled", "error", err)
			cache = nil
		}
	}

	return conversion.NewOrchestrator(&conversion.Config{
		DNDBeyond:   ddbClient,
		Cache:       cache,
		SRD:         srdClient,
		IDGenerator: idgen.NewUUID("conv"),
		Flags:       fl,
	})
}

func buildCache(ctx context.Context, cfg *config.Config) (charactercache.Repository, error) {
	client, err := redis.NewClientFromURL(cfg.RedisURL)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "invalid redis url")
	}
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "redis is unreachable")
	}

	return charactercache.NewRedisRepository(&charactercache.Config{
		Client: client,
		Clock:  clock.New(),
		TTL:    cfg.CacheTTL,
	})
}

// loadFlags reads the flag file and applies --set overrides on top.
func loadFlags(path string, overrides map[string]string) (flags.Set, error) {
	fl, err := flags.Load(path)
	if err != nil {
		return flags.Set{}, err
	}
	if len(overrides) == 0 {
		return fl, nil
	}

	parsed := make(map[flags.Name]bool, len(overrides))
	vb := errors.NewValidationBuilder()
	for name, value := range overrides {
		switch value {
		case "true", "1", "on":
			parsed[flags.Name(name)] = true
		case "false", "0", "off":
			parsed[flags.Name(name)] = false
		default:
			vb.Fieldf(name, "invalid boolean %q", value)
		}
	}
	if err := vb.Build(); err != nil {
		return flags.Set{}, err
	}
	return fl.With(parsed)
}
