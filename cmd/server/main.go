package main

import (
	"flag"
	"os"

	"github.com/rs/zerolog"

	"github.com/tuannm99/novaschema/internal"
	"github.com/tuannm99/novaschema/internal/logger"
	"github.com/tuannm99/novaschema/internal/record"
	"github.com/tuannm99/novaschema/server/schemawire"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	addr := flag.String("addr", "", "listen address (default server.addr)")
	flag.Parse()

	log := logger.NewLogger()

	cfg, err := internal.LoadConfig(*configPath)
	if err != nil {
		log.Error().Err(err).Msg("failed to load config")
		os.Exit(1)
	}
	log = logger.New(logger.Options{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty})
	if cfg.Server.Debug {
		log = log.Level(zerolog.DebugLevel)
	}

	r, err := record.NewResolver(cfg.Resolver.Aliases)
	if err != nil {
		log.Error().Err(err).Msg("invalid resolver aliases")
		os.Exit(1)
	}

	sc := schemawire.ServerConfig{
		Addr:     cfg.Server.Addr,
		Resolver: r,
		Logger:   log,
	}
	if *addr != "" {
		sc.Addr = *addr
	}

	if err := schemawire.Run(sc); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
	log.Info().Msg("shutting down")
}
