package schemawire

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/tuannm99/novaschema/internal/catalog"
	"github.com/tuannm99/novaschema/internal/record"
)

type ServerConfig struct {
	Addr     string
	Resolver record.Resolver
	Logger   zerolog.Logger
}

// Run listens on sc.Addr and serves until SIGINT/SIGTERM.
func Run(sc ServerConfig) error {
	ln, err := net.Listen("tcp", sc.Addr)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sc.Logger.Info().Str("addr", ln.Addr().String()).Msg("schemawire tcp server listening")
	return Serve(ctx, ln, sc)
}

// Serve accepts connections on ln until ctx is done. It closes ln.
func Serve(ctx context.Context, ln net.Listener, sc ServerConfig) error {
	defer func() { _ = ln.Close() }()

	go func() {
		<-ctx.Done()
		_ = ln.Close()
	}()

	for {
		conn, err := ln.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				return nil
			default:
			}
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			sc.Logger.Warn().Err(err).Msg("accept")
			continue
		}
		go handleConn(ctx, conn, sc)
	}
}

func handleConn(ctx context.Context, conn net.Conn, sc ServerConfig) {
	defer func() { _ = conn.Close() }()

	// No global deadline; clients set per-request deadlines.
	_ = conn.SetDeadline(time.Time{})

	log := sc.Logger.With().Str("remote", conn.RemoteAddr().String()).Logger()
	log.Debug().Msg("connection opened")

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		var req ResolveRequest
		if err := ReadFrame(conn, &req); err != nil {
			// Client closed or bad frame.
			log.Debug().Err(err).Msg("connection closed")
			return
		}

		resp := handle(req, sc.Resolver)
		if resp.Error != "" {
			log.Info().Uint64("id", req.ID).Str("error", resp.Error).Msg("resolve failed")
		} else {
			log.Debug().Uint64("id", req.ID).Int("tables", len(resp.Tables)).Msg("resolved")
		}

		if err := WriteFrame(conn, resp); err != nil {
			log.Warn().Err(err).Msg("write response")
			return
		}
	}
}

func handle(req ResolveRequest, r record.Resolver) ResolveResponse {
	tables, err := catalog.ResolveDefinition(r, req.DDL, req.Table)
	if err != nil {
		return ResolveResponse{ID: req.ID, Error: err.Error()}
	}
	return ResolveResponse{ID: req.ID, Tables: tables}
}
