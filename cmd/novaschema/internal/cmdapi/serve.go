package cmdapi

import (
	"fmt"
	"net"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/tuannm99/novaschema/server/httpapi"
	"github.com/tuannm99/novaschema/server/schemawire"
)

func serveCmd(e *env) *cobra.Command {
	var (
		flags = &struct {
			Addr     string
			HTTPAddr string
		}{}
		cmd = &cobra.Command{
			Use:   "serve",
			Short: "Serve resolution over TCP and, optionally, HTTP.",
			Long: `'novaschema serve' accepts length-prefixed JSON resolve requests on --addr.
When --http-addr (or server.http_addr) is set, the same resolver is exposed as a
JSON API under /v1. Both listeners stop on SIGINT or SIGTERM.`,
			Args: cobra.NoArgs,
		}
	)
	cmd.Flags().SortFlags = false
	cmd.Flags().StringVar(&flags.Addr, "addr", "", "TCP listen address (default server.addr)")
	cmd.Flags().StringVar(&flags.HTTPAddr, "http-addr", "", "HTTP listen address (default server.http_addr)")

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		addr, httpAddr := e.cfg.Server.Addr, e.cfg.Server.HTTPAddr
		if flags.Addr != "" {
			addr = flags.Addr
		}
		if flags.HTTPAddr != "" {
			httpAddr = flags.HTTPAddr
		}

		ln, err := net.Listen("tcp", addr)
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		var hln net.Listener
		if httpAddr != "" {
			if hln, err = net.Listen("tcp", httpAddr); err != nil {
				_ = ln.Close()
				return fmt.Errorf("listen http: %w", err)
			}
		}

		g, ctx := errgroup.WithContext(cmd.Context())
		g.Go(func() error {
			e.log.Info().Str("addr", ln.Addr().String()).Msg("schemawire tcp server listening")
			return schemawire.Serve(ctx, ln, schemawire.ServerConfig{
				Addr:     addr,
				Resolver: e.resolver,
				Logger:   e.log,
			})
		})
		if hln != nil {
			api := httpapi.New(httpapi.Config{Resolver: e.resolver, Logger: e.log})
			g.Go(func() error { return api.Serve(ctx, hln) })
		}
		return g.Wait()
	}
	return cmd
}
