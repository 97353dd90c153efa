package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/vango-dev/vrender/pkg/observe"
	"github.com/vango-dev/vrender/pkg/preview"
	"github.com/vango-dev/vrender/pkg/runtime"
)

func serveCmd(flags *globalFlags) *cobra.Command {
	var (
		port int
		host string
		sets []string
	)

	cmd := &cobra.Command{
		Use:   "serve FILE",
		Short: "Start the live preview server",
		Long: `Serve a tree file as an HTML page that updates live.

State is changed by posting to /state/{component}/{key}; every change
re-renders the affected component and pushes the new markup to
connected browsers.

Endpoints:
  GET  /                         Page
  GET  /tree                     Rendered fragment
  GET  /state                    State snapshot (JSON)
  POST /state/{component}/{key}  Write a state value
  GET  /ws                       Live updates
  GET  /metrics                  Prometheus metrics

Examples:
  vrender serve app.yaml
  vrender serve app.yaml --port=8080
  curl -X POST -d 5 localhost:4000/state/App/count`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := flags.setup(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			if port > 0 {
				cfg.Preview.Port = port
			}
			if host != "" {
				cfg.Preview.Host = host
			}

			program, err := loadProgram(args[0], sets)
			if err != nil {
				return err
			}

			registry := prometheus.NewRegistry()
			registry.MustRegister(
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)
			metrics := observe.Prometheus(
				observe.WithNamespace(cfg.Metrics.Namespace),
				observe.WithRegistry(registry),
			)

			srv, err := preview.New(program, preview.Config{
				Title:    cfg.Preview.Title,
				Pretty:   cfg.Preview.Pretty,
				Logger:   logger,
				Gatherer: registry,
				RendererOptions: []runtime.Option{
					runtime.WithObserver(renderObserver(cfg, logger, metrics)),
				},
			})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			printBanner(w)
			info(w, "serve %s", describe(program))
			success(w, "Listening on %s", cfg.PreviewURL())

			ctx, stop := signal.NotifyContext(cmdContext(cmd), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return srv.ListenAndServe(ctx, cfg.PreviewAddress())
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to run on (default from vrender.json)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from vrender.json)")
	cmd.Flags().StringArrayVar(&sets, "set", nil, "Override state before mounting (Component.key=value)")

	return cmd
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
