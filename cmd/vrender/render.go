package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vango-dev/vrender/internal/config"
	"github.com/vango-dev/vrender/internal/errors"
	"github.com/vango-dev/vrender/pkg/host/htmlhost"
	"github.com/vango-dev/vrender/pkg/host/imghost"
	"github.com/vango-dev/vrender/pkg/host/termhost"
	"github.com/vango-dev/vrender/pkg/observe"
	"github.com/vango-dev/vrender/pkg/publish"
	"github.com/vango-dev/vrender/pkg/runtime"
	"github.com/vango-dev/vrender/pkg/treefile"
	"github.com/vango-dev/vrender/pkg/vdom"
)

type renderOptions struct {
	host   string
	out    string
	pretty bool
	plain  bool
	sets   []string
}

func renderCmd(flags *globalFlags) *cobra.Command {
	opts := renderOptions{}

	cmd := &cobra.Command{
		Use:   "render FILE",
		Short: "Render a tree file once",
		Long: `Mount the root component of a tree file and write the result.

The output goes to stdout, a file, or an S3 object when --out is an
s3:// URL. State can be overridden before mounting with --set.

Examples:
  vrender render app.yaml
  vrender render app.yaml --host term
  vrender render app.yaml --host png --out app.png
  vrender render app.yaml --set App.count=3 --out s3://previews/app.html`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := flags.setup(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("host") {
				opts.host = cfg.Host
			}
			if !cmd.Flags().Changed("pretty") {
				opts.pretty = cfg.Preview.Pretty
			}
			return runRender(cmdContext(cmd), cmd.OutOrStdout(), args[0], opts, cfg, logger)
		},
	}

	cmd.Flags().StringVar(&opts.host, "host", config.DefaultHostAdapter, "Host adapter: html, term, png")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "Output path or s3://bucket/key (default stdout)")
	cmd.Flags().BoolVar(&opts.pretty, "pretty", false, "Indent HTML output")
	cmd.Flags().BoolVar(&opts.plain, "plain", false, "Disable terminal colors")
	cmd.Flags().StringArrayVar(&opts.sets, "set", nil, "Override state before mounting (Component.key=value)")

	return cmd
}

func runRender(ctx context.Context, stdout io.Writer, path string, opts renderOptions, cfg *config.Config, logger *slog.Logger) error {
	program, err := loadProgram(path, opts.sets)
	if err != nil {
		return err
	}

	data, err := renderProgram(program, opts, cfg, logger, isTerminal(stdout) && opts.out == "")
	if err != nil {
		return err
	}

	switch {
	case opts.out == "":
		_, err = stdout.Write(data)
		return err
	case publish.IsURL(opts.out):
		client, err := publish.NewS3Client(publish.S3Config{
			Region:   cfg.Publish.Region,
			Endpoint: cfg.Publish.Endpoint,
		})
		if err != nil {
			return err
		}
		p := publish.New(client, publish.Options{Prefix: cfg.Publish.Prefix})
		loc, err := p.Publish(ctx, opts.out, contentTypeFor(opts.host), data)
		if err != nil {
			return err
		}
		logger.Info("published", "location", loc.String(), "bytes", len(data))
		return nil
	default:
		if dir := filepath.Dir(opts.out); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return err
			}
		}
		if err := os.WriteFile(opts.out, data, 0644); err != nil {
			return err
		}
		logger.Info("wrote", "path", opts.out, "bytes", len(data))
		return nil
	}
}

// loadProgram reads and compiles a tree file, then applies state overrides.
func loadProgram(path string, sets []string) (*treefile.Program, error) {
	doc, err := treefile.Load(path)
	if err != nil {
		return nil, err
	}
	program, err := treefile.Build(doc)
	if err != nil {
		return nil, err
	}
	for _, set := range sets {
		key, raw, ok := strings.Cut(set, "=")
		if !ok {
			return nil, errors.New("E061").WithDetailf("--set %q must be Component.key=value", set)
		}
		if err := program.Store.SetPath(key, treefile.ParseValue(raw)); err != nil {
			return nil, err
		}
	}
	return program, nil
}

// renderObserver combines debug logging, extra observers and, when
// enabled, tracing.
func renderObserver(cfg *config.Config, logger *slog.Logger, extra ...runtime.Observer) runtime.Observer {
	observers := append([]runtime.Observer{observe.Logging(logger)}, extra...)
	if cfg.Tracing.Enabled {
		observers = append(observers, observe.OpenTelemetry(observe.WithTracerName(cfg.Tracing.TracerName)))
	}
	return observe.Multi(observers...)
}

// rendererOptions builds the options for a one-shot render.
func rendererOptions(program *treefile.Program, cfg *config.Config, logger *slog.Logger) []runtime.Option {
	opts := []runtime.Option{
		runtime.WithLogger(logger),
		runtime.WithObserver(renderObserver(cfg, logger)),
	}
	if v := program.Doc.Version; v != "" {
		opts = append(opts, runtime.WithVersion(v))
	}
	return opts
}

// mountProgram mounts program's root into container on host.
func mountProgram(program *treefile.Program, host runtime.HostAdapter, container vdom.HostNode, opts []runtime.Option) (*runtime.App, error) {
	app := runtime.CreateRenderer(host, opts...).CreateApp(program.Root).Use(program)
	if _, err := app.Mount(container); err != nil {
		return nil, err
	}
	return app, nil
}

func renderProgram(program *treefile.Program, opts renderOptions, cfg *config.Config, logger *slog.Logger, colors bool) ([]byte, error) {
	ropts := rendererOptions(program, cfg, logger)
	var buf bytes.Buffer

	switch opts.host {
	case "html":
		host := htmlhost.New(htmlhost.Config{Pretty: opts.pretty})
		if _, err := mountProgram(program, host, host.Root(), ropts); err != nil {
			return nil, err
		}
		title := program.Doc.Title
		if title == "" {
			title = program.Doc.Name
		}
		if err := host.WritePage(&buf, host.Root(), htmlhost.Page{Title: title}); err != nil {
			return nil, err
		}

	case "term":
		theme := termhost.DefaultTheme()
		if opts.plain || !colors {
			theme = termhost.PlainTheme()
		}
		host := termhost.New(theme)
		if _, err := mountProgram(program, host, host.Root(), ropts); err != nil {
			return nil, err
		}
		buf.WriteString(host.View(host.Root()))
		buf.WriteByte('\n')

	case "png":
		host := imghost.New(imghost.Options{})
		if _, err := mountProgram(program, host, host.Root(), ropts); err != nil {
			return nil, err
		}
		if err := host.EncodePNG(&buf, host.Root()); err != nil {
			return nil, err
		}

	default:
		return nil, errors.New("E061").
			WithDetailf("Unknown host adapter %q", opts.host).
			WithSuggestion("Use one of: " + strings.Join(config.HostAdapters, ", "))
	}

	return buf.Bytes(), nil
}

func contentTypeFor(host string) string {
	switch host {
	case "html":
		return "text/html; charset=utf-8"
	case "png":
		return "image/png"
	default:
		return "text/plain; charset=utf-8"
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// describe formats a short summary of a program for logs and banners.
func describe(program *treefile.Program) string {
	return fmt.Sprintf("%s (%d components, root %s)", program.Doc.Name, len(program.Components), program.Doc.Root)
}
