package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vango-dev/vrender/internal/config"
	"github.com/vango-dev/vrender/pkg/host/termhost"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRunRender_Hosts(t *testing.T) {
	tests := []struct {
		name  string
		opts  renderOptions
		check func(t *testing.T, out string)
	}{
		{
			name: "html",
			opts: renderOptions{host: "html"},
			check: func(t *testing.T, out string) {
				for _, want := range []string{"<title>Greeting</title>", "<h1>Hello, world</h1>", "<p>visits: 1</p>"} {
					if !strings.Contains(out, want) {
						t.Errorf("expected %q in output:\n%s", want, out)
					}
				}
			},
		},
		{
			name: "html with overrides",
			opts: renderOptions{host: "html", sets: []string{"App.name=Ada", "App.visits=7"}},
			check: func(t *testing.T, out string) {
				if !strings.Contains(out, "<h1>Hello, Ada</h1>") || !strings.Contains(out, "<p>visits: 7</p>") {
					t.Errorf("expected overridden state in output:\n%s", out)
				}
			},
		},
		{
			name: "term",
			opts: renderOptions{host: "term"},
			check: func(t *testing.T, out string) {
				if out != "Hello, world\nvisits: 1\n" {
					t.Errorf("unexpected terminal output %q", out)
				}
			},
		},
		{
			name: "png",
			opts: renderOptions{host: "png"},
			check: func(t *testing.T, out string) {
				if !strings.HasPrefix(out, "\x89PNG") {
					t.Errorf("expected PNG signature, got %q", out[:min(8, len(out))])
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := runRender(context.Background(), &buf, "testdata/greeting.yaml", tt.opts, config.Default(), quietLogger())
			if err != nil {
				t.Fatalf("render: %v", err)
			}
			tt.check(t, buf.String())
		})
	}
}

func TestRunRender_File(t *testing.T) {
	out := filepath.Join(t.TempDir(), "site", "index.html")
	opts := renderOptions{host: "html", out: out}

	var stdout bytes.Buffer
	if err := runRender(context.Background(), &stdout, "testdata/greeting.yaml", opts, config.Default(), quietLogger()); err != nil {
		t.Fatalf("render: %v", err)
	}
	if stdout.Len() != 0 {
		t.Errorf("expected nothing on stdout, got %q", stdout.String())
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.Contains(string(data), "<h1>Hello, world</h1>") {
		t.Errorf("unexpected file contents:\n%s", data)
	}
}

func TestRunRender_Errors(t *testing.T) {
	tests := []struct {
		name string
		path string
		opts renderOptions
	}{
		{"missing file", "testdata/missing.yaml", renderOptions{host: "html"}},
		{"unknown host", "testdata/greeting.yaml", renderOptions{host: "pdf"}},
		{"malformed set", "testdata/greeting.yaml", renderOptions{host: "html", sets: []string{"App.name"}}},
		{"unknown state key", "testdata/greeting.yaml", renderOptions{host: "html", sets: []string{"App.age=3"}}},
		{"bad s3 url", "testdata/greeting.yaml", renderOptions{host: "html", out: "s3://bucket"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Publish.Region = "eu-west-1"
			var buf bytes.Buffer
			if err := runRender(context.Background(), &buf, tt.path, tt.opts, cfg, quietLogger()); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestGlobalFlags_Setup(t *testing.T) {
	dir := t.TempDir()

	flags := &globalFlags{configDir: dir, logLevel: "debug"}
	cfg, logger, err := flags.setup(io.Discard)
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	if cfg.Level() != slog.LevelDebug {
		t.Errorf("Level() = %v, want debug", cfg.Level())
	}
	if !logger.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("expected debug logging to be enabled")
	}

	flags.logLevel = "chatty"
	if _, _, err := flags.setup(io.Discard); err == nil {
		t.Error("expected an error for an unknown log level")
	}
}

func TestVersionCmd_Short(t *testing.T) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version", "--short"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if out.String() != version+"\n" {
		t.Errorf("unexpected output %q", out.String())
	}
}

func TestDemoModel_Keys(t *testing.T) {
	m, err := newDemoModel(termhost.PlainTheme(), quietLogger())
	if err != nil {
		t.Fatalf("new model: %v", err)
	}
	if !strings.Contains(m.View(), "count: 0") {
		t.Fatalf("expected initial count in view:\n%s", m.View())
	}

	press := func(k tea.KeyMsg) tea.Cmd {
		_, cmd := m.Update(k)
		return cmd
	}
	runes := func(s string) tea.KeyMsg {
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}

	press(tea.KeyMsg{Type: tea.KeyUp})
	press(runes("+"))
	press(runes("+"))
	press(runes("-"))

	view := m.View()
	if !strings.Contains(view, "count: 2") || !strings.Contains(view, "parity: even") {
		t.Errorf("expected count 2 in view:\n%s", view)
	}
	if m.root.Renders() != 5 {
		t.Errorf("expected 5 renders, got %d", m.root.Renders())
	}

	press(runes("r"))
	if m.count.Peek() != 0 || !strings.Contains(m.View(), "count: 0") {
		t.Errorf("expected reset to 0, got %d", m.count.Peek())
	}

	cmd := press(runes("q"))
	if cmd == nil {
		t.Fatal("expected a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}
