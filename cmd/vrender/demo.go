package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vango-dev/vrender/internal/errors"
	"github.com/vango-dev/vrender/pkg/host/termhost"
	"github.com/vango-dev/vrender/pkg/reactive"
	"github.com/vango-dev/vrender/pkg/runtime"
	"github.com/vango-dev/vrender/pkg/vdom"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))
)

type demoKeys struct {
	Inc   key.Binding
	Dec   key.Binding
	Reset key.Binding
	Quit  key.Binding
}

func (k demoKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Inc, k.Dec, k.Reset, k.Quit}
}

func (k demoKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var defaultDemoKeys = demoKeys{
	Inc: key.NewBinding(
		key.WithKeys("up", "+", "k"),
		key.WithHelp("↑/+", "increment"),
	),
	Dec: key.NewBinding(
		key.WithKeys("down", "-", "j"),
		key.WithHelp("↓/-", "decrement"),
	),
	Reset: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reset"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c", "esc"),
		key.WithHelp("q", "quit"),
	),
}

// demoModel drives a mounted counter. Key presses write the count signal
// and the component re-renders into the terminal host before View runs.
type demoModel struct {
	count *reactive.Signal[int]
	host  *termhost.Host
	root  *runtime.Instance
	keys  demoKeys
	help  help.Model
	err   error
}

func counterDefinition(count *reactive.Signal[int]) *vdom.Definition {
	return &vdom.Definition{
		Name: "Counter",
		Setup: func() any {
			return map[string]any{"count": count}
		},
		Render: func(p vdom.Proxy) *vdom.VNode {
			n, _ := p.Get("count").(int)
			parity := "even"
			if n%2 != 0 {
				parity = "odd"
			}
			return vdom.Main(
				vdom.H1("Counter"),
				vdom.Textf("p", "count: %d", n),
				vdom.Textf("p", "parity: %s", parity),
				vdom.Ul(
					vdom.Li(vdom.Button("+1")),
					vdom.Li(vdom.Button("-1")),
				),
			)
		},
	}
}

func newDemoModel(theme termhost.Theme, logger *slog.Logger) (*demoModel, error) {
	m := &demoModel{
		count: reactive.NewSignal(0),
		host:  termhost.New(theme),
		keys:  defaultDemoKeys,
		help:  help.New(),
	}

	r := runtime.CreateRenderer(m.host, runtime.WithLogger(logger))
	app := r.CreateApp(counterDefinition(m.count))
	app.Config().ErrorHandler = func(err error, _ *runtime.Instance, _ string) {
		m.err = err
	}

	root, err := app.Mount(m.host.Root())
	if err != nil {
		return nil, err
	}
	m.root = root
	return m, nil
}

func (m *demoModel) Init() tea.Cmd {
	return nil
}

func (m *demoModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Inc):
			m.count.Update(func(n int) int { return n + 1 })
		case key.Matches(msg, m.keys.Dec):
			m.count.Update(func(n int) int { return n - 1 })
		case key.Matches(msg, m.keys.Reset):
			m.count.Set(0)
		}
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
	}
	return m, nil
}

func (m *demoModel) View() string {
	view := titleStyle.Render("vrender demo") + "\n\n" +
		m.host.Framed(m.host.Root()) + "\n" +
		statusStyle.Render(fmt.Sprintf("renders: %d", m.root.Renders())) + "\n"
	if m.err != nil {
		view += errorStyle.Render(m.err.Error()) + "\n"
	}
	return view + "\n" + m.help.View(m.keys) + "\n"
}

func demoCmd() *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run an interactive reactive counter",
		Long: `Mount a counter component into the terminal host adapter.

Each key press writes a signal; the component effect re-renders
synchronously and the new tree is drawn.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !term.IsTerminal(int(os.Stdin.Fd())) {
				return errors.Newf(errors.CategoryConfig, "demo needs an interactive terminal")
			}

			theme := termhost.DefaultTheme()
			if plain {
				theme = termhost.PlainTheme()
			}
			m, err := newDemoModel(theme, newLogger(io.Discard, slog.LevelError))
			if err != nil {
				return err
			}

			_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
			return err
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "Disable colors")

	return cmd
}
