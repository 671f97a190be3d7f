package controller

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	m "modedit.dev/pkg/modedit/internal/model"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	addedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	removedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hunkStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	pathStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	shapeStyle   = lipgloss.NewStyle().Faint(true)
	footerStyle  = lipgloss.NewStyle().Faint(true)
	failedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
)

// TUI implements UI with colored output and a Bubble Tea pager.
type TUI struct {
	output      io.Writer
	interactive bool
}

// NewTUI creates a new TUI. Interactive enables the pager.
func NewTUI(output io.Writer, interactive bool) *TUI {
	return &TUI{output: output, interactive: interactive}
}

// DisplayReports prints colored diffs and a status line per file.
func (p *TUI) DisplayReports(ctx context.Context, reports []m.Report, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}

	var b strings.Builder

	for _, report := range reports {
		if report.Diff != "" {
			b.WriteString(colorDiff(report.Diff))
		}
	}

	for _, report := range reports {
		if report.File.Path == "" {
			continue
		}

		status := report.Status.String()

		switch {
		case report.Err != nil:
			status = failedStyle.Render(status) + " " + report.Err.Error()
		case report.Status == m.Changed:
			status = addedStyle.Render(status)
		default:
			status = shapeStyle.Render(status)
		}

		fmt.Fprintf(&b, "%s %s\n", pathStyle.Render(string(report.File.Path)), status)
	}

	if _, writeErr := io.WriteString(p.output, b.String()); writeErr != nil {
		return writeErr
	}

	return err
}

// DisplayValue prints text as is.
func (p *TUI) DisplayValue(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	_, err := fmt.Fprintln(p.output, text)

	return err
}

// DisplayEntries renders the entries and, with WithPager on an interactive
// terminal, shows them in a scrollable view.
func (p *TUI) DisplayEntries(ctx context.Context, entries []m.Entry, options ...DisplayOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	cfg := newDisplayConfig(options)
	content := renderEntries(entries)

	if !cfg.pager || !p.interactive {
		if cfg.title != "" {
			content = titleStyle.Render(cfg.title) + "\n" + content
		}

		_, err := io.WriteString(p.output, content)

		return err
	}

	program := tea.NewProgram(
		newPagerModel(cfg.title, content),
		tea.WithOutput(p.output),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	_, err := program.Run()

	return err
}

func renderEntries(entries []m.Entry) string {
	if len(entries) == 0 {
		return "  (empty)\n"
	}

	width := 0
	for _, entry := range entries {
		width = max(width, len(entryPath(entry)))
	}

	var b strings.Builder

	for _, entry := range entries {
		path := entryPath(entry)
		fmt.Fprintf(&b, "  %s%s  %s  %s\n",
			pathStyle.Render(path),
			strings.Repeat(" ", width-len(path)),
			shapeStyle.Render(fmt.Sprintf("%-7s", entry.Shape)),
			cellText(entry.Text))
	}

	return b.String()
}

func colorDiff(diff string) string {
	lines := strings.SplitAfter(diff, "\n")

	var b strings.Builder

	for _, line := range lines {
		text := strings.TrimSuffix(line, "\n")
		newline := line[len(text):]

		switch {
		case strings.HasPrefix(text, "+++"), strings.HasPrefix(text, "---"):
			b.WriteString(titleStyle.Render(text))
		case strings.HasPrefix(text, "@@"):
			b.WriteString(hunkStyle.Render(text))
		case strings.HasPrefix(text, "+"):
			b.WriteString(addedStyle.Render(text))
		case strings.HasPrefix(text, "-"):
			b.WriteString(removedStyle.Render(text))
		default:
			b.WriteString(text)
		}

		b.WriteString(newline)
	}

	return b.String()
}

// pagerModel is the Bubble Tea model for the scrollable listing.
type pagerModel struct {
	title    string
	content  string
	viewport viewport.Model
	ready    bool
}

const pagerChrome = 3 // title line, blank line, footer

func newPagerModel(title, content string) pagerModel {
	return pagerModel{title: title, content: content}
}

func (pm pagerModel) Init() tea.Cmd {
	return nil
}

func (pm pagerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return pm, tea.Quit
		}
	case tea.WindowSizeMsg:
		height := max(msg.Height-pagerChrome, 1)

		if !pm.ready {
			pm.viewport = viewport.New(msg.Width, height)
			pm.viewport.SetContent(pm.content)
			pm.ready = true
		} else {
			pm.viewport.Width = msg.Width
			pm.viewport.Height = height
		}
	}

	var cmd tea.Cmd

	pm.viewport, cmd = pm.viewport.Update(msg)

	return pm, cmd
}

func (pm pagerModel) View() string {
	if !pm.ready {
		return "loading..."
	}

	footer := footerStyle.Render(fmt.Sprintf("%3.f%% | ↑/k: up | ↓/j: down | q: quit", pm.viewport.ScrollPercent()*100))

	return titleStyle.Render(pm.title) + "\n\n" + pm.viewport.View() + "\n" + footer
}
