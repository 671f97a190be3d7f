// Package controller provides output adapters for displaying edit results
// and export listings.
package controller

import (
	"context"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	m "modedit.dev/pkg/modedit/internal/model"
)

// DisplayOption is a functional option for the Display methods.
type DisplayOption func(*DisplayConfig)

// DisplayConfig holds per-call display settings.
type DisplayConfig struct {
	pager bool
	title string
}

// WithPager asks for an interactive scrollable view when the UI supports one.
func WithPager() DisplayOption {
	return func(c *DisplayConfig) {
		c.pager = true
	}
}

// WithTitle sets the heading shown above a listing.
func WithTitle(title string) DisplayOption {
	return func(c *DisplayConfig) {
		c.title = title
	}
}

func newDisplayConfig(options []DisplayOption) DisplayConfig {
	var cfg DisplayConfig
	for _, option := range options {
		option(&cfg)
	}

	return cfg
}

// UI defines the interface for presenting command output.
// Implementations can use different output methods (simple text, TUI, etc).
type UI interface {
	// DisplayReports shows the per-file outcome of an edit and any diffs.
	DisplayReports(ctx context.Context, reports []m.Report, err error) error
	// DisplayValue prints the source text of a single value.
	DisplayValue(ctx context.Context, text string) error
	// DisplayEntries shows the flattened leaves of an export object.
	DisplayEntries(ctx context.Context, entries []m.Entry, options ...DisplayOption) error
}

// NewUI returns a TUI when output is a terminal and a SimpleUI otherwise.
func NewUI(cmd *cobra.Command, tty bool) UI {
	if tty {
		return NewTUI(cmd.OutOrStdout(), true)
	}

	return NewSimpleUI(cmd)
}

// IsTTY reports whether f is an interactive terminal.
func IsTTY(f *os.File) bool {
	if f == nil {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
