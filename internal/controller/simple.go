package controller

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	m "modedit.dev/pkg/modedit/internal/model"
)

const maxCellWidth = 60

// SimpleUI implements UI using cobra Command's output writer.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// DisplayReports prints diffs followed by a status table.
func (s *SimpleUI) DisplayReports(ctx context.Context, reports []m.Report, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}

	for _, report := range reports {
		if report.Diff != "" {
			s.printf("%s", report.Diff)
		}
	}

	s.printf("%s", renderReportTable(reports))

	if err != nil {
		s.printf("edit error: %v\n", err)
		return err
	}

	return nil
}

// DisplayValue prints text as is.
func (s *SimpleUI) DisplayValue(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("%s\n", text)

	return nil
}

// DisplayEntries prints the entries as a table. The pager option is ignored.
func (s *SimpleUI) DisplayEntries(ctx context.Context, entries []m.Entry, options ...DisplayOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	cfg := newDisplayConfig(options)
	if cfg.title != "" {
		s.printf("%s\n", cfg.title)
	}

	s.printf("%s", renderEntryTable(entries))

	return nil
}

func renderReportTable(reports []m.Report) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"File", "Status"})
	table.SetBorder(false)
	table.SetAutoFormatHeaders(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT})

	files, changed := 0, 0

	for _, report := range reports {
		if report.File.Path == "" {
			continue
		}

		status := report.Status.String()
		if report.Err != nil {
			status = fmt.Sprintf("%s: %v", status, report.Err)
		}

		files++

		if report.Status == m.Changed {
			changed++
		}

		table.Append([]string{string(report.File.Path), status})
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Files %d", files),
		fmt.Sprintf("%d changed", changed),
	})

	table.Render()

	return tableBuffer.String()
}

func renderEntryTable(entries []m.Entry) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Path", "Shape", "Value"})
	table.SetBorder(false)
	table.SetAutoFormatHeaders(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT})

	for _, entry := range entries {
		table.Append([]string{entryPath(entry), entry.Shape.String(), cellText(entry.Text)})
	}

	table.Render()

	return tableBuffer.String()
}

func entryPath(entry m.Entry) string {
	if entry.Path == "" {
		return "."
	}

	return entry.Path
}

// cellText folds source text onto one line and shortens it.
func cellText(text string) string {
	text = strings.Join(strings.Fields(text), " ")

	if runes := []rune(text); len(runes) > maxCellWidth {
		return string(runes[:maxCellWidth-3]) + "..."
	}

	return text
}

func (s *SimpleUI) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
