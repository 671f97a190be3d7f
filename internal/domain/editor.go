package domain

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pmezard/go-difflib/difflib"
	"golang.org/x/sync/errgroup"
	"modedit.dev/pkg/modedit/internal/adapter"
	m "modedit.dev/pkg/modedit/internal/model"
)

// ApplyOptions controls how an Editor writes its results.
type ApplyOptions struct {
	DryRun   bool
	Diff     bool
	Parallel int
}

// Editor runs edits over many files.
type Editor interface {
	// Apply runs script against every file.
	Apply(ctx context.Context, files []m.Path, script m.EditScript, opts ApplyOptions) ([]m.Report, error)
	// Edit runs mutate against every file. Nothing is written unless every
	// file succeeds.
	Edit(ctx context.Context, files []m.Path, mutate Mutator, opts ApplyOptions) ([]m.Report, error)
}

type editor struct {
	adapter.SourceFSAdapter
	Updater
}

// NewEditor creates an Editor reading and writing through fsAdapter.
func NewEditor(fsAdapter adapter.SourceFSAdapter, updater Updater) Editor {
	return &editor{
		SourceFSAdapter: fsAdapter,
		Updater:         updater,
	}
}

func (e *editor) Apply(ctx context.Context, files []m.Path, script m.EditScript, opts ApplyOptions) ([]m.Report, error) {
	mutate, err := ScriptMutator(script)
	if err != nil {
		return nil, err
	}

	return e.Edit(ctx, files, mutate, opts)
}

func (e *editor) Edit(ctx context.Context, files []m.Path, mutate Mutator, opts ApplyOptions) ([]m.Report, error) {
	reports := make([]m.Report, len(files))

	group, groupCtx := errgroup.WithContext(ctx)
	if opts.Parallel > 0 {
		group.SetLimit(opts.Parallel)
	}

	for i, path := range files {
		group.Go(func() error {
			report, err := e.editFile(groupCtx, path, mutate, opts.Diff)
			reports[i] = report

			if err != nil {
				slog.Error("edit failed", "file", path, "error", err)
				return fmt.Errorf("%s: %w", path, err)
			}

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return reports, err
	}

	if opts.DryRun {
		return reports, nil
	}

	for _, report := range reports {
		if report.Status != m.Changed {
			continue
		}

		if err := e.WriteFile(ctx, report.File.Path, report.Output); err != nil {
			return reports, fmt.Errorf("write %s: %w", report.File.Path, err)
		}

		slog.Debug("file written", "file", report.File.Path)
	}

	return reports, nil
}

func (e *editor) editFile(ctx context.Context, path m.Path, mutate Mutator, withDiff bool) (m.Report, error) {
	report := m.Report{File: m.File{Path: path}, Status: m.Failed}

	hash, err := e.HashFile(ctx, path)
	if err != nil {
		report.Err = err
		return report, err
	}

	report.File.Hash = hash

	source, err := e.ReadFile(ctx, path)
	if err != nil {
		report.Err = err
		return report, err
	}

	output, err := e.Update(ctx, source, mutate)
	if err != nil {
		report.Err = err
		return report, err
	}

	report.Output = output
	report.Status = m.Unchanged

	if string(output) != string(source) {
		report.Status = m.Changed
	}

	if withDiff && report.Status == m.Changed {
		report.Diff, err = UnifiedDiff(string(path), source, output)
		if err != nil {
			report.Err = err
			return report, err
		}
	}

	return report, nil
}

// UnifiedDiff renders the change from before to after as a unified diff.
func UnifiedDiff(name string, before, after []byte) (string, error) {
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(before)),
		B:        difflib.SplitLines(string(after)),
		FromFile: "a/" + name,
		ToFile:   "b/" + name,
		Context:  3,
	}

	return difflib.GetUnifiedDiffString(diff)
}

type compiledEdit struct {
	op    m.EditOp
	path  Path
	value m.Value
}

// ScriptMutator compiles script into a Mutator. Paths are parsed once;
// values are cloned on every run so concurrent files never share them.
func ScriptMutator(script m.EditScript) (Mutator, error) {
	edits := make([]compiledEdit, 0, len(script.Edits))

	for _, edit := range script.Edits {
		path, err := ParsePath(edit.Path)
		if err != nil {
			return nil, err
		}

		edits = append(edits, compiledEdit{op: edit.Op, path: path, value: edit.Value})
	}

	return func(root m.Value) (m.Value, error) {
		for _, edit := range edits {
			var err error

			root, err = applyEdit(root, edit)
			if err != nil {
				return nil, err
			}
		}

		return root, nil
	}, nil
}

func applyEdit(root m.Value, edit compiledEdit) (m.Value, error) {
	value := m.Clone(edit.value)

	switch edit.op {
	case m.OpSet:
		if len(edit.path) == 0 {
			return value, nil
		}

		return root, SetPath(root, edit.path, value)
	case m.OpDelete:
		return root, DeletePath(root, edit.path)
	case m.OpAppend:
		return root, AppendPath(root, edit.path, value)
	case m.OpMerge:
		return root, MergePath(root, edit.path, value)
	}

	return nil, fmt.Errorf("unknown edit operation %q", edit.op)
}
