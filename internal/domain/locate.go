package domain

import (
	"log/slog"

	m "modedit.dev/pkg/modedit/internal/model"
)

// Locate returns the object literal assigned to module.exports at the top
// level of mod. When several statements qualify the first one is used.
func Locate(mod *m.Module) (*m.Object, error) {
	var found *m.Object

	matches := 0

	for _, stmt := range mod.Body {
		if stmt.Assignment == nil || stmt.Assignment.Target != m.ExportTarget {
			continue
		}

		obj, ok := stmt.Assignment.Value.(*m.Object)
		if !ok {
			continue
		}

		matches++

		if found == nil {
			found = obj
		}
	}

	if found == nil {
		return nil, &m.ExportShapeError{}
	}

	if matches > 1 {
		slog.Debug("multiple export assignments, using the first", "count", matches)
	}

	return found, nil
}
