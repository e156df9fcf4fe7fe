package commands

import (
	"context"

	"github.com/goliatone/go-bi-dashboard/components/dashboard"
)

// Telemetry allows commands to emit structured events.
type Telemetry interface {
	Record(ctx context.Context, event string, payload map[string]any)
}

type noopTelemetry struct{}

func (noopTelemetry) Record(context.Context, string, map[string]any) {}

func normalizeTelemetry(t Telemetry) Telemetry {
	if t == nil {
		return noopTelemetry{}
	}
	return t
}

// withEditor attaches the editor carried by an input, keeping any editor the
// transport already placed on ctx when the input has none.
func withEditor(ctx context.Context, editor dashboard.EditorContext) context.Context {
	if editor.ActorID == "" && editor.Locale == "" {
		return ctx
	}
	return dashboard.ContextWithEditor(ctx, editor)
}
