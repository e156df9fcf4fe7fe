package dashboard

import (
	"context"

	"go.uber.org/zap"
)

// Telemetry records dashboard events for observability.
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

// ZapTelemetry writes telemetry events as structured zap log entries.
type ZapTelemetry struct {
	logger *zap.Logger
}

// NewZapTelemetry wraps logger; a nil logger discards events.
func NewZapTelemetry(logger *zap.Logger) *ZapTelemetry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ZapTelemetry{logger: logger}
}

// Record logs the event with its payload and the editor attached to ctx.
func (t *ZapTelemetry) Record(ctx context.Context, event string, payload map[string]any) {
	fields := make([]zap.Field, 0, len(payload)+1)
	if editor := EditorFromContext(ctx); editor.ActorID != "" {
		fields = append(fields, zap.String("actor_id", editor.ActorID))
	}
	for key, value := range payload {
		fields = append(fields, zap.Any(key, value))
	}
	t.logger.Info(event, fields...)
}
