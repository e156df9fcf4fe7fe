package dashboard

import "context"

// EditorContext captures who is editing and in which locale.
type EditorContext struct {
	ActorID string
	Locale  string
}

type editorContextKey struct{}

// ContextWithEditor stores editor metadata on the provided context.
func ContextWithEditor(ctx context.Context, meta EditorContext) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, editorContextKey{}, meta)
}

// EditorFromContext extracts editor metadata, if present.
func EditorFromContext(ctx context.Context) EditorContext {
	if ctx == nil {
		return EditorContext{}
	}
	if meta, ok := ctx.Value(editorContextKey{}).(EditorContext); ok {
		return meta
	}
	return EditorContext{}
}
