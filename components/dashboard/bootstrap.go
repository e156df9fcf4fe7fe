package dashboard

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// SeedDocuments writes the state of each document into store.
func SeedDocuments(ctx context.Context, store StateStore, docs ...*DashboardDocument) error {
	if store == nil {
		return errMissingStateStore
	}
	var seedErr error
	for _, doc := range docs {
		if doc == nil {
			continue
		}
		if err := store.SaveState(ctx, doc.State()); err != nil {
			seedErr = errors.Join(seedErr, fmt.Errorf("seed dashboard %s: %w", doc.DashboardUUID, err))
		}
	}
	return seedErr
}

// ReadDocumentDir loads every *.yaml/*.yml document in dir, sorted by file name.
func ReadDocumentDir(dir string) ([]*DashboardDocument, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("dashboard: read document dir %s: %w", dir, err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch filepath.Ext(entry.Name()) {
		case ".yaml", ".yml":
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	docs := make([]*DashboardDocument, 0, len(names))
	for _, name := range names {
		doc, err := ReadDocument(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}
