package dashboard

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	documentVersionV1 = "1"
	// DocumentVersion exposes the current dashboard document format version for tooling.
	DocumentVersion = documentVersionV1
)

// DashboardDocument models a YAML/JSON file describing one dashboard's tabs and tiles.
type DashboardDocument struct {
	Version       string `json:"version" yaml:"version"`
	ProjectUUID   string `json:"project_uuid,omitempty" yaml:"project_uuid,omitempty"`
	DashboardUUID string `json:"dashboard_uuid" yaml:"dashboard_uuid"`
	Name          string `json:"name,omitempty" yaml:"name,omitempty"`
	ActiveTab     string `json:"active_tab,omitempty" yaml:"active_tab,omitempty"`
	TabsChanged   bool   `json:"tabs_changed,omitempty" yaml:"tabs_changed,omitempty"`
	Tabs          []Tab  `json:"tabs" yaml:"tabs"`
	Tiles         []Tile `json:"tiles" yaml:"tiles"`
	Source        string `json:"-" yaml:"-"`
}

// ReadDocument loads a dashboard document from disk.
func ReadDocument(path string) (*DashboardDocument, error) {
	f, err := os.Open(path) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("dashboard: open document %s: %w", path, err)
	}
	defer f.Close()
	doc, err := DecodeDocument(f)
	if err != nil {
		return nil, fmt.Errorf("dashboard: decode document %s: %w", path, err)
	}
	doc.Source = path
	return doc, nil
}

// DecodeDocument reads a dashboard document from any reader.
func DecodeDocument(r io.Reader) (*DashboardDocument, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	var doc DashboardDocument
	if err := decoder.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("dashboard: document is empty")
		}
		return nil, fmt.Errorf("dashboard: parse document: %w", err)
	}
	doc.applyDefaults()
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// EncodeDocument writes doc as YAML.
func EncodeDocument(w io.Writer, doc *DashboardDocument) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("dashboard: write document: %w", err)
	}
	return encoder.Close()
}

// WriteDocument saves doc to path, creating parent directories.
func WriteDocument(path string, doc *DashboardDocument) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("dashboard: mkdir %s: %w", filepath.Dir(path), err)
	}
	file, err := os.Create(path) //nolint:gosec
	if err != nil {
		return fmt.Errorf("dashboard: create document %s: %w", path, err)
	}
	defer file.Close()
	return EncodeDocument(file, doc)
}

// Validate checks the document against the schema and uniqueness rules.
func (doc *DashboardDocument) Validate() error {
	if doc.Version != documentVersionV1 {
		return fmt.Errorf("dashboard: unsupported document version %q", doc.Version)
	}
	if err := defaultDocumentValidator.Validate(doc); err != nil {
		return err
	}
	tabs := make(map[string]struct{}, len(doc.Tabs))
	for _, tab := range doc.Tabs {
		if _, exists := tabs[tab.UUID]; exists {
			return fmt.Errorf("dashboard: document duplicates tab uuid %s", tab.UUID)
		}
		tabs[tab.UUID] = struct{}{}
	}
	tiles := make(map[string]struct{}, len(doc.Tiles))
	for _, tile := range doc.Tiles {
		if _, exists := tiles[tile.UUID]; exists {
			return fmt.Errorf("dashboard: document duplicates tile uuid %s", tile.UUID)
		}
		tiles[tile.UUID] = struct{}{}
	}
	return nil
}

// State converts the document into editor state.
func (doc *DashboardDocument) State() State {
	state := State{
		ProjectUUID:   doc.ProjectUUID,
		DashboardUUID: doc.DashboardUUID,
		Tabs:          cloneTabs(doc.Tabs),
		Tiles:         cloneTiles(doc.Tiles),
		ActiveTabUUID: doc.ActiveTab,
		TabsChanged:   doc.TabsChanged,
	}
	if state.ActiveTabUUID == "" && TabsEnabled(state.Tabs) {
		state.ActiveTabUUID = state.Tabs[0].UUID
	}
	return state
}

// DocumentFromState builds a document, keeping name and source from base when given.
func DocumentFromState(state State, base *DashboardDocument) *DashboardDocument {
	doc := &DashboardDocument{
		Version:       DocumentVersion,
		ProjectUUID:   state.ProjectUUID,
		DashboardUUID: state.DashboardUUID,
		ActiveTab:     state.ActiveTabUUID,
		TabsChanged:   state.TabsChanged,
		Tabs:          SortTabs(state.Tabs),
		Tiles:         SortTiles(state.Tiles),
	}
	if base != nil {
		doc.Name = base.Name
		doc.Source = base.Source
	}
	return doc
}

func (doc *DashboardDocument) applyDefaults() {
	if doc.Version == "" {
		doc.Version = documentVersionV1
	}
}
