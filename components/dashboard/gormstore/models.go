package gormstore

import (
	"time"

	"github.com/goliatone/go-bi-dashboard/components/dashboard"
)

// DashboardRecord stores the per-dashboard editing flags.
type DashboardRecord struct {
	StateKey      string `gorm:"primaryKey;size:255"`
	ProjectUUID   string `gorm:"size:64;index"`
	DashboardUUID string `gorm:"size:64;not null;index"`
	ActiveTabUUID string `gorm:"size:64"`
	TabsChanged   bool
	UpdatedAt     time.Time
}

// TableName pins the table name.
func (DashboardRecord) TableName() string { return "dashboard_states" }

// TabRecord stores one tab. Position keeps the stored (not display) order.
type TabRecord struct {
	DashboardKey string `gorm:"primaryKey;size:255"`
	UUID         string `gorm:"primaryKey;size:64"`
	Name         string `gorm:"not null"`
	IsDefault    bool
	SortOrder    int
	Position     int
}

// TableName pins the table name.
func (TabRecord) TableName() string { return "dashboard_tabs" }

// TileRecord stores one tile with its weak tab reference.
type TileRecord struct {
	DashboardKey string `gorm:"primaryKey;size:255"`
	UUID         string `gorm:"primaryKey;size:64"`
	Type         string
	Title        string
	X            int
	Y            int
	W            int
	H            int
	TabUUID      *string `gorm:"size:64"`
	Position     int
}

// TableName pins the table name.
func (TileRecord) TableName() string { return "dashboard_tiles" }

func recordKey(ref dashboard.DashboardRef) string {
	if ref.ProjectUUID == "" {
		return ref.DashboardUUID
	}
	return ref.ProjectUUID + "::" + ref.DashboardUUID
}

func tabRecords(key string, tabs []dashboard.Tab) []TabRecord {
	records := make([]TabRecord, 0, len(tabs))
	for i, tab := range tabs {
		records = append(records, TabRecord{
			DashboardKey: key,
			UUID:         tab.UUID,
			Name:         tab.Name,
			IsDefault:    tab.IsDefault,
			SortOrder:    tab.Order,
			Position:     i,
		})
	}
	return records
}

func tileRecords(key string, tiles []dashboard.Tile) []TileRecord {
	records := make([]TileRecord, 0, len(tiles))
	for i, tile := range tiles {
		record := TileRecord{
			DashboardKey: key,
			UUID:         tile.UUID,
			Type:         tile.Type,
			Title:        tile.Title,
			X:            tile.X,
			Y:            tile.Y,
			W:            tile.W,
			H:            tile.H,
			Position:     i,
		}
		if tile.TabUUID != nil {
			record.TabUUID = dashboard.StringPtr(*tile.TabUUID)
		}
		records = append(records, record)
	}
	return records
}

func (r TabRecord) tab() dashboard.Tab {
	return dashboard.Tab{UUID: r.UUID, Name: r.Name, IsDefault: r.IsDefault, Order: r.SortOrder}
}

func (r TileRecord) tile() dashboard.Tile {
	return dashboard.Tile{
		UUID:    r.UUID,
		Type:    r.Type,
		Title:   r.Title,
		X:       r.X,
		Y:       r.Y,
		W:       r.W,
		H:       r.H,
		TabUUID: r.TabUUID,
	}
}
