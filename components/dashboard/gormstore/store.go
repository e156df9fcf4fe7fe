package gormstore

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/goliatone/go-bi-dashboard/components/dashboard"
)

// Store is a dashboard.StateStore backed by gorm. Each save replaces the
// dashboard's tabs and tiles inside one transaction.
type Store struct {
	db *gorm.DB
}

var _ dashboard.StateStore = (*Store)(nil)

// NewStore wraps an opened, migrated database.
func NewStore(db *gorm.DB) (*Store, error) {
	if db == nil {
		return nil, errors.New("gormstore: database is required")
	}
	return &Store{db: db}, nil
}

// LoadState returns the stored state, or an empty dashboard when nothing was saved.
func (s *Store) LoadState(ctx context.Context, ref dashboard.DashboardRef) (dashboard.State, error) {
	if ref.DashboardUUID == "" {
		return dashboard.State{}, errors.New("gormstore: dashboard uuid is required")
	}
	key := recordKey(ref)
	state := dashboard.State{
		ProjectUUID:   ref.ProjectUUID,
		DashboardUUID: ref.DashboardUUID,
		Tabs:          []dashboard.Tab{},
		Tiles:         []dashboard.Tile{},
	}
	db := s.db.WithContext(ctx)

	var record DashboardRecord
	err := db.Where("state_key = ?", key).Take(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return state, nil
	}
	if err != nil {
		return dashboard.State{}, fmt.Errorf("gormstore: load dashboard %s: %w", ref.DashboardUUID, err)
	}
	state.ActiveTabUUID = record.ActiveTabUUID
	state.TabsChanged = record.TabsChanged

	var tabs []TabRecord
	if err := db.Where("dashboard_key = ?", key).Order("position").Find(&tabs).Error; err != nil {
		return dashboard.State{}, fmt.Errorf("gormstore: load tabs %s: %w", ref.DashboardUUID, err)
	}
	for _, tab := range tabs {
		state.Tabs = append(state.Tabs, tab.tab())
	}

	var tiles []TileRecord
	if err := db.Where("dashboard_key = ?", key).Order("position").Find(&tiles).Error; err != nil {
		return dashboard.State{}, fmt.Errorf("gormstore: load tiles %s: %w", ref.DashboardUUID, err)
	}
	for _, tile := range tiles {
		state.Tiles = append(state.Tiles, tile.tile())
	}
	return state, nil
}

// SaveState replaces the stored state for the dashboard.
func (s *Store) SaveState(ctx context.Context, state dashboard.State) error {
	if state.DashboardUUID == "" {
		return errors.New("gormstore: dashboard uuid is required")
	}
	key := recordKey(state.Ref())
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		record := DashboardRecord{
			StateKey:      key,
			ProjectUUID:   state.ProjectUUID,
			DashboardUUID: state.DashboardUUID,
			ActiveTabUUID: state.ActiveTabUUID,
			TabsChanged:   state.TabsChanged,
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "state_key"}},
			UpdateAll: true,
		}).Create(&record).Error; err != nil {
			return fmt.Errorf("gormstore: save dashboard %s: %w", state.DashboardUUID, err)
		}
		if err := tx.Where("dashboard_key = ?", key).Delete(&TabRecord{}).Error; err != nil {
			return fmt.Errorf("gormstore: clear tabs %s: %w", state.DashboardUUID, err)
		}
		if err := tx.Where("dashboard_key = ?", key).Delete(&TileRecord{}).Error; err != nil {
			return fmt.Errorf("gormstore: clear tiles %s: %w", state.DashboardUUID, err)
		}
		if tabs := tabRecords(key, state.Tabs); len(tabs) > 0 {
			if err := tx.Create(&tabs).Error; err != nil {
				return fmt.Errorf("gormstore: save tabs %s: %w", state.DashboardUUID, err)
			}
		}
		if tiles := tileRecords(key, state.Tiles); len(tiles) > 0 {
			if err := tx.Create(&tiles).Error; err != nil {
				return fmt.Errorf("gormstore: save tiles %s: %w", state.DashboardUUID, err)
			}
		}
		return nil
	})
}
