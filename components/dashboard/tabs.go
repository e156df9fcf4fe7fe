package dashboard

import "sort"

// DefaultTabName is used for the tab synthesised when the first tab is added.
const DefaultTabName = "Tab 1"

// TabsEnabled reports whether tab-scoped filtering applies. A single tab is
// treated as no tabs at all.
func TabsEnabled(tabs []Tab) bool {
	return len(tabs) > 1
}

// SortTabs returns a copy of tabs ordered by Order.
func SortTabs(tabs []Tab) []Tab {
	out := cloneTabs(tabs)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Order < out[j].Order
	})
	return out
}

// SortTiles returns a copy of tiles ordered by row, then column.
func SortTiles(tiles []Tile) []Tile {
	out := cloneTiles(tiles)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Y == out[j].Y {
			return out[i].X < out[j].X
		}
		return out[i].Y < out[j].Y
	})
	return out
}

// IsTileVisible decides if a tile renders under the active tab. Tiles without
// a valid tab reference fall back to the default tab (first in stored order)
// or the first tab in display order.
func IsTileVisible(tile Tile, tabs []Tab, active *Tab) bool {
	if !TabsEnabled(tabs) {
		return true
	}
	if active == nil {
		// no selection yet: untagged tiles still render
		return tile.TabUUID == nil
	}
	activeUUID := active.UUID
	if tile.TabUUID != nil && *tile.TabUUID == activeUUID {
		return true
	}
	if tile.TabUUID != nil {
		if _, ok := findTab(tabs, *tile.TabUUID); ok {
			return false
		}
	}
	return isFallbackTab(tabs, activeUUID)
}

func isFallbackTab(tabs []Tab, activeUUID string) bool {
	if len(tabs) == 0 {
		return false
	}
	if activeUUID == tabs[0].UUID {
		return true
	}
	return activeUUID == SortTabs(tabs)[0].UUID
}

// VisibleTiles returns the sorted tiles rendered for the active tab.
func VisibleTiles(state State) []Tile {
	var active *Tab
	if tab, ok := state.ActiveTab(); ok {
		active = &tab
	}
	sorted := SortTiles(state.Tiles)
	visible := make([]Tile, 0, len(sorted))
	for _, tile := range sorted {
		if IsTileVisible(tile, state.Tabs, active) {
			visible = append(visible, tile)
		}
	}
	return visible
}

// CurrentTabHasTiles reports whether anything renders under the active tab.
func (s State) CurrentTabHasTiles() bool {
	return len(VisibleTiles(s)) > 0
}

// EmptyContainerType names the empty state shown when nothing renders.
func (s State) EmptyContainerType() string {
	if len(s.Tabs) > 0 {
		return "tab"
	}
	return "dashboard"
}

// DisplayTabs returns the tab strip: sorted tabs in tabs mode, nothing otherwise.
func (s State) DisplayTabs() []Tab {
	if !TabsEnabled(s.Tabs) {
		return []Tab{}
	}
	return SortTabs(s.Tabs)
}

// AddTab appends a tab named name and makes it active. When the dashboard has
// no tabs yet, a default tab is created first and every existing tile moves
// to it. An empty name leaves the state untouched.
func AddTab(state State, name string, newID IDGenerator, defaultName string) (State, Tab, bool) {
	if name == "" {
		return state, Tab{}, false
	}
	if defaultName == "" {
		defaultName = DefaultTabName
	}
	next := state.clone()
	if len(next.Tabs) == 0 {
		first := Tab{
			UUID:      newID(),
			Name:      defaultName,
			IsDefault: true,
			Order:     0,
		}
		next.Tabs = append(next.Tabs, first)
		for i := range next.Tiles {
			next.Tiles[i].TabUUID = StringPtr(first.UUID)
		}
	}
	tab := Tab{
		UUID:  newID(),
		Name:  name,
		Order: maxOrder(next.Tabs) + 1,
	}
	next.Tabs = append(next.Tabs, tab)
	next.ActiveTabUUID = tab.UUID
	next.TabsChanged = true
	return next, tab, true
}

// RenameTab replaces the name of the tab with the given uuid.
func RenameTab(state State, uuid, name string) (State, bool) {
	if name == "" || uuid == "" {
		return state, false
	}
	idx := tabIndex(state.Tabs, uuid)
	if idx < 0 {
		return state, false
	}
	next := state.clone()
	next.Tabs[idx].Name = name
	next.TabsChanged = true
	return next, true
}

// DeleteResult lists the side effects of deleting a tab.
type DeleteResult struct {
	Deleted Tab
	// LastTab is set when the dashboard left tabs mode entirely.
	LastTab bool
	// RedirectPath is the non-tab edit URL to navigate to when LastTab is set.
	RedirectPath  string
	TilesToDelete []Tile
}

// DeleteTab removes a tab. Removing the last tab clears every tile's tab
// reference; removing any other tab deletes the tiles that belonged to it.
func DeleteTab(state State, uuid string) (State, DeleteResult, bool) {
	idx := tabIndex(state.Tabs, uuid)
	if idx < 0 {
		return state, DeleteResult{}, false
	}
	next := state.clone()
	result := DeleteResult{Deleted: next.Tabs[idx]}
	lastTab := len(next.Tabs) == 1
	next.Tabs = append(next.Tabs[:idx], next.Tabs[idx+1:]...)
	if next.ActiveTabUUID == uuid {
		next.ActiveTabUUID = ""
		if len(next.Tabs) > 0 {
			next.ActiveTabUUID = next.Tabs[0].UUID
		}
	}
	next.TabsChanged = true

	if lastTab {
		for i := range next.Tiles {
			next.Tiles[i].TabUUID = nil
		}
		result.LastTab = true
		result.RedirectPath = DashboardURL(next.ProjectUUID, next.DashboardUUID, ModeEdit, "")
		return next, result, true
	}

	kept := make([]Tile, 0, len(next.Tiles))
	for _, tile := range next.Tiles {
		if tile.TabUUID != nil && *tile.TabUUID == uuid {
			result.TilesToDelete = append(result.TilesToDelete, tile)
			continue
		}
		kept = append(kept, tile)
	}
	next.Tiles = kept
	return next, result, true
}

// ReorderTabs moves the tab at source to destination within the display order
// and rewrites every Order to its new index. Out-of-range indexes are ignored.
func ReorderTabs(state State, source, destination int) (State, bool) {
	sorted := state.DisplayTabs()
	if source < 0 || source >= len(sorted) || destination < 0 || destination >= len(sorted) {
		return state, false
	}
	moved := sorted[source]
	sorted = append(sorted[:source], sorted[source+1:]...)
	sorted = append(sorted[:destination], append([]Tab{moved}, sorted[destination:]...)...)
	next := state.clone()
	next.Tabs = densifyOrders(sorted)
	next.TabsChanged = true
	return next, true
}

// ReorderTabsByID applies an explicit uuid ordering. Unknown ids are skipped
// and tabs missing from the list keep their relative order at the end.
func ReorderTabsByID(state State, uuids []string) (State, bool) {
	if len(uuids) == 0 || len(state.Tabs) == 0 {
		return state, false
	}
	next := state.clone()
	next.Tabs = densifyOrders(applyTabOrder(SortTabs(state.Tabs), uuids))
	next.TabsChanged = true
	return next, true
}

// SelectTab activates a tab from the tab strip and returns the URL to show.
func SelectTab(state State, uuid string, mode ViewMode) (State, string, bool) {
	for _, tab := range state.DisplayTabs() {
		if tab.UUID != uuid {
			continue
		}
		next := state.clone()
		next.ActiveTabUUID = tab.UUID
		return next, DashboardURL(state.ProjectUUID, state.DashboardUUID, mode, tab.UUID), true
	}
	return state, "", false
}

func densifyOrders(tabs []Tab) []Tab {
	for i := range tabs {
		tabs[i].Order = i
	}
	return tabs
}

func maxOrder(tabs []Tab) int {
	if len(tabs) == 0 {
		return -1
	}
	highest := tabs[0].Order
	for _, tab := range tabs[1:] {
		if tab.Order > highest {
			highest = tab.Order
		}
	}
	return highest
}

func findTab(tabs []Tab, uuid string) (Tab, bool) {
	if idx := tabIndex(tabs, uuid); idx >= 0 {
		return tabs[idx], true
	}
	return Tab{}, false
}

func tabIndex(tabs []Tab, uuid string) int {
	for i, tab := range tabs {
		if tab.UUID == uuid {
			return i
		}
	}
	return -1
}

func (s State) clone() State {
	out := s
	out.Tabs = cloneTabs(s.Tabs)
	out.Tiles = cloneTiles(s.Tiles)
	return out
}

func cloneTabs(tabs []Tab) []Tab {
	if tabs == nil {
		return nil
	}
	out := make([]Tab, len(tabs))
	copy(out, tabs)
	return out
}

func cloneTiles(tiles []Tile) []Tile {
	if tiles == nil {
		return nil
	}
	out := make([]Tile, len(tiles))
	for i, tile := range tiles {
		if tile.TabUUID != nil {
			tile.TabUUID = StringPtr(*tile.TabUUID)
		}
		out[i] = tile
	}
	return out
}
