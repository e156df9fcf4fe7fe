package dashboard

func applyTabOrder(tabs []Tab, order []string) []Tab {
	if len(order) == 0 {
		return tabs
	}
	index := make(map[string]Tab, len(tabs))
	for _, t := range tabs {
		index[t.UUID] = t
	}
	result := make([]Tab, 0, len(tabs))
	seen := make(map[string]struct{}, len(order))
	for _, id := range order {
		if _, dup := seen[id]; dup {
			continue
		}
		if t, ok := index[id]; ok {
			result = append(result, t)
			seen[id] = struct{}{}
		}
	}
	for _, t := range tabs {
		if _, ok := seen[t.UUID]; !ok {
			result = append(result, t)
		}
	}
	return result
}

func applyTileLayout(tiles []Tile, layout []TileLayout) ([]Tile, int) {
	if len(layout) == 0 {
		return tiles, 0
	}
	index := make(map[string]TileLayout, len(layout))
	for _, l := range layout {
		index[l.UUID] = l
	}
	updated := 0
	for i, tile := range tiles {
		l, ok := index[tile.UUID]
		if !ok {
			continue
		}
		tiles[i].X, tiles[i].Y, tiles[i].W, tiles[i].H = l.X, l.Y, l.W, l.H
		updated++
	}
	return tiles, updated
}
