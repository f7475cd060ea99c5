package catalog

import (
	"strings"

	"pobsd/game"
)

// GetByID returns the game with the given uid.
func (c *Catalog) GetByID(id uint32) (*game.Game, bool) {
	g, ok := c.games[id]
	return g, ok
}

// GetByIDs returns the known games among ids, sorted by name.
func (c *Catalog) GetByIDs(ids []uint32) GameResult {
	games := make([]*game.Game, 0, len(ids))
	for _, id := range ids {
		if g, ok := c.games[id]; ok {
			games = append(games, g)
		}
	}
	return newGameResult(games)
}

// GetByName returns the game named exactly name (case sensitive). When
// several games share the name, the one with the lowest uid wins.
func (c *Catalog) GetByName(name string) (*game.Game, bool) {
	var found *game.Game
	for _, g := range c.games {
		if g.Name == name && (found == nil || g.UID < found.UID) {
			found = g
		}
	}
	return found, found != nil
}

// GetByField returns the games whose field f equals value exactly. Fields
// without an index yield an empty result.
func (c *Catalog) GetByField(f game.Field, value string) GameResult {
	idx, ok := c.indexes[f]
	if !ok {
		return newGameResult(nil)
	}
	return c.GetByIDs(idx[value])
}

// SearchByField returns the games whose field f contains text, ignoring
// case. It scans every game, any field can be searched.
func (c *Catalog) SearchByField(f game.Field, text string) GameResult {
	needle := strings.ToLower(text)
	var games []*game.Game
	for _, g := range c.games {
		if matches(g, f, needle) {
			games = append(games, g)
		}
	}
	return newGameResult(games)
}

// SearchByName returns the games whose name contains text, ignoring case.
func (c *Catalog) SearchByName(text string) GameResult {
	return c.SearchByField(game.FieldGame, text)
}

// GetAllField returns the distinct values of an indexed field, sorted.
func (c *Catalog) GetAllField(f game.Field) ItemResult {
	idx := c.indexes[f]
	items := make([]string, 0, len(idx))
	for v := range idx {
		items = append(items, v)
	}
	return newItemResult(items)
}

// GetAll returns every game, sorted by name.
func (c *Catalog) GetAll() GameResult {
	games := make([]*game.Game, 0, len(c.games))
	for _, g := range c.games {
		games = append(games, g)
	}
	return newGameResult(games)
}
