// Package catalog provides an indexed, read-only view of a games database
// that can be queried without scanning every record on exact lookups.
package catalog

import (
	"go.uber.org/zap"

	"pobsd/game"
)

// indexedFields are the fields backed by a value -> ids index.
var indexedFields = []game.Field{
	game.FieldEngine,
	game.FieldRuntime,
	game.FieldGenre,
	game.FieldTags,
	game.FieldYear,
	game.FieldDev,
	game.FieldPub,
}

// Catalog owns the games of a load and the indexes built over them.
// It is never modified after New returns, so it is safe for concurrent reads.
// Games handed out by queries belong to the catalog and must not be modified.
type Catalog struct {
	games   map[uint32]*game.Game
	indexes map[game.Field]map[string][]uint32
	log     *zap.SugaredLogger
}

// Option customizes a Catalog.
type Option func(*Catalog)

// WithLogger makes the catalog report its build through log.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(c *Catalog) {
		if log != nil {
			c.log = log
		}
	}
}

// New builds a catalog from games in a single pass.
func New(games []*game.Game, opts ...Option) *Catalog {
	c := &Catalog{
		games:   make(map[uint32]*game.Game, len(games)),
		indexes: make(map[game.Field]map[string][]uint32, len(indexedFields)),
		log:     zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(c)
	}
	for _, f := range indexedFields {
		c.indexes[f] = make(map[string][]uint32)
	}
	for _, g := range games {
		c.add(g)
	}
	c.log.Infow("Catalog built", "games", len(c.games), "input", len(games))
	return c
}

func (c *Catalog) add(g *game.Game) {
	if _, dup := c.games[g.UID]; dup {
		c.log.Warnw("Duplicate game uid, keeping the latest", "uid", g.UID, "name", g.Name)
	}
	c.games[g.UID] = g
	for _, f := range indexedFields {
		idx := c.indexes[f]
		for _, v := range g.Values(f) {
			idx[v] = append(idx[v], g.UID)
		}
	}
}

// Len returns the number of games held by the catalog.
func (c *Catalog) Len() int { return len(c.games) }

// Indexed reports whether exact lookups on f are served by an index.
func (c *Catalog) Indexed(f game.Field) bool {
	_, ok := c.indexes[f]
	return ok
}

// IndexedFields lists the indexed fields in database order.
func IndexedFields() []game.Field {
	return append([]game.Field(nil), indexedFields...)
}
