// Package game holds the representation of one entry of the PlayOnBSD
// games database along with the helpers to read, order and write it back.
package game

import (
	"hash/fnv"
	"sort"
	"strings"
)

// Game is one entry of the database.
//
// Every field except Name is optional: a nil pointer or nil slice means the
// field was left empty in the database, which is different from a field
// holding an empty string. UID is not part of the database, it is derived
// from Name and Added once a whole load is known (see AssignUIDs).
type Game struct {
	UID     uint32     `json:"uid" yaml:"uid"`
	Name    string     `json:"name" yaml:"name"`
	Cover   *string    `json:"cover" yaml:"cover"`
	Engine  *string    `json:"engine" yaml:"engine"`
	Setup   *string    `json:"setup" yaml:"setup"`
	Runtime *string    `json:"runtime" yaml:"runtime"`
	Stores  StoreLinks `json:"stores" yaml:"stores"`
	Hints   *string    `json:"hints" yaml:"hints"`
	Genres  []string   `json:"genres" yaml:"genres"`
	Tags    []string   `json:"tags" yaml:"tags"`
	Year    *string    `json:"year" yaml:"year"`
	Dev     *string    `json:"dev" yaml:"dev"`
	Pub     *string    `json:"pub" yaml:"pub"`
	Version *string    `json:"version" yaml:"version"`
	Status  *string    `json:"status" yaml:"status"`
	Added   *string    `json:"added" yaml:"added"`
	Updated *string    `json:"updated" yaml:"updated"`
	IgdbID  *string    `json:"igdb_id" yaml:"igdb_id"`
}

// scalar returns the address of the pointer backing a single-valued field.
func (g *Game) scalar(f Field) **string {
	switch f {
	case FieldCover:
		return &g.Cover
	case FieldEngine:
		return &g.Engine
	case FieldSetup:
		return &g.Setup
	case FieldRuntime:
		return &g.Runtime
	case FieldHints:
		return &g.Hints
	case FieldYear:
		return &g.Year
	case FieldDev:
		return &g.Dev
	case FieldPub:
		return &g.Pub
	case FieldVersion:
		return &g.Version
	case FieldStatus:
		return &g.Status
	case FieldAdded:
		return &g.Added
	case FieldUpdated:
		return &g.Updated
	case FieldIgdbID:
		return &g.IgdbID
	}
	return nil
}

// Set decodes value as it appears after the tag in the database and stores
// it in field f. An empty value leaves optional fields absent.
func (g *Game) Set(f Field, value string) {
	switch f {
	case FieldGame:
		g.Name = value
	case FieldGenre:
		g.Genres = splitList(value)
	case FieldTags:
		g.Tags = splitList(value)
	case FieldStore:
		urls := strings.Fields(value)
		if len(urls) == 0 {
			g.Stores = nil
			return
		}
		g.Stores = make(StoreLinks, len(urls))
		for i, u := range urls {
			g.Stores[i] = NewStoreLink(u)
		}
	default:
		p := g.scalar(f)
		if p == nil {
			return
		}
		if value == "" {
			*p = nil
			return
		}
		v := value
		*p = &v
	}
}

func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}

// Values returns the values held by field f: one element for a present
// scalar, every element for a list, nil when the field is absent.
func (g *Game) Values(f Field) []string {
	switch f {
	case FieldGame:
		return []string{g.Name}
	case FieldGenre:
		return g.Genres
	case FieldTags:
		return g.Tags
	case FieldStore:
		return g.Stores.URLs()
	}
	p := g.scalar(f)
	if p == nil || *p == nil {
		return nil
	}
	return []string{**p}
}

// Value returns field f the way it is written in the database, lists being
// joined with their separator. The boolean is false when the field is absent
// or empty.
func (g *Game) Value(f Field) (string, bool) {
	v := strings.Join(g.Values(f), f.separator())
	if v == "" {
		return "", false
	}
	return v, true
}

// Lines renders the given fields, one "Tag" or "Tag\tvalue" line each.
func (g *Game) Lines(fields []Field) []string {
	lines := make([]string, 0, len(fields))
	for _, f := range fields {
		if v, ok := g.Value(f); ok {
			lines = append(lines, f.Tag()+"\t"+v)
		} else {
			lines = append(lines, f.Tag())
		}
	}
	return lines
}

// String renders the game as it appears in the database, without a
// trailing newline.
func (g *Game) String() string {
	return strings.Join(g.Lines(AllFields), "\n")
}

// OrderingName is the key games are sorted by: the lowercased name without
// a leading "the " or "a ".
func (g *Game) OrderingName() string {
	name := strings.ToLower(g.Name)
	if s, ok := strings.CutPrefix(name, "the "); ok {
		return s
	}
	if s, ok := strings.CutPrefix(name, "a "); ok {
		return s
	}
	return name
}

// Compare orders games by OrderingName, falling back to the raw name.
func Compare(a, b *Game) int {
	if c := strings.Compare(a.OrderingName(), b.OrderingName()); c != 0 {
		return c
	}
	return strings.Compare(a.Name, b.Name)
}

// SortGames sorts games in place according to Compare, games that compare
// equal being ordered by UID.
func SortGames(games []*Game) {
	sort.SliceStable(games, func(i, j int) bool {
		if c := Compare(games[i], games[j]); c != 0 {
			return c < 0
		}
		return games[i].UID < games[j].UID
	})
}

// ComputeUID hashes the (added, name) pair with 32-bit FNV-1a.
func ComputeUID(name string, added *string) uint32 {
	h := fnv.New32a()
	if added != nil {
		h.Write([]byte{1})
		h.Write([]byte(*added))
	} else {
		h.Write([]byte{0})
	}
	h.Write([]byte{0xff})
	h.Write([]byte(name))
	return h.Sum32()
}

// AssignUIDs fills in the UID of every game. It must run once the games are
// fully populated since the hash depends on Name and Added.
func AssignUIDs(games []*Game) {
	for _, g := range games {
		g.UID = ComputeUID(g.Name, g.Added)
	}
}
