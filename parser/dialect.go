package parser

import (
	"fmt"
	"strings"

	"pobsd/game"
)

// Dialect describes the field cycle of one flavour of the database.
//
// Fields from index optionalFrom onwards are trailing optional fields: while
// waiting for one of them, a Game line closes the current record and opens
// the next one instead of being reported as an error.
type Dialect struct {
	name         string
	fields       []game.Field
	optionalFrom int
}

var (
	// DialectClassic is the historical layout ending with the Updated field.
	DialectClassic = Dialect{
		name:         "classic",
		fields:       game.AllFields[:len(game.AllFields)-1],
		optionalFrom: len(game.AllFields) - 1,
	}
	// DialectIGDB adds a trailing, optional IgdbId field after Updated.
	DialectIGDB = Dialect{
		name:         "igdb",
		fields:       game.AllFields,
		optionalFrom: len(game.AllFields) - 1,
	}
)

// Name returns the configuration name of the dialect.
func (d Dialect) Name() string { return d.name }

// Fields returns the field cycle of the dialect.
func (d Dialect) Fields() []game.Field {
	return append([]game.Field(nil), d.fields...)
}

// LookupDialect returns the dialect registered under name.
func LookupDialect(name string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "classic":
		return DialectClassic, nil
	case "igdb", "":
		return DialectIGDB, nil
	default:
		return Dialect{}, fmt.Errorf("unknown dialect %q", name)
	}
}

// Format writes games back to database text, one field per line and no
// trailing newline.
func (d Dialect) Format(games []*game.Game) string {
	var sb strings.Builder
	for i, g := range games {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(strings.Join(g.Lines(d.fields), "\n"))
	}
	return sb.String()
}

func (d Dialect) isZero() bool { return d.fields == nil }

func (d Dialect) optional(pos int) bool { return pos >= d.optionalFrom }
