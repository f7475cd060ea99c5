package game

import "strings"

// Field identifies one line of a game entry in the database.
// The declaration order is the order in which fields appear on disk.
type Field int

const (
	FieldGame Field = iota
	FieldCover
	FieldEngine
	FieldSetup
	FieldRuntime
	FieldStore
	FieldHints
	FieldGenre
	FieldTags
	FieldYear
	FieldDev
	FieldPub
	FieldVersion
	FieldStatus
	FieldAdded
	FieldUpdated
	FieldIgdbID
)

// AllFields lists every field in database order.
var AllFields = []Field{
	FieldGame, FieldCover, FieldEngine, FieldSetup, FieldRuntime, FieldStore,
	FieldHints, FieldGenre, FieldTags, FieldYear, FieldDev, FieldPub,
	FieldVersion, FieldStatus, FieldAdded, FieldUpdated, FieldIgdbID,
}

var fieldTags = [...]string{
	FieldGame:    "Game",
	FieldCover:   "Cover",
	FieldEngine:  "Engine",
	FieldSetup:   "Setup",
	FieldRuntime: "Runtime",
	FieldStore:   "Store",
	FieldHints:   "Hints",
	FieldGenre:   "Genre",
	FieldTags:    "Tags",
	FieldYear:    "Year",
	FieldDev:     "Dev",
	FieldPub:     "Pub",
	FieldVersion: "Version",
	FieldStatus:  "Status",
	FieldAdded:   "Added",
	FieldUpdated: "Updated",
	FieldIgdbID:  "IgdbId",
}

// aliases accepted by LookupField on top of the lowercased tags.
var fieldAliases = map[string]Field{
	"name":      FieldGame,
	"stores":    FieldStore,
	"genres":    FieldGenre,
	"tag":       FieldTags,
	"developer": FieldDev,
	"publisher": FieldPub,
	"publi":     FieldPub,
	"igdb":      FieldIgdbID,
	"igdb_id":   FieldIgdbID,
}

// Tag returns the keyword that prefixes the field's line in the database.
func (f Field) Tag() string {
	if f < 0 || int(f) >= len(fieldTags) {
		return ""
	}
	return fieldTags[f]
}

func (f Field) String() string { return f.Tag() }

// IsList reports whether the field holds an ordered list of values.
func (f Field) IsList() bool {
	return f == FieldStore || f == FieldGenre || f == FieldTags
}

// separator used when a list field is written back as a single value.
func (f Field) separator() string {
	if f == FieldStore {
		return " "
	}
	return ", "
}

// FieldForTag maps an on-disk tag to its field. Tags are case sensitive.
func FieldForTag(tag string) (Field, bool) {
	for f, t := range fieldTags {
		if t == tag {
			return Field(f), true
		}
	}
	return 0, false
}

// LookupField resolves a user supplied field name: any tag, case
// insensitive, or one of the common aliases ("name", "genres", "publisher"...).
func LookupField(name string) (Field, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	if f, ok := fieldAliases[key]; ok {
		return f, true
	}
	for f, t := range fieldTags {
		if strings.ToLower(t) == key {
			return Field(f), true
		}
	}
	return 0, false
}
