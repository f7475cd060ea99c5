package db

import (
	"pobsd/game"
)

// Game is one row of the game table. Lists are stored the way they are
// written in the database file.
type Game struct {
	GameID  uint32  `gorm:"column:game_id;primaryKey;autoIncrement:false"`
	Name    string  `gorm:"not null;index"`
	Cover   *string
	Engine  *string `gorm:"index"`
	Setup   *string
	Runtime *string
	Stores  *string
	SteamID *int // first Steam app id among the store links
	Hints   *string
	Genres  *string
	Tags    *string
	Year    *string `gorm:"index"`
	Dev     *string
	Pub     *string
	Version *string
	Status  *string
	Added   *string `gorm:"type:varchar(10)"`
	Updated *string `gorm:"type:varchar(10)"`
	IgdbID  *string
}

func (Game) TableName() string { return "game" }

// NewGame maps a parsed game to its row.
func NewGame(g *game.Game) Game {
	row := Game{
		GameID:  g.UID,
		Name:    g.Name,
		Cover:   g.Cover,
		Engine:  g.Engine,
		Setup:   g.Setup,
		Runtime: g.Runtime,
		Stores:  joined(g, game.FieldStore),
		Hints:   g.Hints,
		Genres:  joined(g, game.FieldGenre),
		Tags:    joined(g, game.FieldTags),
		Year:    g.Year,
		Dev:     g.Dev,
		Pub:     g.Pub,
		Version: g.Version,
		Status:  g.Status,
		Added:   g.Added,
		Updated: g.Updated,
		IgdbID:  g.IgdbID,
	}
	if ids := g.Stores.SteamIDs(); len(ids) > 0 {
		id := ids[0]
		row.SteamID = &id
	}
	return row
}

func joined(g *game.Game, f game.Field) *string {
	v, ok := g.Value(f)
	if !ok {
		return nil
	}
	return &v
}
