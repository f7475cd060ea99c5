package db

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pobsd/game"
)

func ptr(s string) *string { return &s }

func testGames() []*game.Game {
	shuggy := &game.Game{
		Name:   "The Adventures of Shuggy",
		Engine: ptr("FNA"),
		Year:   ptr("2011"),
		Added:  ptr("2020-06-17"),
		Genres: []string{"Puzzle", "Platformer"},
		Tags:   []string{"indie", "pixel art"},
	}
	shuggy.Set(game.FieldStore, "https://store.steampowered.com/app/211440/The_Adventures_of_Shuggy/ https://www.gog.com/game/the_adventures_of_shuggy")
	games := []*game.Game{
		shuggy,
		{Name: "Aeternum", Added: ptr("2020-06-20")},
	}
	game.AssignUIDs(games)
	return games
}

func TestNewGame(t *testing.T) {
	g := testGames()[0]
	row := NewGame(g)

	if row.GameID != g.UID || row.Name != g.Name {
		t.Errorf("unexpected identity: %d %q", row.GameID, row.Name)
	}
	if row.Genres == nil || *row.Genres != "Puzzle, Platformer" {
		t.Errorf("Genres = %v", row.Genres)
	}
	if row.Stores == nil || *row.Stores != "https://store.steampowered.com/app/211440/The_Adventures_of_Shuggy/ https://www.gog.com/game/the_adventures_of_shuggy" {
		t.Errorf("Stores = %v", row.Stores)
	}
	if row.SteamID == nil || *row.SteamID != 211440 {
		t.Errorf("SteamID = %v", row.SteamID)
	}
	if row.Cover != nil || row.Dev != nil {
		t.Error("absent fields should stay NULL")
	}
}

func TestSaveGamesReplacesRows(t *testing.T) {
	conn, err := Open(filepath.Join(t.TempDir(), "games.sqlite"))
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	games := testGames()

	if err := SaveGames(conn, games); err != nil {
		t.Fatalf("SaveGames() error: %v", err)
	}
	// a second save must not duplicate rows
	if err := SaveGames(conn, games); err != nil {
		t.Fatalf("second SaveGames() error: %v", err)
	}

	var count int64
	if err := conn.Model(&Game{}).Count(&count).Error; err != nil {
		t.Fatal(err)
	}
	if count != 2 {
		t.Errorf("expected 2 rows, got %d", count)
	}

	var row Game
	if err := conn.Where("name = ?", "Aeternum").First(&row).Error; err != nil {
		t.Fatalf("row not found: %v", err)
	}
	if row.GameID != games[1].UID || row.Year != nil {
		t.Errorf("unexpected row: %+v", row)
	}

	if err := SaveGames(conn, nil); err != nil {
		t.Fatal(err)
	}
	if err := conn.Model(&Game{}).Count(&count).Error; err != nil || count != 0 {
		t.Errorf("expected empty table, got %d (%v)", count, err)
	}
}

func TestExport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.sqlite")
	if err := Export(path, testGames()); err != nil {
		t.Fatalf("Export() error: %v", err)
	}

	conn, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	var count int64
	conn.Model(&Game{}).Count(&count)
	if count != 2 {
		t.Errorf("expected 2 rows, got %d", count)
	}
}

func TestOpenRejectsForeignFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "games.db")
	if err := os.WriteFile(path, []byte(strings.Repeat("Game\tnot a database\n", 200)), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Open(path); err == nil {
		t.Fatal("expected an error for a file that is not a SQLite database")
	}
	if err := os.Remove(path); err != nil {
		t.Errorf("the file should be released after a failed open: %v", err)
	}
}
