package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"pobsd/db"
)

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path     string
		expected string
	}{
		{"games.json", formatJSON},
		{"games.YAML", formatYAML},
		{"games.yml", formatYAML},
		{"games.sqlite", formatSQLite},
		{"games.sqlite3", formatSQLite},
		{"games", formatJSON},
	}

	for _, tt := range tests {
		if got := formatFromPath(tt.path); got != tt.expected {
			t.Errorf("formatFromPath(%q) = %q, want %q", tt.path, got, tt.expected)
		}
	}
}

func TestWriteDocumentJSON(t *testing.T) {
	games := loadTestCatalog(t).GetAll().Items

	var buf bytes.Buffer
	if err := writeDocument(&buf, formatJSON, games); err != nil {
		t.Fatal(err)
	}

	var doc struct {
		Count int              `json:"count"`
		Games []map[string]any `json:"games"`
	}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if doc.Count != 4 || len(doc.Games) != 4 {
		t.Fatalf("count=%d games=%d", doc.Count, len(doc.Games))
	}
	first := doc.Games[0]
	if first["name"] != awesome {
		t.Errorf("first game = %v", first["name"])
	}
	if v, ok := first["pub"]; !ok || v != nil {
		t.Errorf("absent publisher should be null under \"pub\", got %v (present %v)", v, ok)
	}
	stores := first["stores"].([]any)
	if stores[0].(map[string]any)["store"] != "Unknown" {
		t.Errorf("unexpected store %v", stores[0])
	}
	if doc.Games[2]["igdb_id"] != nil {
		t.Errorf("Shuggy has no igdb id, got %v", doc.Games[2]["igdb_id"])
	}
}

func TestWriteDocumentYAML(t *testing.T) {
	games := loadTestCatalog(t).GetAll().Items

	var buf bytes.Buffer
	if err := writeDocument(&buf, formatYAML, games); err != nil {
		t.Fatal(err)
	}

	var doc struct {
		Count int `yaml:"count"`
		Games []struct {
			Name   string   `yaml:"name"`
			Tags   []string `yaml:"tags"`
			Stores []struct {
				Store string `yaml:"store"`
				URL   string `yaml:"url"`
			} `yaml:"stores"`
		} `yaml:"games"`
	}
	if err := yaml.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("invalid yaml: %v", err)
	}
	if doc.Count != 4 {
		t.Fatalf("count = %d", doc.Count)
	}
	g := doc.Games[2]
	if g.Name != shuggy || len(g.Stores) != 2 || g.Stores[1].Store != "Gog" {
		t.Errorf("unexpected game %+v", g)
	}
	if len(g.Tags) != 2 || g.Tags[1] != "pixel art" {
		t.Errorf("unexpected tags %v", g.Tags)
	}
}

func TestWriteDocumentUnknownFormat(t *testing.T) {
	if err := writeDocument(&bytes.Buffer{}, "xml", nil); err == nil {
		t.Error("expected an error for an unknown format")
	}
}

func TestExportCatalogSQLite(t *testing.T) {
	out := filepath.Join(t.TempDir(), "games.sqlite")
	if err := exportCatalog(loadTestCatalog(t), formatSQLite, out); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	conn, err := db.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	var count int64
	conn.Model(&db.Game{}).Count(&count)
	if count != 4 {
		t.Errorf("expected 4 rows, got %d", count)
	}
}

func TestExportCommand(t *testing.T) {
	dir := t.TempDir()

	out := filepath.Join(dir, "games.yaml")
	stdout, _, err := runRoot(t, "export", filepath.Join("testdata", "games.db"), out)
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if !strings.Contains(stdout, "4 games exported") {
		t.Errorf("unexpected output %q", stdout)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "count: 4\n") {
		t.Errorf("expected a yaml document, got %q", string(data[:20]))
	}

	aborted := filepath.Join(dir, "faulty.json")
	_, stderr, err := runRoot(t, "export", filepath.Join("testdata", "games-faulty.db"), aborted)
	if !errors.Is(err, errParseErrors) {
		t.Errorf("expected errParseErrors, got %v", err)
	}
	if !strings.Contains(stderr, "> Errors occurred at lines 21, 60.\n> Export aborted.") {
		t.Errorf("unexpected stderr %q", stderr)
	}
	if _, err := os.Stat(aborted); !os.IsNotExist(err) {
		t.Error("aborted export should not create the output")
	}
}
