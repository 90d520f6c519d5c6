package repositories

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeSeed(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "landmarks.json")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write seed: %v", err)
	}
	return path
}

func TestLoadLandmarkSeeds(t *testing.T) {
	path := writeSeed(t, `[
		{"query": "  Rizal   Park ", "lat": 14.5831, "lon": 120.9794},
		{"query": "Intramuros", "lat": 14.5896, "lon": 120.9747}
	]`)

	seeds, err := LoadLandmarkSeeds(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(seeds) != 2 {
		t.Fatalf("got %d seeds, want 2", len(seeds))
	}
	if seeds[0].Query != "rizal park" {
		t.Errorf("query = %q, want normalized", seeds[0].Query)
	}
}

func TestLoadLandmarkSeedsRejectsBadRows(t *testing.T) {
	tests := map[string]string{
		"empty query":  `[{"query": " ", "lat": 1, "lon": 1}]`,
		"bad latitude": `[{"query": "x", "lat": 91, "lon": 1}]`,
		"not json":     `{`,
	}

	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := LoadLandmarkSeeds(writeSeed(t, body)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestNilDB(t *testing.T) {
	if err := InitSchema(context.Background(), nil); err == nil {
		t.Errorf("InitSchema: expected error")
	}
	if _, err := SeedFromJSON(context.Background(), nil, "unused.json"); err == nil {
		t.Errorf("SeedFromJSON: expected error")
	}
}

func TestBundledSeedFile(t *testing.T) {
	seeds, err := LoadLandmarkSeeds(filepath.Join("..", "..", "..", "data", "seeds", "landmarks.json"))
	if err != nil {
		t.Fatalf("bundled seed file invalid: %v", err)
	}
	if len(seeds) == 0 {
		t.Fatalf("bundled seed file is empty")
	}
}
