package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func write(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestDefault(t *testing.T) {
	c := Default()
	want := Config{
		Dictionary:  "builtin:ipa",
		UnknownCost: 10000,
		Mode:        "ruby",
		Script:      "hiragana",
		LinkBase:    "https://jisho.org/search/",
		Workers:     DefaultWorkers,
		LogLevel:    "info",
	}
	if diff := cmp.Diff(want, c); diff != "" {
		t.Errorf("Default (-want +got):\n%s", diff)
	}
	if err := c.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestLoadLayers(t *testing.T) {
	yml := write(t, "config.yaml", "dictionary: lex.tsv\nworkers: 2\nmode: bracket\nscript: katakana\n")
	env := write(t, ".env", "JAPANESEANNOTATE_WORKERS=3\nJAPANESEANNOTATE_KANJIDIC=kanjidic2.xml\n")
	t.Setenv("JAPANESEANNOTATE_WORKERS", "8")
	t.Setenv("JAPANESEANNOTATE_FOLD_WIDTH", "true")

	c, err := LoadFiles(yml, env)
	if err != nil {
		t.Fatalf("LoadFiles: %v", err)
	}
	if c.Dictionary != "lex.tsv" || c.Mode != "bracket" || c.Script != "katakana" {
		t.Errorf("yaml values lost: %+v", c)
	}
	if c.Kanjidic != "kanjidic2.xml" {
		t.Errorf("Kanjidic = %q, want value from env file", c.Kanjidic)
	}
	if c.Workers != 8 {
		t.Errorf("Workers = %d, want process env to win", c.Workers)
	}
	if !c.FoldWidth {
		t.Error("FoldWidth not set from env")
	}
}

func TestLoadMissingEnvFileIgnored(t *testing.T) {
	c, err := LoadFiles("", filepath.Join(t.TempDir(), "nope.env"))
	if err != nil {
		t.Fatalf("LoadFiles: %v", err)
	}
	if c.Dictionary != "builtin:ipa" {
		t.Errorf("Dictionary = %q", c.Dictionary)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := LoadFiles(filepath.Join(t.TempDir(), "missing.yaml"), ""); err == nil {
		t.Error("missing config file accepted")
	}
	bad := write(t, "bad.yaml", "workers: [1, 2\n")
	if _, err := LoadFiles(bad, ""); err == nil {
		t.Error("malformed yaml accepted")
	}
	mode := write(t, "mode.yaml", "mode: romaji\n")
	if _, err := LoadFiles(mode, ""); err == nil {
		t.Error("unknown mode accepted")
	}
	t.Setenv("JAPANESEANNOTATE_UNKNOWN_COST", "lots")
	if _, err := LoadFiles("", ""); err == nil {
		t.Error("non-numeric cost accepted")
	}
}
