package dictionary

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/text/encoding/japanese"

	"japaneseannotate/model"
)

const sampleTSV = `# surface	reading	pos	subtags	ctype	cform	base	cost
さやか	さやか	Noun	general-adjectival-noun				300
東京	トウキョウ	名詞	固有名詞,地域,一般				200
東	ヒガシ	名詞	一般				500
京	キョウ	名詞	固有名詞,地域,一般				700
は	ハ	助詞	係助詞				100
走る	ハシル	動詞	自立	五段・ラ行	基本形	走る	400
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestParseTSV(t *testing.T) {
	entries, err := ParseTSV(strings.NewReader(sampleTSV))
	if err != nil {
		t.Fatalf("ParseTSV: %v", err)
	}
	if len(entries) != 6 {
		t.Fatalf("got %d entries, want 6", len(entries))
	}
	want := model.LexiconEntry{
		Surface:         "走る",
		Reading:         "ハシル",
		POS:             model.Verb,
		RawPOS:          "動詞",
		SubTags:         []string{"independent"},
		ConjugationType: "五段・ラ行",
		ConjugationForm: "基本形",
		BaseForm:        "走る",
		Cost:            400,
	}
	if diff := cmp.Diff(want, entries[5]); diff != "" {
		t.Errorf("verb entry (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"proper", "region", "general"}, entries[1].SubTags); diff != "" {
		t.Errorf("sub-tags (-want +got):\n%s", diff)
	}
}

func TestParseTSVErrors(t *testing.T) {
	cases := map[string]string{
		"too few fields": "さやか\tさやか\n",
		"bad cost":       "さやか\tさやか\tNoun\t\t\t\t\tcheap\n",
		"empty":          "# nothing here\n\n",
	}
	for name, in := range cases {
		if _, err := ParseTSV(strings.NewReader(in)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestCandidatesOrdering(t *testing.T) {
	entries, err := ParseTSV(strings.NewReader(sampleTSV + "東京\tヒガシキョウ\t名詞\t\t\t\t\t200\n"))
	if err != nil {
		t.Fatalf("ParseTSV: %v", err)
	}
	lex, err := New("test", entries, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	got := lex.Candidates("東京は")
	var surfaces []string
	var readings []string
	for _, e := range got {
		surfaces = append(surfaces, e.Surface)
		readings = append(readings, e.Reading)
	}
	if diff := cmp.Diff([]string{"東京", "東京", "東"}, surfaces); diff != "" {
		t.Errorf("candidate surfaces (-want +got):\n%s", diff)
	}
	// equal cost and length keep load order
	if diff := cmp.Diff([]string{"トウキョウ", "ヒガシキョウ", "ヒガシ"}, readings); diff != "" {
		t.Errorf("candidate readings (-want +got):\n%s", diff)
	}
	if c := lex.Candidates("🎲"); len(c) != 0 {
		t.Errorf("expected no candidates for unknown text, got %d", len(c))
	}
	if c := lex.Lookup("東京"); len(c) != 2 {
		t.Errorf("Lookup(東京) = %d entries, want 2", len(c))
	}
}

func TestConnectionBoundary(t *testing.T) {
	lex, err := New("test", []model.LexiconEntry{{Surface: "は", POS: model.Particle}}, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	p := lex.Lookup("は")[0]
	if got := lex.Connection(nil, p); got != 800 {
		t.Errorf("BOS->particle = %d, want 800", got)
	}
	if got := lex.Connection(p, nil); got != 0 {
		t.Errorf("particle->EOS = %d, want 0", got)
	}
}

func TestLoadTSVFile(t *testing.T) {
	lex, err := Load(writeFile(t, "lexicon.tsv", sampleTSV))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if lex.Len() != 6 {
		t.Errorf("Len = %d, want 6", lex.Len())
	}
}

func TestLoadMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.tsv")
	_, err := Load(path)
	var le *LoadError
	if !errors.As(err, &le) {
		t.Fatalf("expected *LoadError, got %v", err)
	}
	if le.Path != path {
		t.Errorf("LoadError.Path = %q, want %q", le.Path, path)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected fs.ErrNotExist in chain, got %v", err)
	}
}

func TestLoadCorruptFile(t *testing.T) {
	for name, content := range map[string]string{
		"corrupt.tsv": "only-one-field\n",
		"corrupt.zip": "not a zip archive",
		"corrupt.csv": "a,b\n",
	} {
		_, err := Load(writeFile(t, name, content))
		var le *LoadError
		if !errors.As(err, &le) {
			t.Errorf("%s: expected *LoadError, got %v", name, err)
		}
	}
}

func TestLoadContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := LoadContext(ctx, BuiltinIPA); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

const sampleCSV = `東京,1293,1293,3003,名詞,固有名詞,地域,一般,*,*,東京,トウキョウ,トーキョー
は,261,261,3865,助詞,係助詞,*,*,*,*,は,ハ,ワ
`

func TestParseMeCabCSV(t *testing.T) {
	entries, err := ParseMeCabCSV(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("ParseMeCabCSV: %v", err)
	}
	want := model.LexiconEntry{
		Surface:       "は",
		Reading:       "ハ",
		Pronunciation: "ワ",
		POS:           model.Particle,
		RawPOS:        "助詞",
		SubTags:       []string{"binding"},
		BaseForm:      "は",
		Cost:          3865,
		LeftID:        261,
		RightID:       261,
	}
	if diff := cmp.Diff(want, entries[1]); diff != "" {
		t.Errorf("particle entry (-want +got):\n%s", diff)
	}
}

func TestParseMeCabCSVEUCJP(t *testing.T) {
	enc, err := japanese.EUCJP.NewEncoder().String(sampleCSV)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	entries, err := ParseMeCabCSV(strings.NewReader(enc))
	if err != nil {
		t.Fatalf("ParseMeCabCSV: %v", err)
	}
	if entries[0].Surface != "東京" || entries[0].Reading != "トウキョウ" {
		t.Errorf("decoded entry = %+v", entries[0])
	}
}

func TestBuiltinIPA(t *testing.T) {
	lex, err := Load(BuiltinIPA)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	var found bool
	for _, e := range lex.Candidates("すもももももももものうち") {
		if e.Surface == "すもも" && e.POS == model.Noun {
			found = true
			if e.Reading != "スモモ" {
				t.Errorf("すもも reading = %q", e.Reading)
			}
		}
	}
	if !found {
		t.Fatal("すもも noun not among candidates")
	}
	var particle bool
	for _, e := range lex.Lookup("は") {
		if e.POS == model.Particle && len(e.SubTags) > 0 && e.SubTags[0] == "binding" {
			particle = true
		}
	}
	if !particle {
		t.Error("は binding particle not found")
	}
}
