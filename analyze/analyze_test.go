package analyze

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"japaneseannotate/config"
	"japaneseannotate/dictionary"
	"japaneseannotate/ingest"
	"japaneseannotate/render"
)

const testTSV = `私	ワタシ	Noun	pronoun				100
は	ハ	Particle	binding				50
学生	ガクセイ	Noun	general				100
です	デス	BoundAuxiliary		特殊・デス	基本形	です	100
行き	イキ	Verb	independent	五段・カ行促音便	連用形	行く	100
まし	マシ	BoundAuxiliary		特殊・マス	連用形	ます	100
た	タ	BoundAuxiliary		特殊・タ	基本形	た	100
雨	アメ	Noun	general				100
が	ガ	Particle	case-marking	general			50
、	、	Symbol	comma				10
。	。	Symbol	period				10
`

func newTestAnalyzer(t *testing.T, opts ...Option) *Analyzer {
	t.Helper()
	entries, err := dictionary.ParseTSV(strings.NewReader(testTSV))
	if err != nil {
		t.Fatalf("ParseTSV: %v", err)
	}
	lex, err := dictionary.New("test", entries, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return New(lex, opts...)
}

func doc(t *testing.T, text string) ingest.Document {
	t.Helper()
	d, err := ingest.NewDocument(text)
	if err != nil {
		t.Fatalf("NewDocument: %v", err)
	}
	return d
}

func TestAnalyze(t *testing.T) {
	a := newTestAnalyzer(t, WithMode(render.Bracket))
	d := doc(t, "私は学生です。")
	res, err := a.Analyze(context.Background(), d)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if res.DocumentID != d.ID || res.TokenCount != 5 || res.UnknownCount != 0 {
		t.Errorf("analysis = %+v", res)
	}
	if want := "[私|わたし]は[学生|がくせい]です。"; res.Furigana != want {
		t.Errorf("Furigana = %q, want %q", res.Furigana, want)
	}
	var labels []string
	for _, c := range res.Classifications {
		labels = append(labels, c.Display())
	}
	want := []string{"Pronoun", "Binding Particle", "Noun", "Bound Auxiliary - Basic Form", "Symbol"}
	if diff := cmp.Diff(want, labels); diff != "" {
		t.Errorf("labels (-want +got):\n%s", diff)
	}
	if len(res.Rows) != res.TokenCount {
		t.Errorf("%d rows for %d tokens", len(res.Rows), res.TokenCount)
	}
}

func TestAnalyzeMergedAuxiliaries(t *testing.T) {
	a := newTestAnalyzer(t, WithMergedAuxiliaries())
	toks := a.Tokenize("行きました")
	if len(toks) != 1 {
		t.Fatalf("got %d tokens, want 1 merged token", len(toks))
	}
	if toks[0].Conjugation != "polite past" || toks[0].Surface != "行きました" {
		t.Errorf("merged token = %+v", toks[0])
	}
	rows := a.Table("行きました")
	if rows[0].Label != "Godan Verb - Continuing Form" || rows[0].BasicForm != "行く" {
		t.Errorf("row = %+v", rows[0])
	}
	if !strings.Contains(rows[0].Detail, "polite past") {
		t.Errorf("detail = %q", rows[0].Detail)
	}
	if got := a.Furigana("行きました"); got != "<ruby>行<rp>(</rp><rt>い</rt><rp>)</rp></ruby>きました" {
		t.Errorf("Furigana = %q", got)
	}
}

func TestAnalyzeMergedUsesOneSegmentation(t *testing.T) {
	a := newTestAnalyzer(t, WithMergedAuxiliaries())
	res, err := a.Analyze(context.Background(), doc(t, "私は行きました。"))
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	var surfaces []string
	for _, tk := range res.Tokens {
		surfaces = append(surfaces, tk.Surface)
	}
	if diff := cmp.Diff([]string{"私", "は", "行きました", "。"}, surfaces); diff != "" {
		t.Errorf("tokens (-want +got):\n%s", diff)
	}
	if len(res.Classifications) != len(res.Tokens) || len(res.Rows) != len(res.Tokens) {
		t.Errorf("%d classes, %d rows for %d tokens", len(res.Classifications), len(res.Rows), len(res.Tokens))
	}
	if res.Furigana != a.Furigana("私は行きました。") {
		t.Errorf("Furigana = %q, want %q", res.Furigana, a.Furigana("私は行きました。"))
	}
	if got := render.Strip(res.Furigana); got != "私は行きました。" {
		t.Errorf("stripped furigana = %q", got)
	}
}

func TestClauses(t *testing.T) {
	a := newTestAnalyzer(t)
	toks := a.Tokenize("雨が、私は学生です。")
	got := Clauses(toks)
	want := []Clause{
		{Start: 0, End: 2, Type: SubordinateClause, Connective: "が"},
		{Start: 3, End: 7, Type: MainClause},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("clauses (-want +got):\n%s", diff)
	}
	if got := Clauses(nil); got != nil {
		t.Errorf("Clauses(nil) = %v", got)
	}
}

func TestAnalyzeBatchKeepsOrder(t *testing.T) {
	a := newTestAnalyzer(t, WithWorkers(3))
	texts := []string{"私は学生です。", "雨", "行きました", "学生が", "🎲"}
	var docs []ingest.Document
	for _, s := range texts {
		docs = append(docs, doc(t, s))
	}
	res, err := a.AnalyzeBatch(context.Background(), docs)
	if err != nil {
		t.Fatalf("AnalyzeBatch: %v", err)
	}
	for i, r := range res {
		if r.DocumentID != docs[i].ID || r.Text != texts[i] {
			t.Errorf("result %d = %q, want %q", i, r.Text, texts[i])
		}
	}
	if res[4].UnknownCount != 1 {
		t.Errorf("unknown count = %d, want 1", res[4].UnknownCount)
	}
}

func TestAnalyzeBatchCancelled(t *testing.T) {
	a := newTestAnalyzer(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := a.AnalyzeBatch(ctx, []ingest.Document{doc(t, "雨")})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if _, err := a.Analyze(ctx, doc(t, "雨")); !errors.Is(err, context.Canceled) {
		t.Fatalf("Analyze err = %v, want context.Canceled", err)
	}
}

func TestStream(t *testing.T) {
	a := newTestAnalyzer(t, WithWorkers(2))
	q := ingest.NewQueue(8)
	texts := []string{"雨", "私", "学生", "行きました"}
	for _, s := range texts {
		if !q.Publish(doc(t, s)) {
			t.Fatal("publish dropped")
		}
	}
	q.Close()
	var got []string
	for r := range a.Stream(context.Background(), q.C()) {
		if r.Err != nil {
			t.Fatalf("stream error: %v", r.Err)
		}
		got = append(got, r.Analysis.Text)
	}
	sort.Strings(got)
	want := append([]string(nil), texts...)
	sort.Strings(want)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("streamed (-want +got):\n%s", diff)
	}
}

func TestStreamStopsOnCancel(t *testing.T) {
	a := newTestAnalyzer(t)
	ctx, cancel := context.WithCancel(context.Background())
	in := make(chan ingest.Document)
	out := a.Stream(ctx, in)
	cancel()
	for range out {
	}
}

func TestInitialize(t *testing.T) {
	dir := t.TempDir()
	lex := filepath.Join(dir, "lex.tsv")
	if err := os.WriteFile(lex, []byte(testTSV), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := config.Default()
	cfg.Dictionary = lex
	cfg.Mode = "okurigana"
	cfg.Script = "katakana"
	a, err := Initialize(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	if got := a.Furigana("学生"); got != "学生(ガクセイ)" {
		t.Errorf("Furigana = %q", got)
	}
	if a.Lexicon().Len() == 0 {
		t.Error("empty lexicon")
	}
}

func TestInitializeLoadError(t *testing.T) {
	cfg := config.Default()
	cfg.Dictionary = filepath.Join(t.TempDir(), "missing.tsv")
	_, err := Initialize(context.Background(), cfg)
	var le *dictionary.LoadError
	if !errors.As(err, &le) || !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("err = %v, want LoadError wrapping fs.ErrNotExist", err)
	}

	cfg.Dictionary = filepath.Join(t.TempDir(), "lex.tsv")
	if err := os.WriteFile(cfg.Dictionary, []byte(testTSV), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg.Kanjidic = filepath.Join(t.TempDir(), "kanjidic2.xml")
	_, err = Initialize(context.Background(), cfg)
	if !errors.As(err, &le) || le.Path != cfg.Kanjidic {
		t.Fatalf("err = %v, want LoadError for kanjidic", err)
	}
}

func TestInitializeInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Script = "romaji"
	if _, err := Initialize(context.Background(), cfg); err == nil {
		t.Fatal("invalid script accepted")
	}
}
