package analyze

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"japaneseannotate/classify"
	"japaneseannotate/config"
	"japaneseannotate/dictionary"
	"japaneseannotate/kana"
	"japaneseannotate/kanji"
	"japaneseannotate/model"
	"japaneseannotate/render"
	"japaneseannotate/tokenize"
)

// Analyzer ties a loaded lexicon to the tokenizer, classifier and
// renderers. It is read-only after construction and safe for concurrent
// use.
type Analyzer struct {
	tok      *tokenize.Tokenizer
	cls      *classify.Classifier
	furigana render.Options
	table    render.TableOptions
	merge    bool
	workers  int
	tokOpts  []tokenize.Option
}

type Option func(*Analyzer)

func WithClassifier(c *classify.Classifier) Option {
	return func(a *Analyzer) { a.cls = c }
}

func WithTokenizerOptions(opts ...tokenize.Option) Option {
	return func(a *Analyzer) { a.tokOpts = append(a.tokOpts, opts...) }
}

func WithMode(m render.Mode) Option {
	return func(a *Analyzer) { a.furigana.Mode = m }
}

// WithScript sets the kana script of both furigana and table readings.
func WithScript(s kana.Script) Option {
	return func(a *Analyzer) {
		a.furigana.Script = s
		a.table.Script = s
	}
}

func WithKanji(r *kanji.Readings) Option {
	return func(a *Analyzer) { a.furigana.Kanji = r }
}

func WithLinkBase(base string) Option {
	return func(a *Analyzer) { a.table.LinkBase = base }
}

// WithMergedAuxiliaries folds auxiliaries into their verb or adjective
// before classification and rendering.
func WithMergedAuxiliaries() Option {
	return func(a *Analyzer) { a.merge = true }
}

// WithWorkers bounds the concurrency of AnalyzeBatch and Stream.
func WithWorkers(n int) Option {
	return func(a *Analyzer) { a.workers = n }
}

// New builds an analyzer over lex.
func New(lex *dictionary.Lexicon, opts ...Option) *Analyzer {
	a := &Analyzer{workers: config.DefaultWorkers}
	for _, o := range opts {
		o(a)
	}
	if a.cls == nil {
		a.cls = classify.Default()
	}
	if a.workers < 1 {
		a.workers = 1
	}
	a.tok = tokenize.New(lex, a.tokOpts...)
	return a
}

// Initialize loads every asset named by cfg and returns a ready analyzer.
// Load failures are reported as *dictionary.LoadError.
func Initialize(ctx context.Context, cfg config.Config) (*Analyzer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	lex, err := dictionary.LoadContext(ctx, cfg.Dictionary)
	if err != nil {
		return nil, err
	}
	mode, _ := render.ParseMode(cfg.Mode)
	script, _ := kana.ParseScript(cfg.Script)
	tokOpts := []tokenize.Option{tokenize.WithUnknownCost(cfg.UnknownCost)}
	if cfg.FoldWidth {
		tokOpts = append(tokOpts, tokenize.WithWidthFolding())
	}
	opts := []Option{
		WithTokenizerOptions(tokOpts...),
		WithMode(mode),
		WithScript(script),
		WithLinkBase(cfg.LinkBase),
		WithWorkers(cfg.Workers),
	}
	if cfg.MergeAuxiliaries {
		opts = append(opts, WithMergedAuxiliaries())
	}
	if cfg.Kanjidic != "" {
		kr, err := kanji.LoadKanjidic2(cfg.Kanjidic)
		if err != nil {
			return nil, &dictionary.LoadError{Path: cfg.Kanjidic, Err: err}
		}
		opts = append(opts, WithKanji(kr))
	}
	zap.S().Infow("analyzer ready", "dictionary", lex.Name(), "entries", lex.Len())
	return New(lex, opts...), nil
}

// Lexicon returns the lexicon the analyzer tokenizes with.
func (a *Analyzer) Lexicon() *dictionary.Lexicon { return a.tok.Lexicon() }

// Tokenize segments text, merging auxiliaries when configured.
func (a *Analyzer) Tokenize(text string) []model.Token {
	toks := a.tok.Tokenize(text)
	if a.merge {
		toks = tokenize.MergeAuxiliaries(toks)
	}
	return toks
}

// Classify labels each token.
func (a *Analyzer) Classify(tokens []model.Token) []model.Classification {
	out := make([]model.Classification, len(tokens))
	for i, tk := range tokens {
		out[i] = a.cls.Classify(tk)
	}
	return out
}

// Furigana returns text with reading annotations.
func (a *Analyzer) Furigana(text string) string {
	return render.Furigana(a.tok.Tokenize(text), a.furigana)
}

// Segments returns the furigana segments for text, for callers that pick
// their own output format.
func (a *Analyzer) Segments(text string) []render.Segment {
	return render.Segments(a.tok.Tokenize(text), a.furigana)
}

// Table returns the morphology rows for text.
func (a *Analyzer) Table(text string) []render.Row {
	toks := a.Tokenize(text)
	return render.Table(toks, a.Classify(toks), a.table)
}

// Markdown returns the morphology table for text as markdown.
func (a *Analyzer) Markdown(text string, details bool) string {
	return render.Markdown(a.Table(text), details)
}
