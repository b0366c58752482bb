package analyze

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"japaneseannotate/ingest"
	"japaneseannotate/model"
	"japaneseannotate/render"
	"japaneseannotate/tokenize"
)

// Analysis is the full result for one document.
type Analysis struct {
	DocumentID      string                 `json:"document_id"`
	Text            string                 `json:"text"`
	TokenCount      int                    `json:"token_count"`
	UnknownCount    int                    `json:"unknown_count"`
	Tokens          []model.Token          `json:"tokens"`
	Classifications []model.Classification `json:"classifications"`
	Furigana        string                 `json:"furigana"`
	Rows            []render.Row           `json:"rows"`
	Clauses         []Clause               `json:"clauses,omitempty"`
}

// Analyze runs the whole pipeline over doc. The context is checked before
// the document is started; a started document always completes.
func (a *Analyzer) Analyze(ctx context.Context, doc ingest.Document) (Analysis, error) {
	if err := ctx.Err(); err != nil {
		return Analysis{}, err
	}
	raw := a.tok.Tokenize(doc.Text)
	toks := raw
	if a.merge {
		toks = tokenize.MergeAuxiliaries(raw)
	}
	classes := a.Classify(toks)
	unknown := 0
	for _, tk := range toks {
		if tk.Unknown {
			unknown++
		}
	}
	return Analysis{
		DocumentID:      doc.ID,
		Text:            doc.Text,
		TokenCount:      len(toks),
		UnknownCount:    unknown,
		Tokens:          toks,
		Classifications: classes,
		Furigana:        render.Furigana(raw, a.furigana),
		Rows:            render.Table(toks, classes, a.table),
		Clauses:         Clauses(toks),
	}, nil
}

// AnalyzeBatch analyzes docs with at most the configured number of
// workers. Results keep the order of docs. Cancelling ctx stops documents
// that have not started yet and returns the context error.
func (a *Analyzer) AnalyzeBatch(ctx context.Context, docs []ingest.Document) ([]Analysis, error) {
	out := make([]Analysis, len(docs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.workers)
	for i, d := range docs {
		if gctx.Err() != nil {
			break
		}
		i, d := i, d
		g.Go(func() error {
			res, err := a.Analyze(gctx, d)
			if err != nil {
				return err
			}
			out[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	zap.S().Debugw("batch analyzed", "documents", len(docs), "workers", a.workers)
	return out, nil
}

// Result is one Stream output.
type Result struct {
	Analysis Analysis
	Err      error
}

// Stream analyzes documents from in until it is closed or ctx is done.
// Results arrive in completion order; the output channel is closed once
// every worker has stopped.
func (a *Analyzer) Stream(ctx context.Context, in <-chan ingest.Document) <-chan Result {
	out := make(chan Result, a.workers)
	var wg sync.WaitGroup
	for w := 0; w < a.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case d, ok := <-in:
					if !ok {
						return
					}
					res, err := a.Analyze(ctx, d)
					select {
					case <-ctx.Done():
						return
					case out <- Result{Analysis: res, Err: err}:
					}
				}
			}
		}()
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}
