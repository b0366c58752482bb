// Package host adapts the analyzer to a text-editing host: editor
// commands working on the current selection and rendering of fenced code
// blocks in markdown notes.
package host

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"japaneseannotate/analyze"
	"japaneseannotate/render"
)

// Editor is the part of a host editor the commands need. Lines are
// numbered from zero; SetLine(LineCount(), s) appends.
type Editor interface {
	Selection() string
	ReplaceSelection(text string)
	LineCount() int
	SetLine(n int, text string)
}

// ErrNoSelection is returned by commands run without selected text.
var ErrNoSelection = errors.New("no text selected")

// Command is an editor command.
type Command struct {
	ID   string
	Name string
	Run  func(ctx context.Context, e Editor) error
}

// Commands returns the editor commands backed by a.
func Commands(a *analyze.Analyzer) []Command {
	return []Command{
		{
			ID:   "add-ruby",
			Name: "Add furigana to selected text",
			Run: func(ctx context.Context, e Editor) error {
				return AddRuby(ctx, a, e)
			},
		},
		{
			ID:   "jlt-morphology",
			Name: "Break down the morphology of selected text",
			Run: func(ctx context.Context, e Editor) error {
				return Morphology(ctx, a, e)
			},
		},
	}
}

func selection(ctx context.Context, e Editor) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	sel := e.Selection()
	if strings.TrimSpace(sel) == "" {
		return "", ErrNoSelection
	}
	return sel, nil
}

// AddRuby replaces the selection with its ruby-annotated form. Markup
// already in the selection, including earlier ruby annotations, is kept
// as is.
func AddRuby(ctx context.Context, a *analyze.Analyzer, e Editor) error {
	sel, err := selection(ctx, e)
	if err != nil {
		return err
	}
	out := annotateRuby(a, sel)
	zap.S().Debugw("add-ruby", "input", sel, "output", out)
	e.ReplaceSelection(out)
	return nil
}

// markup matches spans AddRuby copies through unchanged: existing ruby
// elements, other tags and character references.
var markup = regexp.MustCompile(`(?is)<ruby>.*?</ruby>|<[^<>]*>|&(?:#[0-9]+|#x[0-9a-f]+|[a-z][a-z0-9]*);`)

func annotateRuby(a *analyze.Analyzer, sel string) string {
	var b strings.Builder
	last := 0
	for _, m := range markup.FindAllStringIndex(sel, -1) {
		b.WriteString(render.Format(a.Segments(sel[last:m[0]]), render.Ruby))
		b.WriteString(sel[m[0]:m[1]])
		last = m[1]
	}
	b.WriteString(render.Format(a.Segments(sel[last:]), render.Ruby))
	return b.String()
}

// Morphology appends a markdown breakdown of the selection after the last
// line of the document.
func Morphology(ctx context.Context, a *analyze.Analyzer, e Editor) error {
	sel, err := selection(ctx, e)
	if err != nil {
		return err
	}
	e.SetLine(e.LineCount(), "\n\n"+a.Markdown(sel, false))
	return nil
}

const (
	fence          = "```"
	furiganaLang   = "furigana"
	morphologyLang = "morphology"
)

// RenderCodeBlocks replaces ```furigana and ```morphology fenced blocks in
// markdown with their rendered content. Other blocks and unterminated
// fences are left untouched.
func RenderCodeBlocks(a *analyze.Analyzer, markdown string) string {
	lines := strings.Split(markdown, "\n")
	var out []string
	for i := 0; i < len(lines); i++ {
		lang, ok := openFence(lines[i])
		if !ok {
			out = append(out, lines[i])
			continue
		}
		end := -1
		for j := i + 1; j < len(lines); j++ {
			if strings.TrimSpace(lines[j]) == fence {
				end = j
				break
			}
		}
		if end < 0 {
			out = append(out, lines[i:]...)
			break
		}
		body := lines[i+1 : end]
		switch lang {
		case furiganaLang:
			for _, l := range body {
				out = append(out, a.Furigana(l))
			}
		case morphologyLang:
			table := a.Markdown(strings.Join(body, "\n"), false)
			out = append(out, strings.Split(strings.TrimSuffix(table, "\n"), "\n")...)
		default:
			out = append(out, lines[i:end+1]...)
		}
		i = end
	}
	return strings.Join(out, "\n")
}

func openFence(line string) (string, bool) {
	t := strings.TrimSpace(line)
	if !strings.HasPrefix(t, fence) {
		return "", false
	}
	lang := strings.TrimSpace(strings.TrimPrefix(t, fence))
	if strings.Contains(lang, "`") {
		return "", false
	}
	if lang == "" {
		return "", true
	}
	return strings.ToLower(strings.Fields(lang)[0]), true
}
