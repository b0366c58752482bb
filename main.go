package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"go.uber.org/zap"

	"japaneseannotate/analyze"
	"japaneseannotate/config"
	"japaneseannotate/host"
	"japaneseannotate/ingest"
	"japaneseannotate/logger"
	"japaneseannotate/tokenize"
)

const usage = `usage: japaneseannotate [flags] <command> [args]

commands:
  furigana [text]      annotate text (or stdin) with readings
  table [text]         morphology table for text (or stdin)
  compare [text]       compare segmentation with the kagome reference tokenizer
  batch [files]        analyze files (or stdin) sentence by sentence, as JSON lines
  render [file]        render furigana/morphology code blocks in a markdown file

flags:
`

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "YAML config file")
	dict := flag.String("dict", "", "lexicon: builtin:ipa, kagome .zip, MeCab .csv or TSV")
	kanjidic := flag.String("kanjidic", "", "kanjidic2 XML for per-kanji furigana")
	mode := flag.String("mode", "", "furigana mode: ruby, okurigana or bracket")
	script := flag.String("script", "", "reading script: hiragana or katakana")
	workers := flag.Int("workers", 0, "batch workers")
	merge := flag.Bool("merge", false, "merge auxiliaries into their verb")
	details := flag.Bool("details", false, "table: add a details column")
	asJSON := flag.Bool("json", false, "table: print rows as JSON")
	reference := flag.String("reference", "ipa", "compare: kagome dictionary, ipa or uni")
	stream := flag.Bool("stream", false, "batch: read stdin line by line and print results as they complete")
	logDir := flag.String("log-dir", "", "batch: also dump each analysis as JSON into this directory")
	level := zap.LevelFlag("log-level", zap.InfoLevel, "set log level")
	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	levelSet := false
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "dict":
			cfg.Dictionary = *dict
		case "kanjidic":
			cfg.Kanjidic = *kanjidic
		case "mode":
			cfg.Mode = *mode
		case "script":
			cfg.Script = *script
		case "workers":
			cfg.Workers = *workers
		case "merge":
			cfg.MergeAuxiliaries = *merge
		case "log-dir":
			cfg.LogDir = *logDir
		case "log-level":
			levelSet = true
		}
	})
	if !levelSet {
		if l, err := logger.ParseLevel(cfg.LogLevel); err == nil {
			*level = l
		}
	}
	flush, err := logger.New(*level)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	defer flush()

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		return 2
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd, rest := args[0], args[1:]
	if cmd == "compare" {
		err = compare(*reference, cfg, rest, os.Stdin, os.Stdout)
	} else {
		var a *analyze.Analyzer
		a, err = analyze.Initialize(ctx, cfg)
		if err == nil {
			switch cmd {
			case "furigana":
				err = furigana(a, rest, os.Stdin, os.Stdout)
			case "table":
				err = table(a, rest, os.Stdin, os.Stdout, *details, *asJSON)
			case "batch":
				if *stream {
					err = streamBatch(ctx, a, os.Stdin, os.Stdout)
				} else {
					err = batch(ctx, a, cfg.LogDir, rest, os.Stdin, os.Stdout)
				}
			case "render":
				err = renderFile(a, rest, os.Stdin, os.Stdout)
			default:
				flag.Usage()
				return 2
			}
		}
	}
	if err != nil {
		zap.S().Errorw("command failed", "command", cmd, "error", err)
		return 1
	}
	return 0
}

// input joins args, or reads all of stdin when there are none.
func input(args []string, stdin io.Reader) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	b, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(b), nil
}

func furigana(a *analyze.Analyzer, args []string, stdin io.Reader, w io.Writer) error {
	text, err := input(args, stdin)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, a.Furigana(strings.TrimRight(text, "\n")))
	return err
}

func table(a *analyze.Analyzer, args []string, stdin io.Reader, w io.Writer, details, asJSON bool) error {
	text, err := input(args, stdin)
	if err != nil {
		return err
	}
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(a.Table(text))
	}
	_, err = fmt.Fprint(w, a.Markdown(text, details))
	return err
}

func compare(system string, cfg config.Config, args []string, stdin io.Reader, w io.Writer) error {
	text, err := input(args, stdin)
	if err != nil {
		return err
	}
	ref, err := tokenize.NewReference(system)
	if err != nil {
		return err
	}
	a, err := analyze.Initialize(context.Background(), cfg)
	if err != nil {
		return err
	}
	got := tokenize.Surfaces(a.Tokenize(text))
	want := tokenize.Surfaces(ref.Tokenize(text))
	fmt.Fprintf(w, "%-10s %s\n", a.Lexicon().Name()+":", strings.Join(got, " | "))
	fmt.Fprintf(w, "%-10s %s\n", "kagome:", strings.Join(want, " | "))
	if strings.Join(got, "\x00") != strings.Join(want, "\x00") {
		return errors.New("segmentations differ")
	}
	return nil
}

func documents(args []string, stdin io.Reader) ([]ingest.Document, error) {
	var texts []string
	if len(args) == 0 {
		b, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		texts = append(texts, string(b))
	}
	for _, p := range args {
		b, err := os.ReadFile(p)
		if err != nil {
			return nil, err
		}
		texts = append(texts, string(b))
	}
	var docs []ingest.Document
	for _, t := range texts {
		for _, s := range ingest.Split(t) {
			d, err := ingest.NewDocument(s)
			if err != nil {
				return nil, err
			}
			docs = append(docs, d)
		}
	}
	return docs, nil
}

func batch(ctx context.Context, a *analyze.Analyzer, logDir string, args []string, stdin io.Reader, w io.Writer) error {
	docs, err := documents(args, stdin)
	if err != nil {
		return err
	}
	if logDir != "" {
		if err := logger.InitLogs(logDir); err != nil {
			return fmt.Errorf("init logs: %w", err)
		}
	}
	res, err := a.AnalyzeBatch(ctx, docs)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	for _, r := range res {
		if err := enc.Encode(r); err != nil {
			return err
		}
		if logDir != "" {
			if err := logger.LogJSON(logDir, r.DocumentID, r); err != nil {
				zap.S().Warnw("failed to write analysis dump", "id", r.DocumentID, "error", err)
			}
		}
	}
	return nil
}

func streamBatch(ctx context.Context, a *analyze.Analyzer, stdin io.Reader, w io.Writer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	q := ingest.NewQueue(100)
	results := a.Stream(ctx, q.C())
	go func() {
		defer q.Close()
		scanner := bufio.NewScanner(stdin)
		for scanner.Scan() {
			for _, s := range ingest.Split(scanner.Text()) {
				d, err := ingest.NewDocument(s)
				if err != nil {
					zap.S().Warnw("skipping line", "error", err)
					continue
				}
				if err := q.Send(ctx, d); err != nil {
					return
				}
			}
		}
		if err := scanner.Err(); err != nil {
			zap.S().Errorw("read stdin", "error", err)
		}
	}()
	enc := json.NewEncoder(w)
	for r := range results {
		if r.Err != nil {
			return r.Err
		}
		if err := enc.Encode(r.Analysis); err != nil {
			return err
		}
	}
	return ctx.Err()
}

func renderFile(a *analyze.Analyzer, args []string, stdin io.Reader, w io.Writer) error {
	var b []byte
	var err error
	if len(args) > 0 {
		b, err = os.ReadFile(args[0])
	} else {
		b, err = io.ReadAll(stdin)
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(w, host.RenderCodeBlocks(a, string(b)))
	return err
}
