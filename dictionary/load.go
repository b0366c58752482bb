package dictionary

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/ikawaha/kagome-dict/dict"
	"github.com/ikawaha/kagome-dict/ipa"
	"go.uber.org/zap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"

	"japaneseannotate/model"
)

// BuiltinIPA names the IPADIC system dictionary compiled into the binary.
const BuiltinIPA = "builtin:ipa"

// DefaultCost is used for lexicon lines that omit a cost column.
const DefaultCost = 1000

// Load reads a dictionary asset. The format follows the path:
//
//	builtin:ipa  bundled IPADIC system dictionary
//	*.zip        kagome system dictionary file (IPADIC layout)
//	*.csv        MeCab/IPADIC source rows, UTF-8 or EUC-JP
//	otherwise    tab-separated lexicon lines
//
// Any failure is returned as a *LoadError.
func Load(path string) (*Lexicon, error) {
	l, err := load(path)
	if err != nil {
		zap.S().Errorw("dictionary load failed", "path", path, "error", err)
		return nil, &LoadError{Path: path, Err: err}
	}
	zap.S().Infow("dictionary loaded", "path", path, "entries", l.Len())
	return l, nil
}

// LoadContext runs Load but stops waiting when ctx is done. The lexicon is
// only ever returned complete.
func LoadContext(ctx context.Context, path string) (*Lexicon, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	type result struct {
		l   *Lexicon
		err error
	}
	done := make(chan result, 1)
	go func() {
		l, err := Load(path)
		done <- result{l, err}
	}()
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-done:
		return r.l, r.err
	}
}

func load(path string) (*Lexicon, error) {
	if path == BuiltinIPA {
		return FromSystem(BuiltinIPA, ipa.Dict()), nil
	}
	if path == "" {
		return nil, fmt.Errorf("empty dictionary path")
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".zip":
		d, err := dict.LoadDictFile(path)
		if err != nil {
			return nil, err
		}
		return FromSystem(path, d), nil
	case ".csv":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		entries, err := ParseMeCabCSV(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		return New(path, entries, nil)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	entries, err := ParseTSV(f)
	if err != nil {
		return nil, err
	}
	return New(path, entries, nil)
}

// ParseTSV reads lexicon lines of the form
//
//	surface<TAB>reading<TAB>pos[<TAB>subtags<TAB>ctype<TAB>cform<TAB>base<TAB>cost]
//
// where subtags is comma separated. Blank lines and lines starting with '#'
// are skipped. Japanese tags are accepted in the pos and subtag columns.
func ParseTSV(r io.Reader) ([]model.LexiconEntry, error) {
	var out []model.LexiconEntry
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !utf8.ValidString(line) {
			return nil, fmt.Errorf("line %d: invalid UTF-8", lineNum)
		}
		parts := strings.Split(line, "\t")
		if len(parts) < 3 {
			return nil, fmt.Errorf("line %d: expected at least 3 tab-separated fields, got %d", lineNum, len(parts))
		}
		for len(parts) < 8 {
			parts = append(parts, "")
		}
		if parts[0] == "" {
			return nil, fmt.Errorf("line %d: empty surface", lineNum)
		}
		cost := DefaultCost
		if c := strings.TrimSpace(parts[7]); c != "" {
			n, err := strconv.Atoi(c)
			if err != nil {
				return nil, fmt.Errorf("line %d: cost %q: %w", lineNum, c, err)
			}
			cost = n
		}
		var sub []string
		if s := strings.TrimSpace(parts[3]); s != "" {
			sub = strings.Split(s, ",")
		}
		out = append(out, NewEntry(parts[0], field(parts[1]), "", parts[2], sub, parts[4], parts[5], parts[6], cost))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, ErrEmpty
	}
	return out, nil
}

// ParseMeCabCSV reads dictionary source rows in the IPADIC column order:
// surface,left,right,cost,pos1,pos2,pos3,pos4,ctype,cform,base,reading,pron.
// IPADIC ships in EUC-JP; input that is not valid UTF-8 is decoded as EUC-JP.
func ParseMeCabCSV(r io.Reader) ([]model.LexiconEntry, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var src io.Reader = bytes.NewReader(data)
	if !utf8.Valid(data) {
		src = transform.NewReader(src, japanese.EUCJP.NewDecoder())
	}
	cr := csv.NewReader(src)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = true
	var out []model.LexiconEntry
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		line, _ := cr.FieldPos(0)
		if len(rec) < 11 {
			return nil, fmt.Errorf("line %d: expected at least 11 fields, got %d", line, len(rec))
		}
		for len(rec) < 13 {
			rec = append(rec, "")
		}
		left, err := strconv.Atoi(rec[1])
		if err != nil {
			return nil, fmt.Errorf("line %d: left id: %w", line, err)
		}
		right, err := strconv.Atoi(rec[2])
		if err != nil {
			return nil, fmt.Errorf("line %d: right id: %w", line, err)
		}
		cost, err := strconv.Atoi(rec[3])
		if err != nil {
			return nil, fmt.Errorf("line %d: cost: %w", line, err)
		}
		e := NewEntry(rec[0], field(rec[11]), field(rec[12]), rec[4], rec[5:8], rec[8], rec[9], rec[10], cost)
		e.LeftID, e.RightID = left, right
		out = append(out, e)
	}
	if len(out) == 0 {
		return nil, ErrEmpty
	}
	return out, nil
}

// NewEntry builds an entry from dictionary columns, translating the
// primary tag to a POS and normalizing sub-tags. "*" columns become empty.
func NewEntry(surface, reading, pron, pos string, sub []string, ctype, cform, base string, cost int) model.LexiconEntry {
	raw := strings.TrimSpace(pos)
	p, _ := model.ParsePOS(raw)
	return model.LexiconEntry{
		Surface:         surface,
		Reading:         field(reading),
		Pronunciation:   field(pron),
		POS:             p,
		RawPOS:          raw,
		SubTags:         normalizeSubTags(sub),
		ConjugationType: field(ctype),
		ConjugationForm: field(cform),
		BaseForm:        field(base),
		Cost:            cost,
	}
}
