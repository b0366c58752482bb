package ingest

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MaxDocumentBytes bounds the size of a single document.
const MaxDocumentBytes = 1 << 20

var (
	ErrEmpty    = errors.New("empty document")
	ErrTooLarge = fmt.Errorf("document exceeds %d bytes", MaxDocumentBytes)
)

// Document represents one piece of submitted text and its metadata.
type Document struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// NewDocument trims and validates text and assigns it an id.
func NewDocument(text string) (Document, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return Document{}, ErrEmpty
	}
	if len(trimmed) > MaxDocumentBytes {
		return Document{}, ErrTooLarge
	}
	return Document{
		ID:        uuid.NewString(),
		Text:      trimmed,
		CreatedAt: time.Now().UTC(),
	}, nil
}

const terminators = "。！？!?\n"

// Split breaks text into sentences after each terminator (。！？!? or a
// newline), keeping the terminator with its sentence. Closing brackets and
// quotes directly after a terminator stay with the sentence. Blank
// sentences are dropped and the rest are trimmed.
func Split(text string) []string {
	var out []string
	rs := []rune(text)
	start := 0
	flush := func(end int) {
		if s := strings.TrimSpace(string(rs[start:end])); s != "" {
			out = append(out, s)
		}
		start = end
	}
	for i := 0; i < len(rs); i++ {
		if !strings.ContainsRune(terminators, rs[i]) {
			continue
		}
		j := i + 1
		for j < len(rs) && strings.ContainsRune("」』）)】", rs[j]) {
			j++
		}
		flush(j)
		i = j - 1
	}
	flush(len(rs))
	return out
}

// Queue is a buffered channel where ingested documents are published for
// downstream processing.
type Queue struct {
	ch chan Document
}

// NewQueue returns a queue holding up to size pending documents.
func NewQueue(size int) *Queue {
	if size < 1 {
		size = 1
	}
	return &Queue{ch: make(chan Document, size)}
}

// Publish enqueues doc without blocking. It reports false and drops the
// document when the queue is full.
func (q *Queue) Publish(doc Document) bool {
	select {
	case q.ch <- doc:
		return true
	default:
		zap.S().Warnw("ingest queue full, dropping document", "id", doc.ID)
		return false
	}
}

// Send enqueues doc, waiting for room until ctx is done.
func (q *Queue) Send(ctx context.Context, doc Document) error {
	select {
	case q.ch <- doc:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// C returns the receive side of the queue.
func (q *Queue) C() <-chan Document { return q.ch }

// Close marks the end of input. Publish must not be called afterwards.
func (q *Queue) Close() { close(q.ch) }
