// internal/adapters/out/dryrun/document_store_dryrun.go
package dryrun

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"

	uc "smartattender/internal/application/usecase"
)

// DocumentStore prints every upsert instead of writing it (--dry-run).
type DocumentStore struct {
	Out io.Writer
}

func NewDocumentStore(out io.Writer) *DocumentStore {
	return &DocumentStore{Out: out}
}

var _ uc.DocumentStore = (*DocumentStore)(nil)

// NewID mimics a store-generated id with a random uuid.
func (s *DocumentStore) NewID(_ string) string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:20]
}

func (s *DocumentStore) Upsert(ctx context.Context, docPath string, data map[string]any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.Out == nil {
		return fmt.Errorf("dryrun: output writer is nil")
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(printable(data)); err != nil {
		return fmt.Errorf("dryrun: encode %s: %w", docPath, err)
	}
	// Encode は末尾に改行を付ける
	_, err := fmt.Fprintf(s.Out, "--- set(merge) %s\n%s", docPath, buf.Bytes())
	return err
}

// printable replaces Firestore sentinels with readable markers.
func printable(v any) any {
	switch x := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, vv := range x {
			out[k] = printable(vv)
		}
		return out
	case []map[string]any:
		out := make([]any, 0, len(x))
		for _, vv := range x {
			out = append(out, printable(vv))
		}
		return out
	case []any:
		out := make([]any, 0, len(x))
		for _, vv := range x {
			out = append(out, printable(vv))
		}
		return out
	}
	switch v {
	case firestore.ServerTimestamp:
		return "<serverTimestamp>"
	case firestore.Delete:
		return "<delete>"
	}
	return v
}
