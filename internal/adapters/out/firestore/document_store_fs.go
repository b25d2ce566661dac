// internal/adapters/out/firestore/document_store_fs.go
package firestore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	uc "smartattender/internal/application/usecase"
)

// DocumentStoreFS is the Firestore implementation of usecase.DocumentStore.
// All writes are Set(..., MergeAll).
type DocumentStoreFS struct {
	Client *firestore.Client
}

func NewDocumentStoreFS(client *firestore.Client) *DocumentStoreFS {
	return &DocumentStoreFS{Client: client}
}

var _ uc.DocumentStore = (*DocumentStoreFS)(nil)

// NewID returns a Firestore auto-id. No RPC is made.
func (s *DocumentStoreFS) NewID(collectionPath string) string {
	if s == nil || s.Client == nil {
		return ""
	}
	col := s.Client.Collection(strings.Trim(collectionPath, "/"))
	if col == nil {
		return ""
	}
	return col.NewDoc().ID
}

// Upsert merges data into docPath, creating it when absent.
func (s *DocumentStoreFS) Upsert(ctx context.Context, docPath string, data map[string]any) error {
	if s == nil || s.Client == nil {
		return errors.New("firestore client is nil")
	}
	docPath = strings.Trim(strings.TrimSpace(docPath), "/")
	ref := s.Client.Doc(docPath)
	if ref == nil {
		return fmt.Errorf("firestore: invalid document path %q", docPath)
	}
	if len(data) == 0 {
		return fmt.Errorf("firestore: empty payload for %s", docPath)
	}

	if _, err := ref.Set(ctx, data, firestore.MergeAll); err != nil {
		return classifyError(docPath, err)
	}
	return nil
}

// classifyError keeps the gRPC code in the message and maps auth failures to
// usecase sentinels.
func classifyError(docPath string, err error) error {
	code := status.Code(err)
	switch code {
	case codes.PermissionDenied:
		return fmt.Errorf("%w: %s: %w", uc.ErrPermissionDenied, docPath, err)
	case codes.Unauthenticated:
		return fmt.Errorf("%w: %s: %w", uc.ErrUnauthenticated, docPath, err)
	case codes.OK, codes.Unknown:
		return fmt.Errorf("firestore: set %s: %w", docPath, err)
	default:
		return fmt.Errorf("firestore: set %s (%s): %w", docPath, code, err)
	}
}
