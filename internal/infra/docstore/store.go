// Package docstore is the remote document store: a tree of JSON documents
// addressed by slash-separated paths. A collection path such as "FMS/Rooms"
// holds documents; a document path such as "FMS/Rooms/<key>" addresses one.
package docstore

import (
	"context"
	"encoding/json"
	"strings"

	"meetroom/internal/pkg/errs"
)

var (
	ErrNotFound    = errs.New("document not found")
	ErrInvalidPath = errs.New("invalid document path")
	// ErrUnavailable is returned while the store cannot be reached.
	ErrUnavailable = errs.New("document store unavailable")
)

// Query narrows a collection read. OrderBy names a child field; EqualTo,
// when set, keeps only documents whose OrderBy field equals it.
type Query struct {
	OrderBy string
	EqualTo any
}

type Document struct {
	Key   string
	Value json.RawMessage
}

func (d Document) Decode(v any) error {
	if err := json.Unmarshal(d.Value, v); err != nil {
		return errs.Wrapf(err, "failed to decode document %s", d.Key)
	}
	return nil
}

// Snapshot is the ordered result of a collection read.
type Snapshot []Document

func (s Snapshot) Exists() bool { return len(s) > 0 }

type Store interface {
	Get(ctx context.Context, collection string, q *Query) (Snapshot, error)
	Set(ctx context.Context, docPath string, value any) error
	Update(ctx context.Context, docPath string, fields map[string]any) error
	Push(ctx context.Context, collection string, value any) (string, error)
	Remove(ctx context.Context, docPath string) error
	Ping(ctx context.Context) error
}

func Join(parts ...string) string {
	return strings.Join(parts, "/")
}

func splitDocPath(docPath string) (collection, key string, err error) {
	i := strings.LastIndex(docPath, "/")
	if i <= 0 || i == len(docPath)-1 {
		return "", "", errs.Wrapf(ErrInvalidPath, "%q", docPath)
	}
	return docPath[:i], docPath[i+1:], nil
}

func validCollection(collection string) error {
	if collection == "" || strings.HasPrefix(collection, "/") || strings.HasSuffix(collection, "/") {
		return errs.Wrapf(ErrInvalidPath, "%q", collection)
	}
	return nil
}
