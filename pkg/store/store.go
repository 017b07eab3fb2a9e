// Package store persists maze snapshots for the HTTP API.
//
// Backends share the [Store] interface:
//   - [MemoryStore]: in-process map for development and tests
//   - [FileStore]: one JSON file per snapshot
//   - [MongoStore]: MongoDB collection with a TTL index for shared deployments
//
// Documents are identified by random UUIDs and may expire.
//
//	doc := store.NewDocument(snapshot, store.DefaultTTL)
//	if err := st.Save(ctx, doc); err != nil {
//	    return err
//	}
//	doc, err = st.Get(ctx, doc.ID)
//	if errors.IsNotFound(err) {
//	    // expired or never stored
//	}
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/mazer/pkg/errors"
	"github.com/matzehuels/mazer/pkg/maze"
)

// DefaultTTL is how long a stored snapshot lives when no TTL is given.
const DefaultTTL = 24 * time.Hour

// Document is a stored snapshot.
type Document struct {
	ID        string         `json:"id"`
	Snapshot  *maze.Snapshot `json:"snapshot"`
	CreatedAt time.Time      `json:"created_at"`
	ExpiresAt time.Time      `json:"expires_at,omitzero"`
}

// NewDocument wraps s with a fresh ID. A ttl of zero never expires.
func NewDocument(s *maze.Snapshot, ttl time.Duration) *Document {
	now := time.Now().UTC()
	d := &Document{
		ID:        uuid.NewString(),
		Snapshot:  s,
		CreatedAt: now,
	}
	if ttl > 0 {
		d.ExpiresAt = now.Add(ttl)
	}
	return d
}

// IsExpired reports whether the document is past its expiry.
func (d *Document) IsExpired() bool {
	return !d.ExpiresAt.IsZero() && time.Now().After(d.ExpiresAt)
}

// Summary is the listing view of a document.
type Summary struct {
	ID        string    `json:"id"`
	Topology  string    `json:"topology"`
	Cells     int       `json:"cells"`
	Columns   int       `json:"columns"`
	Rows      int       `json:"rows"`
	CreatedAt time.Time `json:"created_at"`
}

// Summarize returns the listing view of d.
func (d *Document) Summarize() Summary {
	s := Summary{ID: d.ID, CreatedAt: d.CreatedAt}
	if d.Snapshot != nil {
		s.Topology = d.Snapshot.Topology().String()
		s.Cells = d.Snapshot.Len()
		s.Columns = d.Snapshot.Columns()
		s.Rows = d.Snapshot.Rows()
	}
	return s
}

// Store is the interface for snapshot storage backends.
type Store interface {
	// Save inserts or replaces a document. An empty ID is filled in.
	Save(ctx context.Context, doc *Document) error

	// Get returns the document with id. Missing and expired documents
	// both yield an ErrCodeSnapshotNotFound error.
	Get(ctx context.Context, id string) (*Document, error)

	// List returns up to limit live documents, newest first. A limit of
	// zero or less means no limit.
	List(ctx context.Context, limit int) ([]*Document, error)

	// Delete removes a document. Deleting a missing document is not an error.
	Delete(ctx context.Context, id string) error

	// Cleanup removes expired documents.
	Cleanup(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// ValidateID rejects identifiers that are not UUIDs.
func ValidateID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid snapshot id %q", id)
	}
	return nil
}

func notFound(id string) error {
	return errors.New(errors.ErrCodeSnapshotNotFound, "snapshot %s not found", id)
}

func prepare(doc *Document) error {
	if doc == nil || doc.Snapshot == nil {
		return errors.New(errors.ErrCodeInvalidInput, "document has no snapshot")
	}
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now().UTC()
	}
	return nil
}
