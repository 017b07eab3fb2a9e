//go:build integration

package store

import (
	"context"
	"os"
	"testing"
	"time"
)

func TestMongoStore_Integration(t *testing.T) {
	uri := os.Getenv("MAZER_MONGO_URI")
	if uri == "" {
		t.Skip("MAZER_MONGO_URI not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	st, err := NewMongoStore(ctx, uri, "mazer_test")
	if err != nil {
		t.Fatalf("NewMongoStore: %v", err)
	}
	defer st.Close()

	doc := NewDocument(testSnapshot(), time.Hour)
	if err := st.Save(ctx, doc); err != nil {
		t.Fatalf("Save: %v", err)
	}
	defer st.Delete(ctx, doc.ID)

	got, err := st.Get(ctx, doc.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Snapshot.Len() != 2 {
		t.Errorf("stored snapshot has %d cells, want 2", got.Snapshot.Len())
	}

	docs, err := st.List(ctx, 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(docs) == 0 {
		t.Error("List should include the saved document")
	}
}
