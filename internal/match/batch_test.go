package match

import (
	"context"
	"fmt"
	"testing"

	"refrain/internal/catalog"
	"refrain/internal/logging"
)

func runBatch(t *testing.T, workers int) {
	t.Helper()

	references := make([]catalog.NameRecord, 0, 50)
	queries := make([]catalog.NameRecord, 0, 50)
	for i := 0; i < 50; i++ {
		title := fmt.Sprintf("Song number %03d", i)
		references = append(references, record(fmt.Sprintf("ref-%d", i), title, "Edip Asanov", 0))
		queries = append(queries, record(fmt.Sprintf("q-%d", i), title, "Edip Asanov", 0))
	}

	classifier := newTestClassifier(t, DefaultPolicy(), references...)
	batch := NewBatch(classifier, workers, logging.NewNop())
	results := batch.Run(context.Background(), queries)

	if len(results) != len(queries) {
		t.Fatalf("results = %d, want %d", len(results), len(queries))
	}
	for i, result := range results {
		if result.Query.ID != queries[i].ID {
			t.Fatalf("results[%d] is for %s, want input order preserved", i, result.Query.ID)
		}
		if result.Confidence != ConfidenceMatch {
			t.Fatalf("results[%d].Confidence = %s, want %s", i, result.Confidence, ConfidenceMatch)
		}
		want := fmt.Sprintf("ref-%d", i)
		if result.Best.Record.ID != want {
			t.Fatalf("results[%d].Best = %s, want %s", i, result.Best.Record.ID, want)
		}
	}
}

func TestBatchSerial(t *testing.T) {
	runBatch(t, 1)
}

func TestBatchConcurrent(t *testing.T) {
	runBatch(t, 4)
}

func TestBatchEmpty(t *testing.T) {
	classifier := newTestClassifier(t, DefaultPolicy())
	batch := NewBatch(classifier, 4, logging.NewNop())
	if results := batch.Run(context.Background(), nil); len(results) != 0 {
		t.Fatalf("results = %d, want 0", len(results))
	}
}
