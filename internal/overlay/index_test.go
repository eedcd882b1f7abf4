package overlay

import (
	"testing"

	"github.com/defvs/francegen/internal/style"
)

func TestIndexAddAndQuery(t *testing.T) {
	idx := NewIndex()
	d := style.PaintDirective{LayerIndex: 1, InsertionOrder: 0}
	idx.Add(20, 20, d)

	got := idx.DirectivesAt(20, 20)
	if len(got) != 1 || got[0].LayerIndex != 1 {
		t.Fatalf("unexpected directives: %+v", got)
	}
	if got := idx.DirectivesAt(0, 0); got != nil {
		t.Fatalf("expected no directives for untouched column, got %+v", got)
	}
}

func TestIndexPreservesInsertionOrder(t *testing.T) {
	idx := NewIndex()
	idx.Add(0, 0, style.PaintDirective{InsertionOrder: 0})
	idx.Add(0, 0, style.PaintDirective{InsertionOrder: 1})
	idx.Add(0, 0, style.PaintDirective{InsertionOrder: 2})

	got := idx.DirectivesAt(0, 0)
	for i, d := range got {
		if d.InsertionOrder != uint32(i) {
			t.Fatalf("directive %d out of order: %+v", i, got)
		}
	}
}

func TestIndexBucketsByChunk(t *testing.T) {
	idx := NewIndex()
	idx.Add(0, 0, style.PaintDirective{})
	idx.Add(16, 0, style.PaintDirective{}) // a different chunk
	if len(idx.buckets) != 2 {
		t.Fatalf("expected 2 chunk buckets, got %d", len(idx.buckets))
	}
}
