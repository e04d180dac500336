package embedding

import (
	"context"
	"math"
	"testing"
)

func TestMockEmbedder_Deterministic(t *testing.T) {
	e := NewMockEmbedder(16)
	a, err := e.Embed(context.Background(), "medication adherence")
	if err != nil {
		t.Fatal(err)
	}
	b, _ := e.Embed(context.Background(), "medication adherence")
	for i := range a {
		if a[i] != b[i] {
			t.Fatal("same text must produce the same embedding")
		}
	}
	c, _ := e.Embed(context.Background(), "different text")
	same := true
	for i := range a {
		if a[i] != c[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("different texts should produce different embeddings")
	}
}

func TestMockEmbedder_UnitLength(t *testing.T) {
	e := NewMockEmbedder(16)
	vec, _ := e.Embed(context.Background(), "some text")
	if len(vec) != e.Dimensions() {
		t.Fatalf("dimension mismatch: %d != %d", len(vec), e.Dimensions())
	}
	var sum float64
	for _, v := range vec {
		sum += v * v
	}
	if math.Abs(math.Sqrt(sum)-1.0) > 1e-9 {
		t.Errorf("expected unit length, got %v", math.Sqrt(sum))
	}
}
