package lexipage

import (
	"context"
	"fmt"
	"testing"
)

func BenchmarkNormalizeKey(b *testing.B) {
	for i := 0; i < b.N; i++ {
		NormalizeKey("  The   Quick Brown FOX ")
	}
}

func BenchmarkMergeRuns(b *testing.B) {
	positions := []int{9, 3, 4, 5, 12, 13, 20, 4}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		MergeRuns(positions)
	}
}

func BenchmarkMergePhrases(b *testing.B) {
	tokens := make([]string, 200)
	for i := range tokens {
		tokens[i] = fmt.Sprintf("word%d", i)
	}
	positions := []int{3, 4, 5, 40, 41, 120}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		MergePhrases(positions, tokens)
	}
}

func BenchmarkResolve_Cached(b *testing.B) {
	src := newMockSource()
	store := newMockStore()
	r := NewResolver(src, WithStore(store))

	ctx := context.Background()
	phrases := []string{"cat", "ok"}
	r.Resolve(ctx, phrases) // Warm the store

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r.Resolve(ctx, phrases)
	}
}
