package benchmark

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"slices"
	"strings"
	"testing"

	"github.com/baditaflorin/go_key_terms/internal/adapters/logger"
	"github.com/baditaflorin/go_key_terms/internal/adapters/normalizer"
	"github.com/baditaflorin/go_key_terms/internal/adapters/sink"
	"github.com/baditaflorin/go_key_terms/internal/adapters/source"
	"github.com/baditaflorin/go_key_terms/internal/core/sorting"
	"github.com/baditaflorin/go_key_terms/internal/core/terms"
)

// generateTerms creates n pseudo-random lowercase terms.
func generateTerms(n int) []string {
	rng := rand.New(rand.NewSource(42))
	words := []string{"apple", "banana", "cherry", "kiwi", "mango", "zebra", "yak", "xray", "fox", "dog"}

	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("%s %s %d", words[rng.Intn(len(words))], words[rng.Intn(len(words))], rng.Intn(1000))
	}
	return out
}

func BenchmarkPartitionSort(b *testing.B) {
	sorter := sorting.NewPartitionSorter()

	for _, size := range []int{10, 100, 500} {
		random := generateTerms(size)
		sorted := slices.Clone(random)
		slices.Sort(sorted)
		reversed := slices.Clone(sorted)
		slices.Reverse(reversed)

		inputs := []struct {
			name  string
			terms []string
		}{
			{"random", random},
			{"sorted", sorted},
			{"reversed", reversed},
		}

		for _, in := range inputs {
			b.Run(fmt.Sprintf("%s/%d", in.name, size), func(b *testing.B) {
				b.ReportAllocs()
				for i := 0; i < b.N; i++ {
					_ = sorter.Sort(in.terms)
				}
			})
		}
	}
}

func BenchmarkStdlibSort(b *testing.B) {
	for _, size := range []int{10, 100, 500} {
		random := generateTerms(size)
		b.Run(fmt.Sprintf("random/%d", size), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				s := slices.Clone(random)
				slices.Sort(s)
			}
		})
	}
}

func BenchmarkCapitalizer(b *testing.B) {
	n := normalizer.NewCapitalizer()
	input := generateTerms(100)

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		for _, term := range input {
			_ = n.Normalize(term)
		}
	}
}

func BenchmarkLinePipeline(b *testing.B) {
	text := strings.Join(generateTerms(200), "\n")

	p, err := terms.NewPipeline(terms.Dependencies{
		Source:     source.NewLines("1"),
		Sink:       sink.NewWriter(io.Discard),
		Normalizer: normalizer.NewCapitalizer(),
		Logger:     logger.NewNopLogger(),
	})
	if err != nil {
		b.Fatal(err)
	}

	ctx := context.Background()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := p.Run(ctx, text, "bench"); err != nil {
			b.Fatal(err)
		}
	}
}
