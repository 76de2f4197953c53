package sorting

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPartitionSorterSort(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{name: "empty", input: []string{}, want: []string{}},
		{name: "single", input: []string{"Kiwi"}, want: []string{"Kiwi"}},
		{name: "two in order", input: []string{"Apple", "Banana"}, want: []string{"Apple", "Banana"}},
		{name: "two reversed", input: []string{"Banana", "Apple"}, want: []string{"Apple", "Banana"}},
		{name: "mixed", input: []string{"Banana", "Apple", "Cherry"}, want: []string{"Apple", "Banana", "Cherry"}},
		{name: "reverse sorted", input: []string{"Zebra", "Yak", "Xray"}, want: []string{"Xray", "Yak", "Zebra"}},
		{name: "already sorted", input: []string{"Ant", "Bee", "Cat", "Dog", "Eel"}, want: []string{"Ant", "Bee", "Cat", "Dog", "Eel"}},
		{name: "all duplicates", input: []string{"Kiwi", "Kiwi", "Kiwi"}, want: []string{"Kiwi", "Kiwi", "Kiwi"}},
		{
			name:  "duplicates among others",
			input: []string{"Pear", "Fig", "Pear", "Apple", "Fig", "Pear"},
			want:  []string{"Apple", "Fig", "Fig", "Pear", "Pear", "Pear"},
		},
		{
			name:  "prefixes",
			input: []string{"Machine learning", "Machine", "Mach"},
			want:  []string{"Mach", "Machine", "Machine learning"},
		},
	}

	sorter := NewPartitionSorter()
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := sorter.Sort(tc.input)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("Sort(%q) mismatch (-want +got):\n%s", tc.input, diff)
			}
		})
	}
}

func TestPartitionSorterDoesNotMutateInput(t *testing.T) {
	input := []string{"Zebra", "Yak", "Xray"}
	original := slices.Clone(input)

	NewPartitionSorter().Sort(input)

	if diff := cmp.Diff(original, input); diff != "" {
		t.Errorf("input was modified (-want +got):\n%s", diff)
	}
}

func TestPartitionSorterShortListsSkipComparator(t *testing.T) {
	calls := 0
	counting := func(a, b string) bool {
		calls++
		return IsBefore(a, b)
	}
	sorter := NewPartitionSorter(WithComparator(counting))

	for _, input := range [][]string{nil, {}, {"Solo"}} {
		got := sorter.Sort(input)
		if len(got) != len(input) {
			t.Fatalf("Sort(%q) returned %d terms", input, len(got))
		}
	}
	if calls != 0 {
		t.Errorf("comparator called %d times for short lists, want 0", calls)
	}
}

func TestPartitionSorterCustomComparator(t *testing.T) {
	descending := func(a, b string) bool { return IsBefore(b, a) }
	got := NewPartitionSorter(WithComparator(descending)).Sort([]string{"Banana", "Cherry", "Apple"})

	want := []string{"Cherry", "Banana", "Apple"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("descending sort mismatch (-want +got):\n%s", diff)
	}
}

func TestPartitionSorterProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	alphabet := []byte("abcAB C")
	sorter := NewPartitionSorter()

	for round := 0; round < 200; round++ {
		input := make([]string, rng.Intn(60))
		for i := range input {
			word := make([]byte, rng.Intn(5))
			for j := range word {
				word[j] = alphabet[rng.Intn(len(alphabet))]
			}
			input[i] = string(word)
		}

		once := sorter.Sort(input)

		// Same multiset as the standard library order.
		want := slices.Clone(input)
		slices.Sort(want)
		if diff := cmp.Diff(want, once); diff != "" {
			t.Fatalf("round %d: Sort(%q) mismatch (-want +got):\n%s", round, input, diff)
		}

		// No later term is before an earlier one.
		for i := 1; i < len(once); i++ {
			if IsBefore(once[i], once[i-1]) {
				t.Fatalf("round %d: %q placed after %q", round, once[i], once[i-1])
			}
		}

		twice := sorter.Sort(once)
		if diff := cmp.Diff(once, twice); diff != "" {
			t.Fatalf("round %d: sorting is not idempotent (-once +twice):\n%s", round, diff)
		}
	}
}
