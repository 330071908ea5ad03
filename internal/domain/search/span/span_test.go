package span

import (
	"reflect"
	"testing"
)

func TestMerge(t *testing.T) {
	tests := []struct {
		name string
		in   []Span
		want []Span
	}{
		{
			name: "overlapping",
			in:   []Span{New(2, 5), New(4, 8)},
			want: []Span{New(2, 8)},
		},
		{
			name: "adjacent",
			in:   []Span{New(2, 5), New(5, 8)},
			want: []Span{New(2, 8)},
		},
		{
			name: "disjoint kept apart",
			in:   []Span{New(0, 2), New(5, 8)},
			want: []Span{New(0, 2), New(5, 8)},
		},
		{
			name: "unsorted input",
			in:   []Span{New(10, 12), New(0, 3), New(2, 6)},
			want: []Span{New(0, 6), New(10, 12)},
		},
		{
			name: "contained",
			in:   []Span{New(0, 10), New(2, 4)},
			want: []Span{New(0, 10)},
		},
		{
			name: "single",
			in:   []Span{New(1, 2)},
			want: []Span{New(1, 2)},
		},
		{
			name: "empty",
			in:   nil,
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Merge(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Merge(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestMerge_DoesNotMutateInput(t *testing.T) {
	in := []Span{New(4, 8), New(2, 5)}
	Merge(in)
	if in[0] != New(4, 8) || in[1] != New(2, 5) {
		t.Errorf("input mutated: %v", in)
	}
}

func TestCovers(t *testing.T) {
	s := New(2, 8)
	if !s.Covers(2, 8) || !s.Covers(3, 5) {
		t.Error("Covers should include contained ranges")
	}
	if s.Covers(1, 3) || s.Covers(7, 9) {
		t.Error("Covers should exclude overhanging ranges")
	}
}
