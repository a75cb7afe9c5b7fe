package diag

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBagLimit(t *testing.T) {
	bag := NewBag(2)
	for i := 1; i <= 4; i++ {
		bag.Add(NewWarning(RecTooFewTokens, Position{File: "in", Line: i}, "short"))
	}
	if bag.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", bag.Len())
	}
	if bag.Dropped() != 2 {
		t.Errorf("Dropped() = %d, want 2", bag.Dropped())
	}
	if bag.HasErrors() {
		t.Error("HasErrors() = true for warnings only")
	}
	if !bag.HasWarnings() {
		t.Error("HasWarnings() = false")
	}
}

func TestBagSortAndMerge(t *testing.T) {
	a := NewBag(10)
	a.Add(NewWarning(RecBadToken, Position{File: "b", Line: 3, Column: 2}, "x"))
	a.Add(NewWarning(RecTooFewTokens, Position{File: "a", Line: 9}, "y"))

	b := NewBag(1)
	b.Add(NewError(RecTooFewTokens, Position{File: "a", Line: 2}, "z"))
	b.Add(NewError(RecTooFewTokens, Position{File: "a", Line: 5}, "dropped"))

	a.Merge(b)
	a.Sort()

	var got []Position
	for _, d := range a.Items() {
		got = append(got, d.Pos)
	}
	want := []Position{
		{File: "a", Line: 2},
		{File: "a", Line: 9},
		{File: "b", Line: 3, Column: 2},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("sorted positions diff -want +got\n%s", diff)
	}
	if a.Dropped() != 1 {
		t.Errorf("Dropped() = %d, want 1", a.Dropped())
	}
	if !a.HasErrors() {
		t.Error("HasErrors() = false after merging an error")
	}
}

func TestMergeKeepsLimit(t *testing.T) {
	all := NewBag(2)
	for _, file := range []string{"a", "b"} {
		job := NewBag(2)
		job.Add(NewError(RecTooFewTokens, Position{File: file, Line: 1}, "x"))
		job.Add(NewError(RecTooFewTokens, Position{File: file, Line: 2}, "y"))
		job.Add(NewError(RecTooFewTokens, Position{File: file, Line: 3}, "dropped"))
		all.Merge(job)
	}
	if all.Len() != 2 {
		t.Errorf("Len() = %d, want 2", all.Len())
	}
	// 2 over the limit from b, 1 dropped inside each job bag
	if all.Dropped() != 4 {
		t.Errorf("Dropped() = %d, want 4", all.Dropped())
	}
}

func TestPositionString(t *testing.T) {
	tests := []struct {
		pos  Position
		want string
	}{
		{Position{File: "random-bytes"}, "random-bytes"},
		{Position{File: "random-bytes", Line: 4}, "random-bytes:4"},
		{Position{File: "random-bytes", Line: 4, Column: 8}, "random-bytes:4:8"},
		{Position{Line: 1}, "<stdin>:1"},
	}
	for _, tt := range tests {
		if got := tt.pos.String(); got != tt.want {
			t.Errorf("%#v.String() = %q, want %q", tt.pos, got, tt.want)
		}
	}
}

func TestCodeID(t *testing.T) {
	if got := RecTooFewTokens.ID(); got != "REC1001" {
		t.Errorf("RecTooFewTokens.ID() = %q", got)
	}
	if got := IOOpenInput.ID(); got != "IO4001" {
		t.Errorf("IOOpenInput.ID() = %q", got)
	}
	if got := Code(9999).Title(); got != "Unknown error" {
		t.Errorf("unknown code title = %q", got)
	}
}
