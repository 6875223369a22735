package engine

import "testing"

func TestCandidates_Basic(t *testing.T) {
	var c Candidates
	if !c.IsEmpty() {
		t.Error("zero-value Candidates should be empty")
	}
	c = c.Set(3)
	if !c.Has(3) {
		t.Error("should have digit 3 after Set")
	}
	if c.Count() != 1 {
		t.Errorf("expected count 1, got %d", c.Count())
	}
}

func TestCandidates_AllAndClear(t *testing.T) {
	c := AllCandidates()
	if c.Count() != 9 {
		t.Errorf("expected count 9, got %d", c.Count())
	}
	c = c.Clear(5)
	if c.Has(5) {
		t.Error("should not have digit 5 after Clear")
	}
	if c.Count() != 8 {
		t.Errorf("expected count 8, got %d", c.Count())
	}
}

func TestCandidates_Only(t *testing.T) {
	c := NewCandidates([]int{4})
	d, ok := c.Only()
	if !ok || d != 4 {
		t.Errorf("expected Only to return (4, true), got (%d, %v)", d, ok)
	}
	c = c.Set(7)
	if _, ok := c.Only(); ok {
		t.Error("two-digit Candidates should not report Only")
	}
}

func TestCandidates_Equals(t *testing.T) {
	a := NewCandidates([]int{2, 5})
	b := NewCandidates([]int{5, 2})
	if !a.Equals(b) {
		t.Error("Candidates built from the same digits in different order should be equal")
	}
	if a.Equals(NewCandidates([]int{2, 5, 8})) {
		t.Error("different digit sets should not be equal")
	}
}

func TestCandidates_Intersect(t *testing.T) {
	a := NewCandidates([]int{1, 2, 3})
	b := NewCandidates([]int{2, 3, 4})
	got := a.Intersect(b)
	want := NewCandidates([]int{2, 3})
	if !got.Equals(want) {
		t.Errorf("expected intersection %v, got %v", want.ToSlice(), got.ToSlice())
	}
}
