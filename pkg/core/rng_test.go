package core

import "testing"

func TestSplitIsReproducible(t *testing.T) {
	a := NewRNG(99)
	b := NewRNG(99)
	ca, cb := a.Split(), b.Split()
	for i := 0; i < 32; i++ {
		if x, y := ca.IntN(1000), cb.IntN(1000); x != y {
			t.Fatalf("draw %d: children diverged: %d vs %d", i, x, y)
		}
	}
}

func TestSplitChildrenDiffer(t *testing.T) {
	parent := NewRNG(1)
	c1, c2 := parent.Split(), parent.Split()
	same := true
	for i := 0; i < 16; i++ {
		if c1.IntN(1<<30) != c2.IntN(1<<30) {
			same = false
		}
	}
	if same {
		t.Fatal("sibling generators produced identical streams")
	}
}

func TestStateCoversRange(t *testing.T) {
	r := NewRNG(3)
	var seen [States]bool
	for i := 0; i < 2000; i++ {
		seen[r.State().Value()] = true
	}
	for v, ok := range seen {
		if !ok {
			t.Fatalf("state %d never drawn", v)
		}
	}
}

func TestIntNNonPositive(t *testing.T) {
	r := NewRNG(0)
	if got := r.IntN(0); got != 0 {
		t.Fatalf("IntN(0) = %d, want 0", got)
	}
	if got := r.Uint8n(0); got != 0 {
		t.Fatalf("Uint8n(0) = %d, want 0", got)
	}
}

func TestBoolDeterministicAndMixed(t *testing.T) {
	a, b := NewRNG(8), NewRNG(8)
	var trues int
	for i := 0; i < 200; i++ {
		x := a.Bool()
		if x != b.Bool() {
			t.Fatalf("draw %d: same seed gave different bools", i)
		}
		if x {
			trues++
		}
	}
	if trues == 0 || trues == 200 {
		t.Fatalf("Bool returned %d trues out of 200", trues)
	}
}
