package engine

import (
	"bytes"
	"math/rand"
	"testing"
)

func TestScenarioNoRepeat(t *testing.T) {
	// rec1: ACGTACGT ACGT, k=4, T=0.6, max_window=12. S(full) < T, no output.
	e := New(4, 12, 0.6)
	got := e.Discover("rec1", []byte("ACGTACGTACGT"))
	if len(got) != 0 {
		t.Fatalf("expected no intervals, got %v", got)
	}
}

func TestScenarioFullRepeat(t *testing.T) {
	// rec2: ten A's, k=4, T=0.6, max_window=10 -> single interval (0,9).
	e := New(4, 10, 0.6)
	got := e.Discover("rec2", []byte("AAAAAAAAAA"))
	if len(got) != 1 {
		t.Fatalf("expected 1 interval, got %d: %v", len(got), got)
	}
	if got[0].Start != 0 || got[0].End != 9 {
		t.Errorf("expected (0,9), got (%d,%d)", got[0].Start, got[0].End)
	}
	if !bytes.Equal(got[0].Seq, []byte("AAAAAAAAAA")) {
		t.Errorf("Seq = %s, want AAAAAAAAAA", got[0].Seq)
	}
}

func TestScenarioRandomNoHit(t *testing.T) {
	// rec3: 20 non-repeating ACGT bases, should not exceed threshold.
	rng := rand.New(rand.NewSource(1))
	bases := make([]byte, 20)
	letters := []byte("ACGT")
	for i := range bases {
		bases[i] = letters[rng.Intn(4)]
	}
	e := New(7, 20, 0.6)
	got := e.Discover("rec3", bases)
	if len(got) != 0 {
		t.Fatalf("expected no intervals for non-repeating sequence, got %v", got)
	}
}

func TestScenarioTwoSeparatedRepeats(t *testing.T) {
	seq := []byte("AAAAAAAAAA" + "CGTCGTCGTCGTCGT" + "TTTTTTTTTT")
	e := New(7, 5000, 0.6)
	got := e.Discover("rec4", seq)
	if len(got) != 2 {
		t.Fatalf("expected 2 disjoint intervals, got %d: %v", len(got), got)
	}
	if got[0].End >= got[1].Start {
		t.Errorf("intervals should be disjoint and ordered: %v", got)
	}
}

func TestScenarioAmbiguousMidRun(t *testing.T) {
	seq := []byte("AAAAAANAAAAAA")
	e := New(7, 5000, 0.6)
	got := e.Discover("rec5", seq)
	if len(got) != 0 {
		t.Fatalf("expected no intervals (both sides too short), got %v", got)
	}
}

func TestMergeOverlapAndTouch(t *testing.T) {
	bases := make([]byte, 26)
	for i := range bases {
		bases[i] = 'A'
	}

	got := Merge("r", bases, []Interval{
		{Start: 0, End: 10},
		{Start: 5, End: 15},
		{Start: 20, End: 25},
	})
	want := [][2]int{{0, 15}, {20, 25}}
	if len(got) != len(want) {
		t.Fatalf("got %d intervals, want %d: %v", len(got), len(want), got)
	}
	for i, w := range want {
		if got[i].Start != w[0] || got[i].End != w[1] {
			t.Errorf("interval %d = (%d,%d), want (%d,%d)", i, got[i].Start, got[i].End, w[0], w[1])
		}
	}

	got2 := Merge("r", bases, []Interval{
		{Start: 0, End: 10},
		{Start: 10, End: 20},
	})
	if len(got2) != 1 || got2[0].Start != 0 || got2[0].End != 20 {
		t.Fatalf("touching intervals should merge to (0,20), got %v", got2)
	}
}

func TestMergeIdempotent(t *testing.T) {
	bases := make([]byte, 30)
	for i := range bases {
		bases[i] = 'A'
	}
	first := Merge("r", bases, []Interval{
		{Start: 0, End: 10},
		{Start: 5, End: 15},
		{Start: 20, End: 25},
	})
	second := Merge("r", bases, first)
	if len(first) != len(second) {
		t.Fatalf("merge of merged output changed interval count: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Start != second[i].Start || first[i].End != second[i].End {
			t.Errorf("interval %d changed on re-merge: %v -> %v", i, first[i], second[i])
		}
		if !bytes.Equal(first[i].Seq, second[i].Seq) {
			t.Errorf("interval %d Seq changed on re-merge", i)
		}
	}
}

func TestDiscoverShortSequence(t *testing.T) {
	e := New(7, 100, 0.6)
	if got := e.Discover("short", []byte("ACG")); got != nil {
		t.Fatalf("sequence shorter than k should yield no output, got %v", got)
	}
}

func TestDiscoverAllAmbiguous(t *testing.T) {
	e := New(7, 100, 0.6)
	if got := e.Discover("allN", bytes.Repeat([]byte("N"), 50)); got != nil {
		t.Fatalf("all-ambiguous sequence should yield no output, got %v", got)
	}
}

func TestIntervalSeqMatchesBases(t *testing.T) {
	e := New(5, 40, 0.6)
	seq := []byte("GGGGGGGGGGGGGGGGGGGGGGGGGGGGGG")
	for _, iv := range e.Discover("rec", seq) {
		if iv.Start < 0 || iv.End >= len(seq) || iv.Start > iv.End {
			t.Fatalf("invalid interval bounds: %v", iv)
		}
		if !bytes.Equal(iv.Seq, seq[iv.Start:iv.End+1]) {
			t.Errorf("Seq mismatch for interval %v", iv)
		}
	}
}

func TestNoAmbiguousBaseInsideReportedInterval(t *testing.T) {
	e := New(6, 5000, 0.6)
	seq := []byte("AAAAAAAAAAAAAAAAAAAANAAAAAAAAAAAAAAAAAAAAAA")
	for _, iv := range e.Discover("rec", seq) {
		for _, b := range iv.Seq {
			if b != 'A' && b != 'C' && b != 'G' && b != 'T' {
				t.Errorf("interval %v contains ambiguous base %q", iv, b)
			}
		}
	}
}
