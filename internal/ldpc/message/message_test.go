package message

import "testing"

func TestNormalize_ShiftsSoMinimumIsZero(t *testing.T) {
	// GIVEN a list whose smallest occupied entry is not zero
	l := List{Entries: []Msg{{LLR: 3, GF: 0}, {LLR: 5, GF: 1}}}

	// WHEN normalizing
	l.Normalize()

	// THEN the minimum entry is shifted to zero and the gap is preserved
	if l.Entries[0].LLR != 0 {
		t.Errorf("Entries[0].LLR = %v, want 0", l.Entries[0].LLR)
	}
	if l.Entries[1].LLR != 2 {
		t.Errorf("Entries[1].LLR = %v, want 2", l.Entries[1].LLR)
	}
}

func TestNormalize_SkipsSentinelSlots(t *testing.T) {
	// GIVEN a list with one occupied and one sentinel slot
	l := NewList(2)
	l.Entries[0] = Msg{LLR: 4, GF: 3}

	// WHEN normalizing
	l.Normalize()

	// THEN the sentinel slot's LLR is untouched
	if l.Entries[1].GF != GFNone {
		t.Fatalf("Entries[1].GF = %v, want GFNone", l.Entries[1].GF)
	}
	if l.Entries[1].LLR != LLRSat {
		t.Errorf("Entries[1].LLR = %v, want LLRSat (sentinel untouched)", l.Entries[1].LLR)
	}
}

func TestValidate_SortedDistinctList_ReturnsTrue(t *testing.T) {
	// GIVEN a properly sorted, distinct-symbol list
	l := List{Entries: []Msg{{LLR: 0, GF: 2}, {LLR: 1, GF: 5}}}

	// WHEN validating
	// THEN it passes
	if !l.Validate() {
		t.Error("Validate() = false, want true")
	}
}

func TestValidate_DuplicateSymbol_ReturnsFalse(t *testing.T) {
	// GIVEN a list with a repeated GF symbol
	l := List{Entries: []Msg{{LLR: 0, GF: 2}, {LLR: 1, GF: 2}}}

	// WHEN validating
	// THEN it fails
	if l.Validate() {
		t.Error("Validate() = true, want false for duplicate symbol")
	}
}

func TestValidate_OutOfOrderLLR_ReturnsFalse(t *testing.T) {
	// GIVEN a list not sorted ascending by LLR
	l := List{Entries: []Msg{{LLR: 5, GF: 2}, {LLR: 1, GF: 3}}}

	// WHEN validating
	// THEN it fails
	if l.Validate() {
		t.Error("Validate() = true, want false for out-of-order LLR")
	}
}

func TestDensify_FillsAbsentSymbolsWithSaturation(t *testing.T) {
	// GIVEN a length-1 list occupying only symbol 2 of a GF(4) field
	l := List{Entries: []Msg{{LLR: 1, GF: 2}}}

	// WHEN densifying with offset 0.5
	dense := l.Densify(4, 0.5)

	// THEN symbol 2 carries its LLR and every other symbol is saturation+offset
	if dense[2] != 1 {
		t.Errorf("dense[2] = %v, want 1", dense[2])
	}
	for g, v := range dense {
		if g == 2 {
			continue
		}
		if v != LLRSat+0.5 {
			t.Errorf("dense[%d] = %v, want %v", g, v, LLRSat+0.5)
		}
	}
}

func TestTruncate_SelectsSmallestAndNormalizes(t *testing.T) {
	// GIVEN a dense vector with a clear 2 smallest entries
	dense := []float32{9, 2, 0, 7, 5}

	// WHEN truncating to nm=2
	l := Truncate(dense, 2)

	// THEN the two smallest entries (symbol 2 at 0, symbol 1 at 2) are kept,
	// sorted ascending, normalized
	if l.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", l.Len())
	}
	if l.Entries[0].GF != 2 || l.Entries[0].LLR != 0 {
		t.Errorf("Entries[0] = %+v, want GF=2 LLR=0", l.Entries[0])
	}
	if l.Entries[1].GF != 1 || l.Entries[1].LLR != 2 {
		t.Errorf("Entries[1] = %+v, want GF=1 LLR=2", l.Entries[1])
	}
	if !l.Validate() {
		t.Error("Truncate result failed Validate()")
	}
}
