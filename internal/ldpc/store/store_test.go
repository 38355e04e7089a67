package store

import "testing"

func TestNew_EdgeComputesRowStartOffsets(t *testing.T) {
	// GIVEN three check rows of degree 2, 3, 1
	s := New(6, 64, []int{2, 3, 1})

	// WHEN computing edge labels
	// THEN each row's edges start right after the previous row's
	cases := []struct{ m, i, want int }{
		{0, 0, 0}, {0, 1, 1},
		{1, 0, 2}, {1, 1, 3}, {1, 2, 4},
		{2, 0, 5},
	}
	for _, c := range cases {
		if got := s.Edge(c.m, c.i); got != c.want {
			t.Errorf("Edge(%d,%d) = %d, want %d", c.m, c.i, got, c.want)
		}
	}
}

func TestResetFrame_ZeroesExistingValues(t *testing.T) {
	// GIVEN a store with non-zero Mcv values written into it
	s := New(2, 4, []int{2})
	s.Mcv[0][1] = 9
	s.Mcv[1][2] = 7

	// WHEN resetting the frame
	s.ResetFrame()

	// THEN every entry is back to zero without reallocating the slices
	for e := range s.Mcv {
		for g, v := range s.Mcv[e] {
			if v != 0 {
				t.Errorf("Mcv[%d][%d] = %v, want 0", e, g, v)
			}
		}
	}
}
