package vnp

import "testing"

func TestUpdate_PassesThroughAPPWhenEdgeContributionIsZero(t *testing.T) {
	// GIVEN an APP vector favoring symbol 2 and an edge that hasn't
	// contributed anything yet
	app := []float32{10, 10, 0, 10}
	mcv := []float32{0, 0, 0, 0}

	// WHEN computing Mvc for that edge
	out := Update(app, mcv, 4)

	// THEN symbol 2 remains preferred (APP - 0 == APP)
	best := out.Entries[0]
	for _, e := range out.Entries[1:] {
		if e.LLR < best.LLR {
			best = e
		}
	}
	if best.GF != 2 {
		t.Errorf("preferred symbol = %d, want 2", best.GF)
	}
}

func TestUpdate_RemovesSelfContribution(t *testing.T) {
	// GIVEN an APP vector whose preference for symbol 1 comes entirely from
	// this edge's own Mcv contribution
	app := []float32{10, 0, 10, 10}
	mcv := []float32{10, 0, 10, 10}

	// WHEN subtracting that contribution back out
	out := Update(app, mcv, 4)

	// THEN every symbol is equally costed, so no single entry stands out
	for _, e := range out.Entries {
		if e.LLR != 0 {
			t.Errorf("entry %+v, want LLR 0 after self-contribution removed", e)
		}
	}
}
