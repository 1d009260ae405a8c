package headtohead

import "testing"

func TestCanonicalPair(t *testing.T) {
	t.Run("already ordered", func(t *testing.T) {
		a, b, swapped := CanonicalPair("alpha", "bravo")
		if a != "alpha" || b != "bravo" || swapped {
			t.Fatalf("got %s/%s swapped=%t, want alpha/bravo swapped=false", a, b, swapped)
		}
	})

	t.Run("reordered", func(t *testing.T) {
		a, b, swapped := CanonicalPair("bravo", "alpha")
		if a != "alpha" || b != "bravo" || !swapped {
			t.Fatalf("got %s/%s swapped=%t, want alpha/bravo swapped=true", a, b, swapped)
		}
	})

	t.Run("equal ids are not swapped", func(t *testing.T) {
		a, b, swapped := CanonicalPair("alpha", "alpha")
		if a != "alpha" || b != "alpha" || swapped {
			t.Fatalf("got %s/%s swapped=%t, want alpha/alpha swapped=false", a, b, swapped)
		}
	})
}
