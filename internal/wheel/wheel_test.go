package wheel

import "testing"

func TestPhysicalOrderCoversAllPockets(t *testing.T) {
	seen := make(map[int]bool)
	for _, n := range PhysicalOrder {
		if n < 0 || n > 36 {
			t.Fatalf("pocket %d out of range", n)
		}
		if seen[n] {
			t.Fatalf("pocket %d appears twice in physical order", n)
		}
		seen[n] = true
	}
	if len(seen) != 37 {
		t.Fatalf("expected 37 pockets, got %d", len(seen))
	}
}

func TestColorCounts(t *testing.T) {
	var red, black int
	for n := 0; n <= 36; n++ {
		switch ColorOf(n) {
		case Red:
			red++
		case Black:
			black++
		}
	}
	if red != 18 || black != 18 {
		t.Fatalf("expected 18 red / 18 black, got %d/%d", red, black)
	}
	if ColorOf(0) != Green {
		t.Fatal("zero must be green")
	}
}

func TestTerminalOf(t *testing.T) {
	cases := map[int]int{0: 0, 5: 5, 10: 0, 17: 7, 36: 6, 30: 0}
	for n, want := range cases {
		if got := TerminalOf(n); got != want {
			t.Fatalf("TerminalOf(%d) = %d, want %d", n, got, want)
		}
	}
}

func TestDozenAndColumn(t *testing.T) {
	if DozenOf(0) != 0 || ColumnOf(0) != 0 {
		t.Fatal("zero belongs to no dozen or column")
	}
	if DozenOf(12) != 1 || DozenOf(13) != 2 || DozenOf(25) != 3 {
		t.Fatal("dozen boundaries wrong")
	}
	if ColumnOf(1) != 1 || ColumnOf(2) != 2 || ColumnOf(3) != 3 || ColumnOf(34) != 1 {
		t.Fatal("column mapping wrong")
	}
}

func TestNeighborsBasicProperties(t *testing.T) {
	for n := 0; n <= 36; n++ {
		for k := 1; k <= 8; k++ {
			got := Neighbors(n, k)
			if len(got) > k {
				t.Fatalf("Neighbors(%d,%d) returned %d values", n, k, len(got))
			}
			seen := make(map[int]bool)
			for _, v := range got {
				if v == n {
					t.Fatalf("Neighbors(%d,%d) contains n itself", n, k)
				}
				if seen[v] {
					t.Fatalf("Neighbors(%d,%d) contains duplicate %d", n, k, v)
				}
				seen[v] = true
			}
		}
	}
}

func TestNeighborsProximityOrder(t *testing.T) {
	// Pocket 0 sits between 26 (counter-clockwise) and 32 (clockwise).
	got := Neighbors(0, 4)
	want := []int{32, 26, 15, 3}
	if len(got) != len(want) {
		t.Fatalf("expected %d neighbors, got %v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Neighbors(0,4) = %v, want %v", got, want)
		}
	}
}

func TestNeighborsSymmetryEvenK(t *testing.T) {
	// With an even k both sides contribute k/2 pockets, so membership is
	// symmetric: m in Neighbors(n) iff n in Neighbors(m).
	const k = 4
	contains := func(s []int, v int) bool {
		for _, x := range s {
			if x == v {
				return true
			}
		}
		return false
	}
	for n := 0; n <= 36; n++ {
		for _, m := range Neighbors(n, k) {
			if !contains(Neighbors(m, k), n) {
				t.Fatalf("asymmetric: %d in Neighbors(%d) but not vice versa", m, n)
			}
		}
	}
}

func TestNeighborsInvalidPocket(t *testing.T) {
	if got := Neighbors(37, 5); got != nil {
		t.Fatalf("expected nil for invalid pocket, got %v", got)
	}
	if got := Neighbors(-1, 5); got != nil {
		t.Fatalf("expected nil for invalid pocket, got %v", got)
	}
}

func TestZoneOfUsesFixedOrder(t *testing.T) {
	// 6 belongs to both zero_game and series_5; zero_game wins by order.
	if z := ZoneOf(6); z != ZoneZeroGame {
		t.Fatalf("ZoneOf(6) = %q, want %q", z, ZoneZeroGame)
	}
	if z := ZoneOf(7); z != ZoneOpposites {
		t.Fatalf("ZoneOf(7) = %q, want %q", z, ZoneOpposites)
	}
}

func TestSextant(t *testing.T) {
	if s := Sextant(0); s != 0 {
		t.Fatalf("Sextant(0) = %d, want 0", s)
	}
	// 26 is the last pocket in physical order (index 36).
	if s := Sextant(26); s != 6 {
		t.Fatalf("Sextant(26) = %d, want 6", s)
	}
	if s := Sextant(99); s != -1 {
		t.Fatalf("Sextant(99) = %d, want -1", s)
	}
}
