package graph

import (
	"os"
	"path/filepath"
	"testing"
)

// linear universe: A - B - C - D, plus isolated Z.
func testUniverse() *Universe {
	u := NewUniverse()
	u.AddLink("A", "B")
	u.AddLink("B", "C")
	u.AddLink("C", "D")
	u.Adj["Z"] = nil
	return u
}

func TestShortestPath(t *testing.T) {
	u := testUniverse()
	cases := []struct {
		from, to string
		want     int
	}{
		{"A", "A", 0},
		{"A", "B", 1},
		{"A", "D", 3},
		{"D", "A", 3},
		{"A", "Z", -1},
	}
	for _, c := range cases {
		if got := u.ShortestPath(c.from, c.to); got != c.want {
			t.Errorf("ShortestPath(%s,%s) = %d, want %d", c.from, c.to, got, c.want)
		}
	}
}

func TestShortestPath_TriangleInequality(t *testing.T) {
	u := NewUniverse()
	// Diamond: A-B, B-D, A-C, C-D, plus shortcut A-D.
	u.AddLink("A", "B")
	u.AddLink("B", "D")
	u.AddLink("A", "C")
	u.AddLink("C", "D")
	u.AddLink("A", "D")
	systems := []string{"A", "B", "C", "D"}
	for _, a := range systems {
		for _, b := range systems {
			for _, c := range systems {
				ab := u.ShortestPath(a, b)
				bc := u.ShortestPath(b, c)
				ac := u.ShortestPath(a, c)
				if ac > ab+bc {
					t.Errorf("triangle violated: d(%s,%s)=%d > d(%s,%s)+d(%s,%s)=%d",
						a, c, ac, a, b, b, c, ab+bc)
				}
			}
		}
	}
}

func TestSystemsWithinRadius(t *testing.T) {
	u := testUniverse()
	got := u.SystemsWithinRadius("A", 2)
	want := map[string]int{"A": 0, "B": 1, "C": 2}
	if len(got) != len(want) {
		t.Fatalf("radius set = %v, want %v", got, want)
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("dist[%s] = %d, want %d", k, got[k], v)
		}
	}
}

func TestAddLink_BidirectionalNoDuplicates(t *testing.T) {
	u := NewUniverse()
	u.AddLink("A", "B")
	u.AddLink("B", "A")
	u.AddLink("A", "A")
	if len(u.Adj["A"]) != 1 || len(u.Adj["B"]) != 1 {
		t.Errorf("Adj = %v", u.Adj)
	}
}

func TestJumpCache_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jump_distance.csv")
	c, err := OpenJumpCache(path)
	if err != nil {
		t.Fatalf("OpenJumpCache: %v", err)
	}
	if _, ok := c.Get("A", "D"); ok {
		t.Error("empty cache should miss")
	}
	if err := c.Put("A", "D", 3); err != nil {
		t.Fatalf("Put: %v", err)
	}

	reloaded, err := OpenJumpCache(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if j, ok := reloaded.Get("A", "D"); !ok || j != 3 {
		t.Errorf("reloaded Get = %d,%v, want 3,true", j, ok)
	}
}

func TestJumpCache_DuplicateRowsLastWins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jump_distance.csv")
	os.WriteFile(path, []byte("A,B,5\nA,B,2\n"), 0644)
	c, err := OpenJumpCache(path)
	if err != nil {
		t.Fatalf("OpenJumpCache: %v", err)
	}
	if j, _ := c.Get("A", "B"); j != 2 {
		t.Errorf("Get = %d, want last row 2", j)
	}
}

func TestPathfinder_UsesAndFillsCache(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jump_distance.csv")
	cache, _ := OpenJumpCache(path)
	p := NewPathfinder(testUniverse(), cache)

	j, ok := p.Jumps("A", "D")
	if !ok || j != 3 {
		t.Fatalf("Jumps = %d,%v, want 3,true", j, ok)
	}
	if _, ok := cache.Get("A", "D"); !ok {
		t.Error("fresh computation not recorded")
	}

	// Poison the cache to prove repeat lookups come from it.
	cache.entries[[2]string{"A", "D"}] = 7
	if j, _ := p.Jumps("A", "D"); j != 7 {
		t.Errorf("Jumps after cache poke = %d, want cached 7", j)
	}

	if _, ok := p.Jumps("A", "Z"); ok {
		t.Error("unreachable pair should report !ok")
	}
}
