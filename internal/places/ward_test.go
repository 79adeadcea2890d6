package places

import (
	"math"
	"math/rand"
	"testing"
)

func TestWardLinkageSinglePoints(t *testing.T) {
	points := []point{{0, 0}, {3, 4}, {100, 0}}

	merges := wardLinkage(points)

	if len(merges) != 2 {
		t.Fatalf("expected 2 merges, got %d", len(merges))
	}
	m0 := merges[0]
	if !(m0.a == 0 && m0.b == 1) {
		t.Errorf("expected the two close points to merge first, got %d and %d", m0.a, m0.b)
	}
	// Two singletons merge at their Euclidean distance.
	if math.Abs(m0.distance-5) > 1e-9 {
		t.Errorf("expected merge distance 5, got %f", m0.distance)
	}
	if m0.size != 2 || merges[1].size != 3 {
		t.Errorf("unexpected sizes %d, %d", m0.size, merges[1].size)
	}
}

func TestWardLinkageMonotone(t *testing.T) {
	points := []point{{0, 0}, {1, 0}, {0, 1}, {50, 50}, {51, 50}, {200, 0}, {10, 10}}

	merges := wardLinkage(points)

	if len(merges) != len(points)-1 {
		t.Fatalf("expected %d merges, got %d", len(points)-1, len(merges))
	}
	for i := 1; i < len(merges); i++ {
		if merges[i].distance < merges[i-1].distance-1e-9 {
			t.Errorf("merge distances should be non-decreasing: %f < %f", merges[i].distance, merges[i-1].distance)
		}
	}
	if last := merges[len(merges)-1]; last.size != len(points) {
		t.Errorf("expected final cluster of %d points, got %d", len(points), last.size)
	}
}

func TestWardLinkageTooFewPoints(t *testing.T) {
	if merges := wardLinkage(nil); merges != nil {
		t.Errorf("expected no merges, got %v", merges)
	}
	if merges := wardLinkage([]point{{1, 1}}); merges != nil {
		t.Errorf("expected no merges, got %v", merges)
	}
}

func TestCutTree(t *testing.T) {
	points := []point{{0, 0}, {100, 100}, {1, 0}, {101, 100}, {500, 500}}
	merges := wardLinkage(points)

	tests := []struct {
		threshold float64
		want      []int
	}{
		{0.5, []int{0, 1, 2, 3, 4}},
		{10, []int{0, 1, 0, 1, 2}},
		{1e6, []int{0, 0, 0, 0, 0}},
	}
	for _, tt := range tests {
		got := cutTree(merges, len(points), tt.threshold)
		for i := range tt.want {
			if got[i] != tt.want[i] {
				t.Errorf("threshold %v: labels = %v, want %v", tt.threshold, got, tt.want)
				break
			}
		}
	}
}

func TestCutTreeSinglePoint(t *testing.T) {
	got := cutTree(nil, 1, 10)

	if len(got) != 1 || got[0] != 0 {
		t.Errorf("expected [0], got %v", got)
	}
}

// greedyWard is the textbook Ward linkage: merge the closest pair, update,
// repeat.
func greedyWard(points []point) []merge {
	n := len(points)
	total := 2*n - 1
	d := make([][]float64, total)
	for i := range d {
		d[i] = make([]float64, total)
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			d[i][j] = points[i].sqDist(points[j])
		}
	}
	size := make([]int, total)
	alive := make([]bool, total)
	for i := 0; i < n; i++ {
		size[i], alive[i] = 1, true
	}

	var merges []merge
	for next := n; next < total; next++ {
		a, b, best := -1, -1, math.Inf(1)
		for i := 0; i < next; i++ {
			for j := i + 1; j < next; j++ {
				if alive[i] && alive[j] && d[i][j] < best {
					a, b, best = i, j, d[i][j]
				}
			}
		}
		alive[a], alive[b] = false, false
		size[next] = size[a] + size[b]
		na, nb := float64(size[a]), float64(size[b])
		for k := 0; k < next; k++ {
			if alive[k] {
				nk := float64(size[k])
				v := ((nk+na)*d[a][k] + (nk+nb)*d[b][k] - nk*best) / (nk + na + nb)
				d[next][k], d[k][next] = v, v
			}
		}
		alive[next] = true
		merges = append(merges, merge{a: a, b: b, distance: math.Sqrt(best), size: size[next]})
	}
	return merges
}

func TestWardLinkageMatchesGreedy(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	points := make([]point, 60)
	for i := range points {
		points[i] = point{rng.Float64() * 2000, rng.Float64() * 2000}
	}

	got := wardLinkage(points)
	want := greedyWard(points)

	if len(got) != len(want) {
		t.Fatalf("expected %d merges, got %d", len(want), len(got))
	}
	for i := range want {
		if math.Abs(got[i].distance-want[i].distance) > 1e-6 {
			t.Fatalf("merge %d: distance %f, want %f", i, got[i].distance, want[i].distance)
		}
		if got[i].size != want[i].size {
			t.Errorf("merge %d: size %d, want %d", i, got[i].size, want[i].size)
		}
	}
	for _, threshold := range []float64{50, 150, 400, 1000} {
		a := cutTree(got, len(points), threshold)
		b := cutTree(want, len(points), threshold)
		for i := range a {
			if a[i] != b[i] {
				t.Errorf("threshold %v: labels differ at point %d", threshold, i)
				break
			}
		}
	}
}

func TestWeightedWardLinkageCountsWeights(t *testing.T) {
	// A point standing for two visits merges with a lone neighbour as if
	// both visits were there.
	weighted := weightedWardLinkage([]point{{0, 0}, {10, 0}}, []int{2, 1})
	expanded := wardLinkage([]point{{0, 0}, {0, 0}, {10, 0}})

	if len(weighted) != 1 {
		t.Fatalf("expected 1 merge, got %d", len(weighted))
	}
	last := expanded[len(expanded)-1]
	if math.Abs(weighted[0].distance-last.distance) > 1e-9 {
		t.Errorf("expected distance %f, got %f", last.distance, weighted[0].distance)
	}
	if weighted[0].size != 3 {
		t.Errorf("expected size 3, got %d", weighted[0].size)
	}
}

func TestCondensedIndex(t *testing.T) {
	n := 5
	seen := make(map[int]bool)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			idx := condensedIndex(n, i, j)
			if idx != condensedIndex(n, j, i) {
				t.Errorf("index of (%d,%d) depends on order", i, j)
			}
			seen[idx] = true
		}
	}
	if len(seen) != n*(n-1)/2 {
		t.Errorf("expected %d distinct indices, got %d", n*(n-1)/2, len(seen))
	}
	for idx := range seen {
		if idx < 0 || idx >= n*(n-1)/2 {
			t.Errorf("index %d out of range", idx)
		}
	}
}
