package places

import (
	"math"
	"sort"
)

// point is a visit projected onto a local plane, in metres.
type point struct {
	x, y float64
}

func (p point) sqDist(q point) float64 {
	dx, dy := p.x-q.x, p.y-q.y
	return dx*dx + dy*dy
}

// merge is one step of the dendrogram. Clusters 0..n-1 are the input
// points; the cluster created by step s has id n+s.
type merge struct {
	a, b     int
	distance float64
	size     int
}

// condensedIndex returns the index of pair (i, j) in a condensed distance
// array over n points.
func condensedIndex(n, i, j int) int {
	if i > j {
		i, j = j, i
	}
	return n*i - i*(i+1)/2 + j - i - 1
}

// wardLinkage clusters unit-weight points with Ward's criterion.
func wardLinkage(points []point) []merge {
	return weightedWardLinkage(points, nil)
}

// weightedWardLinkage clusters points that each already stand for weights[i]
// coincident visits. A nil weights slice means every point counts once.
//
// Merges are found with the nearest-neighbour chain, which gives Ward's
// dendrogram in O(n²) time over a condensed matrix of squared Ward
// distances updated by the Lance-Williams recurrence. The returned merges
// are sorted by distance and numbered as if built greedily.
func weightedWardLinkage(points []point, weights []int) []merge {
	n := len(points)
	if n < 2 {
		return nil
	}

	size := make([]int, n)
	active := make([]bool, n)
	for i := range size {
		size[i] = 1
		if weights != nil {
			size[i] = weights[i]
		}
		active[i] = true
	}

	d := make([]float64, n*(n-1)/2)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			wi, wj := float64(size[i]), float64(size[j])
			d[condensedIndex(n, i, j)] = 2 * wi * wj / (wi + wj) * points[i].sqDist(points[j])
		}
	}
	dist := func(i, j int) float64 { return d[condensedIndex(n, i, j)] }

	// Raw merges name clusters by the slot of their surviving member.
	raw := make([]merge, 0, n-1)
	chain := make([]int, 0, n)
	for len(raw) < n-1 {
		if len(chain) == 0 {
			for i := range active {
				if active[i] {
					chain = append(chain, i)
					break
				}
			}
		}

		var x, y int
		var best float64
		for {
			x = chain[len(chain)-1]
			y, best = -1, math.Inf(1)
			if len(chain) > 1 {
				y = chain[len(chain)-2]
				best = dist(x, y)
			}
			for i := range active {
				if active[i] && i != x {
					if v := dist(x, i); v < best {
						y, best = i, v
					}
				}
			}
			if len(chain) > 1 && y == chain[len(chain)-2] {
				break
			}
			chain = append(chain, y)
		}
		chain = chain[:len(chain)-2]

		a, b := x, y
		if a > b {
			a, b = b, a
		}
		na, nb := float64(size[a]), float64(size[b])
		for k := range active {
			if !active[k] || k == a || k == b {
				continue
			}
			nk := float64(size[k])
			v := ((nk+na)*dist(a, k) + (nk+nb)*dist(b, k) - nk*best) / (nk + na + nb)
			d[condensedIndex(n, a, k)] = v
		}
		size[a] += size[b]
		active[b] = false

		raw = append(raw, merge{a: a, b: b, distance: math.Sqrt(best), size: size[a]})
	}

	// A cluster is never merged before the merges that built it, so a
	// stable sort keeps children ahead of their parents.
	sort.SliceStable(raw, func(i, j int) bool { return raw[i].distance < raw[j].distance })
	return relabel(raw, n)
}

// relabel turns slot-named merges into dendrogram ids.
func relabel(raw []merge, n int) []merge {
	parent := make([]int, n)
	id := make([]int, n)
	for i := range parent {
		parent[i] = i
		id[i] = i
	}
	find := func(i int) int {
		for parent[i] != i {
			parent[i] = parent[parent[i]]
			i = parent[i]
		}
		return i
	}

	merges := make([]merge, len(raw))
	for step, m := range raw {
		ra, rb := find(m.a), find(m.b)
		a, b := id[ra], id[rb]
		if a > b {
			a, b = b, a
		}
		parent[rb] = ra
		id[ra] = n + step
		merges[step] = merge{a: a, b: b, distance: m.distance, size: m.size}
	}
	return merges
}

// cutTree labels each of the n points with its cluster after applying every
// merge at or below threshold. Labels are numbered in order of the first
// point that carries them.
func cutTree(merges []merge, n int, threshold float64) []int {
	parent := make([]int, n+len(merges))
	for i := range parent {
		parent[i] = i
	}
	for step, m := range merges {
		if m.distance > threshold {
			break
		}
		parent[m.a] = n + step
		parent[m.b] = n + step
	}

	root := func(i int) int {
		for parent[i] != i {
			i = parent[i]
		}
		return i
	}

	labels := make([]int, n)
	ids := make(map[int]int)
	for i := 0; i < n; i++ {
		r := root(i)
		id, ok := ids[r]
		if !ok {
			id = len(ids)
			ids[r] = id
		}
		labels[i] = id
	}
	return labels
}
