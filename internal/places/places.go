// Package places groups location visits that happened at the same spot, so
// that repeated stops show up as one place with a visit count.
package places

import (
	"math"

	"github.com/TobiSchelling/lifelens/internal/lifedata"
)

// DefaultRadius is used when Group is called without a positive radius.
const DefaultRadius = 150.0

const earthRadius = 6371000.0

// cellsPerRadius sets the grid that visits are snapped to before
// clustering: visits in one cell of radius/cellsPerRadius metres are
// clustered as a single weighted point.
const cellsPerRadius = 10

// Place is a cluster of nearby visits.
type Place struct {
	Name      string                `json:"name"`
	Type      lifedata.LocationType `json:"type"`
	Center    lifedata.Coordinates  `json:"center"`
	Visits    int                   `json:"visits"`
	Minutes   int                   `json:"minutes"`
	Sentiment *float64              `json:"sentiment,omitempty"`
}

// Group clusters visits that lie within about radius metres of each other.
// Visits without coordinates are left out. Places are returned in the order
// of their first visit. The most frequent name and type among a place's
// visits label it, the first seen winning ties. Sentiment is the mean of
// the visits that carry a score.
func Group(visits []lifedata.LocationVisit, radius float64) []Place {
	if radius <= 0 {
		radius = DefaultRadius
	}

	// Visits at 0,0 carry no position.
	var located []int
	for i, v := range visits {
		if v.Coordinates != (lifedata.Coordinates{}) {
			located = append(located, i)
		}
	}
	if len(located) == 0 {
		return nil
	}

	points := project(visits, located)
	cells, members := snap(points, radius/cellsPerRadius)
	weights := make([]int, len(cells))
	for i, m := range members {
		weights[i] = len(m)
	}
	cellLabels := cutTree(weightedWardLinkage(cells, weights), len(cells), radius)
	labels := make([]int, len(points))
	for ci, m := range members {
		for _, pi := range m {
			labels[pi] = cellLabels[ci]
		}
	}
	minutes := lifedata.StayMinutes(visits)

	var groups [][]int
	for i, l := range labels {
		if l == len(groups) {
			groups = append(groups, nil)
		}
		groups[l] = append(groups[l], located[i])
	}

	out := make([]Place, len(groups))
	for gi, members := range groups {
		var lat, lng float64
		var scores []float64
		names, types := newCounter(), newCounter()
		p := Place{Visits: len(members)}
		for _, i := range members {
			v := visits[i]
			lat += v.Coordinates.Lat
			lng += v.Coordinates.Lng
			p.Minutes += minutes[i]
			names.add(v.Name)
			types.add(string(v.Type))
			if v.SentimentScore != nil {
				scores = append(scores, *v.SentimentScore)
			}
		}
		p.Name = names.top()
		p.Type = lifedata.LocationType(types.top())
		p.Center = lifedata.Coordinates{
			Lat: lat / float64(len(members)),
			Lng: lng / float64(len(members)),
		}
		if len(scores) > 0 {
			var sum float64
			for _, s := range scores {
				sum += s
			}
			mean := sum / float64(len(scores))
			p.Sentiment = &mean
		}
		out[gi] = p
	}
	return out
}

// project maps the visits at the given indices onto an equirectangular
// plane centred on their mean latitude. Over the few kilometres a day spans
// the error is well below any sensible radius.
func project(visits []lifedata.LocationVisit, indices []int) []point {
	var latSum float64
	for _, i := range indices {
		latSum += visits[i].Coordinates.Lat
	}
	cosLat := math.Cos(latSum / float64(len(indices)) * math.Pi / 180)

	points := make([]point, len(indices))
	for pi, i := range indices {
		c := visits[i].Coordinates
		points[pi] = point{
			x: c.Lng * math.Pi / 180 * earthRadius * cosLat,
			y: c.Lat * math.Pi / 180 * earthRadius,
		}
	}
	return points
}

// snap buckets points into square cells of the given size, in order of
// first appearance. It returns each cell's centroid and the indices of the
// points inside it.
func snap(points []point, cell float64) ([]point, [][]int) {
	type key struct{ x, y int64 }
	index := make(map[key]int)
	var members [][]int
	for i, p := range points {
		k := key{int64(math.Floor(p.x / cell)), int64(math.Floor(p.y / cell))}
		ci, ok := index[k]
		if !ok {
			ci = len(members)
			index[k] = ci
			members = append(members, nil)
		}
		members[ci] = append(members[ci], i)
	}

	centroids := make([]point, len(members))
	for ci, m := range members {
		var c point
		for _, i := range m {
			c.x += points[i].x
			c.y += points[i].y
		}
		c.x /= float64(len(m))
		c.y /= float64(len(m))
		centroids[ci] = c
	}
	return centroids, members
}

type counter struct {
	order  []string
	counts map[string]int
}

func newCounter() *counter {
	return &counter{counts: make(map[string]int)}
}

func (c *counter) add(key string) {
	if _, ok := c.counts[key]; !ok {
		c.order = append(c.order, key)
	}
	c.counts[key]++
}

func (c *counter) top() string {
	var best string
	n := 0
	for _, k := range c.order {
		if c.counts[k] > n {
			best, n = k, c.counts[k]
		}
	}
	return best
}
