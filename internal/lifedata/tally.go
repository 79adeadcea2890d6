package lifedata

import "sort"

type number interface {
	~int | ~float64
}

// tally accumulates values per key and remembers the order in which keys
// were first seen, so rankings break ties the same way on every run.
type tally[V number] struct {
	keys   []string
	values map[string]V
}

func newTally[V number]() *tally[V] {
	return &tally[V]{values: make(map[string]V)}
}

func (t *tally[V]) add(key string, v V) {
	if _, ok := t.values[key]; !ok {
		t.keys = append(t.keys, key)
	}
	t.values[key] += v
}

func (t *tally[V]) len() int { return len(t.keys) }

// ranked returns the keys by descending value; ties keep first-seen order.
func (t *tally[V]) ranked() []string {
	out := make([]string, len(t.keys))
	copy(out, t.keys)
	sort.SliceStable(out, func(i, j int) bool {
		return t.values[out[i]] > t.values[out[j]]
	})
	return out
}

// top returns the highest-valued key, or "" when empty.
func (t *tally[V]) top() string {
	r := t.ranked()
	if len(r) == 0 {
		return ""
	}
	return r[0]
}

func (t *tally[V]) total() V {
	var sum V
	for _, v := range t.values {
		sum += v
	}
	return sum
}

func (t *tally[V]) asMap() map[string]V {
	out := make(map[string]V, len(t.values))
	for k, v := range t.values {
		out[k] = v
	}
	return out
}

// orderedSet keeps distinct strings in first-seen order.
type orderedSet struct {
	items []string
	seen  map[string]struct{}
}

func newOrderedSet() *orderedSet {
	return &orderedSet{seen: make(map[string]struct{})}
}

func (s *orderedSet) add(item string) {
	if _, ok := s.seen[item]; ok {
		return
	}
	s.seen[item] = struct{}{}
	s.items = append(s.items, item)
}
