package quadcache

// nodeID refers to a node within one level's table. IDs are only
// meaningful together with the level they came from.
type nodeID int32

// quadrant slots, shared by leaf cells and branch children.
const (
	lowerLeft = iota
	lowerRight
	upperLeft
	upperRight
)

// quad is the content of a node: four raw values at the leaf level, four
// child IDs everywhere else. Arrays are comparable, so the content itself is
// the intern key.
type quad[T comparable] [4]T

// quadrant picks the slot holding (x, y) in a square of side 2*e.
func quadrant(x, y, e int) int {
	q := lowerLeft
	if x >= e {
		q |= lowerRight
	}
	if y >= e {
		q |= upperLeft
	}
	return q
}

// table is the intern table for a single tree level. Nodes are stored in an
// append-only arena and found by content through index.
type table[K comparable] struct {
	nodes []K
	index map[K]nodeID
}

func newTable[K comparable]() *table[K] {
	return &table[K]{index: make(map[K]nodeID)}
}

// intern returns the ID of the node with content k, adding it if it is not
// there yet.
func (t *table[K]) intern(k K) nodeID {
	if id, ok := t.index[k]; ok {
		return id
	}
	id := nodeID(len(t.nodes))
	t.nodes = append(t.nodes, k)
	t.index[k] = id
	return id
}

func (t *table[K]) get(id nodeID) K {
	return t.nodes[id]
}

func (t *table[K]) size() int {
	return len(t.nodes)
}
