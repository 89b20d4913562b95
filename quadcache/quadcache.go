// Package quadcache implements a persistent quad tree that caches square
// contents on every level. Every distinct square is stored once per level,
// so equal grids share their root and compare in constant time, and a write
// only creates the nodes along one root-to-leaf path.
//
// A Cache is not safe for concurrent use; concurrent searches should give
// each goroutine its own Cache.
package quadcache

import (
	"errors"
	"fmt"
	"strings"
	"unsafe"
)

var ErrExtentExceeded = errors.New("grid does not fit the cache extent")

// Source is a rectangular grid that can be loaded into a Cache.
type Source[V comparable] interface {
	Width() int
	Height() int
	At(x, y int) V
}

// Cache owns the per-level intern tables. Level 0 is the root level; the
// last level holds the leaves, which cover 2x2 cells.
type Cache[V comparable] struct {
	filler V
	width  int
	height int
	depth  int
	extent int

	branches []*table[quad[nodeID]]
	leaves   *table[quad[V]]

	original Map[V]
}

// Map is a handle on one full grid inside a Cache. Maps are values; two Maps
// from the same Cache are equal (==) exactly when their grids are equal.
type Map[V comparable] struct {
	cache *Cache[V]
	root  nodeID
}

// New builds a cache from src. Cells of the padded square that lie beyond
// src's width or height hold filler.
func New[V comparable](src Source[V], filler V) *Cache[V] {
	c := &Cache[V]{
		filler: filler,
		width:  src.Width(),
		height: src.Height(),
		depth:  1,
		extent: 2,
	}
	for c.extent < c.height || c.extent < c.width {
		c.depth++
		c.extent <<= 1
	}
	c.branches = make([]*table[quad[nodeID]], c.depth-1)
	for i := range c.branches {
		c.branches[i] = newTable[quad[nodeID]]()
	}
	c.leaves = newTable[quad[V]]()
	c.original = Map[V]{cache: c, root: c.build(src, 0, c.extent, 0, 0)}
	return c
}

// Original is the snapshot of the grid the cache was created from.
func (c *Cache[V]) Original() Map[V] {
	return c.original
}

// Extent is the side of the padded square.
func (c *Cache[V]) Extent() int {
	return c.extent
}

// Depth is the number of tree levels, log2(Extent()).
func (c *Cache[V]) Depth() int {
	return c.depth
}

// Filler is the padding value.
func (c *Cache[V]) Filler() V {
	return c.filler
}

// Snapshot interns src and returns its handle. Grids with identical
// content always get equal handles.
func (c *Cache[V]) Snapshot(src Source[V]) (Map[V], error) {
	if src.Width() > c.extent || src.Height() > c.extent {
		return Map[V]{}, fmt.Errorf("%w: %dx%d > %d", ErrExtentExceeded,
			src.Width(), src.Height(), c.extent)
	}
	return Map[V]{cache: c, root: c.build(src, 0, c.extent, 0, 0)}, nil
}

// Equal compares two handles by identity.
func (c *Cache[V]) Equal(a, b Map[V]) bool {
	return a == b
}

func (c *Cache[V]) get(src Source[V], x, y int) V {
	if x >= src.Width() || y >= src.Height() {
		return c.filler
	}
	return src.At(x, y)
}

func (c *Cache[V]) build(src Source[V], level, extent, x0, y0 int) nodeID {
	if extent == 2 {
		var n quad[V]
		n[lowerLeft] = c.get(src, x0, y0)
		n[lowerRight] = c.get(src, x0+1, y0)
		n[upperLeft] = c.get(src, x0, y0+1)
		n[upperRight] = c.get(src, x0+1, y0+1)
		return c.leaves.intern(n)
	}
	e := extent >> 1
	var n quad[nodeID]
	n[lowerLeft] = c.build(src, level+1, e, x0, y0)
	n[lowerRight] = c.build(src, level+1, e, x0+e, y0)
	n[upperLeft] = c.build(src, level+1, e, x0, y0+e)
	n[upperRight] = c.build(src, level+1, e, x0+e, y0+e)
	return c.branches[level].intern(n)
}

func (c *Cache[V]) checkRange(x, y int) {
	if x < 0 || y < 0 || x >= c.extent || y >= c.extent {
		panic(fmt.Sprintf("quadcache: (%d, %d) outside extent %d", x, y, c.extent))
	}
}

func (c *Cache[V]) find(root nodeID, x, y int) V {
	id := root
	for level, extent := 0, c.extent; ; level, extent = level+1, extent>>1 {
		e := extent >> 1
		q := quadrant(x, y, e)
		if extent == 2 {
			return c.leaves.get(id)[q]
		}
		id = c.branches[level].get(id)[q]
		x, y = x%e, y%e
	}
}

// replace copies the path down to (x, y), swaps in v and interns the copies
// from the bottom up.
func (c *Cache[V]) replace(id nodeID, level, extent, x, y int, v V) nodeID {
	e := extent >> 1
	q := quadrant(x, y, e)
	if extent == 2 {
		n := c.leaves.get(id)
		if n[q] == v {
			return id
		}
		n[q] = v
		return c.leaves.intern(n)
	}
	n := c.branches[level].get(id)
	child := c.replace(n[q], level+1, e, x%e, y%e, v)
	if child == n[q] {
		return id
	}
	n[q] = child
	return c.branches[level].intern(n)
}

// LevelSizes returns the number of distinct squares interned on each level,
// root level first.
func (c *Cache[V]) LevelSizes() []int {
	sizes := make([]int, 0, c.depth)
	for _, t := range c.branches {
		sizes = append(sizes, t.size())
	}
	return append(sizes, c.leaves.size())
}

// NodeCount is the total number of interned squares.
func (c *Cache[V]) NodeCount() int {
	n := 0
	for _, s := range c.LevelSizes() {
		n += s
	}
	return n
}

// Footprint is a rough estimate, in bytes, of the memory held by the intern
// tables. Each node is counted twice (arena and index key) plus map
// overhead.
func (c *Cache[V]) Footprint() uint64 {
	const mapOverhead = 16
	var leaf quad[V]
	var branch quad[nodeID]
	leafBytes := 2*uint64(unsafe.Sizeof(leaf)) + mapOverhead
	branchBytes := 2*uint64(unsafe.Sizeof(branch)) + mapOverhead
	total := uint64(c.leaves.size()) * leafBytes
	for _, t := range c.branches {
		total += uint64(t.size()) * branchBytes
	}
	return total
}

// Info describes the cache, one level per line.
func (c *Cache[V]) Info() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "size = %dx%d\n", c.width, c.height)
	fmt.Fprintf(&sb, "extent = %d\n", c.extent)
	for i, s := range c.LevelSizes() {
		fmt.Fprintf(&sb, "%d squares at level %d\n", s, i)
	}
	return sb.String()
}

// Cache returns the cache the handle belongs to.
func (m Map[V]) Cache() *Cache[V] {
	return m.cache
}

// Valid reports whether m refers to a grid. The zero Map does not.
func (m Map[V]) Valid() bool {
	return m.cache != nil
}

// Read returns the value at (x, y). Coordinates must lie inside the padded
// extent.
func (m Map[V]) Read(x, y int) V {
	m.cache.checkRange(x, y)
	return m.cache.find(m.root, x, y)
}

// Write returns a handle on a grid equal to m except that (x, y) holds v.
// m itself is unchanged.
func (m Map[V]) Write(x, y int, v V) Map[V] {
	m.cache.checkRange(x, y)
	return Map[V]{cache: m.cache, root: m.cache.replace(m.root, 0, m.cache.extent, x, y, v)}
}

// Equal reports whether both handles hold the same grid.
func (m Map[V]) Equal(o Map[V]) bool {
	return m == o
}
