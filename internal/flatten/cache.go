package flatten

import (
	"sync"
	"sync/atomic"

	"fieldpaths/internal/shape"
)

// entry is a computed result; paths is nil for records without fields.
type entry struct {
	paths *LeafPaths
}

// cell is the write-once slot of one type. Readers of a filled cell never
// lock; mu serializes the first computation.
type cell struct {
	mu    sync.Mutex
	value atomic.Pointer[entry]
}

func (c *cell) load() (*entry, bool) {
	e := c.value.Load()

	return e, e != nil
}

// cache maps *shape.Type to its cell. Cells are created on demand and
// never removed.
type cache struct {
	cells sync.Map // map[*shape.Type]*cell
}

func (c *cache) cell(t *shape.Type) *cell {
	if v, ok := c.cells.Load(t); ok {
		return v.(*cell)
	}

	v, _ := c.cells.LoadOrStore(t, &cell{})

	return v.(*cell)
}

// done reports whether t already has a computed result.
func (c *cache) done(t *shape.Type) bool {
	v, ok := c.cells.Load(t)
	if !ok {
		return false
	}

	_, ok = v.(*cell).load()

	return ok
}
