// Package lookup manages the shared storage for kernel lookup tables.
//
// Tables from different owners (pixel filter, shader ramps, ...) are packed
// into a single float vector of the device scene. Each registration returns
// an Offset into that vector; the owner keeps the offset as an opaque handle
// and must hand it back through RemoveTable before registering a replacement
// or going away.
package lookup

import (
	"errors"
	"fmt"
	"sync"

	"github.com/achilleasa/filmpass/device"
	"github.com/achilleasa/filmpass/log"
)

// Tables are allocated in multiples of ChunkSize floats.
const ChunkSize = 256

// Offset of a registered table in the lookup table storage.
type Offset int

// InvalidOffset is the handle value of an owner that holds no table.
const InvalidOffset Offset = -1

var (
	ErrEmptyTable    = errors.New("lookup: cannot register an empty table")
	ErrPoolExhausted = errors.New("lookup: table pool exhausted")
)

var logger = log.New("lookup")

type table struct {
	offset int
	size   int
}

// Tables is the lookup table allocator of a scene.
type Tables struct {
	mu sync.Mutex

	// Registered tables sorted by offset.
	tables []table

	// Upper bound for the storage size in floats; 0 means unbounded.
	maxSize int

	needUpdate bool
}

// Create an allocator whose storage may grow up to maxSize floats. A
// maxSize of 0 disables the limit.
func NewTables(maxSize int) *Tables {
	return &Tables{maxSize: maxSize}
}

// AddTable copies data into the first free range of the device scene's
// lookup storage that can hold it and returns the range offset.
func (t *Tables) AddTable(dscene *device.Scene, data []float32) (Offset, error) {
	if len(data) == 0 {
		return InvalidOffset, ErrEmptyTable
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	size := alignUp(len(data), ChunkSize)

	// Find the first gap between registered tables that fits.
	offset, insertAt := 0, len(t.tables)
	for i, tbl := range t.tables {
		if offset+size <= tbl.offset {
			insertAt = i
			break
		}
		offset = tbl.offset + tbl.size
	}

	end := offset + size
	if t.maxSize > 0 && end > t.maxSize {
		return InvalidOffset, fmt.Errorf("%w: need %d floats at offset %d; limit is %d", ErrPoolExhausted, size, offset, t.maxSize)
	}

	if dscene.LookupTables.Size() < end {
		dscene.LookupTables.Resize(end)
	}
	if err := dscene.LookupTables.WriteData(data, offset); err != nil {
		return InvalidOffset, err
	}

	t.tables = append(t.tables, table{})
	copy(t.tables[insertAt+1:], t.tables[insertAt:])
	t.tables[insertAt] = table{offset: offset, size: size}

	t.needUpdate = true
	logger.Debugf("registered table of %d floats at offset %d", len(data), offset)
	return Offset(offset), nil
}

// RemoveTable releases the table referenced by *offset and resets the
// handle to InvalidOffset. Releasing an invalid handle is a no-op; releasing
// a handle that was never issued panics.
func (t *Tables) RemoveTable(offset *Offset) {
	if *offset == InvalidOffset {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	for i, tbl := range t.tables {
		if tbl.offset == int(*offset) {
			t.tables = append(t.tables[:i], t.tables[i+1:]...)
			t.needUpdate = true
			logger.Debugf("released table at offset %d", *offset)
			*offset = InvalidOffset
			return
		}
	}

	panic(fmt.Sprintf("lookup: no table registered at offset %d", *offset))
}

// NeedUpdate reports whether registrations changed since the last device
// update.
func (t *Tables) NeedUpdate() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.needUpdate
}

// Count returns the number of registered tables.
func (t *Tables) Count() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.tables)
}

// Used returns the number of floats covered by registered tables including
// chunk padding.
func (t *Tables) Used() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	used := 0
	for _, tbl := range t.tables {
		used += tbl.size
	}
	return used
}

// DeviceUpdate publishes the lookup storage to the device if any table was
// added or removed.
func (t *Tables) DeviceUpdate(dscene *device.Scene) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.needUpdate {
		return
	}
	if dscene.LookupTables.Size() > 0 {
		dscene.LookupTables.CopyToDevice()
	}
	t.needUpdate = false
}

// DeviceFree releases the lookup storage.
func (t *Tables) DeviceFree(dscene *device.Scene) {
	dscene.LookupTables.Free()
}

func alignUp(n, align int) int {
	return (n + align - 1) / align * align
}
