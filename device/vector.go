package device

import "fmt"

// Vector is a typed buffer with a host copy and a device copy. Host data is
// edited freely; CopyToDevice publishes it to the device copy which kernels
// read from.
type Vector[T any] struct {
	// A name for identifying the buffer.
	name string

	host   []T
	device []T

	// Set when host data changed after the last device copy.
	modified bool
}

// Create a new named vector.
func NewVector[T any](name string) *Vector[T] {
	return &Vector[T]{name: name}
}

// Get vector name.
func (v *Vector[T]) Name() string {
	return v.name
}

// Get number of host elements.
func (v *Vector[T]) Size() int {
	return len(v.host)
}

// Get number of elements resident on the device.
func (v *Vector[T]) DeviceSize() int {
	return len(v.device)
}

// Allocate a zeroed host buffer with n elements, discarding previous
// contents, and return it for filling.
func (v *Vector[T]) Alloc(n int) []T {
	if n < 0 {
		n = 0
	}
	v.host = make([]T, n)
	v.modified = true
	return v.host
}

// Resize the host buffer to n elements preserving the common prefix.
func (v *Vector[T]) Resize(n int) []T {
	if n < 0 {
		n = 0
	}
	switch {
	case n <= len(v.host):
		v.host = v.host[:n]
	case n <= cap(v.host):
		tail := v.host[len(v.host):n]
		var zero T
		for i := range tail {
			tail[i] = zero
		}
		v.host = v.host[:n]
	default:
		grown := make([]T, n)
		copy(grown, v.host)
		v.host = grown
	}
	v.modified = true
	return v.host
}

// Get host data.
func (v *Vector[T]) Data() []T {
	return v.host
}

// Get the data last copied to the device.
func (v *Vector[T]) DeviceData() []T {
	return v.device
}

// Write data to the host buffer at the given element offset.
func (v *Vector[T]) WriteData(data []T, offset int) error {
	if offset < 0 || offset+len(data) > len(v.host) {
		return fmt.Errorf("device: insufficient buffer space (%d) in %s for copying %d elements at offset %d", len(v.host), v.name, len(data), offset)
	}
	copy(v.host[offset:], data)
	v.modified = true
	return nil
}

// Read device data starting at srcOffset into dst.
func (v *Vector[T]) ReadData(srcOffset int, dst []T) error {
	if srcOffset < 0 || srcOffset+len(dst) > len(v.device) {
		return fmt.Errorf("device: read of %d elements at offset %d exceeds size of %s (%d)", len(dst), srcOffset, v.name, len(v.device))
	}
	copy(dst, v.device[srcOffset:])
	return nil
}

// Flag host data as changed.
func (v *Vector[T]) TagModified() {
	v.modified = true
}

// Check whether host data changed since the last device copy.
func (v *Vector[T]) IsModified() bool {
	return v.modified
}

// Copy host data to the device if it changed.
func (v *Vector[T]) CopyToDevice() {
	if !v.modified {
		return
	}
	if cap(v.device) >= len(v.host) {
		v.device = v.device[:len(v.host)]
	} else {
		v.device = make([]T, len(v.host))
	}
	copy(v.device, v.host)
	v.modified = false
}

// Release host and device memory.
func (v *Vector[T]) Free() {
	v.host = nil
	v.device = nil
	v.modified = false
}
