package renderer

import (
	"time"

	"github.com/achilleasa/filmpass/scene"
)

type UpdateStats struct {
	// Number of Update calls that changed the film.
	Updates int

	// Time spent recomputing the pass set.
	PassUpdateTime time.Duration

	// Time spent assigning offsets and registering the filter table.
	DeviceUpdateTime time.Duration

	// Time spent publishing lookup tables, kernel data and buffers.
	CopyTime time.Duration

	// Total time for the last update.
	UpdateTime time.Duration

	// Geometry updates requested by the film during the last update.
	GeometryUpdates scene.GeometryUpdate
}
