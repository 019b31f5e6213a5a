package device

import "github.com/achilleasa/filmpass/kernel"

// Scene holds the device side state shared by the scene managers: the
// kernel configuration record and the lookup table storage.
type Scene struct {
	// Host copy of the kernel configuration. Managers edit it during their
	// device updates; CopyData publishes it.
	Data kernel.Data

	LookupTables *Vector[float32]

	data *Vector[kernel.Data]
}

// Create a device scene with an initialized kernel film record.
func NewScene() *Scene {
	s := &Scene{
		Data:         kernel.Data{Film: kernel.NewFilm()},
		LookupTables: NewVector[float32]("lookupTables"),
		data:         NewVector[kernel.Data]("data"),
	}
	s.data.Alloc(1)
	return s
}

// Publish the host kernel data to the device.
func (s *Scene) CopyData() {
	s.data.Data()[0] = s.Data
	s.data.TagModified()
	s.data.CopyToDevice()
}

// Get the kernel data as seen by the device.
func (s *Scene) DeviceData() kernel.Data {
	if s.data.DeviceSize() == 0 {
		return kernel.Data{Film: kernel.NewFilm()}
	}
	return s.data.DeviceData()[0]
}

// Release all device buffers.
func (s *Scene) Free() {
	s.LookupTables.Free()
	s.data.Free()
}
