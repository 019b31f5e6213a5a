package renderer

type Renderer interface {
	// Synchronize film passes and device state with the scene.
	Update() error

	// Release device state.
	Close()

	// Get update statistics.
	Stats() UpdateStats
}
