package renderer

import (
	"sync"
	"time"

	"github.com/achilleasa/filmpass/buffers"
	"github.com/achilleasa/filmpass/device"
	"github.com/achilleasa/filmpass/film"
	"github.com/achilleasa/filmpass/log"
	"github.com/achilleasa/filmpass/lookup"
	"github.com/achilleasa/filmpass/scene"
)

var logger = log.New("renderer")

// Session keeps a scene, its film and the device side state in sync.
type Session struct {
	Scene   *scene.Scene
	Film    *film.Film
	Buffers *buffers.RenderBuffers

	dscene  *device.Scene
	options Options
	stats   UpdateStats
	closed  bool

	// mutex for synchronizing updates
	sync.Mutex
}

// Create a session for the given scene and film.
func NewSession(sc *scene.Scene, f *film.Film, opts Options) (*Session, error) {
	if sc == nil {
		return nil, ErrSceneNotDefined
	}
	if f == nil {
		return nil, ErrFilmNotDefined
	}

	if opts.LookupTableLimit > 0 && sc.LookupTables.Count() == 0 {
		sc.LookupTables = lookup.NewTables(opts.LookupTableLimit)
	}

	return &Session{
		Scene:   sc,
		Film:    f,
		Buffers: buffers.New(),
		dscene:  device.NewScene(),
		options: opts,
	}, nil
}

// DeviceScene returns the device state managed by the session.
func (r *Session) DeviceScene() *device.Scene {
	return r.dscene
}

// Update recomputes the film passes, assigns offsets, publishes lookup
// tables and kernel data to the device and resizes the render buffers. Scene
// update flags are cleared once every stage has run.
func (r *Session) Update() error {
	r.Lock()
	defer r.Unlock()

	if r.closed {
		return ErrClosed
	}

	start := time.Now()

	r.Film.UpdatePasses(r.Scene, r.options.AddSampleCountPass)
	passTime := time.Since(start)

	deviceStart := time.Now()
	changed := r.Film.IsModified()
	if err := r.Film.DeviceUpdate(r.dscene, r.Scene); err != nil {
		return err
	}
	deviceTime := time.Since(deviceStart)

	copyStart := time.Now()
	r.Scene.LookupTables.DeviceUpdate(r.dscene)
	r.dscene.CopyData()
	if changed || r.Buffers.Params.Width != int(r.options.FrameW) || r.Buffers.Params.Height != int(r.options.FrameH) {
		params := buffers.NewParams(int(r.options.FrameW), int(r.options.FrameH), r.Film.Layout(), r.Film.Exposure())
		if err := r.Buffers.Reset(params); err != nil {
			return err
		}
	}
	copyTime := time.Since(copyStart)

	geometryUpdates := r.Scene.GeometryManager.Updates()
	if geometryUpdates != 0 {
		logger.Infof("geometry update requested: %s", geometryUpdates)
	}
	r.clearSceneFlags()

	if changed {
		r.stats.Updates++
	}
	r.stats.PassUpdateTime = passTime
	r.stats.DeviceUpdateTime = deviceTime
	r.stats.CopyTime = copyTime
	r.stats.UpdateTime = time.Since(start)
	r.stats.GeometryUpdates = geometryUpdates

	logger.Infof("update took %d ms (passes: %d ms, device: %d ms, copy: %d ms)",
		r.stats.UpdateTime.Nanoseconds()/1e6,
		passTime.Nanoseconds()/1e6,
		deviceTime.Nanoseconds()/1e6,
		copyTime.Nanoseconds()/1e6,
	)
	return nil
}

func (r *Session) clearSceneFlags() {
	r.Scene.Integrator.ClearModified()
	r.Scene.Background.ClearModified()
	r.Scene.BakeManager.ClearModified()
	r.Scene.ObjectManager.ClearUpdate()
	r.Scene.GeometryManager.ClearUpdate()
	for _, shader := range r.Scene.Shaders {
		shader.NeedUpdateUVs = false
	}
}

// Stats returns the timings of the last update.
func (r *Session) Stats() UpdateStats {
	r.Lock()
	defer r.Unlock()
	return r.stats
}

// Close releases the film's filter table and all device buffers. Calling
// Close more than once is a no-op.
func (r *Session) Close() {
	r.Lock()
	defer r.Unlock()

	if r.closed {
		return
	}
	r.Film.DeviceFree(r.Scene)
	r.Scene.LookupTables.DeviceFree(r.dscene)
	r.Buffers.Free()
	r.dscene.Free()
	r.closed = true
}
