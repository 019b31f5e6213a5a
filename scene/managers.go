package scene

import "strings"

// IntegratorUpdate flags why the integrator needs a device update.
type IntegratorUpdate uint32

const (
	// The ambient occlusion pass was added or removed.
	AOPassModified IntegratorUpdate = 1 << iota
)

// Integrator holds the sampling and denoising toggles.
type Integrator struct {
	useDenoise           bool
	useDenoisePassNormal bool
	useDenoisePassAlbedo bool
	useAdaptiveSampling  bool

	modified bool
	updates  IntegratorUpdate
}

func (i *Integrator) UseDenoise() bool           { return i.useDenoise }
func (i *Integrator) UseDenoisePassNormal() bool { return i.useDenoisePassNormal }
func (i *Integrator) UseDenoisePassAlbedo() bool { return i.useDenoisePassAlbedo }
func (i *Integrator) UseAdaptiveSampling() bool  { return i.useAdaptiveSampling }

func (i *Integrator) SetUseDenoise(v bool) {
	i.modified = i.modified || i.useDenoise != v
	i.useDenoise = v
}

func (i *Integrator) SetUseDenoisePassNormal(v bool) {
	i.modified = i.modified || i.useDenoisePassNormal != v
	i.useDenoisePassNormal = v
}

func (i *Integrator) SetUseDenoisePassAlbedo(v bool) {
	i.modified = i.modified || i.useDenoisePassAlbedo != v
	i.useDenoisePassAlbedo = v
}

func (i *Integrator) SetUseAdaptiveSampling(v bool) {
	i.modified = i.modified || i.useAdaptiveSampling != v
	i.useAdaptiveSampling = v
}

// TagUpdate records an update reason and marks the integrator modified.
func (i *Integrator) TagUpdate(flag IntegratorUpdate) {
	i.updates |= flag
	i.modified = true
}

// Updates returns the update reasons recorded since the last ClearModified.
func (i *Integrator) Updates() IntegratorUpdate {
	return i.updates
}

func (i *Integrator) IsModified() bool {
	return i.modified
}

func (i *Integrator) ClearModified() {
	i.modified = false
	i.updates = 0
}

// Background of the scene.
type Background struct {
	transparent bool
	modified    bool
}

func (b *Background) Transparent() bool { return b.transparent }

func (b *Background) SetTransparent(v bool) {
	b.modified = b.modified || b.transparent != v
	b.transparent = v
}

func (b *Background) IsModified() bool { return b.modified }
func (b *Background) ClearModified()   { b.modified = false }

// BakeManager tracks whether the scene is being baked instead of rendered.
type BakeManager struct {
	baking   bool
	modified bool
}

func (b *BakeManager) Baking() bool { return b.baking }

func (b *BakeManager) SetBaking(v bool) {
	b.modified = b.modified || b.baking != v
	b.baking = v
}

func (b *BakeManager) IsModified() bool { return b.modified }
func (b *BakeManager) ClearModified()   { b.modified = false }

// ObjectManager tracks object level state that affects pass selection.
type ObjectManager struct {
	// Set when at least one object is a shadow catcher.
	ShadowCatcher bool

	needUpdate bool
}

// SetShadowCatcher updates the shadow catcher presence and tags the manager
// for update on change.
func (m *ObjectManager) SetShadowCatcher(v bool) {
	m.needUpdate = m.needUpdate || m.ShadowCatcher != v
	m.ShadowCatcher = v
}

func (m *ObjectManager) TagUpdate()       { m.needUpdate = true }
func (m *ObjectManager) NeedUpdate() bool { return m.needUpdate }
func (m *ObjectManager) ClearUpdate()     { m.needUpdate = false }

// GeometryUpdate flags why geometry data must be rebuilt.
type GeometryUpdate uint32

const (
	// UV attributes must be (re)exported for the UV pass.
	UVPassNeeded GeometryUpdate = 1 << iota

	// Motion attributes must be (re)exported for the motion pass.
	MotionPassNeeded
)

// Implements Stringer.
func (f GeometryUpdate) String() string {
	if f == 0 {
		return "none"
	}
	var names []string
	if f&UVPassNeeded != 0 {
		names = append(names, "uv_pass_needed")
	}
	if f&MotionPassNeeded != 0 {
		names = append(names, "motion_pass_needed")
	}
	return strings.Join(names, "|")
}

// GeometryManager collects geometry rebuild requests.
type GeometryManager struct {
	updates GeometryUpdate
}

func (m *GeometryManager) TagUpdate(flag GeometryUpdate) {
	m.updates |= flag
}

// NeedUpdate reports whether any of the given flags is pending.
func (m *GeometryManager) NeedUpdate(flag GeometryUpdate) bool {
	return m.updates&flag != 0
}

func (m *GeometryManager) Updates() GeometryUpdate { return m.updates }
func (m *GeometryManager) ClearUpdate()            { m.updates = 0 }

// Shader is a scene shader. Only the state the film touches is modeled.
type Shader struct {
	Name string

	// Set when the shader's UV attribute requests must be re-evaluated.
	NeedUpdateUVs bool
}

func NewShader(name string) *Shader {
	return &Shader{Name: name}
}
