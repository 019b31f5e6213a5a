// Package scene holds the render state the film reads its feature toggles
// from, and the managers it notifies when pass presence changes.
package scene

import (
	"fmt"

	"github.com/achilleasa/filmpass/lookup"
	"github.com/achilleasa/filmpass/pass"
)

// MotionType selects how the scene uses object motion.
type MotionType uint8

const (
	MotionNone MotionType = iota

	// Motion vectors are written to the motion pass.
	MotionPass

	// Motion is rendered as blur; no vectors are available to passes.
	MotionBlur
)

var motionNames = map[MotionType]string{
	MotionNone: "none",
	MotionPass: "pass",
	MotionBlur: "blur",
}

// Implements Stringer.
func (m MotionType) String() string {
	if name, ok := motionNames[m]; ok {
		return name
	}
	return fmt.Sprintf("motion(%d)", uint8(m))
}

// ParseMotion maps a motion type name back to a MotionType.
func ParseMotion(name string) (MotionType, bool) {
	for m, mName := range motionNames {
		if mName == name {
			return m, true
		}
	}
	return MotionNone, false
}

type Scene struct {
	// Requested passes. User passes are added with AddPass; the film appends
	// and removes its own auto passes.
	Passes []*pass.Pass

	Integrator      *Integrator
	Background      *Background
	BakeManager     *BakeManager
	ObjectManager   *ObjectManager
	GeometryManager *GeometryManager
	Shaders         []*Shader

	// Motion handling requested by the camera and integrator.
	Motion MotionType

	// Shared storage for kernel lookup tables.
	LookupTables *lookup.Tables
}

// Create a scene with default managers and an unbounded lookup table pool.
func NewScene() *Scene {
	return &Scene{
		Passes:          make([]*pass.Pass, 0),
		Integrator:      &Integrator{},
		Background:      &Background{},
		BakeManager:     &BakeManager{},
		ObjectManager:   &ObjectManager{},
		GeometryManager: &GeometryManager{},
		Shaders:         make([]*Shader, 0),
		LookupTables:    lookup.NewTables(0),
	}
}

// Add a user pass request to the scene.
func (s *Scene) AddPass(p *pass.Pass) error {
	if p.IsAuto() {
		return fmt.Errorf("scene: auto passes are managed by the film")
	}
	for _, existing := range s.Passes {
		if existing == p {
			return fmt.Errorf("scene: pass already added")
		}
	}
	s.Passes = append(s.Passes, p)
	return nil
}

// Add a shader to the scene.
func (s *Scene) AddShader(shader *Shader) error {
	for _, existing := range s.Shaders {
		if existing == shader {
			return fmt.Errorf("scene: shader already added")
		}
	}
	s.Shaders = append(s.Shaders, shader)
	return nil
}

// HasShadowCatcher reports whether any object in the scene is a shadow
// catcher.
func (s *Scene) HasShadowCatcher() bool {
	return s.ObjectManager.ShadowCatcher
}

// NeedMotion returns the motion handling mode. Motion passes are only
// written in MotionPass mode.
func (s *Scene) NeedMotion() MotionType {
	return s.Motion
}
