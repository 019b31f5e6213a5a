package pass

import "fmt"

// Mode selects between the raw accumulated pass and its denoised variant.
type Mode uint8

const (
	Noisy Mode = iota
	Denoised
)

// Implements Stringer.
func (m Mode) String() string {
	switch m {
	case Noisy:
		return "noisy"
	case Denoised:
		return "denoised"
	}
	return fmt.Sprintf("mode(%d)", uint8(m))
}

// Pass is a request for a render pass. Requests are either specified by the
// user or injected automatically by the film when another feature depends on
// them.
type Pass struct {
	Kind Kind
	Mode Mode

	// Optional name. Named passes of the same kind and mode are kept as
	// separate entries (e.g. several AOVs).
	Name string

	// Whether light component passes include the surface albedo.
	IncludeAlbedo bool

	auto bool
}

// New creates a user pass request.
func New(kind Kind) *Pass {
	return &Pass{Kind: kind}
}

// NewNamed creates a named user pass request.
func NewNamed(kind Kind, name string) *Pass {
	return &Pass{Kind: kind, Name: name}
}

// NewAuto creates a pass request owned by the film. Auto passes are dropped
// and recreated every time the pass set is recomputed.
func NewAuto(kind Kind, mode Mode, name string) *Pass {
	return &Pass{Kind: kind, Mode: mode, Name: name, auto: true}
}

// IsAuto reports whether the pass was injected automatically.
func (p *Pass) IsAuto() bool {
	return p.auto
}

// Info returns the storage metadata for this pass.
func (p *Pass) Info() Info {
	return GetInfo(p.Kind, p.IncludeAlbedo)
}

// IsWritten reports whether the kernel writes this pass into the render
// buffer.
func (p *Pass) IsWritten() bool {
	return p.Info().IsWritten
}

// Implements Stringer.
func (p *Pass) String() string {
	return fmt.Sprintf("type: %s, name: %q, mode: %s, is_written: %t, auto: %t",
		p.Kind, p.Name, p.Mode, p.IsWritten(), p.auto)
}

// Find returns the first pass matching kind and mode, or nil.
func Find(passes []*Pass, kind Kind, mode Mode) *Pass {
	for _, p := range passes {
		if p.Kind == kind && p.Mode == mode {
			return p
		}
	}
	return nil
}

// FindByName returns the first pass with the given name, or nil.
func FindByName(passes []*Pass, name string) *Pass {
	for _, p := range passes {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// Contains reports whether a pass of the given kind is present in any mode.
func Contains(passes []*Pass, kind Kind) bool {
	for _, p := range passes {
		if p.Kind == kind {
			return true
		}
	}
	return false
}

// RemoveAuto returns passes with every auto-generated request filtered out.
// The relative order of the remaining user passes is preserved.
func RemoveAuto(passes []*Pass) []*Pass {
	out := make([]*Pass, 0, len(passes))
	for _, p := range passes {
		if !p.auto {
			out = append(out, p)
		}
	}
	return out
}
