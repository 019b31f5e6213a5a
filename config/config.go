// Package config loads YAML scene descriptions and applies them to a scene
// and its film.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/achilleasa/filmpass/film"
	"github.com/achilleasa/filmpass/kernel"
	"github.com/achilleasa/filmpass/log"
	"github.com/achilleasa/filmpass/pass"
	"github.com/achilleasa/filmpass/scene"
	"gopkg.in/yaml.v2"
)

var (
	ErrUnknownPassType    = errors.New("config: unknown pass type")
	ErrUnknownFilter      = errors.New("config: unknown filter type")
	ErrUnknownMotion      = errors.New("config: unknown motion type")
	ErrUnknownCryptomatte = errors.New("config: unknown cryptomatte type")
	ErrDuplicateAOV       = errors.New("config: duplicate AOV name")
)

var logger = log.New("config")

type Filter struct {
	Type  string  `yaml:"type"`
	Width float32 `yaml:"width"`
}

type Mist struct {
	Start   float32 `yaml:"start"`
	Depth   float32 `yaml:"depth"`
	Falloff float32 `yaml:"falloff"`
}

type Cryptomatte struct {
	// Any of object, material, asset and accurate.
	Passes []string `yaml:"passes,flow"`

	// Number of ids stored per pixel. Each layer holds two.
	Depth int `yaml:"depth"`
}

type Film struct {
	Exposure                 float32     `yaml:"exposure"`
	PassAlphaThreshold       float32     `yaml:"pass_alpha_threshold"`
	Filter                   Filter      `yaml:"filter"`
	Mist                     Mist        `yaml:"mist"`
	DisplayPass              string      `yaml:"display_pass"`
	Cryptomatte              Cryptomatte `yaml:"cryptomatte"`
	ApproximateShadowCatcher bool        `yaml:"approximate_shadow_catcher"`
	ShowActivePixels         bool        `yaml:"show_active_pixels"`
}

type Denoise struct {
	Enabled bool `yaml:"enabled"`
	Normal  bool `yaml:"normal"`
	Albedo  bool `yaml:"albedo"`
}

type Integrator struct {
	Denoise          Denoise `yaml:"denoise"`
	AdaptiveSampling bool    `yaml:"adaptive_sampling"`
}

type Background struct {
	Transparent bool `yaml:"transparent"`
}

// Pass is a user pass request.
type Pass struct {
	Type string `yaml:"type"`
	Name string `yaml:"name,omitempty"`

	IncludeAlbedo bool `yaml:"include_albedo,omitempty"`
}

// Scene is the root of a scene description file.
type Scene struct {
	Film          Film       `yaml:"film"`
	Integrator    Integrator `yaml:"integrator"`
	Background    Background `yaml:"background"`
	Baking        bool       `yaml:"baking"`
	ShadowCatcher bool       `yaml:"shadow_catcher"`
	Motion        string     `yaml:"motion"`
	LogLevel      string     `yaml:"log_level,omitempty"`
	Passes        []Pass     `yaml:"passes"`
}

// Default returns a description with the default film settings and a single
// combined pass.
func Default() *Scene {
	return &Scene{
		Film: Film{
			Exposure:    0.8,
			Filter:      Filter{Type: film.FilterBox.String(), Width: 1},
			Mist:        Mist{Start: 0, Depth: 100, Falloff: 1},
			DisplayPass: pass.Combined.String(),
		},
		Motion: scene.MotionNone.String(),
		Passes: []Pass{{Type: pass.Combined.String()}},
	}
}

// Parse decodes a scene description. Fields missing from data keep their
// default values.
func Parse(data []byte) (*Scene, error) {
	cfg := Default()
	cfg.Passes = nil
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: unable to parse scene description: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads and parses the scene description at path.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	logger.Infof("loaded scene description from %s (%d passes)", path, len(cfg.Passes))
	return cfg, nil
}

// Marshal encodes the description as YAML.
func (c *Scene) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// Validate checks every enumerated value in the description.
func (c *Scene) Validate() error {
	if _, ok := pass.ParseKind(c.Film.DisplayPass); !ok {
		return fmt.Errorf("%w %q for display pass", ErrUnknownPassType, c.Film.DisplayPass)
	}
	if _, ok := film.ParseFilterType(c.Film.Filter.Type); !ok {
		return fmt.Errorf("%w %q", ErrUnknownFilter, c.Film.Filter.Type)
	}
	if _, ok := scene.ParseMotion(c.Motion); !ok {
		return fmt.Errorf("%w %q", ErrUnknownMotion, c.Motion)
	}
	if _, err := c.cryptomatteTypes(); err != nil {
		return err
	}
	if c.Film.Cryptomatte.Depth < 0 {
		return fmt.Errorf("config: negative cryptomatte depth %d", c.Film.Cryptomatte.Depth)
	}
	if c.Film.Filter.Width <= 0 {
		return fmt.Errorf("config: filter width must be positive; got %f", c.Film.Filter.Width)
	}
	if c.LogLevel != "" {
		if _, err := log.ParseLevel(c.LogLevel); err != nil {
			return fmt.Errorf("config: %w", err)
		}
	}
	aovs := make(map[string]int)
	for index, p := range c.Passes {
		kind, ok := pass.ParseKind(p.Type)
		if !ok {
			return fmt.Errorf("%w %q for pass %d", ErrUnknownPassType, p.Type, index)
		}

		// AOVs are looked up by name alone.
		if (kind == pass.AOVColor || kind == pass.AOVValue) && p.Name != "" {
			if prev, dup := aovs[p.Name]; dup {
				return fmt.Errorf("%w %q for passes %d and %d", ErrDuplicateAOV, p.Name, prev, index)
			}
			aovs[p.Name] = index
		}
	}
	return nil
}

var cryptomatteNames = map[string]kernel.CryptomatteType{
	"object":   kernel.CryptObject,
	"material": kernel.CryptMaterial,
	"asset":    kernel.CryptAsset,
	"accurate": kernel.CryptAccurate,
}

func (c *Scene) cryptomatteTypes() (kernel.CryptomatteType, error) {
	var types kernel.CryptomatteType
	for _, name := range c.Film.Cryptomatte.Passes {
		t, ok := cryptomatteNames[name]
		if !ok {
			return kernel.CryptNone, fmt.Errorf("%w %q", ErrUnknownCryptomatte, name)
		}
		types |= t
	}
	return types, nil
}

// cryptomattePasses returns one named pass per cryptomatte layer of every
// enabled type.
func cryptomattePasses(types kernel.CryptomatteType, depth int) []*pass.Pass {
	layers := (depth + 1) / 2

	var out []*pass.Pass
	for _, entry := range []struct {
		t    kernel.CryptomatteType
		name string
	}{
		{kernel.CryptObject, "CryptoObject"},
		{kernel.CryptMaterial, "CryptoMaterial"},
		{kernel.CryptAsset, "CryptoAsset"},
	} {
		if types&entry.t == 0 {
			continue
		}
		for layer := 0; layer < layers; layer++ {
			out = append(out, pass.NewNamed(pass.Cryptomatte, fmt.Sprintf("%s%02d", entry.name, layer)))
		}
	}
	return out
}

// Apply configures s and f from the description. User passes and
// cryptomatte layers are appended to the scene and the film is tagged
// modified.
func (c *Scene) Apply(s *scene.Scene, f *film.Film) error {
	if err := c.Validate(); err != nil {
		return err
	}

	if c.LogLevel != "" {
		level, _ := log.ParseLevel(c.LogLevel)
		log.SetLevel(level)
	}

	displayPass, _ := pass.ParseKind(c.Film.DisplayPass)
	filterType, _ := film.ParseFilterType(c.Film.Filter.Type)
	motion, _ := scene.ParseMotion(c.Motion)
	cryptoTypes, _ := c.cryptomatteTypes()

	f.SetExposure(c.Film.Exposure)
	f.SetPassAlphaThreshold(c.Film.PassAlphaThreshold)
	f.SetFilterType(filterType)
	f.SetFilterWidth(c.Film.Filter.Width)
	f.SetMistStart(c.Film.Mist.Start)
	f.SetMistDepth(c.Film.Mist.Depth)
	f.SetMistFalloff(c.Film.Mist.Falloff)
	f.SetDisplayPass(displayPass)
	f.SetShowActivePixels(c.Film.ShowActivePixels)
	f.SetCryptomattePasses(cryptoTypes)
	f.SetCryptomatteDepth(c.Film.Cryptomatte.Depth)
	f.SetUseApproximateShadowCatcher(c.Film.ApproximateShadowCatcher)

	s.Integrator.SetUseDenoise(c.Integrator.Denoise.Enabled)
	s.Integrator.SetUseDenoisePassNormal(c.Integrator.Denoise.Normal)
	s.Integrator.SetUseDenoisePassAlbedo(c.Integrator.Denoise.Albedo)
	s.Integrator.SetUseAdaptiveSampling(c.Integrator.AdaptiveSampling)
	s.Background.SetTransparent(c.Background.Transparent)
	s.BakeManager.SetBaking(c.Baking)
	s.ObjectManager.SetShadowCatcher(c.ShadowCatcher)
	s.Motion = motion

	for _, p := range c.Passes {
		kind, _ := pass.ParseKind(p.Type)
		req := pass.NewNamed(kind, p.Name)
		req.IncludeAlbedo = p.IncludeAlbedo
		if err := s.AddPass(req); err != nil {
			return err
		}
	}
	for _, p := range cryptomattePasses(cryptoTypes, c.Film.Cryptomatte.Depth) {
		if err := s.AddPass(p); err != nil {
			return err
		}
	}

	f.TagModified()
	return nil
}
