package loader

import (
	"errors"

	"github.com/Carmen-Shannon/oxy-viewer/engine/bounds"
	"github.com/Carmen-Shannon/oxy-viewer/engine/light"
	"github.com/Carmen-Shannon/oxy-viewer/engine/model"
)

var (
	// ErrNoScenes is returned when an asset parses but defines no scene to show.
	ErrNoScenes = errors.New("glTF file contains no scenes")

	// ErrUnsupportedFormat is returned when a file is neither glTF JSON nor GLB.
	ErrUnsupportedFormat = errors.New("unsupported asset format")
)

// Asset is everything the viewer takes from a loaded glTF file.
type Asset struct {
	// Path is the file the asset was read from.
	Path string

	// Name is the default scene's name, or Path when unnamed.
	Name string

	// Scenes holds every scene of the document in declaration order.
	Scenes []Scene

	// Animations lists the clips defined by the document.
	Animations []model.AnimationClip
}

// Scene is one flattened glTF scene: its mesh instances with world transforms and its lights.
type Scene struct {
	Name string

	// Instances holds one model per mesh primitive reachable from the scene roots.
	Instances []model.Model

	// Lights holds the scene's KHR_lights_punctual lights placed in world space.
	Lights []light.Light
}

// FirstScene returns the scene the viewer spawns.
//
// Returns:
//   - *Scene: the first scene of the document
//   - error: ErrNoScenes if the document has none
func (a *Asset) FirstScene() (*Scene, error) {
	if a == nil || len(a.Scenes) == 0 {
		return nil, ErrNoScenes
	}
	return &a.Scenes[0], nil
}

// HasLight reports whether the scene brings a directional or point light of its own.
// Spot lights alone do not count.
//
// Returns:
//   - bool: true when a directional or point light is present
func (s *Scene) HasLight() bool {
	for _, l := range s.Lights {
		if l.Type() == light.LightTypeDirectional || l.Type() == light.LightTypePoint {
			return true
		}
	}
	return false
}

// MeshBounds returns the bounds input of every instance.
//
// Returns:
//   - []bounds.MeshBounds: one entry per instance
func (s *Scene) MeshBounds() []bounds.MeshBounds {
	out := make([]bounds.MeshBounds, len(s.Instances))
	for i, inst := range s.Instances {
		out[i] = inst.MeshBounds()
	}
	return out
}
