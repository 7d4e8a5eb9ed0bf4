package scene3d

import (
	"github.com/ungerik/go3d/float64/vec3"

	"github.com/gogpu/text3d"
)

// LightKind distinguishes light node behaviors.
type LightKind int

const (
	// LightAmbient contributes uniform base illumination.
	LightAmbient LightKind = iota
	// LightDirectional illuminates along a direction from infinity.
	LightDirectional
)

// Light is the light payload of a light node.
type Light struct {
	Kind      LightKind
	Direction vec3.T
	Intensity float64
	Color     text3d.RGBA
}

// BuildLights creates the light nodes for a rig descriptor. The returned
// nodes are fresh; lighting updates replace them wholesale rather than
// mutating existing nodes.
func BuildLights(cfg LightRigConfig) []*Node {
	dir := cfg.Direction
	if dir.LengthSqr() == 0 {
		dir = vec3.T{-0.3, -0.5, -1}
	}
	dir = dir.Normalized()

	directional := func(name string, d vec3.T, intensity float64) *Node {
		n := NewGroup(name)
		n.Light = &Light{
			Kind:      LightDirectional,
			Direction: d.Normalized(),
			Intensity: intensity,
			Color:     text3d.White,
		}
		return n
	}
	ambient := func(intensity float64) *Node {
		n := NewGroup("ambient")
		n.Light = &Light{Kind: LightAmbient, Intensity: intensity, Color: text3d.White}
		return n
	}

	// Secondary directions are derived from the primary by mirroring,
	// which keeps the rig stable under any configured direction.
	opposite := dir.Scaled(-1)
	side := vec3.T{-dir[0], dir[1], dir[2]}

	switch cfg.Preset {
	case RigFlat:
		return []*Node{
			ambient(0.8),
			directional("key", dir, 0.4),
		}
	case RigHarsh:
		return []*Node{
			ambient(0.15),
			directional("key", dir, 1.2),
		}
	case RigSoft:
		return []*Node{
			ambient(0.5),
			directional("key", dir, 0.5),
			directional("fill", side, 0.35),
		}
	default: // RigThreePoint
		return []*Node{
			ambient(0.3),
			directional("key", dir, 0.9),
			directional("fill", side, 0.45),
			directional("back", opposite, 0.3),
		}
	}
}
