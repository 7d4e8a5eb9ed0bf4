// Package camera builds cameras from descriptors and frames them around
// arbitrary bounding boxes for orthographic or perspective projection.
package camera

import (
	"github.com/ungerik/go3d/float64/vec3"
)

// Kind selects the projection model. Switches over Kind are exhaustive.
type Kind int

const (
	// Orthographic projects without perspective foreshortening.
	Orthographic Kind = iota
	// Perspective projects with a vertical field of view.
	Perspective
)

// Config is the camera descriptor supplied by the scene configuration.
type Config struct {
	// Kind selects orthographic or perspective projection.
	Kind Kind

	// FOV is the vertical field of view in radians (perspective only).
	// Zero means the default of about 45 degrees.
	FOV float64

	// Direction is the unit vector from the framed object's center toward
	// the camera. The zero vector means straight along +Z.
	Direction vec3.T

	// Aspect is the viewport width/height ratio. Zero means square.
	Aspect float64
}

// Camera holds a resolved camera: position, orientation target, and the
// projection parameters for its Kind.
type Camera struct {
	Kind     Kind
	Position vec3.T
	Target   vec3.T

	// Orthographic frustum.
	Left, Right, Top, Bottom float64

	// Perspective parameters.
	FOV    float64
	Aspect float64

	Near, Far float64
}

const defaultFOV = 0.7853981633974483 // 45 degrees

// New builds a camera from its descriptor. The camera is positioned at the
// origin until it is fitted to an object.
func New(cfg Config) *Camera {
	cam := &Camera{
		Kind:   cfg.Kind,
		Aspect: cfg.Aspect,
		Near:   0.1,
		Far:    2000,
	}
	if cam.Aspect <= 0 {
		cam.Aspect = 1
	}

	switch cfg.Kind {
	case Orthographic:
		cam.Top, cam.Bottom = 1, -1
		cam.Right, cam.Left = cam.Aspect, -cam.Aspect
	case Perspective:
		cam.FOV = cfg.FOV
		if cam.FOV <= 0 {
			cam.FOV = defaultFOV
		}
	}
	return cam
}

// direction resolves a configured direction vector to a usable unit
// vector, defaulting to +Z.
func direction(d vec3.T) vec3.T {
	if d.LengthSqr() == 0 {
		return vec3.T{0, 0, 1}
	}
	return d.Normalized()
}
