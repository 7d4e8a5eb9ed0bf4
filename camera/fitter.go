package camera

import (
	"math"

	"github.com/ungerik/go3d/float64/vec3"

	"github.com/gogpu/text3d/solid"
)

// minFitDim is the floor applied to the framed dimension so a single-point
// object never produces a zero or negative frustum.
const minFitDim = 1e-6

// Fit positions the camera and sizes its frustum so that the given
// bounding box fills the view.
//
// The framed dimension is max(width, height) of the box, floored to a
// small epsilon. Orthographic cameras get a view height of 1.2x that
// dimension (20% padding) at a distance of 2x; perspective cameras sit at
// 1.1x the exact trigonometric fit, trading a little margin for on-screen
// coverage. In both cases the camera is placed along dir from the box
// center and looks at the center.
func Fit(cam *Camera, bounds solid.Box3, dir vec3.T) {
	size := bounds.Size()
	center := bounds.Center()

	maxDim := math.Max(size[0], size[1])
	if maxDim < minFitDim {
		maxDim = minFitDim
	}

	d := direction(dir)
	var distance float64

	switch cam.Kind {
	case Orthographic:
		viewHeight := maxDim * 1.2
		cam.Top = viewHeight / 2
		cam.Bottom = -viewHeight / 2
		cam.Right = cam.Top * cam.Aspect
		cam.Left = -cam.Right
		distance = maxDim * 2

	case Perspective:
		fov := cam.FOV
		if fov <= 0 {
			fov = defaultFOV
		}
		baseDistance := maxDim / (2 * math.Tan(fov/2))
		distance = baseDistance * 1.1
	}

	offset := d.Scaled(distance)
	cam.Position = vec3.Add(&center, &offset)
	cam.Target = center
}
