package scene3d

import (
	"image"

	"github.com/gogpu/text3d/camera"
	"github.com/gogpu/text3d/render"
)

// Backend is the rendering boundary: it rasterizes a composed scene graph
// with a camera into the target, and can read the result back as an
// image. Concrete GPU rasterization and presentation live outside this
// module.
type Backend interface {
	// Render draws the scene rooted at root with the given camera.
	Render(root *Node, cam *camera.Camera, target *render.Target) error

	// ToImage reads back the last rendered frame.
	ToImage() (image.Image, error)
}
