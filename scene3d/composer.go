package scene3d

import (
	"context"
	"image"
	"sync/atomic"

	"github.com/gogpu/text3d"
	"github.com/gogpu/text3d/camera"
	"github.com/gogpu/text3d/internal/parallel"
	"github.com/gogpu/text3d/outline"
	"github.com/gogpu/text3d/render"
)

// State tracks the composer lifecycle: Uninitialized -> Built ->
// (updated any number of times) -> Disposed. Disposed is terminal.
type State int

const (
	StateUninitialized State = iota
	StateBuilt
	StateDisposed
)

// Composer owns the full 3D text scene: the run meshes, the centered text
// group, the lighting rig, the fitted camera, and the pooled rendering
// context.
//
// Build, Update, and Dispose form a single-writer sequence: callers must
// not invoke them concurrently on one composer. Each Update or Dispose
// bumps an internal generation counter so that geometry built for a
// superseded configuration is detected and discarded rather than applied.
type Composer struct {
	assembler Assembler
	backend   Backend

	pool *render.ContextPool
	gpu  *render.Context

	config SceneConfig
	target *render.Target

	root   *Node
	group  *Node
	lights []*Node
	cam    *camera.Camera

	generation atomic.Uint64
	state      State
}

// Option configures a Composer.
type Option func(*Composer)

// WithBackend attaches a rendering backend for Render and Image.
func WithBackend(b Backend) Option {
	return func(c *Composer) { c.backend = b }
}

// WithEffects attaches a post-effect applier.
func WithEffects(a EffectApplier) Option {
	return func(c *Composer) { c.assembler.Effects = a }
}

// WithPixelScale overrides the default pixel-to-scene-unit factor.
func WithPixelScale(s float64) Option {
	return func(c *Composer) { c.assembler.Scale = s }
}

// NewComposer acquires a rendering context from the pool and prepares an
// empty scene. The host bounds the number of live contexts; when the pool
// is exhausted the acquisition error (render.ErrContextUnavailable)
// propagates as a construction failure. There is no CPU fallback.
func NewComposer(pool *render.ContextPool, provider outline.Provider, opts ...Option) (*Composer, error) {
	gpu, err := pool.Acquire()
	if err != nil {
		return nil, err
	}

	c := &Composer{
		assembler: Assembler{Provider: provider},
		pool:      pool,
		gpu:       gpu,
		root:      NewGroup("scene"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Build composes the scene from scratch: every run's mesh is built
// concurrently, joined, added to a group that is then centered at the X/Y
// origin, lighting is wired, and the camera is fitted to the group.
//
// Per-run failures do not abort the build: the surviving runs still
// render and the failures are reported together as a *PartialRenderError.
func (c *Composer) Build(ctx context.Context, cfg SceneConfig) error {
	if c.state == StateDisposed {
		return ErrComposerDisposed
	}

	gen := c.generation.Load()
	target := render.NewTarget(cfg.Width, cfg.Height, cfg.PixelRatio)

	group, perr, stale := c.buildGroup(ctx, cfg, gen)
	if stale {
		return ErrStaleGeneration
	}

	// Rebuild-and-swap: assemble the new scene fully before committing
	// anything, so a superseded build leaves the composer untouched.
	root := NewGroup("scene")
	root.Add(group)
	lights := c.buildLights(cfg.Scene3D)
	root.Add(lights...)
	cam := c.buildCamera(cfg.Scene3D, target)
	c.fitCamera(cam, group, cfg.Scene3D)

	// A rebuild frees the previous scene's buffers.
	if c.group != nil {
		c.group.ReleaseGeometry()
	}

	c.config = cfg
	c.target = target
	c.root = root
	c.group = group
	c.lights = lights
	c.cam = cam
	c.state = StateBuilt

	text3d.Logger().Info("scene3d: scene built",
		"runs", len(cfg.Runs), "failed", failedCount(perr))
	if perr != nil {
		return perr
	}
	return nil
}

// Update merges a partial configuration into the current one and applies
// the minimal rebuild:
//
//   - size/pixelRatio: resize the target and rebuild the camera
//   - runs/shape3d/warp: discard the old group and buffers, rebuild
//   - lighting: replace all light nodes from the new rig descriptor
//   - camera config: rebuild the camera
//
// Any geometry rebuild is followed by a camera refit. The generation
// counter is bumped first, so geometry still in flight for the previous
// configuration is discarded.
func (c *Composer) Update(ctx context.Context, patch ScenePatch) error {
	switch c.state {
	case StateDisposed:
		return ErrComposerDisposed
	case StateUninitialized:
		return ErrNotBuilt
	}

	gen := c.generation.Add(1)

	next := c.config
	geomChanged := false
	lightChanged := false
	camChanged := false

	if patch.Runs != nil {
		next.Runs = patch.Runs
		geomChanged = true
	}
	if patch.Shape3D != nil {
		next.Shape3D = patch.Shape3D
		geomChanged = true
	}
	if patch.TextWarp != nil {
		next.TextWarp = patch.TextWarp
		geomChanged = true
	}
	if patch.Scene3D != nil {
		old := c.config.Scene3D
		if old == nil || old.LightRig != patch.Scene3D.LightRig {
			lightChanged = true
		}
		if old == nil || old.Camera != patch.Scene3D.Camera {
			camChanged = true
		}
		next.Scene3D = patch.Scene3D

		// A flat-text Z change alone must reposition the current group;
		// it is reapplied by buildGroup on a geometry rebuild.
		if patch.Scene3D.FlatTextZ != nil && !geomChanged {
			c.group.Position[2] = *patch.Scene3D.FlatTextZ
		}
	}
	if patch.Size != nil {
		next.Width = patch.Size.Width
		next.Height = patch.Size.Height
		next.PixelRatio = patch.Size.PixelRatio
		c.target.Resize(patch.Size.Width, patch.Size.Height, patch.Size.PixelRatio)
		camChanged = true
	}

	var perr *PartialRenderError
	if geomChanged {
		group, p, stale := c.buildGroup(ctx, next, gen)
		if stale {
			return ErrStaleGeneration
		}
		perr = p

		old := c.group
		c.root.Remove(old)
		old.ReleaseGeometry()
		c.group = group
		c.root.Add(group)
	}

	if lightChanged {
		for _, l := range c.lights {
			c.root.Remove(l)
		}
		c.lights = c.buildLights(next.Scene3D)
		c.root.Add(c.lights...)
	}

	if camChanged {
		c.cam = c.buildCamera(next.Scene3D, c.target)
	}
	if geomChanged || camChanged {
		c.fitCamera(c.cam, c.group, next.Scene3D)
	}

	c.config = next
	if perr != nil {
		return perr
	}
	return nil
}

// Dispose tears the scene down: all mesh buffers are freed and the pooled
// rendering context is released. Dispose is idempotent and terminal;
// subsequent Build/Update calls fail with ErrComposerDisposed.
func (c *Composer) Dispose() {
	if c.state == StateDisposed {
		return
	}
	c.generation.Add(1)

	if c.group != nil {
		c.root.Remove(c.group)
		c.group.ReleaseGeometry()
		c.group = nil
	}
	for _, l := range c.lights {
		c.root.Remove(l)
	}
	c.lights = nil
	c.gpu.Release()
	c.state = StateDisposed

	text3d.Logger().Info("scene3d: composer disposed")
}

// Render draws the current scene through the configured backend.
func (c *Composer) Render() error {
	switch {
	case c.state == StateDisposed:
		return ErrComposerDisposed
	case c.state == StateUninitialized:
		return ErrNotBuilt
	case c.backend == nil:
		return ErrNoBackend
	}
	return c.backend.Render(c.root, c.cam, c.target)
}

// Image renders and reads back the current frame.
func (c *Composer) Image() (image.Image, error) {
	if err := c.Render(); err != nil {
		return nil, err
	}
	return c.backend.ToImage()
}

// Group returns the centered text group node.
func (c *Composer) Group() *Node { return c.group }

// Root returns the scene root node.
func (c *Composer) Root() *Node { return c.root }

// Camera returns the current camera.
func (c *Composer) Camera() *camera.Camera { return c.cam }

// Target returns the current render target.
func (c *Composer) Target() *render.Target { return c.target }

// State returns the lifecycle state.
func (c *Composer) State() State { return c.state }

// Generation returns the current generation counter.
func (c *Composer) Generation() uint64 { return c.generation.Load() }

// buildGroup builds every run's mesh concurrently, joins at the barrier,
// and assembles the centered text group. It reports stale=true when the
// composer moved to a newer generation while geometry was in flight; the
// built nodes are released and must not be applied.
func (c *Composer) buildGroup(ctx context.Context, cfg SceneConfig, gen uint64) (group *Node, perr *PartialRenderError, stale bool) {
	nodes := make([]*Node, len(cfg.Runs))
	fontSize := maxFontSize(cfg.Runs)

	errs := parallel.ForEach(ctx, len(cfg.Runs), func(ctx context.Context, i int) error {
		node, err := c.assembler.BuildRun(ctx, cfg.Runs[i], cfg.Shape3D, cfg.TextWarp, fontSize)
		if err != nil {
			text3d.Logger().Warn("scene3d: run geometry failed",
				"run", i, "error", err)
			return &GeometryError{Run: i, Text: cfg.Runs[i].Text, Err: err}
		}
		nodes[i] = node
		return nil
	})

	if c.generation.Load() != gen {
		for _, n := range nodes {
			if n != nil {
				n.ReleaseGeometry()
			}
		}
		return nil, nil, true
	}

	group = NewGroup("text")
	for _, n := range nodes {
		if n != nil {
			group.Add(n)
		}
	}

	// Center the group's X/Y on the origin; Z is left untouched.
	if b := group.Bounds(); !b.IsEmpty() {
		center := b.Center()
		group.Position[0] -= center[0]
		group.Position[1] -= center[1]
	}
	if cfg.Scene3D != nil && cfg.Scene3D.FlatTextZ != nil {
		group.Position[2] = *cfg.Scene3D.FlatTextZ
	}

	return group, collectPartial(errs), false
}

func (c *Composer) buildLights(s3d *Scene3DConfig) []*Node {
	if s3d == nil {
		return nil
	}
	return BuildLights(s3d.LightRig)
}

func (c *Composer) buildCamera(s3d *Scene3DConfig, target *render.Target) *camera.Camera {
	cfg := camera.Config{}
	if s3d != nil {
		cfg = s3d.Camera
	}
	if cfg.Aspect <= 0 && target != nil {
		cfg.Aspect = target.Aspect()
	}
	return camera.New(cfg)
}

func (c *Composer) fitCamera(cam *camera.Camera, group *Node, s3d *Scene3DConfig) {
	dir := camera.Config{}.Direction
	if s3d != nil {
		dir = s3d.Camera.Direction
	}
	camera.Fit(cam, group.Bounds(), dir)
}

func failedCount(p *PartialRenderError) int {
	if p == nil {
		return 0
	}
	return len(p.Failed)
}
