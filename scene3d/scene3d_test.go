package scene3d

import (
	"context"
	"image"
	"sync"
	"sync/atomic"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/text3d"
	"github.com/gogpu/text3d/camera"
	"github.com/gogpu/text3d/contour"
	"github.com/gogpu/text3d/material"
	"github.com/gogpu/text3d/outline"
	"github.com/gogpu/text3d/render"
	"github.com/gogpu/text3d/solid"
)

// Shared fakes for the scene3d tests: a GPU device provider, an outline
// provider with scriptable failures, a recording backend, and a recording
// effect applier.

type mockDevice struct{}

func (m *mockDevice) Poll(wait bool) {}
func (m *mockDevice) Destroy()       {}

type mockQueue struct{}

type mockAdapter struct{}

type mockGPUProvider struct{}

func (m *mockGPUProvider) Device() gpucontext.Device   { return &mockDevice{} }
func (m *mockGPUProvider) Queue() gpucontext.Queue     { return &mockQueue{} }
func (m *mockGPUProvider) Adapter() gpucontext.Adapter { return &mockAdapter{} }
func (m *mockGPUProvider) SurfaceFormat() gputypes.TextureFormat {
	return gputypes.TextureFormatRGBA8Unorm
}

func (m *mockGPUProvider) AdapterInfo() gpucontext.AdapterInfo {
	return gpucontext.AdapterInfo{}
}

func newTestPool(capacity int) *render.ContextPool {
	return render.NewContextPool(&mockGPUProvider{}, capacity)
}

func testSquare(x, y, size float64) []text3d.Point {
	return []text3d.Point{
		text3d.Pt(x, y),
		text3d.Pt(x+size, y),
		text3d.Pt(x+size, y+size),
		text3d.Pt(x, y+size),
	}
}

// stubProvider lays out every run as a single 10x10 square, or fails for
// texts registered in fail.
type stubProvider struct {
	fail map[string]error

	mu    sync.Mutex
	calls []string
}

func (p *stubProvider) LayoutText(_ context.Context, text string, _ text3d.FontSpec, _ outline.LayoutOptions) ([]contour.Shape, error) {
	p.mu.Lock()
	p.calls = append(p.calls, text)
	p.mu.Unlock()

	if err, ok := p.fail[text]; ok {
		return nil, err
	}
	return []contour.Shape{{Outer: testSquare(0, 0, 10)}}, nil
}

// stubBackend records render calls and returns a fixed image.
type stubBackend struct {
	renders int
	root    *Node
	cam     *camera.Camera
	target  *render.Target
	err     error
}

func (b *stubBackend) Render(root *Node, cam *camera.Camera, target *render.Target) error {
	if b.err != nil {
		return b.err
	}
	b.renders++
	b.root = root
	b.cam = cam
	b.target = target
	return nil
}

func (b *stubBackend) ToImage() (image.Image, error) {
	return image.NewRGBA(image.Rect(0, 0, 1, 1)), nil
}

// supersedingProvider lays out squares like stubProvider, but once armed
// it bumps the composer's generation from inside LayoutText, simulating a
// Dispose or Update racing an in-flight build.
type supersedingProvider struct {
	c     *Composer
	armed atomic.Bool
}

func (p *supersedingProvider) LayoutText(_ context.Context, _ string, _ text3d.FontSpec, _ outline.LayoutOptions) ([]contour.Shape, error) {
	if p.armed.CompareAndSwap(true, false) {
		p.c.generation.Add(1)
	}
	return []contour.Shape{{Outer: testSquare(0, 0, 10)}}, nil
}

// capturingApplier keeps the geometries handed to the effect stages so a
// test can check whether they were released afterwards.
type capturingApplier struct {
	mu    sync.Mutex
	geoms []*solid.Geometry
}

func (a *capturingApplier) Apply(_ EffectStage, _, _ *Node, geom *solid.Geometry, _ *material.Material, _ *EffectConfig, _ ShapeContext) error {
	a.mu.Lock()
	a.geoms = append(a.geoms, geom)
	a.mu.Unlock()
	return nil
}

// recordingApplier records the stage order, optionally failing at one stage.
type recordingApplier struct {
	stages []EffectStage
	failAt EffectStage
	err    error
}

func (a *recordingApplier) Apply(stage EffectStage, _, _ *Node, _ *solid.Geometry, _ *material.Material, _ *EffectConfig, _ ShapeContext) error {
	a.stages = append(a.stages, stage)
	if a.err != nil && stage == a.failAt {
		return a.err
	}
	return nil
}
