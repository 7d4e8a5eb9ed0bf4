package scene3d

import (
	"errors"
	"fmt"
)

// Sentinel errors for scene composition.
var (
	// ErrComposerDisposed is returned when Build or Update is called on
	// a disposed composer. Dispose is terminal.
	ErrComposerDisposed = errors.New("scene3d: composer is disposed")

	// ErrNotBuilt is returned when Update or rendering is requested
	// before the first Build.
	ErrNotBuilt = errors.New("scene3d: scene has not been built")

	// ErrNoBackend is returned when rendering is requested but no
	// backend was configured.
	ErrNoBackend = errors.New("scene3d: no rendering backend configured")

	// ErrStaleGeneration is returned when an asynchronous geometry
	// result arrives after the composer moved on to a newer generation;
	// the result is discarded rather than applied.
	ErrStaleGeneration = errors.New("scene3d: geometry result superseded")

	// ErrNoValidShapes is wrapped into a GeometryError when a non-empty
	// run yields zero usable shapes.
	ErrNoValidShapes = errors.New("scene3d: no valid shapes for non-empty text")
)

// GeometryError reports a geometry-generation failure scoped to a single
// run. Other runs are unaffected.
type GeometryError struct {
	Run  int // index into SceneConfig.Runs
	Text string
	Err  error
}

func (e *GeometryError) Error() string {
	return fmt.Sprintf("scene3d: run %d geometry generation failed: %v", e.Run, e.Err)
}

func (e *GeometryError) Unwrap() error { return e.Err }

// PartialRenderError reports that some runs failed geometry generation
// while the rest of the scene was still built and renders.
type PartialRenderError struct {
	// Failed holds the indices of the failed runs, ascending.
	Failed []int

	// Errs holds the per-run errors, parallel to Failed.
	Errs []error
}

func (e *PartialRenderError) Error() string {
	return fmt.Sprintf("scene3d: %d run(s) failed geometry generation: %v", len(e.Failed), e.Failed)
}

// Unwrap exposes the per-run errors to errors.Is and errors.As.
func (e *PartialRenderError) Unwrap() []error { return e.Errs }

// collectPartial folds per-run errors into a PartialRenderError, or nil
// when every run succeeded.
func collectPartial(errs []error) *PartialRenderError {
	var p *PartialRenderError
	for i, err := range errs {
		if err == nil {
			continue
		}
		if p == nil {
			p = &PartialRenderError{}
		}
		p.Failed = append(p.Failed, i)
		p.Errs = append(p.Errs, err)
	}
	return p
}
