package field

import "image/color"

// Surface is a 2D drawing target the size of the viewport.
//
// Begin clears the surface for a new frame and End presents it. Draw calls
// only happen between the two. Colours carry straight (non-premultiplied)
// alpha.
type Surface interface {
	// Acquire prepares the surface at the given size. It is called once per mount.
	Acquire(width, height int) error
	// Resize changes the surface size while mounted.
	Resize(width, height int) error
	// Begin starts a frame by clearing the surface. Returning ErrSurfaceLost
	// (or any error) stops the field.
	Begin() error
	FillCircle(x, y, radius float32, c color.NRGBA)
	StrokeCircle(x, y, radius, width float32, c color.NRGBA)
	End()
	// Release frees the surface. It is called once per unmount.
	Release()
}

// PhaseRecorder receives per-frame timing marks.
type PhaseRecorder interface {
	StartTick()
	StartPhase(name string)
	EndTick()
}

type noopRecorder struct{}

func (noopRecorder) StartTick()        {}
func (noopRecorder) StartPhase(string) {}
func (noopRecorder) EndTick()          {}
