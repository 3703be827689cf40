package display

// Renderer performs a full panel refresh with a new scene. Powering the
// panel up and down around the refresh is the implementation's concern.
type Renderer interface {
	Render(s Scene) error
	Close() error
}

// FakeRenderer records rendered scenes for test assertions.
type FakeRenderer struct {
	// Scenes contains every rendered scene in order.
	Scenes []Scene

	// RenderError, if set, will be returned by Render.
	RenderError error

	// Closed tracks if Close was called.
	Closed bool
}

// NewFakeRenderer creates a FakeRenderer.
func NewFakeRenderer() *FakeRenderer {
	return &FakeRenderer{}
}

// Render records the scene.
func (f *FakeRenderer) Render(s Scene) error {
	if f.RenderError != nil {
		return f.RenderError
	}
	f.Scenes = append(f.Scenes, s)
	return nil
}

// Close marks the renderer as closed.
func (f *FakeRenderer) Close() error {
	f.Closed = true
	return nil
}

var _ Renderer = (*FakeRenderer)(nil)
