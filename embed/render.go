package embed

import (
	"sync"

	"github.com/xiaot623/embeddemo/domain"
)

// Renderer tracks the render surface:
// idle -> loading -> success | error, with every new generation going
// back through loading.
type Renderer struct {
	mu    sync.Mutex
	state domain.RenderState
}

// NewRenderer creates a renderer in the idle state.
func NewRenderer() *Renderer {
	return &Renderer{
		state: domain.RenderState{Status: domain.RenderStatusIdle},
	}
}

// Begin moves to loading and drops any previous result.
func (r *Renderer) Begin() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state = domain.RenderState{Status: domain.RenderStatusLoading}
}

// Succeed shows url and mounts it as a frame when mount is set.
func (r *Renderer) Succeed(url string, mount bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state = domain.RenderState{Status: domain.RenderStatusSuccess, URL: url}
	if mount {
		r.state.Frame = &domain.Frame{Src: url}
	}
}

// Fail shows message in place of any result.
func (r *Renderer) Fail(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state = domain.RenderState{Status: domain.RenderStatusError, Message: message}
}

// FrameFailed records a load failure on the mounted frame. The URL text is
// kept. It returns false when no frame is mounted.
func (r *Renderer) FrameFailed(message string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state.Frame == nil {
		return false
	}
	r.state.Frame.LoadError = message
	return true
}

// FrameLoaded clears a previous frame load failure.
func (r *Renderer) FrameLoaded() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state.Frame != nil {
		r.state.Frame.LoadError = ""
	}
}

// State returns a copy of the current state.
func (r *Renderer) State() domain.RenderState {
	r.mu.Lock()
	defer r.mu.Unlock()
	st := r.state
	if st.Frame != nil {
		frame := *st.Frame
		st.Frame = &frame
	}
	return st
}
