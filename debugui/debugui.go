// Package debugui provides Dear ImGui inspector panels for a running session.
// Panels only read the snapshot they are handed and queue commands; the host
// flushes those commands against the session after the frame.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/roguetris/session"
)

// Frame is everything a panel sees for one UI frame.
type Frame struct {
	Snapshot  *session.Snapshot
	Stats     *session.SchedulerStats
	Commands  *session.Commands
	DeltaTime float32
}

// Panel renders one ImGui window.
type Panel interface {
	Render(frame *Frame)
}

// InputState tracks whether ImGui is consuming mouse or keyboard input, so the
// host can skip its own bindings for that frame.
type InputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// UI renders a fixed set of panels.
type UI struct {
	Input  InputState
	panels []Panel
}

// New returns a UI with the given panels, or the standard set when none are
// passed.
func New(panels ...Panel) *UI {
	if len(panels) == 0 {
		panels = []Panel{
			NewSessionInspector(),
			NewShopWindow(),
			NewPerformanceStats(120),
		}
	}
	return &UI{panels: panels}
}

// Render updates the input capture state and draws every panel. It must run
// between the backend's BeginFrame and EndFrame.
func (ui *UI) Render(frame *Frame) {
	io := imgui.CurrentIO()
	ui.Input.WantCaptureMouse = io.WantCaptureMouse()
	ui.Input.WantCaptureKeyboard = io.WantCaptureKeyboard()

	for _, p := range ui.panels {
		p.Render(frame)
	}
}
