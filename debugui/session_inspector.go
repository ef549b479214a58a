package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/roguetris/piece"
)

// SessionInspector shows the session counters, the piece queue and the active
// effects, and offers restart and next-piece overrides.
type SessionInspector struct {
	showBoard bool
}

func NewSessionInspector() *SessionInspector {
	return &SessionInspector{}
}

func (si *SessionInspector) Render(frame *Frame) {
	snap := frame.Snapshot

	imgui.SetNextWindowPosV(imgui.NewVec2(10, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(320, 420), imgui.CondOnce)
	if !imgui.BeginV("Session", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	c := phaseColor(snap.Phase)
	imgui.TextColored(imgui.NewVec4(c[0], c[1], c[2], c[3]), snap.Phase.String())
	imgui.SameLine()
	if imgui.Button("Restart") {
		frame.Commands.Restart()
	}

	imgui.Text(fmt.Sprintf("Round: %d", snap.Round))
	imgui.ProgressBarV(progress(snap), imgui.NewVec2(-1, 0), fmt.Sprintf("%d / %d", snap.Score, snap.Target))
	imgui.Text(fmt.Sprintf("Currency: %d", snap.Currency))
	imgui.Text(fmt.Sprintf("Lines: %d", snap.Lines))
	imgui.Text(fmt.Sprintf("Time: %.1fs (fall every %.2fs)", snap.Elapsed, snap.FallInterval))

	imgui.Separator()
	if p := snap.Current; p != nil {
		imgui.Text(fmt.Sprintf("Current: %s #%d at (%d, %d) rot %d", p.Shape, p.ID, p.Anchor.X, p.Anchor.Y, p.Rotation))
	} else {
		imgui.Text("Current: none")
	}
	if snap.Next != nil {
		imgui.Text(fmt.Sprintf("Next: %s", snap.Next.Shape))
	}

	if imgui.TreeNodeStr("Force Next Piece") {
		for i, shape := range piece.Shapes {
			if i > 0 {
				imgui.SameLine()
			}
			if imgui.Button(shape.String()) {
				frame.Commands.SetNext(shape)
			}
		}
		imgui.TreePop()
	}

	imgui.Separator()
	imgui.Text(fmt.Sprintf("Active Effects: %d", len(snap.Effects)))
	for _, e := range snap.Effects {
		imgui.ProgressBarV(effectFraction(e), imgui.NewVec2(-1, 0), fmt.Sprintf("%s (%.1fs)", e.Describe(), e.Remaining))
	}

	imgui.Separator()
	imgui.Checkbox("Board dump", &si.showBoard)
	if si.showBoard {
		imgui.Text(snap.String())
	}

	imgui.End()
}

