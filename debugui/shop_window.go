package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/roguetris/session"
)

// ShopWindow lists the current offers with buy buttons and drives the
// victory/shop transitions.
type ShopWindow struct{}

func NewShopWindow() *ShopWindow {
	return &ShopWindow{}
}

func (sw *ShopWindow) Render(frame *Frame) {
	snap := frame.Snapshot
	if snap.Phase != session.PhaseVictory && snap.Phase != session.PhaseShop {
		return
	}

	imgui.SetNextWindowPosV(imgui.NewVec2(340, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(420, 260), imgui.CondOnce)
	if !imgui.BeginV("Shop", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	if snap.Phase == session.PhaseVictory {
		imgui.TextColored(imgui.NewVec4(1.0, 0.8, 0.0, 1.0), fmt.Sprintf("Round %d cleared with %d points", snap.Round+1, snap.Score))
		if imgui.Button("Open Shop") {
			frame.Commands.OpenShop()
		}
		imgui.End()
		return
	}

	imgui.Text(fmt.Sprintf("Currency: %d", snap.Currency))
	imgui.SameLine()
	if imgui.Button("Continue") {
		frame.Commands.CloseShop()
	}

	if len(snap.Shop) == 0 {
		imgui.Text("Sold out.")
		imgui.End()
		return
	}

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if imgui.BeginTableV("ShopTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Item")
		imgui.TableSetupColumn("Effect")
		imgui.TableSetupColumn("Cost")
		imgui.TableSetupColumn("")
		imgui.TableHeadersRow()

		for _, item := range snap.Shop {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			imgui.Text(item.Name)
			imgui.TableNextColumn()
			imgui.Text(payloadLabel(item.Payload))
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", item.Cost))
			imgui.TableNextColumn()
			if canBuy(snap, item) {
				if imgui.Button(fmt.Sprintf("Buy##%d", item.ID)) {
					frame.Commands.Purchase(item.ID)
				}
			} else {
				imgui.TextColored(imgui.NewVec4(0.6, 0.6, 0.6, 1.0), "Too expensive")
			}
		}

		imgui.EndTable()
	}

	imgui.End()
}
