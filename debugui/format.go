package debugui

import (
	"fmt"

	"github.com/plus3/roguetris/effect"
	"github.com/plus3/roguetris/session"
	"github.com/plus3/roguetris/shop"
)

func phaseColor(p session.Phase) [4]float32 {
	switch p {
	case session.PhasePlaying:
		return [4]float32{0.0, 1.0, 0.0, 1.0}
	case session.PhaseVictory:
		return [4]float32{1.0, 0.8, 0.0, 1.0}
	case session.PhaseShop:
		return [4]float32{0.4, 0.7, 1.0, 1.0}
	case session.PhaseGameOver:
		return [4]float32{1.0, 0.3, 0.3, 1.0}
	}
	return [4]float32{0.7, 0.7, 0.7, 1.0}
}

// progress returns how far the round is towards its target, in [0,1].
func progress(snap *session.Snapshot) float32 {
	if snap.Target <= 0 {
		return 1
	}
	return min(max(float32(snap.Score)/float32(snap.Target), 0), 1)
}

// effectFraction returns the remaining share of an effect's duration.
func effectFraction(e effect.Effect) float32 {
	if !(e.Duration > 0) {
		return 0
	}
	return float32(e.Remaining / e.Duration)
}

func payloadLabel(p shop.Payload) string {
	switch p.Kind {
	case shop.GrantEffect:
		label := effect.New(p.Effect, p.Duration, p.Value).Describe()
		return fmt.Sprintf("%s for %.0fs", label, p.Duration)
	case shop.ScoreBonus:
		return fmt.Sprintf("+%.0f score", p.Value)
	case shop.CurrencyBonus:
		return fmt.Sprintf("+%.0f currency", p.Value)
	case shop.SlowFall:
		return fmt.Sprintf("fall x%.2f slower", p.Value)
	}
	return p.Kind.String()
}

func canBuy(snap *session.Snapshot, item shop.Item) bool {
	return snap.Phase == session.PhaseShop && snap.Currency >= item.Cost
}
