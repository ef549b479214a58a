package main

import (
	"time"

	"github.com/plus3/roguetris/session"
)

// Runner drives one session with a Bot, one turn per Step.
type Runner struct {
	session  *session.Session
	commands *session.Commands
	bot      Bot
	tick     float64
	report   *Report
}

// NewRunner returns a runner that advances s by tick seconds every playing
// turn and records into report.
func NewRunner(s *session.Session, tick float64, report *Report) *Runner {
	return &Runner{
		session:  s,
		commands: session.NewCommands(),
		tick:     tick,
		report:   report,
	}
}

// Step queues the bot's commands for the current phase and flushes them.
func (r *Runner) Step() {
	snap := r.session.Snapshot()

	switch snap.Phase {
	case session.PhasePlaying:
		if plan, ok := r.bot.Choose(&snap); ok {
			r.bot.Queue(plan, r.commands)
		}
		r.commands.Advance(r.tick)

	case session.PhaseVictory:
		r.report.Victories++
		if snap.Round+1 > r.report.MaxRound {
			r.report.MaxRound = snap.Round + 1
		}
		r.commands.OpenShop()

	case session.PhaseShop:
		r.report.Purchases += len(r.bot.Shop(&snap, r.commands))
		r.commands.CloseShop()

	case session.PhaseGameOver:
		r.report.Games++
		if snap.Score > r.report.BestScore {
			r.report.BestScore = snap.Score
		}
		r.commands.Restart()
	}

	start := time.Now()
	results := r.commands.Flush(r.session)
	r.report.TurnTime.Samples = append(r.report.TurnTime.Samples, time.Since(start))
	r.report.Turns++

	for _, res := range results {
		switch res.Outcome {
		case session.Locked, session.Cleared, session.Victory, session.GameOver:
			r.report.Pieces++
		}
		r.report.Lines += res.Lines
		r.report.Points += res.ScoreDelta
		r.report.Earned += res.CurrencyDelta
	}
}
