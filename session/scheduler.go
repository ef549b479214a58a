package session

import (
	"reflect"
	"time"
)

// System is one step of a session tick. Systems run in registration order and
// may queue follow-up commands on the frame; the scheduler flushes them once
// every system has run.
type System interface {
	Execute(frame *Frame)
}

// Frame carries one tick's inputs to the systems.
type Frame struct {
	DeltaTime float64
	Session   *Session
	Commands  *Commands
}

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	SystemCount     int
	TotalExecutions int64
	Systems         []SystemStats
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type systemStatsInternal struct {
	name           string
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

// Scheduler runs the tick systems of a single session. Durations are measured
// for diagnostics only and never feed back into the simulation.
type Scheduler struct {
	session     *Session
	systems     []System
	systemStats []*systemStatsInternal
	commands    *Commands
}

// NewScheduler creates an empty scheduler bound to s.
func NewScheduler(s *Session) *Scheduler {
	return &Scheduler{
		session:  s,
		commands: NewCommands(),
	}
}

// Register appends a system.
func (s *Scheduler) Register(system System) {
	s.systems = append(s.systems, system)

	systemType := reflect.TypeOf(system)
	if systemType.Kind() == reflect.Ptr {
		systemType = systemType.Elem()
	}

	s.systemStats = append(s.systemStats, &systemStatsInternal{
		name:        systemType.Name(),
		minDuration: time.Duration(1<<63 - 1),
	})
}

// Once executes every system with dt and then flushes the commands they
// queued. It returns the results of those commands in queue order.
func (s *Scheduler) Once(dt float64) []Result {
	frame := &Frame{
		DeltaTime: dt,
		Session:   s.session,
		Commands:  s.commands,
	}

	for i, system := range s.systems {
		start := time.Now()
		system.Execute(frame)
		duration := time.Since(start)

		stats := s.systemStats[i]
		stats.executionCount++
		stats.lastDuration = duration
		stats.totalDuration += duration
		stats.minDuration = min(stats.minDuration, duration)
		stats.maxDuration = max(stats.maxDuration, duration)
	}

	return s.commands.Flush(s.session)
}

// Stats returns statistics about system execution.
func (s *Scheduler) Stats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount: len(s.systems),
		Systems:     make([]SystemStats, len(s.systemStats)),
	}

	for i, internal := range s.systemStats {
		avg := time.Duration(0)
		minDuration := internal.minDuration
		if internal.executionCount > 0 {
			avg = internal.totalDuration / time.Duration(internal.executionCount)
		} else {
			minDuration = 0
		}

		stats.Systems[i] = SystemStats{
			Name:           internal.name,
			ExecutionCount: internal.executionCount,
			MinDuration:    minDuration,
			MaxDuration:    internal.maxDuration,
			AvgDuration:    avg,
			LastDuration:   internal.lastDuration,
			TotalDuration:  internal.totalDuration,
		}
		stats.TotalExecutions += internal.executionCount
	}

	return stats
}

// ClockSystem accumulates elapsed play time.
type ClockSystem struct{}

func (ClockSystem) Execute(frame *Frame) {
	frame.Session.elapsed += frame.DeltaTime
}

// EffectSystem ages the active effects.
type EffectSystem struct{}

func (EffectSystem) Execute(frame *Frame) {
	frame.Session.UpdateEffects(frame.DeltaTime)
}

// GravitySystem drives auto-fall. The timer resets when a drop fires, not on
// every tick, and at most one drop happens per tick.
type GravitySystem struct{}

func (GravitySystem) Execute(frame *Frame) {
	s := frame.Session
	s.fallTimer += frame.DeltaTime
	if s.fallTimer >= s.FallInterval() {
		frame.Commands.SoftDrop()
	}
}
