package main

import (
	"io"
	"runtime"
	"slices"
	"text/template"
	"time"

	"github.com/plus3/roguetris/session"
)

type Report struct {
	// Configuration
	Duration time.Duration
	Seed     uint64
	Width    int
	Height   int
	Tick     float64

	// Results
	Turns     int64
	Games     int
	Pieces    int
	Lines     int
	Points    int
	Earned    int
	Victories int
	Purchases int
	MaxRound  int
	BestScore int

	TotalTime      time.Duration
	TurnTime       Stats
	Scheduler      *session.SchedulerStats
	GCPauseMetrics bool
	MemStatsStart  runtime.MemStats
	MemStatsEnd    runtime.MemStats
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	P99     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	sorted := slices.Clone(s.Samples)
	slices.Sort(sorted)

	var total time.Duration
	for _, sample := range sorted {
		total += sample
	}
	s.Min = sorted[0]
	s.Max = sorted[len(sorted)-1]
	s.Avg = total / time.Duration(len(sorted))
	s.P99 = sorted[(len(sorted)-1)*99/100]
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Roguetris Bench Report

## Configuration
- **Run Duration:** {{.Duration}}
- **Seed:** {{.Seed}}
- **Board:** {{.Width}}x{{.Height}}
- **Tick:** {{printf "%.4f" .Tick}}s

## Gameplay
- **Turns:** {{.Turns}}
- **Games Finished:** {{.Games}}
- **Pieces Placed:** {{.Pieces}}
- **Lines Cleared:** {{.Lines}}
- **Points Scored:** {{.Points}}
- **Currency Earned:** {{.Earned}}
- **Rounds Won:** {{.Victories}}
- **Items Bought:** {{.Purchases}}
- **Furthest Round:** {{.MaxRound}}
- **Best Final Score:** {{.BestScore}}

## Performance Results
- **Total Test Time:** {{.TotalTime}}
- **Turn Time:**
  - **Avg:** {{.TurnTime.Avg}}
  - **P99:** {{.TurnTime.P99}}
  - **Min:** {{.TurnTime.Min}}
  - **Max:** {{.TurnTime.Max}}
{{with .Scheduler}}
## Tick Systems
| System | Runs | Avg | Min | Max |
|---|---|---|---|---|
{{range .Systems}}| {{.Name}} | {{.ExecutionCount}} | {{.AvgDuration}} | {{.MinDuration}} | {{.MaxDuration}} |
{{end}}{{end}}
## Memory Usage (Raw Bytes)
- Heap Alloc:     {{.MemStatsStart.HeapAlloc}} (start) -> {{.MemStatsEnd.HeapAlloc}} (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}
- Total Alloc:    {{.MemStatsStart.TotalAlloc}} (start) -> {{.MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{.MemStatsEnd.PauseTotalNs | ns}}
{{end}}`

	fm := template.FuncMap{
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
		"ns": func(ns uint64) string {
			return time.Duration(ns).String()
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
