package main

import (
	"fmt"
	"io"
	"runtime"
	"slices"
	"text/template"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/plus3/blockfall/tetris/systems"
)

type Report struct {
	// Configuration
	Duration  time.Duration
	Sessions  int
	InputRate float64

	// Results
	TotalUpdates   int64
	TotalTime      time.Duration
	UpdateTime     Stats
	Totals         systems.Counters
	Rows           []SessionRow
	Host           HostStats
	GCPauseMetrics bool
	MemStatsStart  runtime.MemStats
	MemStatsEnd    runtime.MemStats
}

type SessionRow struct {
	ID       string
	Updates  int64
	Counters systems.Counters
}

// Add folds a finished runner into the report.
func (r *Report) Add(runner *Runner) {
	c := runner.Counters()
	r.Rows = append(r.Rows, SessionRow{ID: runner.ID.String(), Updates: runner.Updates, Counters: c})

	r.TotalUpdates += runner.Updates
	r.UpdateTime.Samples = append(r.UpdateTime.Samples, runner.UpdateTime.Samples...)

	r.Totals.Frames += c.Frames
	r.Totals.Ticks += c.Ticks
	r.Totals.Commands += c.Commands
	r.Totals.PiecesLocked += c.PiecesLocked
	r.Totals.LinesCleared += c.LinesCleared
	r.Totals.GameOvers += c.GameOvers
	r.Totals.Restarts += c.Restarts
	r.Totals.CellsUpdated += c.CellsUpdated
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

	var total time.Duration
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]

	for _, sample := range s.Samples {
		if sample < s.Min {
			s.Min = sample
		}
		if sample > s.Max {
			s.Max = sample
		}
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))

	sorted := slices.Clone(s.Samples)
	slices.Sort(sorted)
	s.P99 = sorted[(len(sorted)-1)*99/100]
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Blockfall Stress Test Report

## Test Configuration
- **Run Duration:** {{.Duration}}
- **Sessions:** {{.Sessions}}
- **Input Rate:** {{.InputRate}}

## Performance Results
- **Total Updates:** {{.TotalUpdates}}
- **Total Test Time:** {{.TotalTime}}
- **Simulated Ticks:** {{.Totals.Ticks}} ({{rate .Totals.Ticks .TotalTime}}/s)
- **Update Time (Frame):**
  - **Avg:** {{.UpdateTime.Avg}}
  - **Min:** {{.UpdateTime.Min}}
  - **Max:** {{.UpdateTime.Max}}
  - **P99:** {{.UpdateTime.P99}}

## Game Totals
- Commands:      {{.Totals.Commands}}
- Pieces Locked: {{.Totals.PiecesLocked}}
- Lines Cleared: {{.Totals.LinesCleared}}
- Game Overs:    {{.Totals.GameOvers}}
- Restarts:      {{.Totals.Restarts}}
- Cell Writes:   {{.Totals.CellsUpdated}}

## Sessions
| Session | Updates | Pieces | Lines | Game Overs |
|---------|---------|--------|-------|------------|
{{range .Rows}}| {{.ID}} | {{.Updates}} | {{.Counters.PiecesLocked}} | {{.Counters.LinesCleared}} | {{.Counters.GameOvers}} |
{{end}}
## Host
- CPU:            {{.Host.CPUModel}} ({{.Host.LogicalCPUs}} logical)
- Process CPU:    {{printf "%.1f" .Host.ProcessCPU}}%
- Process RSS:    {{bytes .Host.ProcessRSS}}

## Memory Usage (Raw Bytes)
- Heap Alloc:     {{.MemStatsStart.HeapAlloc}} (start) -> {{.MemStatsEnd.HeapAlloc}} (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}
- Total Alloc:    {{.MemStatsStart.TotalAlloc}} (start) -> {{.MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}}
- Sys Memory:     {{.MemStatsStart.Sys}} (start) -> {{.MemStatsEnd.Sys}} (end) -> delta: {{bsub .MemStatsEnd.Sys .MemStatsStart.Sys}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}

{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{.MemStatsEnd.PauseTotalNs | ns}}
- **Num GC Cycles:** {{ usub .MemStatsEnd.NumGC .MemStatsStart.NumGC }}
{{end}}
`

	fm := template.FuncMap{
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
		"bytes": humanize.Bytes,
		"ns": func(ns uint64) string {
			return time.Duration(ns).String()
		},
		"rate": func(n int64, d time.Duration) string {
			if d <= 0 {
				return "N/A"
			}
			return fmt.Sprintf("%.0f", float64(n)/d.Seconds())
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
