package ecs

import (
	"context"
	"reflect"
	"time"
)

// SchedulerStats summarizes how often and how long systems ran.
type SchedulerStats struct {
	SystemCount     int
	Frames          uint64
	TotalExecutions int64
	Systems         []SystemStats
}

type SystemStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type initializer interface {
	Init(*Storage)
}

type executor interface {
	Execute()
}

type scheduledSystem struct {
	system  System
	queries []executor
	stats   SystemStats
}

// Scheduler runs registered systems in registration order, then flushes
// the frame's commands and ages the event buffers.
type Scheduler struct {
	storage *Storage
	systems []*scheduledSystem
	frame   uint64
}

func NewScheduler(storage *Storage) *Scheduler {
	return &Scheduler{storage: storage}
}

func (s *Scheduler) Storage() *Storage { return s.storage }

// Register binds the system's fields and appends it to the run order.
func (s *Scheduler) Register(system System) {
	entry := &scheduledSystem{
		system: system,
		stats:  SystemStats{Name: systemName(system), MinDuration: time.Duration(1<<63 - 1)},
	}
	entry.queries = s.bindFields(system)
	s.systems = append(s.systems, entry)
}

func systemName(system System) string {
	t := reflect.TypeOf(system)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name()
}

// bindFields calls Init on every settable struct field that accepts a
// storage and returns the fields that must be executed before each run.
func (s *Scheduler) bindFields(system System) []executor {
	v := reflect.ValueOf(system)
	if v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil
	}

	var queries []executor
	for i := range v.NumField() {
		field := v.Field(i)
		if !field.CanSet() || field.Kind() != reflect.Struct {
			continue
		}

		ptr := field.Addr().Interface()
		init, ok := ptr.(initializer)
		if !ok {
			continue
		}
		init.Init(s.storage)

		if q, ok := ptr.(executor); ok {
			queries = append(queries, q)
		}
	}
	return queries
}

// Once runs one frame with the given delta time in seconds.
func (s *Scheduler) Once(dt float64) {
	s.frame++
	frame := &UpdateFrame{
		Number:    s.frame,
		DeltaTime: dt,
		Commands:  &Commands{},
		Storage:   s.storage,
	}

	for _, entry := range s.systems {
		start := time.Now()
		for _, q := range entry.queries {
			q.Execute()
		}
		entry.system.Execute(frame)
		entry.record(time.Since(start))
	}

	frame.Commands.Flush(s.storage)
	s.storage.updateEvents()
}

func (e *scheduledSystem) record(d time.Duration) {
	st := &e.stats
	st.ExecutionCount++
	st.LastDuration = d
	st.TotalDuration += d
	st.MinDuration = min(st.MinDuration, d)
	st.MaxDuration = max(st.MaxDuration, d)
}

// Run calls Once every interval until ctx is done, passing the measured
// time since the previous frame.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			s.Once(now.Sub(last).Seconds())
			last = now
		}
	}
}

func (s *Scheduler) GetStats() *SchedulerStats {
	out := &SchedulerStats{
		SystemCount: len(s.systems),
		Frames:      s.frame,
		Systems:     make([]SystemStats, len(s.systems)),
	}
	for i, entry := range s.systems {
		st := entry.stats
		if st.ExecutionCount > 0 {
			st.AvgDuration = st.TotalDuration / time.Duration(st.ExecutionCount)
		} else {
			st.MinDuration = 0
		}
		out.Systems[i] = st
		out.TotalExecutions += st.ExecutionCount
	}
	return out
}
