package ecs

import (
	"context"
	"reflect"
	"strings"
	"time"
)

// SchedulerStats summarises how the registered systems have run so far.
type SchedulerStats struct {
	SystemCount     int
	TotalExecutions int64
	Systems         []SystemStats
}

// SystemStats holds timing for one system.
type SystemStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type scheduledSystem struct {
	system  System
	queries []interface{ Execute() }
	stats   SystemStats
}

// Scheduler runs systems in registration order against one Storage.
type Scheduler struct {
	storage *Storage
	systems []*scheduledSystem
}

// NewScheduler creates a scheduler for storage.
func NewScheduler(storage *Storage) *Scheduler {
	return &Scheduler{storage: storage}
}

// Storage returns the storage the scheduler drives.
func (s *Scheduler) Storage() *Storage {
	return s.storage
}

// Register wires the system's Query and Singleton fields to the storage and
// appends it to the run order.
func (s *Scheduler) Register(system System) {
	systemType := reflect.TypeOf(system)
	if systemType.Kind() == reflect.Pointer {
		systemType = systemType.Elem()
	}

	s.systems = append(s.systems, &scheduledSystem{
		system:  system,
		queries: s.initializeFields(system),
		stats: SystemStats{
			Name:        systemType.Name(),
			MinDuration: time.Duration(1<<63 - 1),
		},
	})
}

// initializeFields calls Init on every exported Query[...] and Singleton[...]
// field and returns the queries so they can be refreshed each frame.
func (s *Scheduler) initializeFields(system System) []interface{ Execute() } {
	systemValue := reflect.ValueOf(system)
	if systemValue.Kind() == reflect.Pointer {
		systemValue = systemValue.Elem()
	}
	if systemValue.Kind() != reflect.Struct {
		return nil
	}

	var queries []interface{ Execute() }
	systemType := systemValue.Type()
	for i := 0; i < systemValue.NumField(); i++ {
		field := systemValue.Field(i)
		if !field.CanSet() || field.Kind() != reflect.Struct {
			continue
		}

		typeName := field.Type().Name()
		isQuery := strings.HasPrefix(typeName, "Query[")
		if !isQuery && !strings.HasPrefix(typeName, "Singleton[") {
			continue
		}

		initMethod := field.Addr().MethodByName("Init")
		if !initMethod.IsValid() {
			panic("Init method not found on field: " + systemType.Field(i).Name)
		}
		initMethod.Call([]reflect.Value{reflect.ValueOf(s.storage)})

		if isQuery {
			if q, ok := field.Addr().Interface().(interface{ Execute() }); ok {
				queries = append(queries, q)
			}
		}
	}
	return queries
}

// Once runs every system a single time with delta time dt, then flushes the
// frame's commands.
func (s *Scheduler) Once(dt float64) {
	frame := newUpdateFrame(dt, s.storage)

	for _, entry := range s.systems {
		for _, q := range entry.queries {
			q.Execute()
		}

		start := time.Now()
		entry.system.Execute(frame)
		duration := time.Since(start)

		stats := &entry.stats
		stats.ExecutionCount++
		stats.LastDuration = duration
		stats.TotalDuration += duration
		stats.MinDuration = min(stats.MinDuration, duration)
		stats.MaxDuration = max(stats.MaxDuration, duration)
	}

	frame.Commands.Flush(s.storage)
}

// Run calls Once every interval until ctx is done.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastTime := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			s.Once(now.Sub(lastTime).Seconds())
			lastTime = now
		}
	}
}

// GetStats returns a copy of the per-system timing.
func (s *Scheduler) GetStats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount: len(s.systems),
		Systems:     make([]SystemStats, len(s.systems)),
	}

	for i, entry := range s.systems {
		sys := entry.stats
		if sys.ExecutionCount > 0 {
			sys.AvgDuration = sys.TotalDuration / time.Duration(sys.ExecutionCount)
		} else {
			sys.MinDuration = 0
		}
		stats.Systems[i] = sys
		stats.TotalExecutions += sys.ExecutionCount
	}

	return stats
}
