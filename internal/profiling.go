package internal

import (
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
	"time"
)

type Profiler struct {
	enabled bool
	logger  *Logger
}

func NewProfiler(cfg *Config, logger *Logger) *Profiler {
	return &Profiler{
		enabled: cfg.EnableProfiling,
		logger:  logger,
	}
}

func (p *Profiler) Start() {
	if !p.enabled {
		return
	}

	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()

		for range ticker.C {
			p.captureMemoryProfile()
		}
	}()

	p.logger.Info("memory_profiling_started").
		Component("profiler").
		Operation("start").
		Log()
}

func (p *Profiler) captureMemoryProfile() {
	filename := fmt.Sprintf("mem_%d.prof", time.Now().Unix())

	f, err := os.Create(filename)
	if err != nil {
		p.logger.Error("memory_profile_create_failed").
			Component("profiler").
			Operation("capture_memory").
			Err(err).
			Log()
		return
	}
	defer f.Close()

	runtime.GC()

	if err := pprof.WriteHeapProfile(f); err != nil {
		p.logger.Error("memory_profile_write_failed").
			Component("profiler").
			Operation("capture_memory").
			Err(err).
			Log()
		return
	}

	var stats runtime.MemStats
	runtime.ReadMemStats(&stats)

	p.logger.Info("memory_profile_captured").
		Component("profiler").
		Operation("capture_memory").
		Meta("file", filename).
		Meta("heap_alloc_mb", stats.HeapAlloc/1024/1024).
		Meta("goroutines", runtime.NumGoroutine()).
		Log()
}
