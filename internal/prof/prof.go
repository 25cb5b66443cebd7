// Package prof wires Go's runtime profilers behind the CLI's profiling
// flags, so extraction and validation runs over large construct sets can be
// inspected with pprof.
package prof

import (
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
)

// Profiles describes which profiles a run should capture. Empty paths
// disable the corresponding profile.
type Profiles struct {
	CPUPath string
	MemPath string
}

// Start enables the requested profilers and returns a stop function that
// flushes them. The stop function is safe to call more than once.
func (p Profiles) Start() (func(), error) {
	var cpuFile *os.File
	if p.CPUPath != "" {
		f, err := os.Create(p.CPUPath)
		if err != nil {
			return nil, fmt.Errorf("failed to create cpu profile: %w", err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("failed to start cpu profile: %w", err)
		}
		cpuFile = f
	}

	stopped := false
	stop := func() {
		if stopped {
			return
		}
		stopped = true
		if cpuFile != nil {
			pprof.StopCPUProfile()
			_ = cpuFile.Close()
		}
		if p.MemPath != "" {
			if err := writeHeap(p.MemPath); err != nil {
				fmt.Fprintf(os.Stderr, "failed to write heap profile: %v\n", err)
			}
		}
	}
	return stop, nil
}

func writeHeap(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	runtime.GC()
	return pprof.WriteHeapProfile(f)
}
