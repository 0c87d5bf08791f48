package profile

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
)

// Profiler writes the profiles enabled in its [Config].
//
// Call [Profiler.Start] before converting and [Profiler.Stop] afterwards.
// Create instances with [Config.NewProfiler].
type Profiler struct {
	cpuFile *os.File
	Config
}

// Start applies the memory sampling rate and starts CPU profiling if
// enabled.
func (p *Profiler) Start() error {
	if p.MemProfileRate > 0 {
		runtime.MemProfileRate = p.MemProfileRate
	}

	if p.CPUProfile == "" {
		return nil
	}

	f, err := os.Create(p.CPUProfile) //nolint:gosec // Profile path from CLI flag is expected.
	if err != nil {
		return fmt.Errorf("create CPU profile: %w", err)
	}

	err = pprof.StartCPUProfile(f)
	if err != nil {
		return errors.Join(fmt.Errorf("start CPU profile: %w", err), f.Close())
	}

	p.cpuFile = f

	return nil
}

// Stop stops CPU profiling and writes the heap and allocs snapshots. It
// attempts every enabled profile and returns the joined errors.
func (p *Profiler) Stop() error {
	var errs []error

	if p.cpuFile != nil {
		pprof.StopCPUProfile()

		err := p.cpuFile.Close()
		if err != nil {
			errs = append(errs, fmt.Errorf("close CPU profile: %w", err))
		}

		p.cpuFile = nil
	}

	for name, path := range map[string]string{
		"heap":   p.HeapProfile,
		"allocs": p.AllocsProfile,
	} {
		if path == "" {
			continue
		}

		err := writeProfile(name, path)
		if err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func writeProfile(name, path string) error {
	if name == "heap" {
		runtime.GC()
	}

	f, err := os.Create(path) //nolint:gosec // Profile path from CLI flag is expected.
	if err != nil {
		return fmt.Errorf("create %s profile: %w", name, err)
	}

	err = pprof.Lookup(name).WriteTo(f, 0)
	if err != nil {
		return errors.Join(fmt.Errorf("write %s profile: %w", name, err), f.Close())
	}

	err = f.Close()
	if err != nil {
		return fmt.Errorf("close %s profile: %w", name, err)
	}

	return nil
}
