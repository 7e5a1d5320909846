package profiler

import (
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"

	"github.com/spf13/pflag"
)

// defaultMemRate is the memory profile sampling rate applied while a
// Profiler is active (bytes per sample).
const defaultMemRate = 524288

// Profiler brackets a command run with pprof profiling. Profile paths
// left empty keep the corresponding profile disabled.
//
// Create instances with [New] and bind CLI flags with
// [Profiler.RegisterFlags], or set the paths directly.
type Profiler struct {
	cpuFile *os.File

	// Output paths (empty = disabled).
	CPU       string
	Heap      string
	Allocs    string
	Goroutine string
	Block     string
	Mutex     string

	// Sampling configuration.
	MemRate       int
	BlockRate     int
	MutexFraction int
}

// New creates a Profiler with every profile disabled.
func New() Profiler {
	return Profiler{}
}

// RegisterFlags adds the profiling flags to the given [*pflag.FlagSet].
func (p *Profiler) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringVar(&p.CPU, "cpu-profile", "", "write CPU profile to file")
	flags.StringVar(&p.Heap, "heap-profile", "", "write heap profile to file")
	flags.StringVar(&p.Allocs, "allocs-profile", "", "write allocs profile to file")
	flags.StringVar(&p.Goroutine, "goroutine-profile", "", "write goroutine profile to file")
	flags.StringVar(&p.Block, "block-profile", "", "write block profile to file")
	flags.StringVar(&p.Mutex, "mutex-profile", "", "write mutex profile to file")

	flags.IntVar(&p.MemRate, "mem-profile-rate", defaultMemRate, "memory profile rate (bytes per sample)")
	flags.IntVar(&p.BlockRate, "block-profile-rate", 1, "block profile rate (nanoseconds)")
	flags.IntVar(&p.MutexFraction, "mutex-profile-fraction", 1, "mutex profile fraction (1/N sampling)")
}

// Start applies the sampling configuration and begins CPU profiling if a
// CPU path is set. Call [Profiler.Stop] when the command finishes.
func (p *Profiler) Start() error {
	runtime.MemProfileRate = p.MemRate
	runtime.SetBlockProfileRate(p.BlockRate)
	runtime.SetMutexProfileFraction(p.MutexFraction)

	if p.CPU == "" {
		return nil
	}

	f, err := os.Create(p.CPU) //nolint:gosec // profile path comes from a CLI flag
	if err != nil {
		return fmt.Errorf("create cpu profile: %w", err)
	}

	err = pprof.StartCPUProfile(f)
	if err != nil {
		_ = f.Close()

		return fmt.Errorf("start cpu profile: %w", err)
	}

	p.cpuFile = f

	return nil
}

// Stop ends CPU profiling and writes every enabled snapshot profile.
func (p *Profiler) Stop() error {
	if p.cpuFile != nil {
		pprof.StopCPUProfile()

		err := p.cpuFile.Close()
		p.cpuFile = nil

		if err != nil {
			return fmt.Errorf("close cpu profile: %w", err)
		}
	}

	snapshots := []struct {
		name string
		path string
	}{
		{"heap", p.Heap},
		{"allocs", p.Allocs},
		{"goroutine", p.Goroutine},
		{"block", p.Block},
		{"mutex", p.Mutex},
	}

	for _, s := range snapshots {
		if s.path == "" {
			continue
		}

		err := writeSnapshot(s.name, s.path)
		if err != nil {
			return err
		}
	}

	return nil
}

func writeSnapshot(name, path string) error {
	prof := pprof.Lookup(name)
	if prof == nil {
		return fmt.Errorf("unknown profile %q", name)
	}

	f, err := os.Create(path) //nolint:gosec // profile path comes from a CLI flag
	if err != nil {
		return fmt.Errorf("create %s profile: %w", name, err)
	}

	err = prof.WriteTo(f, 0)
	if err != nil {
		_ = f.Close()

		return fmt.Errorf("write %s profile: %w", name, err)
	}

	err = f.Close()
	if err != nil {
		return fmt.Errorf("close %s profile: %w", name, err)
	}

	return nil
}
