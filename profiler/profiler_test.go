package profiler_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.rexsapi.dev/rexsapi/profiler"
)

func TestNew(t *testing.T) {
	t.Parallel()

	prof := profiler.New()

	assert.Empty(t, prof.CPU)
	assert.Empty(t, prof.Heap)
	assert.Empty(t, prof.Allocs)
	assert.Empty(t, prof.Goroutine)
	assert.Empty(t, prof.Block)
	assert.Empty(t, prof.Mutex)

	assert.Zero(t, prof.MemRate)
	assert.Zero(t, prof.BlockRate)
	assert.Zero(t, prof.MutexFraction)
}

func TestRegisterFlags(t *testing.T) {
	t.Parallel()

	prof := profiler.New()
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)

	prof.RegisterFlags(flags)

	for _, name := range []string{
		"cpu-profile",
		"heap-profile",
		"allocs-profile",
		"goroutine-profile",
		"block-profile",
		"mutex-profile",
		"mem-profile-rate",
		"block-profile-rate",
		"mutex-profile-fraction",
	} {
		require.NotNil(t, flags.Lookup(name), "flag %s should be registered", name)
	}
}

func TestRegisterFlagsParsing(t *testing.T) {
	t.Parallel()

	prof := profiler.New()
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)

	prof.RegisterFlags(flags)

	err := flags.Parse([]string{
		"--cpu-profile=cpu.prof",
		"--heap-profile=heap.prof",
		"--mem-profile-rate=1024",
		"--mutex-profile-fraction=10",
	})
	require.NoError(t, err)

	assert.Equal(t, "cpu.prof", prof.CPU)
	assert.Equal(t, "heap.prof", prof.Heap)
	assert.Equal(t, 1024, prof.MemRate)
	assert.Equal(t, 10, prof.MutexFraction)
}

func TestRegisterFlagsDefaults(t *testing.T) {
	t.Parallel()

	prof := profiler.New()
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)

	prof.RegisterFlags(flags)

	require.NoError(t, flags.Parse([]string{}))

	assert.Equal(t, 524288, prof.MemRate)
	assert.Equal(t, 1, prof.BlockRate)
	assert.Equal(t, 1, prof.MutexFraction)
}

func TestStartStopWritesSnapshots(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	prof := profiler.New()
	prof.MemRate = 1024
	prof.Heap = filepath.Join(dir, "heap.prof")
	prof.Goroutine = filepath.Join(dir, "goroutine.prof")

	require.NoError(t, prof.Start())
	require.NoError(t, prof.Stop())

	for _, path := range []string{prof.Heap, prof.Goroutine} {
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Positive(t, info.Size())
	}
}
