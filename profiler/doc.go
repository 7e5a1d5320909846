// Package profiler adds pprof profiling flags to the model tools.
//
// A Profiler is registered on a command's persistent flags and bracketed
// around execution:
//
//	prof := profiler.New()
//	prof.RegisterFlags(rootCmd.PersistentFlags())
//
//	rootCmd.PersistentPreRunE = func(_ *cobra.Command, _ []string) error {
//	    return prof.Start()
//	}
//	rootCmd.PersistentPostRunE = func(_ *cobra.Command, _ []string) error {
//	    return prof.Stop()
//	}
//
// CPU profiling runs for the whole command; the snapshot profiles (heap,
// allocs, goroutine, block, mutex) are written once at Stop:
//
//	model-checker --cpu-profile=cpu.prof -d db/ gearbox.rexs
package profiler
