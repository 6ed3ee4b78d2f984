// Package profile provides optional runtime profiling behind the pprof
// build tag.
//
// Profiling integrates [github.com/pkg/profile] and is compiled in only
// when building with `-tags pprof`; the default build reduces every
// operation here to a no-op with zero overhead.
//
// A profiler is described by a [Config] and started with [Config.Start]:
//
//	cfg := profile.Config(func() (string, string, bool) {
//		return "cpu", "/tmp/profiles", false
//	})
//	defer cfg.Start().Stop()
//
// Profile files are written to the configured directory named after the
// mode (cpu.pprof, heap.pprof, ...). Use [Modes] for the list of modes
// supported by the current build.
package profile
