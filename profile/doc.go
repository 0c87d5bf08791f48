// Package profile adds runtime profiling to the propschema CLI.
//
// It writes CPU, heap, and allocs profiles to the paths given by flags,
// which helps when converting large react-docgen dumps with many workers.
//
//	cfg := profile.NewConfig()
//	cfg.RegisterFlags(rootCmd.PersistentFlags())
//
//	p := cfg.NewProfiler()
//	if err := p.Start(); err != nil {
//	    return err
//	}
//	defer p.Stop()
//
// Users enable profiling via flags like --cpu-profile=cpu.prof.
package profile
