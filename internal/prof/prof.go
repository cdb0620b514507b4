// Package prof captures CPU, heap and execution-trace profiles of one run.
package prof

import (
	"errors"
	"fmt"
	"runtime"
	"runtime/pprof"
	"runtime/trace"

	"github.com/spf13/afero"
)

// Config names the profile outputs. Empty paths are skipped.
type Config struct {
	CPU   string
	Mem   string
	Trace string
}

// Enabled reports whether any profile is requested.
func (c Config) Enabled() bool {
	return c.CPU != "" || c.Mem != "" || c.Trace != ""
}

// Session is an active profiling session. A nil *Session is valid and idle.
type Session struct {
	fs    afero.Fs
	cfg   Config
	cpu   afero.File
	trace afero.File
}

// Start begins CPU profiling and execution tracing as configured. The heap
// profile is written by Stop.
func Start(fs afero.Fs, cfg Config) (*Session, error) {
	if !cfg.Enabled() {
		return nil, nil
	}
	s := &Session{fs: fs, cfg: cfg}
	if cfg.CPU != "" {
		f, err := fs.Create(cfg.CPU)
		if err != nil {
			return nil, fmt.Errorf("cpu profile: %w", err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("cpu profile: %w", err)
		}
		s.cpu = f
	}
	if cfg.Trace != "" {
		f, err := fs.Create(cfg.Trace)
		if err != nil {
			s.stopCPU()
			return nil, fmt.Errorf("execution trace: %w", err)
		}
		if err := trace.Start(f); err != nil {
			_ = f.Close()
			s.stopCPU()
			return nil, fmt.Errorf("execution trace: %w", err)
		}
		s.trace = f
	}
	return s, nil
}

// Stop ends every active profile and writes the heap profile.
func (s *Session) Stop() error {
	if s == nil {
		return nil
	}
	errCPU := s.stopCPU()
	var errTrace error
	if s.trace != nil {
		trace.Stop()
		errTrace = s.trace.Close()
		s.trace = nil
	}
	var errMem error
	if s.cfg.Mem != "" {
		errMem = s.writeMem()
	}
	return errors.Join(errCPU, errTrace, errMem)
}

func (s *Session) stopCPU() error {
	if s.cpu == nil {
		return nil
	}
	pprof.StopCPUProfile()
	err := s.cpu.Close()
	s.cpu = nil
	return err
}

func (s *Session) writeMem() (err error) {
	f, err := s.fs.Create(s.cfg.Mem)
	if err != nil {
		return fmt.Errorf("heap profile: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
	}()
	runtime.GC()
	if err := pprof.WriteHeapProfile(f); err != nil {
		return fmt.Errorf("heap profile: %w", err)
	}
	return nil
}
