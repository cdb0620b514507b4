// Package linkpipeline drives one link run: resolve the visibility policy,
// synthesize the exported symbol entries, merge every input descriptor in
// command-line order and write the linked descriptor.
package linkpipeline

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"abilink/internal/abi"
	"abilink/internal/diag"
	"abilink/internal/dump"
	"abilink/internal/linker"
	"abilink/internal/observ"
	"abilink/internal/pattern"
	"abilink/internal/visibility"
)

// Request configures one link run.
type Request struct {
	Inputs       []string
	Output       string
	InputFormat  dump.Format
	OutputFormat dump.Format
	Visibility   visibility.Config
	// MaxEntities caps every linked category; 0 means unlimited.
	MaxEntities int

	Fs       afero.Fs
	Logger   logrus.FieldLogger
	Progress ProgressSink
	Timer    *observ.Timer
}

// Result captures the linked descriptor and what it took to build it.
type Result struct {
	Output  string
	Policy  *visibility.Policy
	Unit    *abi.TranslationUnit
	Stats   linker.Stats
	Timings Timings
}

func (r *Request) validate() error {
	if len(r.Inputs) == 0 {
		return diag.Configuration("at least one input descriptor is required")
	}
	if r.Output == "" {
		return diag.Configuration("output path (-o) is required")
	}
	if r.MaxEntities < 0 {
		return diag.Configuration(fmt.Sprintf("max entities must not be negative, got %d", r.MaxEntities))
	}
	return nil
}

// Link runs the whole pipeline. Any failure aborts the run and is returned
// as a *diag.Error naming the failing stage; the output is written only when
// every input linked successfully.
func Link(ctx context.Context, req *Request) (Result, error) {
	var result Result
	if req == nil {
		return result, diag.Configuration("missing link request")
	}
	reqCopy := *req
	req = &reqCopy

	if req.Fs == nil {
		req.Fs = afero.NewOsFs()
	}
	if req.Logger == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		req.Logger = discard
	}
	if req.InputFormat == "" {
		req.InputFormat = dump.FormatAuto
	}
	if req.OutputFormat == "" {
		req.OutputFormat = dump.FormatAuto
	}
	if err := req.validate(); err != nil {
		return result, err
	}
	log := req.Logger

	// fail closes the running timer phase so a failed run still reports
	// where the time went.
	fail := func(phase int, err error) (Result, error) {
		req.Timer.End(phase, "failed")
		return result, err
	}

	// resolve
	start := time.Now()
	phase := req.Timer.Begin(string(StageResolve))
	emitStage(req.Progress, "", StageResolve, StatusWorking, nil, 0)
	policy, funcPatterns, globalPatterns, err := resolve(ctx, req)
	if err != nil {
		emitStage(req.Progress, "", StageResolve, StatusError, err, 0)
		return fail(phase, err)
	}
	result.Policy = policy
	elapsed := time.Since(start)
	result.Timings.Add(StageResolve, elapsed)
	req.Timer.End(phase, fmt.Sprintf("%s, %d headers", policy.Mode, len(policy.ExportedHeaders)))
	emitStage(req.Progress, "", StageResolve, StatusDone, nil, elapsed)
	log.WithFields(logrus.Fields{
		"mode":              policy.Mode.String(),
		"headers":           len(policy.ExportedHeaders),
		"functions":         policy.Functions.Len(),
		"globals":           policy.GlobalVars.Len(),
		"function_patterns": policy.FunctionPatterns.Len(),
		"global_patterns":   policy.GlobalVarPatterns.Len(),
	}).Debug("visibility resolved")

	acc := linker.New(linker.Config{
		ExportedHeaders: policy.ExportedHeaders,
		Functions: linker.SymbolFilter{
			Enabled:  policy.SymbolMode(),
			Exact:    policy.Functions,
			Patterns: funcPatterns,
		},
		GlobalVars: linker.SymbolFilter{
			Enabled:  policy.SymbolMode(),
			Exact:    policy.GlobalVars,
			Patterns: globalPatterns,
		},
		MaxEntities: req.MaxEntities,
		OnVerdict:   traceVerdicts(log),
	})

	// synthesize
	start = time.Now()
	phase = req.Timer.Begin(string(StageSynthesize))
	linker.Synthesize(acc.Unit(), policy.Functions, policy.GlobalVars)
	elapsed = time.Since(start)
	result.Timings.Add(StageSynthesize, elapsed)
	req.Timer.End(phase, fmt.Sprintf("%d functions, %d objects", len(acc.Unit().ElfFunctions), len(acc.Unit().ElfObjects)))
	emitStage(req.Progress, "", StageSynthesize, StatusDone, nil, elapsed)

	// parse + link, strictly in input order
	phase = req.Timer.Begin(string(StageLink))
	for _, input := range req.Inputs {
		if err := ctx.Err(); err != nil {
			err = diag.New(diag.LinkError, string(StageLink), input, err)
			emitStage(req.Progress, input, StageLink, StatusError, err, 0)
			return fail(phase, err)
		}
		if err := linkInput(req, acc, input, &result.Timings); err != nil {
			return fail(phase, err)
		}
	}
	req.Timer.End(phase, fmt.Sprintf("%d inputs", len(req.Inputs)))

	// serialize
	start = time.Now()
	phase = req.Timer.Begin(string(StageSerialize))
	emitStage(req.Progress, req.Output, StageSerialize, StatusWorking, nil, 0)
	if err := dump.WriteFile(req.Fs, req.Output, acc.Unit(), req.OutputFormat); err != nil {
		err = diag.New(diag.SerializationError, string(StageSerialize), req.Output, err)
		emitStage(req.Progress, req.Output, StageSerialize, StatusError, err, 0)
		return fail(phase, err)
	}
	elapsed = time.Since(start)
	result.Timings.Add(StageSerialize, elapsed)
	req.Timer.End(phase, req.Output)
	emitStage(req.Progress, req.Output, StageSerialize, StatusDone, nil, elapsed)

	result.Output = req.Output
	result.Unit = acc.Unit()
	result.Stats = acc.Stats()
	logStats(log, result.Stats)
	return result, nil
}

func resolve(ctx context.Context, req *Request) (*visibility.Policy, *pattern.Matcher, *pattern.Matcher, error) {
	policy, err := visibility.Resolve(ctx, req.Fs, req.Visibility)
	if err != nil {
		return nil, nil, nil, err
	}
	funcs, err := pattern.Compile(policy.FunctionPatterns.Sorted())
	if err != nil {
		return nil, nil, nil, diag.New(diag.InputParseError, string(StageResolve), req.Visibility.VersionScript,
			fmt.Errorf("compile function patterns: %w", err))
	}
	globals, err := pattern.Compile(policy.GlobalVarPatterns.Sorted())
	if err != nil {
		return nil, nil, nil, diag.New(diag.InputParseError, string(StageResolve), req.Visibility.VersionScript,
			fmt.Errorf("compile global patterns: %w", err))
	}
	return policy, funcs, globals, nil
}

func linkInput(req *Request, acc *linker.Accumulator, input string, timings *Timings) error {
	start := time.Now()
	emitStage(req.Progress, input, StageParse, StatusWorking, nil, 0)
	tu, err := dump.ReadFile(req.Fs, input, req.InputFormat)
	if err != nil {
		err = diag.New(diag.InputParseError, string(StageParse), input, err)
		emitStage(req.Progress, input, StageParse, StatusError, err, 0)
		return err
	}
	elapsed := time.Since(start)
	timings.Add(StageParse, elapsed)
	emitStage(req.Progress, input, StageParse, StatusDone, nil, elapsed)

	start = time.Now()
	emitStage(req.Progress, input, StageLink, StatusWorking, nil, 0)
	before := acc.Stats()
	if err := acc.Link(tu); err != nil {
		err = diag.New(diag.LinkError, string(StageLink), input, err)
		emitStage(req.Progress, input, StageLink, StatusError, err, 0)
		return err
	}
	elapsed = time.Since(start)
	timings.Add(StageLink, elapsed)
	emitStage(req.Progress, input, StageLink, StatusDone, nil, elapsed)

	after := acc.Stats()
	var accepted, rejected int
	for _, c := range abi.Categories {
		accepted += after[c].Accepted - before[c].Accepted
		rejected += after[c].Rejected() - before[c].Rejected()
	}
	req.Logger.WithFields(logrus.Fields{
		"file":     input,
		"accepted": accepted,
		"rejected": rejected,
	}).Debug("input linked")
	return nil
}

func emitStage(sink ProgressSink, file string, stage Stage, status Status, err error, elapsed time.Duration) {
	if sink == nil {
		return
	}
	sink.OnEvent(Event{File: file, Stage: stage, Status: status, Err: err, Elapsed: elapsed})
}

// traceVerdicts returns a verdict observer that logs rejections, or nil when
// the logger would drop trace entries anyway.
func traceVerdicts(log logrus.FieldLogger) func(abi.Category, string, linker.Verdict) {
	if !traceEnabled(log) {
		return nil
	}
	return func(c abi.Category, key string, v linker.Verdict) {
		if v == linker.Accepted {
			return
		}
		log.WithFields(logrus.Fields{
			"category": c.String(),
			"key":      key,
			"reason":   v.String(),
		}).Trace("entity rejected")
	}
}

func traceEnabled(log logrus.FieldLogger) bool {
	switch l := log.(type) {
	case *logrus.Logger:
		return l.IsLevelEnabled(logrus.TraceLevel)
	case *logrus.Entry:
		return l.Logger != nil && l.Logger.IsLevelEnabled(logrus.TraceLevel)
	}
	return false
}

func logStats(log logrus.FieldLogger, stats linker.Stats) {
	for _, c := range abi.Categories {
		s := stats[c]
		if s.Accepted == 0 && s.Rejected() == 0 {
			continue
		}
		log.WithFields(logrus.Fields{
			"category":   c.String(),
			"accepted":   s.Accepted,
			"header":     s.Header,
			"duplicate":  s.Duplicate,
			"unexported": s.Unexported,
		}).Debug("category linked")
	}
}
