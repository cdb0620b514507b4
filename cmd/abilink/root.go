package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"abilink/internal/diag"
	"abilink/internal/linkpipeline"
	"abilink/internal/observ"
	"abilink/internal/prof"
	"abilink/internal/version"
)

type rootCommand struct {
	cmd    *cobra.Command
	fs     afero.Fs
	logger *logrus.Logger
	stdout io.Writer
	stderr io.Writer

	lookupEnv func(string) (string, bool)
	getwd     func() (string, error)

	flags options
}

func newRootCommand(fs afero.Fs, logger *logrus.Logger) *rootCommand {
	c := &rootCommand{
		fs:        fs,
		logger:    logger,
		stdout:    os.Stdout,
		stderr:    os.Stderr,
		lookupEnv: os.LookupEnv,
		getwd:     os.Getwd,
		flags:     defaultOptions(),
	}
	c.cmd = &cobra.Command{
		Use:   "abilink [flags] <input.sdump>... -o <output.lsdump>",
		Short: "Link per-translation-unit ABI dumps into one library ABI dump",
		Long: `abilink merges ABI descriptors produced for each translation unit of a
library into a single descriptor. Entities declared outside the exported
headers, or whose symbols the library does not export, are dropped.`,
		Version:       version.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          c.run,
	}
	c.cmd.SetVersionTemplate("abilink {{.Version}}\n")
	c.cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return diag.New(diag.ConfigurationError, "config", "", err)
	})
	c.cmd.Flags().AddFlagSet(c.flagSet())
	return c
}

// execute runs the command with args and returns the process exit code.
func (c *rootCommand) execute(ctx context.Context, args []string) int {
	c.cmd.SetArgs(rewriteLegacyArgs(args))
	c.cmd.SetOut(c.stdout)
	c.cmd.SetErr(c.stderr)
	err := c.cmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}
	c.logger.WithError(err).Debug("link failed")
	printError(c.stderr, err)
	return exitCode(err)
}

func (c *rootCommand) run(cmd *cobra.Command, args []string) error {
	opts, err := c.loadOptions(cmd, args)
	if err != nil {
		return err
	}
	if err := c.setupLogger(opts); err != nil {
		return err
	}
	req, err := opts.request()
	if err != nil {
		return err
	}
	req.Fs = c.fs
	req.Logger = c.logger
	req.Progress = linkpipeline.LogSink{Logger: c.logger}
	if opts.Timings {
		req.Timer = observ.NewTimer()
	}

	session, err := prof.Start(c.fs, opts.profiles())
	if err != nil {
		return err
	}
	defer func() {
		if stopErr := session.Stop(); stopErr != nil {
			c.logger.WithError(stopErr).Warn("failed to write profiles")
		}
	}()

	mode, err := readUIMode(opts.UI)
	if err != nil {
		return diag.Configuration(err.Error())
	}
	var res linkpipeline.Result
	if shouldUseTUI(mode, c.stdout, len(req.Inputs)) {
		res, err = runLinkWithUI(cmd.Context(), c.stdout, "abilink "+req.Output, req)
	} else {
		res, err = linkpipeline.Link(cmd.Context(), req)
	}
	if err != nil {
		return err
	}
	if opts.Timings {
		printTimings(c.stderr, req.Timer)
	}
	c.logger.WithFields(logrus.Fields{
		"output":    res.Output,
		"functions": len(res.Unit.Functions),
		"globals":   len(res.Unit.GlobalVars),
	}).Info("linked")
	return nil
}

// exitCode maps a failure to the process exit status: 2 for configuration
// problems, 1 for everything else.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	if code, ok := diag.CodeOf(err); ok && code == diag.ConfigurationError {
		return 2
	}
	return 1
}

var (
	errorColor = color.New(color.FgRed, color.Bold)
	codeColor  = color.New(color.FgYellow)
)

func printError(w io.Writer, err error) {
	var de *diag.Error
	if errors.As(err, &de) {
		_, _ = fmt.Fprintf(w, "abilink: %s[%s]: %v\n", errorColor.Sprint("error"), codeColor.Sprint(de.Code.ID()), err)
		return
	}
	_, _ = fmt.Fprintf(w, "abilink: %s: %v\n", errorColor.Sprint("error"), err)
}

func printTimings(w io.Writer, timer *observ.Timer) {
	if w == nil || timer == nil {
		return
	}
	_, _ = io.WriteString(w, timer.Summary())
}
