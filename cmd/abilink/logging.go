package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-colorable"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"
)

type colorMode string

const (
	colorModeAuto colorMode = "auto"
	colorModeOn   colorMode = "on"
	colorModeOff  colorMode = "off"
)

func readColorMode(value string) (colorMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return colorModeAuto, nil
	case "on", "always":
		return colorModeOn, nil
	case "off", "never":
		return colorModeOff, nil
	default:
		return "", fmt.Errorf("invalid --color value %q (expected auto|on|off)", value)
	}
}

func useColor(mode colorMode, w io.Writer) bool {
	switch mode {
	case colorModeOn:
		return true
	case colorModeOff:
		return false
	}
	f, ok := w.(*os.File)
	return ok && isTerminal(f)
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// setupLogger applies level, format and color settings to the shared logger
// and to the error printer.
func (c *rootCommand) setupLogger(o *options) error {
	level, err := logrus.ParseLevel(o.LogLevel)
	if err != nil {
		return err
	}
	if o.Verbose && level < logrus.DebugLevel {
		level = logrus.DebugLevel
	}
	c.logger.SetLevel(level)

	mode, err := readColorMode(o.Color)
	if err != nil {
		return err
	}
	colored := useColor(mode, c.stderr)
	color.NoColor = !colored

	if f, ok := c.stderr.(*os.File); ok {
		if colored {
			c.stderr = colorable.NewColorable(f)
		} else {
			c.stderr = colorable.NewNonColorable(f)
		}
	}
	c.logger.SetOutput(c.stderr)

	switch strings.ToLower(o.LogFormat) {
	case "json":
		c.logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		c.logger.SetFormatter(&logrus.TextFormatter{ForceColors: colored, DisableColors: !colored})
	}
	return nil
}
