// Command abilink merges per-translation-unit ABI descriptors into one
// library-wide descriptor, keeping only what the library exports.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger := &logrus.Logger{
		Out:       os.Stderr,
		Formatter: new(logrus.TextFormatter),
		Hooks:     make(logrus.LevelHooks),
		Level:     logrus.WarnLevel,
	}
	c := newRootCommand(afero.NewOsFs(), logger)
	code := c.execute(ctx, os.Args[1:])
	stop()
	os.Exit(code)
}
