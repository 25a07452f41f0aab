// ABOUTME: CLI flag parsing using stdlib flag package
// ABOUTME: Supports --rows, --cols, --config, --log-file, --verbose, --keys, --version

package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/mauromedda/gridwalk/internal/config"
)

type cliArgs struct {
	rows       int
	cols       int
	configPath string
	logFile    string
	verbose    bool
	keys       bool
	version    bool
}

func parseFlags(argv []string, errOut io.Writer) (cliArgs, error) {
	var args cliArgs

	fs := flag.NewFlagSet("gridwalk", flag.ContinueOnError)
	fs.SetOutput(errOut)
	fs.IntVar(&args.rows, "rows", 0, "Grid rows (default 8)")
	fs.IntVar(&args.cols, "cols", 0, "Grid columns (default twice the rows)")
	fs.StringVar(&args.configPath, "config", "", "Settings file to use instead of ~/.gridwalk and .gridwalk")
	fs.StringVar(&args.logFile, "log-file", "", "Append logs to this file")
	fs.BoolVar(&args.verbose, "verbose", false, "Enable debug logging")
	fs.BoolVar(&args.keys, "keys", false, "Show key bindings and exit")
	fs.BoolVar(&args.version, "version", false, "Show version and exit")

	if err := fs.Parse(argv); err != nil {
		return args, err
	}
	if fs.NArg() > 0 {
		return args, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	if args.rows < 0 || args.cols < 0 {
		return args, fmt.Errorf("%w: --rows and --cols must be positive", config.ErrInvalidSettings)
	}
	return args, nil
}

func buildCLIOverrides(args cliArgs) *config.Settings {
	s := &config.Settings{
		Rows:    args.rows,
		Cols:    args.cols,
		LogFile: args.logFile,
	}
	if args.verbose {
		s.LogLevel = "debug"
	}
	return s
}
