// Package core contains the main struct of the software.
package core

import (
	"bufio"
	"context"
	_ "embed"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"

	"github.com/bluenviron/multilog/internal/conf"
	"github.com/bluenviron/multilog/internal/confwatcher"
	"github.com/bluenviron/multilog/internal/logger"
)

//go:generate go run ./versiongetter

//go:embed VERSION
var version string

var defaultConfPaths = []string{
	"multilog.yml",
	"/usr/local/etc/multilog.yml",
	"/usr/etc/multilog.yml",
	"/etc/multilog/multilog.yml",
}

const maxLineSize = 1024 * 1024

type cli struct {
	Version  bool   `help:"print version"`
	Level    string `help:"level of logged lines" enum:"debug,info,error" default:"info"`
	Confpath string `arg:"" optional:""`
}

// Core is an instance of multilog.
// It logs every line read from its input.
type Core struct {
	ctx         context.Context
	ctxCancel   func()
	confPath    string
	level       logger.Level
	input       io.Reader
	logger      *logger.Logger
	confWatcher *confwatcher.ConfWatcher

	// out
	done chan struct{}
}

// New allocates a core that reads the standard input.
func New(args []string) (*Core, bool) {
	return newCore(args, os.Stdin)
}

func newCore(args []string, input io.Reader) (*Core, bool) {
	var c cli

	parser, err := kong.New(&c,
		kong.Description("multilog "+version),
		kong.UsageOnError(),
		kong.ValueFormatter(func(value *kong.Value) string {
			switch value.Name {
			case "confpath":
				return "path to a config file. The default is multilog.yml."

			default:
				return kong.DefaultHelpValueFormatter(value)
			}
		}))
	if err != nil {
		panic(err)
	}

	_, err = parser.Parse(args)
	parser.FatalIfErrorf(err)

	if c.Version {
		fmt.Println(version)
		os.Exit(0)
	}

	ctx, ctxCancel := context.WithCancel(context.Background())

	p := &Core{
		ctx:       ctx,
		ctxCancel: ctxCancel,
		input:     input,
		done:      make(chan struct{}),
	}

	p.level, _ = logger.ParseLevel(c.Level)

	cnf, confPath, err := conf.Load(c.Confpath, defaultConfPaths)
	if err != nil {
		fmt.Printf("ERR: %s\n", err)
		return nil, false
	}
	p.confPath = confPath

	err = p.createResources(cnf)
	if err != nil {
		fmt.Printf("ERR: %s\n", err)
		p.closeResources()
		return nil, false
	}

	go p.run()

	return p, true
}

// Close closes Core and waits for all goroutines to return.
func (p *Core) Close() {
	p.ctxCancel()
	<-p.done
}

// Wait waits for the Core to exit.
func (p *Core) Wait() {
	<-p.done
}

// Log implements logger.Writer.
func (p *Core) Log(level logger.Level, format string, args ...any) {
	if l := logger.GetLogger(); l != nil {
		l.Log(level, format, args...)
	}
}

func (p *Core) createResources(cnf *conf.Conf) error {
	var err error
	p.logger, err = logger.CreateLogger(cnf)
	if err != nil {
		return err
	}
	logger.SetLogger(p.logger)

	logger.InfoLog("multilog %s", version)
	if p.confPath == "" {
		logger.InfoLog("configuration file not found, using an empty configuration")
	} else {
		p.confWatcher = &confwatcher.ConfWatcher{
			FilePath: p.confPath,
			Parent:   p,
		}
		err = p.confWatcher.Initialize()
		if err != nil {
			p.confWatcher = nil
			return err
		}
	}

	return nil
}

func (p *Core) closeResources() {
	if p.confWatcher != nil {
		p.confWatcher.Close()
		p.confWatcher = nil
	}

	if p.logger != nil {
		if logger.GetLogger() == p.logger {
			logger.SetLogger(nil)
		}
		p.logger.Close()
		p.logger = nil
	}
}

// reloadConf replaces the process-wide logger.
// On failure the current logger is kept and the error is logged.
func (p *Core) reloadConf() error {
	cnf, _, err := conf.Load(p.confPath, nil)
	if err != nil {
		return logger.ErrorLog("%s", err)
	}

	// RecreateLogger reports its own errors
	newLogger, err := logger.RecreateLogger(cnf)
	if err != nil {
		return err
	}

	logger.SetLogger(newLogger)
	p.logger.Close()
	p.logger = newLogger

	return nil
}

func (p *Core) readInput() chan string {
	lines := make(chan string)

	go func() {
		defer close(lines)

		scanner := bufio.NewScanner(p.input)
		scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-p.ctx.Done():
				return
			}
		}

		if err := scanner.Err(); err != nil {
			logger.ErrorLog("unable to read input: %v", err) //nolint:errcheck
		}
	}()

	return lines
}

func (p *Core) logLine(line string) {
	switch p.level {
	case logger.Debug:
		logger.DebugLog("%s", line)

	case logger.Error:
		logger.ErrorLog("%s", line) //nolint:errcheck

	default:
		logger.InfoLog("%s", line)
	}
}

func (p *Core) run() {
	defer close(p.done)

	confChanged := func() chan struct{} {
		if p.confWatcher != nil {
			return p.confWatcher.Watch()
		}
		return make(chan struct{})
	}()

	lines := p.readInput()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	defer signal.Stop(interrupt)

outer:
	for {
		select {
		case line, ok := <-lines:
			if !ok {
				break outer
			}
			p.logLine(line)

		case _, ok := <-confChanged:
			if !ok {
				confChanged = nil
				continue
			}

			logger.InfoLog("reloading configuration (file changed)")

			p.reloadConf() //nolint:errcheck

		case <-interrupt:
			logger.InfoLog("shutting down gracefully")
			break outer

		case <-p.ctx.Done():
			break outer
		}
	}

	p.ctxCancel()

	p.closeResources()
}
