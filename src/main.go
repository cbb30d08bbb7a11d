package main

import (
	"context"
	"github.com/integrii/flaggy"
	"golang.org/x/sync/errgroup"
	"io"
	"lifeboard/src/life"
	"lifeboard/src/universe"
	"lifeboard/src/view"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
)

type EnvOptions struct {
	interactive bool
	randomData  bool
	template    string
	loadPath    string
	savePath    string
	logPath     string
}

func main() {
	eo, uo := initOptions()
	if err := run(eo, uo); err != nil {
		log.Fatal(err)
	}
}

func run(eo *EnvOptions, uo *universe.Options) error {
	logger, closeLog, err := newLogger(eo)
	if err != nil {
		return err
	}
	defer closeLog()
	uo.Logger = logger

	var stateCh chan universe.Status
	if !eo.interactive {
		stateCh = make(chan universe.Status, 10) //the buffered channel to getting the universe status
	}

	u := universe.NewBaseUniverse(uo, stateCh)
	defer u.Close()

	if err = settle(u, eo); err != nil {
		return err
	}

	if eo.interactive {
		v, err := view.NewViewTerminal(eo.savePath)
		if err != nil {
			return err
		}
		u.RegisterViewer(v)
		v.Start()
		return nil
	}

	out := view.NewConsoleOut(os.Stdout, 10, true)
	u.RegisterViewer(out)
	out.Start()
	if err = runBatch(u, stateCh); err != nil {
		return err
	}
	if eo.savePath != "" {
		if err = u.SaveFile(eo.savePath); err != nil {
			return err
		}
		logger.Printf("saved to %s", eo.savePath)
	}
	return nil
}

//runBatch runs the simulation until it is finished or interrupted by a signal
func runBatch(u universe.Universe, stateCh chan universe.Status) error {
	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(sigCtx)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		//stop the universe on a signal, after the finish it does nothing
		<-ctx.Done()
		u.Stop()
		return nil
	})
	g.Go(func() error {
		defer cancel()
		for st := range stateCh {
			if st.RunningMode == universe.RunningStateFinished {
				return nil
			}
			if st.RunningMode == universe.RunningStateManual && ctx.Err() != nil {
				return nil
			}
		}
		return nil
	})

	u.Run()
	return g.Wait()
}

//settle populates the universe with the saved board, random data or the template
func settle(u universe.Universe, eo *EnvOptions) error {
	switch {
	case eo.loadPath != "":
		return u.LoadFile(eo.loadPath)
	case eo.randomData:
		u.SettleWithRandomData()
		return nil
	}
	tmpl, ok := life.TemplateByName(eo.template)
	if !ok {
		flaggy.ShowHelpAndExit("unknown template " + eo.template)
	}
	//centre the template
	st := u.Status()
	w, h := tmpl.Bounds()
	return u.SettleTemplate(tmpl.Name, (st.Width-w)/2, (st.Height-h)/2)
}

func newLogger(eo *EnvOptions) (*log.Logger, func(), error) {
	switch {
	case eo.logPath != "":
		f, err := os.OpenFile(eo.logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, err
		}
		return log.New(f, "lifeboard: ", log.LstdFlags), func() { _ = f.Close() }, nil
	case eo.interactive:
		//the terminal belongs to the UI
		return log.New(io.Discard, "", 0), func() {}, nil
	}
	return log.New(os.Stderr, "lifeboard: ", log.LstdFlags), func() {}, nil
}

func initOptions() (eo *EnvOptions, uo *universe.Options) {
	o := universe.DefaultUniverseOptions
	uo = &o
	templateNames := make([]string, 0)
	for _, t := range life.Templates() {
		templateNames = append(templateNames, t.Name)
	}
	eo = &EnvOptions{template: "Test sample"}

	flaggy.SetName("lifeboard")
	flaggy.SetDescription("\"The Life\" game simulation on a bounded field with custom rules")
	flaggy.DefaultParser.ShowHelpOnUnexpected = true
	flaggy.Int(&uo.Width, "x", "width", "Width of a simulation field")
	flaggy.Int(&uo.Height, "y", "height", "Height of a simulation field")
	flaggy.Duration(&uo.Interval, "i", "interval", "Simulation speed (interval between the steps) in format the number with 'ms' suffix, for example 150ms")
	flaggy.Int(&uo.MaxSteps, "s", "maxSteps", "Limit the simulation to maxSteps, 0 means no limit")
	flaggy.String(&uo.Rules, "b", "rules", "Birth/survival rules, for example B3/S23 or B36/S23")
	flaggy.Float64(&uo.Density, "d", "density", "Share of live cells for the random data, from 0 to 1")
	flaggy.Int64(&uo.Seed, "", "seed", "Random seed, 0 seeds from the clock")
	flaggy.Bool(&eo.interactive, "n", "interactive", "Start interactive mode")
	flaggy.Bool(&eo.randomData, "r", "random", "Settle with random data")
	flaggy.String(&eo.template, "t", "template", "Template to settle ["+strings.Join(templateNames, "|")+"]")
	flaggy.String(&eo.loadPath, "l", "load", "Load the board from the file")
	flaggy.String(&eo.savePath, "o", "save", "Save the board to the file when finished (interactive mode: O key)")
	flaggy.String(&eo.logPath, "", "log", "Write the log to the file")

	flaggy.Parse()

	if uo.Width <= 0 || uo.Height <= 0 {
		flaggy.ShowHelpAndExit("the field size must be positive")
	}

	return
}
