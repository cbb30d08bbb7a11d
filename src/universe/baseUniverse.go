package universe

import (
	"context"
	"errors"
	"fmt"
	"io"
	"lifeboard/src/life"
	"log"
	"os"
	"strings"
	"sync"
	"time"
)

//Options represents the Universe's configurable options
type Options struct {
	Width    int
	Height   int
	Rules    string
	Density  float64 //share of live cells for SettleWithRandomData
	Interval time.Duration
	MaxSteps int   //0 means no limit
	Seed     int64 //random seed, 0 seeds from the clock
	Logger   *log.Logger
}

//Status represents the status of the Universe at concrete moment
type Status struct {
	IterationNum  int
	RunningMode   RunningState
	LiveCells     int
	Born          int //total born since the last reset
	Died          int //total died since the last reset
	LastStep      life.StepResult
	IterationTime time.Duration
	Rules         string
	Width         int
	Height        int
}

//Snapshot is the status together with the live cells, it is what the viewers render
type Snapshot struct {
	Status
	Cells []life.Cell
}

//Viewer is the interface to any Viewer - the object who can display simulation data or control the engine.
//Refresh is called from the universe main loop and must not call back into the universe
type Viewer interface {
	Refresh(s Snapshot)
	Register(u Universe)
	Start()
}

//The universe running status at the concrete moment
type RunningState int

//default options
const (
	DefSimulationInterval = time.Millisecond * 100
	DefMaxSteps           = 1000
	DefWidth              = life.DefWidth
	DefHeight             = life.DefHeight
	DefDensity            = 0.25
)

const (
	RunningStateManual RunningState = iota
	RunningStateStep
	RunningStateRun
	RunningStateFinished
)

var (
	ErrClosed          = errors.New("universe is closed")
	ErrUnknownTemplate = errors.New("unknown template")
)

var DefaultUniverseOptions = Options{
	Width:    DefWidth,
	Height:   DefHeight,
	Rules:    life.DefaultRuleText,
	Density:  DefDensity,
	Interval: DefSimulationInterval,
	MaxSteps: DefMaxSteps,
}

func (s RunningState) String() string {
	switch s {
	case RunningStateManual:
		return "manual"
	case RunningStateStep:
		return "step"
	case RunningStateRun:
		return "run"
	case RunningStateFinished:
		return "finished"
	}
	return fmt.Sprintf("RunningState(%d)", int(s))
}

//BaseUniverse is the base universe's engine
//implements Universe interface
//the board and the counters are owned by the main loop goroutine, every call is sent to it as a closure
type BaseUniverse struct {
	options Options
	state   struct {
		Status
		sync.Mutex
	}
	board     *life.Board
	stats     life.Stats
	stateCh   chan Status
	views     []Viewer
	templates []life.Template
	controlCh chan func()
	quit      chan struct{}
	closeOnce sync.Once
	cancelRun context.CancelFunc
	log       *log.Logger
}

//NewBaseUniverse creates the BaseUniverse instance
//stateCh may be nil, otherwise every running state switch is written to it
func NewBaseUniverse(o *Options, stateCh chan Status) *BaseUniverse {
	if o == nil {
		o = &DefaultUniverseOptions
	}
	u := BaseUniverse{
		options:   *o,
		controlCh: make(chan func()),
		quit:      make(chan struct{}),
		stateCh:   stateCh,
		templates: life.Templates(),
		log:       o.Logger,
	}
	if u.log == nil {
		u.log = log.Default()
	}

	bo := life.BoardOptions{
		Width:  o.Width,
		Height: o.Height,
		Rules:  u.parseRules(o.Rules),
	}
	if o.Seed != 0 {
		bo.Rand = life.NewRand(o.Seed)
	}
	u.board = life.NewBoard(&bo)
	u.updateStatus()

	go u.mainLoop()
	return &u
}

//AddTemplate adds the seeding template to the internal storage, the template with the same name is replaced
//the universe can be populated with this template by call SettleTemplate
func (u *BaseUniverse) AddTemplate(tmpl life.Template) {
	_ = u.exec(func() {
		for i := range u.templates {
			if strings.EqualFold(u.templates[i].Name, tmpl.Name) {
				u.templates[i] = tmpl
				return
			}
		}
		u.templates = append(u.templates, tmpl)
	})
}

//Templates returns the known templates in the order they were added
func (u *BaseUniverse) Templates() (res []life.Template) {
	_ = u.exec(func() {
		res = append(res, u.templates...)
	})
	return
}

//SettleTemplate pastes the template with its origin at point x, y
func (u *BaseUniverse) SettleTemplate(name string, x int, y int) error {
	var found bool
	err := u.exec(func() {
		for _, t := range u.templates {
			if strings.EqualFold(t.Name, name) {
				found = true
				u.board.PasteTemplate(life.Cell{X: x, Y: y}, t)
				u.changed()
				return
			}
		}
	})
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("%w %q", ErrUnknownTemplate, name)
	}
	return nil
}

//SettleWithRandomData clears the universe and populates it with random data
//does nothing while the simulation is running
func (u *BaseUniverse) SettleWithRandomData() {
	_ = u.exec(func() {
		if u.state.RunningMode == RunningStateRun {
			return
		}
		u.stats.Reset()
		u.board.GenerateRandom(u.options.Density)
		u.switchRunningState(RunningStateManual)
		u.changed()
	})
}

//InverseCell inverses the cell state at point x, y
func (u *BaseUniverse) InverseCell(x int, y int) {
	_ = u.exec(func() {
		u.board.ToggleCell(life.Cell{X: x, Y: y})
		u.changed()
	})
}

//Resize changes the field size, the cells outside the new size die
func (u *BaseUniverse) Resize(width int, height int) {
	_ = u.exec(func() {
		u.board.Resize(width, height)
		u.options.Width, u.options.Height = u.board.Width(), u.board.Height()
		u.changed()
	})
}

//SetRules activates the rules, the malformed rule text activates the default rules
func (u *BaseUniverse) SetRules(text string) (r life.RuleSet) {
	r = u.parseRules(text)
	_ = u.exec(func() {
		u.board.SetRuleSet(r)
		u.options.Rules = r.String()
		u.changed()
	})
	return
}

//Save writes the board state in the text form
func (u *BaseUniverse) Save(w io.Writer) error {
	var st life.State
	if err := u.exec(func() { st = u.board.State() }); err != nil {
		return err
	}
	return life.Encode(w, st)
}

//Load replaces the board state with the data read from r and resets all counters
//the board stays untouched when the data can't be decoded
func (u *BaseUniverse) Load(r io.Reader) error {
	st, err := life.Decode(r)
	if err != nil {
		return fmt.Errorf("load board: %w", err)
	}
	return u.exec(func() {
		u.haltRun()
		u.board.SetState(st)
		u.stats.Reset()
		u.options.Width, u.options.Height = u.board.Width(), u.board.Height()
		u.options.Rules = u.board.Rules().String()
		u.switchRunningState(RunningStateManual)
		u.changed()
	})
}

//SaveFile saves the board state to the file
func (u *BaseUniverse) SaveFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err = u.Save(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

//LoadFile loads the board state from the file
func (u *BaseUniverse) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err = u.Load(f); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	u.log.Printf("loaded %s", path)
	return nil
}

//RegisterViewer registers the viewer - the universe will call the viewer when the state is changed
func (u *BaseUniverse) RegisterViewer(v Viewer) {
	v.Register(u)
	_ = u.exec(func() {
		u.views = append(u.views, v)
		v.Refresh(u.snapshot())
	})
}

//StateCh returns the channel with the universe's status updates
func (u *BaseUniverse) StateCh() chan Status {
	return u.stateCh
}

//Status returns current universe status represented by Status struct
func (u *BaseUniverse) Status() Status {
	u.state.Lock()
	defer u.state.Unlock()
	return u.state.Status
}

//Snapshot returns current universe status together with the live cells
func (u *BaseUniverse) Snapshot() (s Snapshot) {
	_ = u.exec(func() { s = u.snapshot() })
	return
}

//Options returns current universe configuration represented by Options struct
func (u *BaseUniverse) Options() (o Options) {
	//a closed universe returns the zero Options
	_ = u.exec(func() { o = u.options })
	return
}

//Run starts the universe simulation, returns immediately
func (u *BaseUniverse) Run() {
	_ = u.exec(u.run)
}

//Stop stops the universe simulation
//no step is done after Stop returns
func (u *BaseUniverse) Stop() {
	_ = u.exec(u.stop)
}

//Step does one simulation step
func (u *BaseUniverse) Step() {
	_ = u.exec(func() { u.step() })
}

//Clear clears the universe (kill all cells and reset all counters)
func (u *BaseUniverse) Clear() {
	_ = u.exec(u.clear)
}

//Close stops the simulation and the main loop
func (u *BaseUniverse) Close() {
	_ = u.exec(u.haltRun)
	u.closeOnce.Do(func() {
		close(u.quit)
	})
}

//mainLoop - the main cycle, should start as a goroutine
//waits for command and executes
func (u *BaseUniverse) mainLoop() {
	for {
		select {
		case cmd := <-u.controlCh:
			cmd()
		case <-u.quit:
			return
		}
	}
}

//exec runs cmd in the main loop and waits until it is done
//ErrClosed means cmd has not been run
//must not be called from the main loop itself
func (u *BaseUniverse) exec(cmd func()) error {
	done := make(chan struct{})
	select {
	case u.controlCh <- func() {
		defer close(done)
		cmd()
	}:
	case <-u.quit:
		return ErrClosed
	}
	//the loop runs a received command to the end before it looks at quit
	<-done
	return nil
}

//parseRules parses the rule text, the fallback to the default rules is logged
func (u *BaseUniverse) parseRules(text string) life.RuleSet {
	r, err := life.ParseRulesStrict(text)
	if err != nil {
		u.log.Printf("error parsing rules: %v, reverting to %s", err, life.DefaultRuleText)
	}
	return r
}

//switchRunningState switch the state of the universe to RunningState
//also writes the new state to the stateCh to signal upper control software
func (u *BaseUniverse) switchRunningState(to RunningState) {
	u.state.Lock()
	u.state.RunningMode = to
	st := u.state.Status
	u.state.Unlock()
	if u.stateCh != nil {
		select {
		case u.stateCh <- st:
		case <-u.quit:
		}
	}
}

//updateStatus copies the board and counters data to the status
func (u *BaseUniverse) updateStatus() {
	u.state.Lock()
	defer u.state.Unlock()
	u.state.IterationNum = u.stats.Generation
	u.state.Born = u.stats.Born
	u.state.Died = u.stats.Died
	u.state.LiveCells = u.board.Population()
	u.state.Rules = u.board.Rules().String()
	u.state.Width = u.board.Width()
	u.state.Height = u.board.Height()
}

//changed refreshes the status and the views after the board mutation
func (u *BaseUniverse) changed() {
	u.updateStatus()
	u.refreshView()
}

func (u *BaseUniverse) snapshot() Snapshot {
	return Snapshot{Status: u.Status(), Cells: u.board.AliveCells()}
}

//run starts the universe simulation
//simulation will stop on Stop() calling or when the boundary conditions are reached
func (u *BaseUniverse) run() {
	if u.cancelRun != nil {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	u.cancelRun = cancel
	u.switchRunningState(RunningStateRun)
	go u.runLoop(ctx, u.options.Interval)
}

//runLoop submits one step per interval until ctx is cancelled or the simulation is finished
func (u *BaseUniverse) runLoop(ctx context.Context, interval time.Duration) {
	var tick <-chan time.Time
	if interval > 0 {
		t := time.NewTicker(interval)
		defer t.Stop()
		tick = t.C
	}
	for {
		finished := false
		err := u.exec(func() {
			//the run could be stopped while this step was waiting in the queue
			if ctx.Err() != nil {
				finished = true
				return
			}
			finished = u.step()
		})
		if err != nil || finished {
			return
		}
		if tick == nil {
			if ctx.Err() != nil {
				return
			}
			continue
		}
		select {
		case <-ctx.Done():
			return
		case <-tick:
		}
	}
}

//haltRun cancels the running cycle, if any
func (u *BaseUniverse) haltRun() {
	if u.cancelRun != nil {
		u.cancelRun()
		u.cancelRun = nil
	}
}

//stop stops the universe running cycle
func (u *BaseUniverse) stop() {
	u.haltRun()
	if u.state.RunningMode == RunningStateRun {
		u.switchRunningState(RunningStateManual)
	}
}

//step does the new one state calculation for entire universe
//returns true when the simulation can't go on: the steps limit is reached or nothing has changed
func (u *BaseUniverse) step() (finished bool) {
	rm := u.state.RunningMode
	if rm == RunningStateFinished {
		rm = RunningStateManual
	}
	maxIter := u.options.MaxSteps
	if maxIter != 0 && u.stats.Generation >= maxIter {
		u.haltRun()
		u.switchRunningState(RunningStateFinished)
		return true
	}
	u.switchRunningState(RunningStateStep)

	start := time.Now()
	res := u.board.Step()
	u.stats.Update(res)
	u.state.Lock()
	u.state.LastStep = res
	u.state.IterationTime = time.Since(start)
	u.state.Unlock()
	u.updateStatus()

	finished = !res.Changed() || u.board.Population() == 0 ||
		(maxIter != 0 && u.stats.Generation >= maxIter)
	if finished {
		u.haltRun()
		u.switchRunningState(RunningStateFinished)
	} else {
		u.switchRunningState(rm)
	}
	u.refreshView()
	return
}

//clear clears the universe data, reset all counters
func (u *BaseUniverse) clear() {
	u.haltRun()
	u.board.Clear()
	u.stats.Reset()
	u.state.Lock()
	u.state.LastStep = life.StepResult{}
	u.state.IterationTime = 0
	u.state.Unlock()
	u.switchRunningState(RunningStateManual)
	u.changed()
}

//refreshView calls Refresh event for all registered views
func (u *BaseUniverse) refreshView() {
	if len(u.views) == 0 {
		return
	}
	s := u.snapshot()
	for _, v := range u.views {
		v.Refresh(s)
	}
}
