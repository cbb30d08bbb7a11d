package view

import (
	"fmt"
	"github.com/logrusorgru/aurora"
	"io"
	"lifeboard/src/universe"
	"sort"
	"time"
)

//ConsoleOut prints the simulation progress for the batch mode
type ConsoleOut struct {
	u         universe.Universe
	w         io.Writer
	au        aurora.Aurora
	every     int
	startTime time.Time
}

//NewConsoleOut creates the ConsoleOut which writes to w
//the progress line is printed each every iteration, colors are used when colors is true
func NewConsoleOut(w io.Writer, every int, colors bool) *ConsoleOut {
	if every <= 0 {
		every = 10
	}
	return &ConsoleOut{w: w, every: every, au: aurora.NewAurora(colors)}
}

func (c *ConsoleOut) Refresh(s universe.Snapshot) {
	if s.RunningMode == universe.RunningStateFinished {
		totalTime := time.Since(c.startTime).Round(time.Millisecond)
		resultData := map[string]interface{}{
			"Last iteration": s.IterationNum,
			"Total time":     totalTime,
			"Live cells":     s.LiveCells,
			"Cells born":     s.Born,
			"Cells died":     s.Died,
		}
		fmt.Fprintln(c.w, c.au.Red("\nFinished:"))
		c.printHashData(resultData)
	} else if s.RunningMode == universe.RunningStateRun {
		if s.IterationNum != 0 && s.IterationNum%c.every == 0 {
			fmt.Fprintf(c.w, "  Iterations done: %v, live cells: %v\n", c.au.Cyan(s.IterationNum), s.LiveCells)
		}
	}
}

func (c *ConsoleOut) Register(u universe.Universe) {
	c.u = u
	o := c.u.Options()
	fmt.Fprintln(c.w, c.au.Green("Running configuration:"))
	c.printHashData(map[string]interface{}{
		"Dimension":      fmt.Sprintf("%v x %v", o.Width, o.Height),
		"Interval":       o.Interval,
		"Max iterations": fmt.Sprintf("%v steps", o.MaxSteps),
		"Rules":          o.Rules,
	})
}

func (c *ConsoleOut) Start() {
	c.startTime = time.Now()
	fmt.Fprintln(c.w, "\nSimulation started...")
}

func (c *ConsoleOut) printHashData(d map[string]interface{}) {
	propNames := make([]string, 0, len(d))
	for k := range d {
		propNames = append(propNames, k)
	}
	sort.Strings(propNames)
	for _, propName := range propNames {
		fmt.Fprintf(c.w, "  %s: %v\n", c.au.Green(propName), d[propName])
	}
}
