package view

import (
	"bytes"
	"fmt"
	"github.com/jroimartin/gocui"
	"github.com/logrusorgru/aurora"
	"lifeboard/src/life"
	"lifeboard/src/universe"
	"strings"
	"sync"
	"time"
)

type keyBindings struct {
	key      interface{}
	name     string
	descr    string
	handler  func(v *gocui.View) error
	viewName string
}

//ConsoleUI is the interactive terminal front-end
type ConsoleUI struct {
	u universe.Universe
	g *gocui.Gui
	k []keyBindings

	mu       sync.Mutex
	last     universe.Snapshot
	template int

	liveFiller string
	deadFiller string
	savePath   string
}

var (
	runningStateDescr = map[universe.RunningState]string{
		universe.RunningStateManual:   aurora.Colorize("waiting", aurora.BlueFg).String(),
		universe.RunningStateStep:     "do the step",
		universe.RunningStateRun:      aurora.Colorize("running", aurora.CyanFg).String(),
		universe.RunningStateFinished: aurora.Colorize("finished", aurora.RedFg).String(),
	}
)

//NewViewTerminal creates the terminal UI, savePath is the file written by the save key
func NewViewTerminal(savePath string) (*ConsoleUI, error) {
	var err error
	t := ConsoleUI{
		liveFiller: aurora.Green("█").BgBrightGreen().String(),
		deadFiller: "░",
		savePath:   savePath,
	}

	t.g, err = gocui.NewGui(gocui.OutputNormal)
	if err != nil {
		return nil, fmt.Errorf("init terminal: %w", err)
	}

	t.g.Mouse = true
	t.k = []keyBindings{
		{gocui.KeyCtrlC, "^C", "Exit", t.cmdQuit, ""},
		{'n', "N", "Next step", t.cmdNextRound, ""},
		{'r', "R", "Run", t.cmdRun, ""},
		{'s', "S", "Stop", t.cmdStop, ""},
		{'c', "C", "Clear", t.cmdClear, ""},
		{'w', "W", "Settle with random", t.cmdSettleWithRandom, ""},
		{'t', "T", "Next template", t.cmdNextTemplate, ""},
		{'o', "O", "Save", t.cmdSave, ""},
		{gocui.MouseLeft, "MOUSE", "Settle the cell", t.cmdMouseClick, "battlefield"},
		{gocui.MouseRight, "RMOUSE", "Paste template", t.cmdMousePaste, "battlefield"},
	}
	t.g.SetManagerFunc(t.layout)

	if err = t.initKeyBindings(t.k); err != nil {
		t.g.Close()
		return nil, err
	}

	return &t, nil
}

func (t *ConsoleUI) initKeyBindings(k []keyBindings) error {
	for _, kb := range k {
		h := kb.handler
		if err := t.g.SetKeybinding(kb.viewName, kb.key, gocui.ModNone, func(gui *gocui.Gui, view *gocui.View) error { return h(view) }); err != nil {
			return fmt.Errorf("key binding %s: %w", kb.name, err)
		}
	}
	return nil
}

func (t *ConsoleUI) Register(u universe.Universe) {
	t.u = u
}

//Start runs the terminal main loop until the user quits
func (t *ConsoleUI) Start() {
	defer t.g.Close()
	if err := t.g.MainLoop(); err != nil && err != gocui.ErrQuit {
		t.message(err.Error())
	}
}

func (t *ConsoleUI) Refresh(s universe.Snapshot) {
	t.mu.Lock()
	t.last = s
	t.mu.Unlock()
	t.g.Update(func(g *gocui.Gui) error {
		t.renderField()
		t.renderConfiguration()
		t.renderStatus()
		return nil
	})
}

func (t *ConsoleUI) snapshot() universe.Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.last
}

//renderField must be called from the gocui main loop
func (t *ConsoleUI) renderField() {
	v, e := t.g.View("battlefield")
	if e != nil {
		return
	}
	s := t.snapshot()
	//the entire field is redrawing at once now
	v.Clear()

	maxW, maxH := v.Size()
	w, h := s.Width, s.Height
	crop := w > maxW || h > maxH
	if w > maxW {
		w = maxW
	}
	if h > maxH {
		h = maxH
	}

	rows := make([][]bool, h)
	for i := range rows {
		rows[i] = make([]bool, w)
	}
	for _, c := range s.Cells {
		if c.X < w && c.Y < h {
			rows[c.Y][c.X] = true
		}
	}

	var b bytes.Buffer
	for i, l := range rows {
		//line feed char
		if i != 0 {
			b.WriteByte(10)
		}
		if crop && i == (maxH-1) {
			b.WriteString(aurora.Red("The field size is larger than the viewing area").BgBlack().String())
			break
		}
		for _, e := range l {
			if e {
				b.WriteString(t.liveFiller)
			} else {
				b.WriteString(t.deadFiller)
			}
		}
	}
	_, _ = fmt.Fprint(v, b.String())
}

func (t *ConsoleUI) renderStatus() {
	s := t.snapshot()
	if v, e := t.g.View("status"); e == nil {
		v.Clear()
		_, _ = fmt.Fprintln(v, t.renderProp("Generation", "%v", s.IterationNum))
		_, _ = fmt.Fprintln(v, t.renderProp("Live cells", "%v", s.LiveCells))
		_, _ = fmt.Fprintln(v, t.renderProp("Born", "%v (+%v)", s.Born, s.LastStep.Born))
		_, _ = fmt.Fprintln(v, t.renderProp("Died", "%v (+%v)", s.Died, s.LastStep.Died))
		_, _ = fmt.Fprintln(v, t.renderProp("Evaluation time", "%v", s.IterationTime.Round(time.Microsecond)))
		_, _ = fmt.Fprintln(v, t.renderProp("Mode", "%v", runningStateDescr[s.RunningMode]))
	}
}

func (t *ConsoleUI) renderConfiguration() {
	s := t.snapshot()
	if v, e := t.g.View("configuration"); e == nil {
		c := t.u.Options()
		v.Clear()
		_, _ = fmt.Fprintln(v, t.renderProp("Dimension", "%v x %v", s.Width, s.Height))
		_, _ = fmt.Fprintln(v, t.renderProp("Rules", "%v", s.Rules))
		_, _ = fmt.Fprintln(v, t.renderProp("Interval", "%v", c.Interval))
		_, _ = fmt.Fprintln(v, t.renderProp("Iterations", "%v steps", c.MaxSteps))
		_, _ = fmt.Fprintln(v, t.renderProp("Template", "%v", t.currentTemplate().Name))
	}
}

func (t *ConsoleUI) renderProp(name string, valueformat string, values ...interface{}) string {
	return fmt.Sprintf(" "+aurora.Colorize(name, aurora.GreenFg).String()+": "+valueformat, values...)
}

func (t *ConsoleUI) layout(g *gocui.Gui) error {

	maxX, maxY := g.Size()
	leftColumnWidth := 28
	minWindowHeight := 20

	if maxY < minWindowHeight {
		if _, err := t.headerLayout(g, maxY, "Terminal height too small"); err != nil {
			if err != gocui.ErrUnknownView {
				return err
			}
		}
		_ = g.DeleteView("configuration")
		_ = g.DeleteView("status")
		_ = g.DeleteView("battlefield")
		return nil
	}
	if _, err := t.headerLayout(g, 3, "This is \"The Life\" game simulation"); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
	}

	if v, err := g.SetView("configuration", 0, 3, leftColumnWidth, 3+(maxY-5-3)/2); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Title = "Configuration"
		v.Frame = true
	}
	t.renderConfiguration()

	if v, err := g.SetView("status", 0, 3+(maxY-5-3)/2+1, leftColumnWidth, maxY-5); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Title = "Status"
		v.Frame = true
	}
	t.renderStatus()

	if v, err := g.SetView("battlefield", leftColumnWidth+1, 3, maxX-1, maxY-5); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Title = "Battle Field"
		v.Frame = true
	}
	t.renderField()

	if v, err := g.SetView("help", -1, maxY-5, maxX, maxY-2); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Frame = false
		v.Wrap = true
		b := bytes.Buffer{}
		b.WriteString("KEYBINDINGS: ")
		for i, k := range t.k {
			if i != 0 {
				b.WriteString(", ")
			}
			b.WriteString(aurora.Green(k.name).String())
			b.WriteString(": ")
			b.WriteString(k.descr)
		}
		_, _ = fmt.Fprintln(v, b.String())
	}

	return nil
}

func (t *ConsoleUI) headerLayout(g *gocui.Gui, height int, text string) (v *gocui.View, err error) {
	maxX, _ := g.Size()
	if v, err = g.SetView("header", -1, -1, maxX+1, height); err != nil {
		if err == gocui.ErrUnknownView && v != nil {
			v.Frame = false
			v.BgColor = gocui.ColorCyan
			v.FgColor = gocui.ColorBlack
		}
	}
	if v != nil {
		v.Clear()
		pad := 0
		if maxX > len(text) {
			pad = (maxX - len(text)) / 2
		}
		_, _ = fmt.Fprintln(v, strings.Repeat("\n", height/2+1)+strings.Repeat(" ", pad)+text)
	}
	return
}

//message shows the text in the header
func (t *ConsoleUI) message(text string) {
	t.g.Update(func(g *gocui.Gui) error {
		if v, err := g.View("header"); err == nil {
			v.Clear()
			_, _ = fmt.Fprintln(v, "\n "+text)
		}
		return nil
	})
}

func (t *ConsoleUI) currentTemplate() life.Template {
	list := t.u.Templates()
	if len(list) == 0 {
		return life.Template{}
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return list[t.template%len(list)]
}

func (t *ConsoleUI) cmdQuit(_ *gocui.View) error {
	return gocui.ErrQuit
}

func (t *ConsoleUI) cmdNextRound(_ *gocui.View) error {
	t.u.Step()
	return nil
}

func (t *ConsoleUI) cmdRun(_ *gocui.View) error {
	t.u.Run()
	return nil
}

func (t *ConsoleUI) cmdStop(_ *gocui.View) error {
	t.u.Stop()
	return nil
}

func (t *ConsoleUI) cmdClear(_ *gocui.View) error {
	t.u.Clear()
	return nil
}

func (t *ConsoleUI) cmdSettleWithRandom(_ *gocui.View) error {
	t.u.SettleWithRandomData()
	return nil
}

func (t *ConsoleUI) cmdNextTemplate(_ *gocui.View) error {
	t.mu.Lock()
	t.template++
	t.mu.Unlock()
	t.renderConfiguration()
	return nil
}

func (t *ConsoleUI) cmdSave(_ *gocui.View) error {
	if t.savePath == "" {
		t.message("no save file given, use --save")
		return nil
	}
	if err := t.u.SaveFile(t.savePath); err != nil {
		t.message(err.Error())
		return nil
	}
	t.message("saved to " + t.savePath)
	return nil
}

func (t *ConsoleUI) cmdMouseClick(v *gocui.View) error {
	cx, cy := v.Cursor()
	t.u.InverseCell(cx, cy)
	return nil
}

func (t *ConsoleUI) cmdMousePaste(v *gocui.View) error {
	cx, cy := v.Cursor()
	tmpl := t.currentTemplate()
	if err := t.u.SettleTemplate(tmpl.Name, cx, cy); err != nil {
		t.message(err.Error())
	}
	return nil
}
