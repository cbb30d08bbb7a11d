package universe

import (
	"io"
	"lifeboard/src/life"
)

//Universe is the driver around a life.Board.
//All the calls are serialised through the single main loop, so it is safe to use them from several goroutines
type Universe interface {
	Status() Status
	Options() Options
	Snapshot() Snapshot
	StateCh() chan Status
	Templates() []life.Template
	AddTemplate(tmpl life.Template)
	SettleTemplate(name string, x int, y int) error
	SettleWithRandomData()
	InverseCell(x int, y int)
	Resize(width int, height int)
	SetRules(text string) life.RuleSet
	Save(w io.Writer) error
	Load(r io.Reader) error
	SaveFile(path string) error
	LoadFile(path string) error
	RegisterViewer(v Viewer)
	Run()
	Stop()
	Step()
	Clear()
	Close()
}
