package life

import (
	"math/rand/v2"
	"sort"
	"time"
)

//default board options
const (
	DefWidth   = 100
	DefHeight  = 100
	DefDensity = 0.2
)

//BoardOptions represents the Board's configurable options
type BoardOptions struct {
	Width  int
	Height int
	Rules  RuleSet
	Rand   *rand.Rand //random source for GenerateRandom, process seeded when nil
}

var DefaultBoardOptions = BoardOptions{
	Width:  DefWidth,
	Height: DefHeight,
	Rules:  DefaultRules,
}

//Board is a bounded grid with hard, non-wrapping edges.
//Only live cells are stored, so a step costs O(live cells + their neighbourhood).
//Board is not safe for concurrent use, callers have to serialise the access
type Board struct {
	width  int
	height int
	rules  RuleSet
	alive  map[Cell]struct{}
	rnd    *rand.Rand
}

//NewBoard creates the Board instance
func NewBoard(o *BoardOptions) *Board {
	if o == nil {
		o = &DefaultBoardOptions
	}
	b := Board{
		width:  clampSize(o.Width),
		height: clampSize(o.Height),
		rules:  o.Rules,
		alive:  map[Cell]struct{}{},
		rnd:    o.Rand,
	}
	if b.rnd == nil {
		b.rnd = NewRand(time.Now().UnixNano())
	}
	return &b
}

//NewRand creates a deterministic random source for the seed
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), 0))
}

func (b *Board) Width() int {
	return b.width
}

func (b *Board) Height() int {
	return b.height
}

func (b *Board) Rules() RuleSet {
	return b.rules
}

//SetRules parses the rule text and makes it active, malformed text activates DefaultRules
func (b *Board) SetRules(text string) RuleSet {
	b.rules = ParseRules(text)
	return b.rules
}

func (b *Board) SetRuleSet(r RuleSet) {
	b.rules = r
}

//Population returns the count of live cells
func (b *Board) Population() int {
	return len(b.alive)
}

func (b *Board) IsAlive(c Cell) bool {
	_, ok := b.alive[c]
	return ok
}

//AliveCells returns a copy of the live cells sorted row by row
func (b *Board) AliveCells() []Cell {
	cells := make([]Cell, 0, len(b.alive))
	for c := range b.alive {
		cells = append(cells, c)
	}
	sort.Slice(cells, func(i, j int) bool { return cells[i].less(cells[j]) })
	return cells
}

//Step calculates the next generation and replaces the current one
func (b *Board) Step() StepResult {
	//count live neighbours of every cell adjacent to a live cell, off-board cells are dropped
	neighbours := make(map[Cell]int, len(b.alive)*4)
	for c := range b.alive {
		for _, d := range neighbourhood {
			n := c.Add(d)
			if n.In(b.width, b.height) {
				neighbours[n]++
			}
		}
	}

	var res StepResult
	next := make(map[Cell]struct{}, len(b.alive))
	for c := range b.alive {
		if b.rules.CanSurvive(neighbours[c]) {
			next[c] = struct{}{}
		} else {
			res.Died++
		}
	}
	for c, count := range neighbours {
		if _, ok := b.alive[c]; ok {
			continue
		}
		if b.rules.CanBeBorn(count) {
			next[c] = struct{}{}
			res.Born++
		}
	}
	b.alive = next
	return res
}

//GenerateRandom clears the board and settles every cell with probability density.
//density is clamped to [0,1]
func (b *Board) GenerateRandom(density float64) {
	b.Clear()
	if density <= 0 {
		return
	}
	if density > 1 {
		density = 1
	}
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			if b.rnd.Float64() < density {
				b.alive[Cell{x, y}] = struct{}{}
			}
		}
	}
}

//Resize changes the board dimensions and kills the cells outside the new bounds.
//Negative sizes are treated as zero which leaves the board empty
func (b *Board) Resize(width int, height int) {
	b.width = clampSize(width)
	b.height = clampSize(height)
	for c := range b.alive {
		if !c.In(b.width, b.height) {
			delete(b.alive, c)
		}
	}
}

//ToggleCell inverses the cell state and returns the new one.
//Cells outside the board are ignored
func (b *Board) ToggleCell(c Cell) bool {
	if !c.In(b.width, b.height) {
		return false
	}
	if _, ok := b.alive[c]; ok {
		delete(b.alive, c)
		return false
	}
	b.alive[c] = struct{}{}
	return true
}

//PasteTemplate settles the template cells shifted by anchor and returns how many landed on the board.
//Cells falling outside the board are dropped one by one, existing cells are kept
func (b *Board) PasteTemplate(anchor Cell, t Template) int {
	placed := 0
	for _, d := range t.Cells {
		c := anchor.Add(d)
		if !c.In(b.width, b.height) {
			continue
		}
		b.alive[c] = struct{}{}
		placed++
	}
	return placed
}

//SetState replaces the whole board state.
//Cells outside the new dimensions are filtered out
func (b *Board) SetState(s State) {
	b.width = clampSize(s.Width)
	b.height = clampSize(s.Height)
	b.rules = s.Rules
	b.alive = make(map[Cell]struct{}, len(s.Cells))
	for _, c := range s.Cells {
		if c.In(b.width, b.height) {
			b.alive[c] = struct{}{}
		}
	}
}

//State returns the snapshot of the board
func (b *Board) State() State {
	return State{
		Width:  b.width,
		Height: b.height,
		Rules:  b.rules,
		Cells:  b.AliveCells(),
	}
}

//Clear kills all cells, dimensions and rules are kept
func (b *Board) Clear() {
	b.alive = map[Cell]struct{}{}
}

func clampSize(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
