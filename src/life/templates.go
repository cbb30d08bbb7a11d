package life

import "strings"

//Template is a named shape which can be pasted onto a board.
//Cells are offsets from the template origin (0,0)
type Template struct {
	Name  string
	Descr string
	Cells []Cell
}

//catalog is the list of built-in templates, order is part of the contract
var catalog = []Template{
	{
		"Glider",
		"the smallest spaceship, travels diagonally",
		[]Cell{{1, 0}, {2, 1}, {0, 2}, {1, 2}, {2, 2}},
	},
	{
		"Blinker",
		"period 2 oscillator",
		[]Cell{{0, 0}, {1, 0}, {2, 0}},
	},
	{
		"Block",
		"2x2 still life",
		[]Cell{{0, 0}, {1, 0}, {0, 1}, {1, 1}},
	},
	{
		"Pentadecathlon",
		"period 15 oscillator",
		[]Cell{
			{0, 1}, {1, 1}, {2, 0}, {2, 2}, {3, 1}, {4, 1},
			{5, 1}, {6, 1}, {7, 0}, {7, 2}, {8, 1}, {9, 1},
		},
	},
	{
		"Fountain",
		"symmetric methuselah",
		[]Cell{
			{1, 1}, {4, 1}, {1, 2}, {4, 2},
			{2, 1}, {5, 1}, {2, 2}, {5, 2},
			{2, 3}, {4, 3}, {2, 4}, {4, 4},
			{2, 5}, {4, 5}, {1, 6}, {5, 6},
			{0, 6}, {6, 6}, {0, 5}, {6, 5},
			{0, 4}, {6, 4},
		},
	},
	{
		"Test sample",
		"small seed which settles into still lifes",
		[]Cell{{1, 1}, {1, 2}, {2, 1}, {2, 2}, {3, 3}, {4, 2}, {4, 3}, {5, 3}},
	},
}

//Templates returns the built-in templates.
//The result is a copy, callers are free to modify it
func Templates() []Template {
	res := make([]Template, len(catalog))
	for i, t := range catalog {
		res[i] = t.clone()
	}
	return res
}

//TemplateByName looks up a built-in template, the name is case-insensitive
func TemplateByName(name string) (Template, bool) {
	for _, t := range catalog {
		if strings.EqualFold(t.Name, name) {
			return t.clone(), true
		}
	}
	return Template{}, false
}

//Bounds returns the size of the smallest box holding every template cell anchored at the origin
func (t Template) Bounds() (w int, h int) {
	for _, c := range t.Cells {
		if c.X+1 > w {
			w = c.X + 1
		}
		if c.Y+1 > h {
			h = c.Y + 1
		}
	}
	return
}

func (t Template) clone() Template {
	t.Cells = append([]Cell(nil), t.Cells...)
	return t
}
