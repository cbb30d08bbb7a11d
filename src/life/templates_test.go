package life

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTemplates_Catalog(t *testing.T) {
	list := Templates()
	require.NotEmpty(t, list)

	names := map[string]bool{}
	for _, tmpl := range list {
		key := strings.ToLower(tmpl.Name)
		require.False(t, names[key], "duplicate template %q", tmpl.Name)
		names[key] = true
		require.NotEmpty(t, tmpl.Cells, tmpl.Name)
	}

	require.Equal(t, list, Templates(), "order must be stable")

	blinker, ok := TemplateByName("BLINKER")
	require.True(t, ok)
	require.Len(t, blinker.Cells, 3)

	block, ok := TemplateByName("block")
	require.True(t, ok)
	require.Len(t, block.Cells, 4)

	_, ok = TemplateByName("no such thing")
	require.False(t, ok)
}

func TestTemplates_AreCopies(t *testing.T) {
	list := Templates()
	list[0].Cells[0] = Cell{100, 100}
	list[0].Name = "changed"
	require.NotEqual(t, list[0], Templates()[0])

	tmpl, _ := TemplateByName("Glider")
	tmpl.Cells[0] = Cell{100, 100}
	again, _ := TemplateByName("Glider")
	require.Equal(t, Cell{1, 0}, again.Cells[0])
}

func TestTemplate_Bounds(t *testing.T) {
	tmpl, _ := TemplateByName("Pentadecathlon")
	w, h := tmpl.Bounds()
	require.Equal(t, 10, w)
	require.Equal(t, 3, h)

	w, h = Template{}.Bounds()
	require.Zero(t, w)
	require.Zero(t, h)
}

func TestTemplates_Behaviour(t *testing.T) {
	block, _ := TemplateByName("Block")
	b := newTestBoard(10, 10)
	b.PasteTemplate(Cell{3, 3}, block)
	require.False(t, b.Step().Changed())

	blinker, _ := TemplateByName("Blinker")
	b = newTestBoard(10, 10)
	b.PasteTemplate(Cell{3, 3}, blinker)
	start := b.AliveCells()
	b.Step()
	require.NotEqual(t, start, b.AliveCells())
	b.Step()
	require.Equal(t, start, b.AliveCells())
}
