package life

//Cell is a grid coordinate, comparable and usable as a map key
type Cell struct {
	X int
	Y int
}

//neighbourhood holds the offsets of the 8 adjacent cells
var neighbourhood = [8]Cell{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

//Add returns the cell shifted by the offset o
func (c Cell) Add(o Cell) Cell {
	return Cell{c.X + o.X, c.Y + o.Y}
}

//In reports whether the cell lies inside [0,width) x [0,height)
func (c Cell) In(width int, height int) bool {
	return c.X >= 0 && c.Y >= 0 && c.X < width && c.Y < height
}

//less orders cells row by row
func (c Cell) less(o Cell) bool {
	if c.Y != o.Y {
		return c.Y < o.Y
	}
	return c.X < o.X
}
