package xbrz

// Supported scale factors.
const (
	MinScale = 2
	MaxScale = 6
)

// rotation is a clockwise 90° step applied to a 3×3 kernel and its
// output block.
type rotation int

const (
	rot0 rotation = iota
	rot90
	rot180
	rot270
	numRotations
)

// cell is a (row, col) position inside an N×N output block.
type cell struct {
	row, col int
}

// cellGrid holds one rotation of one scale, indexed i*MaxScale+j.
type cellGrid [MaxScale * MaxScale]cell

// rotationTable maps (scale, rotation, i, j) to the physical sub-cell a
// blend rule aimed at (i, j) lands on. Blend rules are written for the
// bottom-right corner; the table lets the same rule serve all four.
type rotationTable [MaxScale - MinScale + 1][numRotations]cellGrid

var rotations = buildRotationTable()

func buildRotationTable() *rotationTable {
	t := new(rotationTable)
	for n := MinScale; n <= MaxScale; n++ {
		for r := rot0; r < numRotations; r++ {
			grid := &t[n-MinScale][r]
			for i := 0; i < MaxScale; i++ {
				for j := 0; j < MaxScale; j++ {
					grid[i*MaxScale+j] = rotateCell(r, i, j, n)
				}
			}
		}
	}
	return t
}

// rotateCell derives rotation r from rotation r-1 by turning the n×n grid
// a quarter: (i, j) -> (n-1-j, i).
func rotateCell(r rotation, i, j, n int) cell {
	if r == rot0 {
		return cell{i, j}
	}
	old := rotateCell(r-1, i, j, n)
	return cell{row: n - 1 - old.col, col: old.row}
}

// grids returns the four rotation grids for scale n.
func (t *rotationTable) grids(n int) *[numRotations]cellGrid {
	return &t[n-MinScale]
}

// offset looks up the sub-cell for (i, j) at scale n under rotation r.
func (t *rotationTable) offset(n int, r rotation, i, j int) cell {
	return t[n-MinScale][r][i*MaxScale+j]
}

// outputMatrix addresses one output block through a rotation grid.
type outputMatrix struct {
	dst   []Pixel
	pitch int
	grids *[numRotations]cellGrid
	grid  *cellGrid
	base  int
}

func newOutputMatrix(scale int, dst []Pixel, pitch int) outputMatrix {
	return outputMatrix{dst: dst, pitch: pitch, grids: rotations.grids(scale)}
}

// move points the matrix at the block starting at dst[base], seen
// through rotation r.
func (o *outputMatrix) move(r rotation, base int) {
	o.grid = &o.grids[r]
	o.base = base
}

// ref returns the destination index of sub-cell (i, j).
func (o *outputMatrix) ref(i, j int) int {
	c := o.grid[i*MaxScale+j]
	return o.base + c.row*o.pitch + c.col
}
