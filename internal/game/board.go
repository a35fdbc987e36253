package game

// MinSize is the smallest board edge; smaller requests are clamped up to it.
const MinSize = 3

// Position addresses a cell by 0-based row and column. It is not bounded by
// itself; use Board.IsInside to check it against a concrete board.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Board is a square grid of marks plus the frontier mask used to restrict
// search candidates to the neighbourhood of played cells.
type Board struct {
	size     int
	cells    []PlayerMark
	frontier []bool
}

// NewBoard creates an empty size×size board.
func NewBoard(size int) Board {
	if size < MinSize {
		size = MinSize
	}
	return Board{
		size:     size,
		cells:    make([]PlayerMark, size*size),
		frontier: make([]bool, size*size),
	}
}

func (b Board) Size() int {
	return b.size
}

// IsInside reports whether pos lies on the board.
func (b Board) IsInside(pos Position) bool {
	return pos.Row >= 0 && pos.Col >= 0 && pos.Row < b.size && pos.Col < b.size
}

// At returns the mark at pos. pos must be inside the board.
func (b Board) At(pos Position) PlayerMark {
	return b.cells[b.index(pos)]
}

// Frontier reports whether pos is within one cell of any played cell.
func (b Board) Frontier(pos Position) bool {
	return b.frontier[b.index(pos)]
}

// IsFull reports whether no empty cell is left.
func (b Board) IsFull() bool {
	for _, cell := range b.cells {
		if cell == None {
			return false
		}
	}
	return true
}

// Rows copies the board into a slice of rows, for rendering.
func (b Board) Rows() [][]PlayerMark {
	rows := make([][]PlayerMark, b.size)
	for r := range rows {
		rows[r] = make([]PlayerMark, b.size)
		copy(rows[r], b.cells[r*b.size:(r+1)*b.size])
	}
	return rows
}

// Clone returns a deep copy; the clone shares no storage with b.
func (b Board) Clone() Board {
	clone := Board{size: b.size}
	clone.cells = make([]PlayerMark, len(b.cells))
	copy(clone.cells, b.cells)
	clone.frontier = make([]bool, len(b.frontier))
	copy(clone.frontier, b.frontier)
	return clone
}

func (b *Board) set(pos Position, mark PlayerMark) {
	b.cells[b.index(pos)] = mark
}

// markFrontier flags pos and its eight neighbours.
func (b *Board) markFrontier(pos Position) {
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			n := Position{Row: pos.Row + dr, Col: pos.Col + dc}
			if b.IsInside(n) {
				b.frontier[b.index(n)] = true
			}
		}
	}
}

func (b Board) index(pos Position) int {
	return pos.Row*b.size + pos.Col
}
