package game

type direction struct {
	dRow, dCol int
}

// axis pairs two opposite unit vectors.
type axis [2]direction

// axes lists the four line orientations checked for runs: ╲, │, ╱, ─.
var axes = [4]axis{
	{{-1, -1}, {1, 1}},
	{{-1, 0}, {1, 0}},
	{{-1, 1}, {1, -1}},
	{{0, -1}, {0, 1}},
}

func (p Position) step(d direction) Position {
	return Position{Row: p.Row + d.dRow, Col: p.Col + d.dCol}
}

// scan counts the contiguous cells owned by match, starting next to start and
// moving along d. The start cell itself is not inspected.
//
// The terminator is the mark found on the first non-matching cell. Running
// off the board reports the opponent of match, so an edge closes a run the
// same way an enemy mark does; an empty terminator means an open end.
func (b Board) scan(start Position, d direction, match PlayerMark) (count int, terminator PlayerMark) {
	pos := start.step(d)
	for {
		if !b.IsInside(pos) {
			return count, match.Opponent()
		}
		if mark := b.At(pos); mark != match {
			return count, mark
		}
		count++
		pos = pos.step(d)
	}
}

// lineThrough returns the length of the run of mark through pos along ax,
// pos included.
func (b Board) lineThrough(pos Position, mark PlayerMark, ax axis) int {
	before, _ := b.scan(pos, ax[0], mark)
	after, _ := b.scan(pos, ax[1], mark)
	return before + after + 1
}
