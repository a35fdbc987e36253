package game

import (
	"fmt"
	"strings"
)

// FromRows builds a state from a text diagram, one string per row, using 'X',
// 'O' and '.' (or '-') for empty cells:
//
//	FromRows([]string{
//		"XX.",
//		".O.",
//		"..O",
//	}, PlayerX, PlayerO)
//
// The mark counts must be consistent with startingPlayer having moved first.
// Terminal status is derived from the diagram. It exists for tests and
// fixtures; games are played from New.
func FromRows(rows []string, startingPlayer, aiPlayer PlayerMark) (*State, error) {
	size := len(rows)
	if size < MinSize {
		return nil, fmt.Errorf("board needs at least %d rows, got %d", MinSize, size)
	}

	s := New(size, startingPlayer, aiPlayer)
	counts := map[PlayerMark]int{}
	for r, row := range rows {
		row = strings.TrimSpace(row)
		if len(row) != size {
			return nil, fmt.Errorf("row %d has %d cells, want %d", r, len(row), size)
		}
		for c, ch := range row {
			var mark PlayerMark
			switch ch {
			case 'X', 'x':
				mark = PlayerX
			case 'O', 'o':
				mark = PlayerO
			case '.', '-':
				continue
			default:
				return nil, fmt.Errorf("row %d col %d: unexpected %q", r, c, ch)
			}
			pos := Position{Row: r, Col: c}
			s.board.set(pos, mark)
			s.board.markFrontier(pos)
			counts[mark]++
		}
	}

	first, second := counts[s.startingPlayer], counts[s.startingPlayer.Opponent()]
	if first != second && first != second+1 {
		return nil, fmt.Errorf("%s moved first but has %d marks against %d", s.startingPlayer, first, second)
	}
	s.turnCount = first + second

	for r := 0; r < size; r++ {
		for c := 0; c < size; c++ {
			pos := Position{Row: r, Col: c}
			mark := s.board.At(pos)
			if mark == None {
				continue
			}
			for _, ax := range axes {
				if s.board.lineThrough(pos, mark, ax) >= s.requiredRun {
					s.ended = true
					s.winner = mark
					return s, nil
				}
			}
		}
	}
	if s.board.IsFull() {
		s.ended = true
	}
	return s, nil
}
