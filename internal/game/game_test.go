package game

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// playMoves applies moves in order and fails the test on the first rejection.
func playMoves(t *testing.T, s *State, moves ...Position) {
	t.Helper()
	for i, m := range moves {
		require.NoError(t, s.Move(m), "move %d (%v)", i, m)
	}
}

func p(row, col int) Position {
	return Position{Row: row, Col: col}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		size     int
		wantSize int
		wantRun  int
	}{
		{name: "Too small is clamped", size: 1, wantSize: 3, wantRun: 3},
		{name: "Classic 3x3", size: 3, wantSize: 3, wantRun: 3},
		{name: "4x4 needs three", size: 4, wantSize: 4, wantRun: 3},
		{name: "5x5 still needs three", size: 5, wantSize: 5, wantRun: 3},
		{name: "6x6 needs five", size: 6, wantSize: 6, wantRun: 5},
		{name: "15x15 needs five", size: 15, wantSize: 15, wantRun: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(tt.size, PlayerX, PlayerO)
			assert.Equal(t, tt.wantSize, s.Size())
			assert.Equal(t, tt.wantRun, s.RequiredRun())
			assert.Equal(t, 0, s.TurnCount())
			assert.False(t, s.HasWinner())
			assert.Equal(t, None, s.Winner())
			assert.Equal(t, InProgress, s.Status())
		})
	}
}

func TestNewInvalidMarksFallBack(t *testing.T) {
	s := New(3, None, PlayerMark("Z"))
	assert.Equal(t, PlayerX, s.StartingPlayer())
	assert.Equal(t, PlayerO, s.AIPlayer())
}

func TestWhoseTurnAlternates(t *testing.T) {
	for _, start := range []PlayerMark{PlayerX, PlayerO} {
		s := New(4, start, PlayerO)
		moves := s.EmptyCells()
		for i, m := range moves {
			want := start
			if i%2 == 1 {
				want = start.Opponent()
			}
			require.Equal(t, want, s.WhoseTurn(), "turn %d", i)
			if s.Ended() {
				break
			}
			require.NoError(t, s.Move(m))
			require.Equal(t, i+1, s.TurnCount())
		}
	}
}

func TestMoveRejected(t *testing.T) {
	s := New(3, PlayerX, PlayerO)
	playMoves(t, s, p(1, 1))

	tests := []struct {
		name    string
		pos     Position
		wantErr error
	}{
		{name: "Negative row", pos: p(-1, 0), wantErr: ErrOutOfBounds},
		{name: "Negative column", pos: p(0, -1), wantErr: ErrOutOfBounds},
		{name: "Row too large", pos: p(3, 0), wantErr: ErrOutOfBounds},
		{name: "Column too large", pos: p(0, 3), wantErr: ErrOutOfBounds},
		{name: "Occupied cell", pos: p(1, 1), wantErr: ErrCellOccupied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := s.Clone()
			err := s.Move(tt.pos)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, before, s, "state must be unchanged")
		})
	}
}

func TestWinConditions(t *testing.T) {
	// Filler moves for O stay out of every line under test.
	tests := []struct {
		name  string
		moves []Position
	}{
		{name: "Top row", moves: []Position{p(0, 0), p(1, 0), p(0, 1), p(2, 0), p(0, 2)}},
		{name: "Middle column", moves: []Position{p(0, 1), p(0, 0), p(1, 1), p(1, 0), p(2, 1)}},
		{name: "Main diagonal", moves: []Position{p(0, 0), p(0, 1), p(1, 1), p(0, 2), p(2, 2)}},
		{name: "Anti-diagonal", moves: []Position{p(0, 2), p(0, 1), p(1, 1), p(0, 0), p(2, 0)}},
		{name: "Completed from the middle", moves: []Position{p(2, 0), p(0, 0), p(2, 2), p(0, 1), p(2, 1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(3, PlayerX, PlayerO)
			last := len(tt.moves) - 1
			playMoves(t, s, tt.moves[:last]...)
			require.False(t, s.HasWinner())

			playMoves(t, s, tt.moves[last])
			assert.True(t, s.HasWinner())
			assert.Equal(t, PlayerX, s.Winner())
			assert.Equal(t, Won, s.Status())
		})
	}
}

func TestDrawOnFullBoard(t *testing.T) {
	s := New(3, PlayerX, PlayerO)
	moves := []Position{
		p(0, 0), p(0, 1), p(0, 2),
		p(1, 1), p(1, 0), p(1, 2),
		p(2, 1), p(2, 0), p(2, 2),
	}
	for i, m := range moves {
		require.False(t, s.HasWinner(), "ended early before move %d", i)
		playMoves(t, s, m)
	}

	assert.Equal(t, 9, s.TurnCount())
	assert.True(t, s.HasWinner())
	assert.Equal(t, None, s.Winner())
	assert.Equal(t, Draw, s.Status())
	assert.True(t, s.Board().IsFull())
}

func TestWinOnLastCellIsNotADraw(t *testing.T) {
	s := New(3, PlayerX, PlayerO)
	playMoves(t, s,
		p(0, 0), p(0, 1), p(0, 2),
		p(1, 0), p(1, 1), p(1, 2),
		p(2, 1), p(2, 0), p(2, 2),
	)

	assert.Equal(t, 9, s.TurnCount())
	assert.Equal(t, PlayerX, s.Winner())
	assert.Equal(t, Won, s.Status())
}

func TestMoveAfterGameOver(t *testing.T) {
	s := New(3, PlayerX, PlayerO)
	playMoves(t, s, p(0, 0), p(1, 0), p(0, 1), p(2, 0), p(0, 2))
	require.True(t, s.HasWinner())

	before := s.Clone()
	assert.ErrorIs(t, s.Move(p(2, 2)), ErrGameOver)
	assert.Equal(t, before, s)
	assert.Equal(t, PlayerX, s.Winner())
}

func TestLongRunOnLargeBoard(t *testing.T) {
	s := New(7, PlayerX, PlayerO)
	// X builds a horizontal five on row 3, O answers on row 0.
	for c := 0; c < 4; c++ {
		playMoves(t, s, p(3, c), p(0, c*2%7))
		require.False(t, s.HasWinner(), "four marks must not win on 7x7")
	}
	playMoves(t, s, p(3, 4))
	assert.Equal(t, PlayerX, s.Winner())
}

func TestAvailableMoves(t *testing.T) {
	s := New(5, PlayerX, PlayerO)
	assert.Empty(t, s.AvailableMoves(), "fresh board has no frontier")

	playMoves(t, s, p(0, 0))
	assert.Equal(t, []Position{p(0, 1), p(1, 0), p(1, 1)}, s.AvailableMoves())

	playMoves(t, s, p(2, 2))
	assert.Equal(t, []Position{
		p(0, 1),
		p(1, 0), p(1, 1), p(1, 2), p(1, 3),
		p(2, 1), p(2, 3),
		p(3, 1), p(3, 2), p(3, 3),
	}, s.AvailableMoves())
}

func TestAvailableMovesStayInsideFrontier(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	for round := 0; round < 20; round++ {
		s := New(7, PlayerX, PlayerO)
		for !s.Ended() {
			empty := s.EmptyCells()
			require.NoError(t, s.Move(empty[rng.IntN(len(empty))]))

			board := s.Board()
			for _, m := range s.AvailableMoves() {
				require.True(t, board.IsInside(m))
				require.Equal(t, None, board.At(m), "candidate %v is occupied", m)
				require.True(t, board.Frontier(m), "candidate %v is outside the frontier", m)
			}
		}
	}
}

func TestCloneRoundTrip(t *testing.T) {
	original := New(6, PlayerO, PlayerX)
	playMoves(t, original, p(2, 2), p(2, 3))
	clone := original.Clone()

	moves := []Position{p(3, 3), p(4, 4), p(1, 1), p(0, 0), p(5, 5)}
	for _, m := range moves {
		errOriginal := original.Move(m)
		errClone := clone.Move(m)
		require.Equal(t, errOriginal, errClone)
	}

	assert.Equal(t, original, clone)
	assert.Equal(t, original.TurnCount(), clone.TurnCount())
	assert.Equal(t, original.Winner(), clone.Winner())
}

func TestCloneIsolation(t *testing.T) {
	original := New(3, PlayerX, PlayerO)
	playMoves(t, original, p(1, 1))
	clone := original.Clone()

	playMoves(t, clone, p(0, 0), p(0, 1))

	assert.Equal(t, 1, original.TurnCount())
	assert.Equal(t, None, original.Board().At(p(0, 0)))
	assert.Len(t, original.AvailableMoves(), 8)
	assert.Len(t, clone.AvailableMoves(), 6)
	assert.Equal(t, PlayerO, original.WhoseTurn())
	assert.Equal(t, PlayerX, clone.WhoseTurn())
}

func TestRandomlyChooseFirstPlayer(t *testing.T) {
	// Not a statistical test, only checks both values show up.
	seenX := false
	seenO := false
	for i := 0; i < 100; i++ {
		player := RandomlyChooseFirstPlayer()
		if player != PlayerX && player != PlayerO {
			t.Errorf("RandomlyChooseFirstPlayer() returned invalid player: %v", player)
		}
		if player == PlayerX {
			seenX = true
		}
		if player == PlayerO {
			seenO = true
		}
	}

	if !seenX || !seenO {
		t.Errorf("RandomlyChooseFirstPlayer() did not return both PlayerX and PlayerO over 100 runs. Seen X: %v, Seen O: %v", seenX, seenO)
	}
}
