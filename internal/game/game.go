package game

import (
	"errors"
	"math/rand/v2"
)

// PlayerMark represents the mark of a player (X, O) or an empty cell.
type PlayerMark string

// Status is the terminal state of a game.
type Status string

const (
	// Player marks
	None    PlayerMark = ""
	PlayerX PlayerMark = "X"
	PlayerO PlayerMark = "O"

	// Game statuses
	InProgress Status = "InProgress"
	Won        Status = "Won"
	Draw       Status = "Draw"
)

// Run lengths needed to win.
const (
	shortRun = 3
	longRun  = 5

	// Boards up to this edge length are won with shortRun.
	shortRunMaxSize = 5
)

var (
	ErrOutOfBounds  = errors.New("move out of bounds")
	ErrCellOccupied = errors.New("cell already occupied")
	ErrGameOver     = errors.New("game already finished")
)

// Opponent returns the other player's mark; None has no opponent.
func (m PlayerMark) Opponent() PlayerMark {
	switch m {
	case PlayerX:
		return PlayerO
	case PlayerO:
		return PlayerX
	default:
		return None
	}
}

// Valid reports whether m is a player mark rather than an empty cell.
func (m PlayerMark) Valid() bool {
	return m == PlayerX || m == PlayerO
}

func (m PlayerMark) String() string {
	if m == None {
		return "none"
	}
	return string(m)
}

// State is one game: the board, whose turn it is and whether it has ended.
//
// A State is mutated in place by Move. Search code must work on Clone copies
// so that sibling branches never see each other's moves.
type State struct {
	board          Board
	startingPlayer PlayerMark
	aiPlayer       PlayerMark
	requiredRun    int
	turnCount      int
	ended          bool
	winner         PlayerMark
}

// New starts a game on a size×size board. Invalid marks fall back to X
// starting and O as the computer player.
func New(size int, startingPlayer, aiPlayer PlayerMark) *State {
	if !startingPlayer.Valid() {
		startingPlayer = PlayerX
	}
	if !aiPlayer.Valid() {
		aiPlayer = PlayerO
	}
	board := NewBoard(size)
	return &State{
		board:          board,
		startingPlayer: startingPlayer,
		aiPlayer:       aiPlayer,
		requiredRun:    RequiredRunFor(board.Size()),
	}
}

// RequiredRunFor returns how many marks in a line win on a board of the given
// size.
func RequiredRunFor(size int) int {
	if size <= shortRunMaxSize {
		return shortRun
	}
	return longRun
}

// Move places the current player's mark at pos.
// The state is left untouched when an error is returned.
func (s *State) Move(pos Position) error {
	if s.ended {
		return ErrGameOver
	}
	if !s.board.IsInside(pos) {
		return ErrOutOfBounds
	}
	if s.board.At(pos) != None {
		return ErrCellOccupied
	}

	mark := s.WhoseTurn()
	s.board.set(pos, mark)
	s.board.markFrontier(pos)
	s.turnCount++
	s.checkEnd(pos, mark)
	return nil
}

// checkEnd records a win for mark if pos completed a run, otherwise a draw
// once every cell is taken.
func (s *State) checkEnd(pos Position, mark PlayerMark) {
	for _, ax := range axes {
		if s.board.lineThrough(pos, mark, ax) >= s.requiredRun {
			s.ended = true
			s.winner = mark
			return
		}
	}

	if s.turnCount == s.board.Size()*s.board.Size() {
		s.ended = true
		s.winner = None
	}
}

// WhoseTurn derives the player to move from the ply count.
func (s *State) WhoseTurn() PlayerMark {
	if s.turnCount%2 == 0 {
		return s.startingPlayer
	}
	return s.startingPlayer.Opponent()
}

// HasWinner reports whether the game has ended, by a win or a draw.
// Use Winner to tell the two apart.
func (s *State) HasWinner() bool {
	return s.ended
}

// Ended is an alias of HasWinner that reads better at call sites.
func (s *State) Ended() bool {
	return s.ended
}

// Winner returns the winning mark, or None while in progress or on a draw.
func (s *State) Winner() PlayerMark {
	return s.winner
}

func (s *State) Status() Status {
	switch {
	case !s.ended:
		return InProgress
	case s.winner == None:
		return Draw
	default:
		return Won
	}
}

// AvailableMoves lists the empty cells inside the frontier mask in row-major
// order. The order decides search tie-breaks and must stay stable.
func (s *State) AvailableMoves() []Position {
	var moves []Position
	for r := 0; r < s.board.Size(); r++ {
		for c := 0; c < s.board.Size(); c++ {
			pos := Position{Row: r, Col: c}
			if s.board.At(pos) == None && s.board.Frontier(pos) {
				moves = append(moves, pos)
			}
		}
	}
	return moves
}

// EmptyCells lists every empty cell in row-major order, frontier or not.
func (s *State) EmptyCells() []Position {
	var cells []Position
	for r := 0; r < s.board.Size(); r++ {
		for c := 0; c < s.board.Size(); c++ {
			pos := Position{Row: r, Col: c}
			if s.board.At(pos) == None {
				cells = append(cells, pos)
			}
		}
	}
	return cells
}

// Clone returns an independent copy of the state.
func (s *State) Clone() *State {
	clone := *s
	clone.board = s.board.Clone()
	return &clone
}

// Board returns a copy of the board.
func (s *State) Board() Board {
	return s.board.Clone()
}

func (s *State) Size() int {
	return s.board.Size()
}

func (s *State) TurnCount() int {
	return s.turnCount
}

func (s *State) RequiredRun() int {
	return s.requiredRun
}

func (s *State) StartingPlayer() PlayerMark {
	return s.startingPlayer
}

func (s *State) AIPlayer() PlayerMark {
	return s.aiPlayer
}

// RandomlyChooseFirstPlayer picks X or O with equal probability.
func RandomlyChooseFirstPlayer() PlayerMark {
	if rand.IntN(2) == 0 {
		return PlayerX
	}
	return PlayerO
}
