package bot

import (
	"context"
	"ctchen222/connect-n/internal/game"
	"math"
)

// maxDepth is the number of plies looked ahead, root move included.
const maxDepth = 3

const (
	winScore  = math.MaxFloat64
	lossScore = -math.MaxFloat64
)

type searcher struct {
	ai    game.PlayerMark
	stats Stats
}

func newSearcher(ai game.PlayerMark) *searcher {
	return &searcher{ai: ai}
}

// depthWeight discounts the rating of moves made deeper in the tree.
func depthWeight(depth int) float64 {
	return 1 - float64(depth+1)/10
}

// search runs alpha-beta from the root, where the computer is to move, and
// returns the first candidate reaching the best value. ctx is checked between
// root candidates.
func (s *searcher) search(ctx context.Context, state *game.State, moves []game.Position) (game.Position, error) {
	if len(moves) == 0 {
		return game.Position{}, ErrNoLegalMove
	}
	s.stats.Nodes++

	alpha, beta := lossScore, winScore
	best := moves[0]
	bestValue := lossScore
	for i, pos := range moves {
		if err := ctx.Err(); err != nil {
			return game.Position{}, err
		}

		child := state.Clone()
		if err := child.Move(pos); err != nil {
			continue
		}
		rating := float64(child.Rating(pos)) * depthWeight(0)

		value := s.minimax(child, 1, alpha, beta, rating)
		if i == 0 || value > bestValue {
			best, bestValue = pos, value
		}
		alpha = math.Max(alpha, bestValue)
		if alpha >= beta {
			s.stats.Cutoffs++
			break
		}
	}
	return best, nil
}

func (s *searcher) minimax(state *game.State, depth int, alpha, beta, rating float64) float64 {
	s.stats.Nodes++
	if state.Ended() || depth >= maxDepth {
		s.stats.Leaves++
		switch state.Winner() {
		case s.ai:
			return winScore
		case game.None:
			return rating
		default:
			return lossScore
		}
	}

	moves := state.AvailableMoves()
	if len(moves) == 0 {
		return rating
	}

	maximizing := state.WhoseTurn() == s.ai
	var best float64
	for i, pos := range moves {
		child := state.Clone()
		if err := child.Move(pos); err != nil {
			continue
		}

		childRating := rating
		if maximizing {
			childRating += float64(child.Rating(pos)) * depthWeight(depth)
		}

		value := s.minimax(child, depth+1, alpha, beta, childRating)
		if maximizing {
			if i == 0 || value > best {
				best = value
			}
			alpha = math.Max(alpha, best)
		} else {
			if i == 0 || value < best {
				best = value
			}
			beta = math.Min(beta, best)
		}
		if alpha >= beta {
			s.stats.Cutoffs++
			break
		}
	}
	return best
}
