package bot

import "ctchen222/connect-n/internal/game"

// opening answers the first two plies without searching: the centre on an
// empty board, a random empty cell in reply to the opponent's first mark.
func (e *Engine) opening(state *game.State) (game.Position, bool) {
	switch state.TurnCount() {
	case 0:
		mid := state.Size() / 2
		return game.Position{Row: mid, Col: mid}, true
	case 1:
		empty := state.EmptyCells()
		if len(empty) == 0 {
			return game.Position{}, false
		}
		e.mu.Lock()
		i := e.rng.IntN(len(empty))
		e.mu.Unlock()
		return empty[i], true
	}
	return game.Position{}, false
}
