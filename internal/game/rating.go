package game

// Rating contributions. These values are part of the engine's observable
// behaviour; changing any of them changes which moves the computer picks.
const (
	ratePair        = 1
	rateOpenThree   = 10
	rateClosedThree = 5
	rateFour        = 10000
	rateBlock       = 21000

	// Opponent marks touching the move along one axis that earn rateBlock.
	blockThreshold = 3
)

// Rating scores the move just played at pos by the owner of that cell.
// It rewards the runs the move extends and the opponent runs it caps.
// An empty or off-board pos rates 0.
func (s *State) Rating(pos Position) int {
	if !s.board.IsInside(pos) {
		return 0
	}
	mover := s.board.At(pos)
	if mover == None {
		return 0
	}
	opponent := mover.Opponent()

	rating := 0
	for _, ax := range axes {
		count, open := 0, 0
		opponentCount := 0
		for _, d := range ax {
			n, end := s.board.scan(pos, d, mover)
			count += n
			if end == None {
				open++
			}
			n, _ = s.board.scan(pos, d, opponent)
			opponentCount += n
		}

		rating += lineRating(count+1, open)
		if opponentCount >= blockThreshold {
			rating += rateBlock
		}
	}
	return rating
}

func lineRating(lineLen, openEnds int) int {
	switch {
	case lineLen == 2:
		return ratePair
	case openEnds == 0:
		return 0
	case lineLen >= 4:
		return rateFour
	case lineLen == 3 && openEnds == 2:
		return rateOpenThree
	case lineLen == 3:
		return rateClosedThree
	}
	return 0
}
