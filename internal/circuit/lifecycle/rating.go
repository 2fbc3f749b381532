package lifecycle

import "time"

// Stars rates a finished puzzle from 1 to 3 by time and move efficiency.
//
//	3: time ratio <= 0.5 and move ratio <= 1.25
//	2: time ratio <= 0.75 and move ratio <= 1.5
//	1: otherwise
//
// Without a limit the time ratio is 0; with minMoves == 0 the move ratio is 1.
func Stars(elapsed, limit time.Duration, moves, minMoves int) int {
	timeRatio := 0.0
	if limit > 0 {
		timeRatio = float64(elapsed) / float64(limit)
	}
	movesRatio := 1.0
	if minMoves > 0 {
		movesRatio = float64(moves) / float64(minMoves)
	}

	switch {
	case timeRatio <= 0.5 && movesRatio <= 1.25:
		return 3
	case timeRatio <= 0.75 && movesRatio <= 1.5:
		return 2
	default:
		return 1
	}
}
