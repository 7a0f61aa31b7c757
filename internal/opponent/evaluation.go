package opponent

import (
	"fmt"
	"strconv"
	"strings"
)

// Evaluation is the engine's last reported view of a search.
type Evaluation struct {
	Depth    int
	Score    int // centipawns from the side to move
	IsMate   bool
	MateIn   int // moves to mate; negative when being mated
	BestMove string
}

// FormatEvaluation renders e in pawns ("+0.35") or as a mate ("-M4").
func FormatEvaluation(e *Evaluation) string {
	if e.IsMate {
		if e.MateIn < 0 {
			return fmt.Sprintf("-M%d", -e.MateIn)
		}
		return fmt.Sprintf("+M%d", e.MateIn)
	}
	sign := "+"
	score := e.Score
	if score < 0 {
		sign = "-"
		score = -score
	}
	return fmt.Sprintf("%s%d.%02d", sign, score/100, score%100)
}

// parseInfo folds an "info" line into e. Fields the line does not carry
// keep their previous values.
func parseInfo(line string, e *Evaluation) {
	fields := strings.Fields(line)
	for i := 0; i < len(fields); i++ {
		switch fields[i] {
		case "depth":
			if i+1 < len(fields) {
				if n, err := strconv.Atoi(fields[i+1]); err == nil {
					e.Depth = n
				}
				i++
			}
		case "score":
			if i+2 >= len(fields) {
				return
			}
			n, err := strconv.Atoi(fields[i+2])
			if err != nil {
				continue
			}
			switch fields[i+1] {
			case "cp":
				e.Score, e.IsMate, e.MateIn = n, false, 0
			case "mate":
				e.IsMate, e.MateIn = true, n
			}
			i += 2
		case "pv":
			// The principal variation runs to the end of the line.
			if i+1 < len(fields) {
				e.BestMove = fields[i+1]
			}
			return
		}
	}
}
