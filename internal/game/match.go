// File game/match.go
package game

import (
	"time"

	"github.com/rs/zerolog"
)

// DefaultReserve is the piece set each side starts a standard game with.
var DefaultReserve = map[PieceKind]int{
	Queen:       1,
	Spider:      2,
	Beetle:      2,
	Ant:         3,
	Grasshopper: 3,
}

// DefaultBoardSize matches the driver's standard board.
const DefaultBoardSize = 13

// QueenSurrounded reports whether the side's queen is on the board with all
// six neighbors occupied.
func (b *Board) QueenSurrounded(upper bool) bool {
	for _, c := range b.OccupiedCells() {
		for _, bug := range b.Stack(c) {
			if bug.Kind == Queen && bug.Upper == upper {
				return len(b.OccupiedNeighbors(c)) == 6
			}
		}
	}
	return false
}

// MatchResult describes a finished game from the upper side's view.
type MatchResult struct {
	Outcome Outcome // Win means upper won
	Plies   int
	Moves   []Move
}

// Match runs full games between two agents on a shared board. The upper
// agent moves first.
type Match struct {
	Upper *Agent
	Lower *Agent

	Size      int
	PlyLimit  int // 0 means DefaultPlyLimit
	log       zerolog.Logger
	boardView func(*Board, Move) // optional per-move observer
}

// DefaultPlyLimit caps game length before calling a draw.
const DefaultPlyLimit = 200

// NewMatch pairs two agents on a standard board.
func NewMatch(upper, lower *Agent, log zerolog.Logger) *Match {
	return &Match{Upper: upper, Lower: lower, Size: DefaultBoardSize, log: log}
}

// Observe registers a callback invoked after every applied move.
func (m *Match) Observe(fn func(*Board, Move)) { m.boardView = fn }

// NewGameBoard builds an empty board with full reserves for both sides.
func NewGameBoard(size int, myUpper bool) *Board {
	b := NewBoard(size, myUpper)
	for kind, n := range DefaultReserve {
		b.SetReserve(true, kind, n)
		b.SetReserve(false, kind, n)
	}
	return b
}

// Run plays one game to the end and returns the result.
func (m *Match) Run() MatchResult {
	size := m.Size
	if size == 0 {
		size = DefaultBoardSize
	}
	limit := m.PlyLimit
	if limit == 0 {
		limit = DefaultPlyLimit
	}
	b := NewGameBoard(size, true)

	var moves []Move
	upperTurn := true
	passes := 0
	start := time.Now()

	for ply := 0; ply < limit; ply++ {
		agent := m.Lower
		if upperTurn {
			agent = m.Upper
		}
		pos := &Position{Board: b, MyUpper: upperTurn, MyMove: b.Turn(upperTurn), RivalMove: b.Turn(!upperTurn)}

		bm, ok := agent.Play(pos)
		if !ok {
			// 无子可动就跳过，双方连续跳过按和棋收场。
			passes++
			if passes >= 2 {
				return m.finish(Draw, moves, start)
			}
			upperTurn = !upperTurn
			continue
		}
		passes = 0

		mv, err := MoveFromBrute(bm)
		if err != nil {
			m.log.Error().Err(err).Str("agent", agent.Name).Msg("agent produced malformed move")
			return m.finish(Draw, moves, start)
		}
		b.PlayMove(mv)
		moves = append(moves, mv)
		if m.boardView != nil {
			m.boardView(b, mv)
		}

		upperLost := b.QueenSurrounded(true)
		lowerLost := b.QueenSurrounded(false)
		switch {
		case upperLost && lowerLost:
			return m.finish(Draw, moves, start)
		case upperLost:
			return m.finish(Loss, moves, start)
		case lowerLost:
			return m.finish(Win, moves, start)
		}

		upperTurn = !upperTurn
	}

	return m.finish(Draw, moves, start)
}

func (m *Match) finish(outcome Outcome, moves []Move, start time.Time) MatchResult {
	m.log.Info().
		Stringer("outcome", outcome).
		Int("plies", len(moves)).
		Dur("elapsed", time.Since(start)).
		Msg("game over")
	return MatchResult{Outcome: outcome, Plies: len(moves), Moves: moves}
}
