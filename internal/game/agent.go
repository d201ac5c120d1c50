// File game/agent.go
package game

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/rs/zerolog"
)

// DefaultBudget is the wall-clock time one move may take. The driver kills
// agents at one second, so leave a little slack for the reply to flush.
const DefaultBudget = 950 * time.Millisecond

// Agent picks moves for one side of a game.
type Agent struct {
	Name   string
	Budget time.Duration
	Random bool // pick uniformly among legal moves instead of searching

	log   zerolog.Logger
	rng   *rand.Rand
	cache *EvalCache

	lastResult SearchResult
	lastOK     bool
}

// LastResult returns the stats of the most recent search.
func (a *Agent) LastResult() (SearchResult, bool) { return a.lastResult, a.lastOK }

// NewAgent creates a search agent with the default time budget.
func NewAgent(name string, log zerolog.Logger) *Agent {
	return &Agent{
		Name:   name,
		Budget: DefaultBudget,
		log:    log.With().Str("agent", name).Logger(),
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
		cache:  NewEvalCache(),
	}
}

// Seed makes the agent's random choices reproducible.
func (a *Agent) Seed(seed int64) { a.rng = rand.New(rand.NewSource(seed)) }

// Position is one driver request: the board as the driver sent it plus the
// per-side bookkeeping the board text does not carry.
type Position struct {
	Board        *Board
	MyUpper      bool
	MyMove       int
	RivalMove    int
	MyReserve    map[string]int
	RivalReserve map[string]int
}

// NewPosition parses the driver request into a playable position.
func NewPosition(boardText string, size int, myUpper bool, myMove, rivalMove int, myReserve, rivalReserve map[string]int) (*Position, error) {
	b, err := ParseBoard(boardText, size, myUpper)
	if err != nil {
		return nil, err
	}
	b.SetTurn(myUpper, myMove)
	b.SetTurn(!myUpper, rivalMove)
	if err := applyReserve(b, myUpper, myReserve); err != nil {
		return nil, err
	}
	if err := applyReserve(b, !myUpper, rivalReserve); err != nil {
		return nil, err
	}
	return &Position{
		Board:        b,
		MyUpper:      myUpper,
		MyMove:       myMove,
		RivalMove:    rivalMove,
		MyReserve:    myReserve,
		RivalReserve: rivalReserve,
	}, nil
}

func applyReserve(b *Board, upper bool, reserve map[string]int) error {
	for letter, count := range reserve {
		if len(letter) != 1 {
			return fmt.Errorf("invalid reserve piece %q", letter)
		}
		bug, err := bugFromLetter(letter[0])
		if err != nil {
			return err
		}
		b.SetReserve(upper, bug.Kind, count)
	}
	return nil
}

// Play returns the move the agent wants to make, or ok=false when the side
// has no legal move and must pass.
func (a *Agent) Play(pos *Position) (BruteMove, bool) {
	deadline := time.Now().Add(a.Budget)
	a.lastOK = false

	// 开局不值得搜索：第一手固定下蜘蛛，贴着蜂群随便找个位置。
	if pos.MyMove == 0 {
		if pos.Board.HiveSize() == 0 {
			return placement(Spider, pos.MyUpper, Cell{P: 3, Q: 6}).Brute(), true
		}
		around := pos.Board.CellsAroundHive()
		cell := around[a.rng.Intn(len(around))]
		return placement(Spider, pos.MyUpper, cell).Brute(), true
	}

	if a.Random {
		m, ok := a.RandomMove(pos)
		if !ok {
			return BruteMove{}, false
		}
		return m.Brute(), true
	}

	ev := NewEvaluator(a.cache)
	if NNAvailable() {
		ev.EnableNN()
	}
	res, ok := Minimax(pos.Board, pos.MyUpper, deadline, ev)
	a.lastResult, a.lastOK = res, ok
	if !ok {
		a.log.Debug().Int("move", pos.MyMove).Msg("no legal move, passing")
		return BruteMove{}, false
	}

	probes, hits := a.cache.Stats()
	a.log.Debug().
		Int("move", pos.MyMove).
		Int("depth", res.Depth).
		Uint64("evaluated", res.Evaluated).
		Uint64("cache_probes", probes).
		Uint64("cache_hits", hits).
		Int("score", res.Score).
		Stringer("state", res.State).
		Str("best", res.Move.String()).
		Msg("search finished")

	return res.Move.Brute(), true
}

// RandomMove picks a uniformly random legal move.
func (a *Agent) RandomMove(pos *Position) (Move, bool) {
	moves := pos.Board.ValidMoves(pos.MyUpper)
	if len(moves) == 0 {
		return Move{}, false
	}
	return moves[a.rng.Intn(len(moves))], true
}
