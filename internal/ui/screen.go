// File ui/screen.go
package ui

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/rs/zerolog"

	"hive_go/internal/game"
)

// Screen is the interactive board. The human plays the lower side, the
// agent plays upper and moves first. Watch mode replaces the human with a
// second agent.
type Screen struct {
	board *game.Board
	agent *game.Agent
	rival *game.Agent // watch 模式下的第二个引擎
	watch bool
	log   zerolog.Logger

	upperTurn bool
	outcome   game.Outcome
	over      bool
	message   string

	selected  *game.Cell
	targets   map[game.Cell]bool
	moveByDst map[game.Cell]game.Move
	placeKind game.PieceKind
	placing   bool

	aiResultCh chan aiResult
	aiRunning  bool
}

type aiResult struct {
	move game.BruteMove
	ok   bool
}

// NewScreen builds a fresh game against the engine.
func NewScreen(agent *game.Agent, rival *game.Agent, log zerolog.Logger) *Screen {
	s := &Screen{
		agent:      agent,
		rival:      rival,
		watch:      rival != nil,
		log:        log,
		aiResultCh: make(chan aiResult, 1),
	}
	s.reset()
	return s
}

func (s *Screen) reset() {
	s.board = game.NewGameBoard(game.DefaultBoardSize, true)
	s.upperTurn = true
	s.outcome = game.Running
	s.over = false
	s.message = ""
	s.clearSelection()
	s.placing = false
	s.placeKind = game.Spider
}

func (s *Screen) clearSelection() {
	s.selected = nil
	s.targets = map[game.Cell]bool{}
	s.moveByDst = map[game.Cell]game.Move{}
}

// Update advances one tick.
func (s *Screen) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		s.reset()
		return nil
	}
	if s.over {
		return nil
	}

	select {
	case res := <-s.aiResultCh:
		s.aiRunning = false
		s.applyEngineMove(res)
	default:
	}

	engineTurn := s.upperTurn || s.watch
	if engineTurn {
		if !s.aiRunning {
			s.startEngine()
		}
		return nil
	}

	s.handleHumanInput()
	return nil
}

func (s *Screen) startEngine() {
	agent := s.agent
	if !s.upperTurn {
		agent = s.rival
	}
	// 搜索在副本上跑，主循环每帧还在读正本。
	pos := &game.Position{
		Board:     s.board.Clone(),
		MyUpper:   s.upperTurn,
		MyMove:    s.board.Turn(s.upperTurn),
		RivalMove: s.board.Turn(!s.upperTurn),
	}
	s.aiRunning = true
	go func() {
		bm, ok := agent.Play(pos)
		s.aiResultCh <- aiResult{move: bm, ok: ok}
	}()
}

func (s *Screen) applyEngineMove(res aiResult) {
	if !res.ok {
		s.message = "engine passes"
		s.endTurn()
		return
	}
	mv, err := game.MoveFromBrute(res.move)
	if err != nil {
		s.log.Error().Err(err).Msg("engine move malformed")
		s.over = true
		return
	}
	s.board.PlayMove(mv)
	s.message = mv.String()
	s.endTurn()
}

func (s *Screen) handleHumanInput() {
	// 数字键挑选要放的虫
	for key, kind := range map[ebiten.Key]game.PieceKind{
		ebiten.Key1: game.Queen,
		ebiten.Key2: game.Spider,
		ebiten.Key3: game.Beetle,
		ebiten.Key4: game.Ant,
		ebiten.Key5: game.Grasshopper,
	} {
		if inpututil.IsKeyJustPressed(key) {
			s.beginPlacement(kind)
		}
	}

	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	fx, fy := ebiten.CursorPosition()
	cell, ok := pixelToCell(float64(fx), float64(fy), s.board)
	if !ok {
		s.clearSelection()
		return
	}

	if mv, ok := s.moveByDst[cell]; ok {
		s.board.PlayMove(mv)
		s.message = mv.String()
		s.clearSelection()
		s.placing = false
		s.endTurn()
		return
	}

	if s.board.OwnedBy(cell, false) {
		s.selectPiece(cell)
		return
	}
	s.clearSelection()
}

func (s *Screen) beginPlacement(kind game.PieceKind) {
	s.clearSelection()
	s.placing = true
	s.placeKind = kind
	for _, mv := range s.board.ValidMoves(false) {
		if mv.Place && mv.Kind == kind {
			s.targets[mv.To] = true
			s.moveByDst[mv.To] = mv
		}
	}
	if len(s.targets) == 0 {
		s.message = fmt.Sprintf("cannot place %s now", kind)
		s.placing = false
	}
}

func (s *Screen) selectPiece(cell game.Cell) {
	s.clearSelection()
	s.placing = false
	for _, mv := range s.board.ValidMoves(false) {
		if !mv.Place && mv.From == cell {
			s.targets[mv.To] = true
			s.moveByDst[mv.To] = mv
		}
	}
	if len(s.targets) > 0 {
		c := cell
		s.selected = &c
	} else {
		s.message = "that piece cannot move"
	}
}

func (s *Screen) endTurn() {
	upperDead := s.board.QueenSurrounded(true)
	lowerDead := s.board.QueenSurrounded(false)
	switch {
	case upperDead && lowerDead:
		s.outcome, s.over = game.Draw, true
	case upperDead:
		s.outcome, s.over = game.Loss, true
	case lowerDead:
		s.outcome, s.over = game.Win, true
	default:
		s.upperTurn = !s.upperTurn
	}
}

// Draw renders the board and status line.
func (s *Screen) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{0x22, 0x24, 0x2a, 0xff})
	drawBoard(screen, s.board, s.selected, s.targets)

	status := s.statusLine()
	text.Draw(screen, status, fontFace, 16, WindowHeight-16, color.White)
}

func (s *Screen) statusLine() string {
	if s.over {
		switch s.outcome {
		case game.Win:
			return "upper wins - press R to restart"
		case game.Loss:
			return "lower wins - press R to restart"
		default:
			return "draw - press R to restart"
		}
	}
	side := "lower"
	if s.upperTurn {
		side = "upper (thinking...)"
	}
	line := fmt.Sprintf("turn: %s", side)
	if s.placing {
		line += fmt.Sprintf(" | placing %s", s.placeKind)
	}
	if s.message != "" {
		line += " | " + s.message
	}
	return line + " | keys 1-5 place Q/S/B/A/G, click to move"
}

// Layout fixes the window size.
func (s *Screen) Layout(outsideWidth, outsideHeight int) (int, int) {
	return WindowWidth, WindowHeight
}
