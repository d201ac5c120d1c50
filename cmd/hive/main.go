// cmd/hive/main.go
package main

import (
	"flag"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"

	"hive_go/internal/game"
	"hive_go/internal/ui"
)

func main() {
	watchFlag := flag.Bool("watch", false, "引擎对引擎观战模式")
	budgetFlag := flag.Duration("budget", game.DefaultBudget, "引擎每步思考时间")
	seedFlag := flag.Int64("seed", time.Now().UnixNano(), "随机种子")
	debugFlag := flag.Bool("debug", false, "打印搜索日志")
	flag.Parse()

	level := zerolog.InfoLevel
	if *debugFlag {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()

	agent := game.NewAgent("upper", log)
	agent.Budget = *budgetFlag
	agent.Seed(*seedFlag)

	var rival *game.Agent
	if *watchFlag {
		rival = game.NewAgent("lower", log)
		rival.Budget = *budgetFlag
		rival.Seed(*seedFlag + 1)
	}

	ebiten.SetWindowSize(ui.WindowWidth, ui.WindowHeight)
	ebiten.SetWindowTitle("hive")

	screen := ui.NewScreen(agent, rival, log)
	if err := ebiten.RunGame(screen); err != nil {
		log.Fatal().Err(err).Msg("ui stopped")
	}
}
