// cmd/bench_perf/main.go
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime/pprof"
	"time"

	"github.com/rs/zerolog"

	"hive_go/internal/game"
)

func main() {
	budget := flag.Duration("budget", 200*time.Millisecond, "每步思考时间")
	maxPlies := flag.Int("plies", 60, "最多模拟的步数")
	profPath := flag.String("prof", "cpu.prof", "CPU profile 输出文件")
	seed := flag.Int64("seed", 1, "随机种子")
	flag.Parse()

	f, err := os.Create(*profPath)
	if err != nil {
		fmt.Println("could not create CPU profile:", err)
		return
	}
	defer f.Close()
	if err := pprof.StartCPUProfile(f); err != nil {
		fmt.Println("could not start CPU profile:", err)
		return
	}
	defer pprof.StopCPUProfile()

	fmt.Println("Starting full game search benchmark...")

	upper := game.NewAgent("upper", zerolog.Nop())
	upper.Budget = *budget
	upper.Seed(*seed)
	lower := game.NewAgent("lower", zerolog.Nop())
	lower.Budget = *budget
	lower.Seed(*seed + 1)

	m := game.NewMatch(upper, lower, zerolog.Nop())
	m.PlyLimit = *maxPlies

	var totalDepth, searches int
	m.Observe(func(b *game.Board, mv game.Move) {
		agent := lower
		if mv.Upper {
			agent = upper
		}
		if res, ok := agent.LastResult(); ok {
			totalDepth += res.Depth
			searches++
		}
	})

	start := time.Now()
	res := m.Run()
	elapsed := time.Since(start)

	fmt.Printf("Outcome: %v after %d plies\n", res.Outcome, res.Plies)
	fmt.Printf("Total time for full game: %v\n", elapsed)
	if searches > 0 {
		fmt.Printf("Average search depth: %.1f over %d searches\n",
			float64(totalDepth)/float64(searches), searches)
	}
	fmt.Printf("Profile saved to %s. Run 'go tool pprof -http=:8080 %s' to view it.\n", *profPath, *profPath)
}
