// cmd/selfplay/main.go
// 自博弈数据生成：把逐步编码的局面和终局标签写成二进制分片，
// 供训练侧直接读取。
package main

import (
	"encoding/binary"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"hive_go/internal/game"
)

type sample struct {
	state []float32
	value int8
}

// chunkWriter 写分片：X.bin (float32 状态)、Z.bin (int8 标签)，
// 外加 meta.json 记录样本数
type chunkWriter struct {
	outDir    string
	chunkSize int

	idx         int
	count       int
	currentBase string
	fx          *os.File
	fz          *os.File
}

func newChunkWriter(outDir string, chunkSize int) *chunkWriter {
	return &chunkWriter{outDir: outDir, chunkSize: chunkSize}
}

func (w *chunkWriter) rotate() error {
	if w.fx != nil {
		_ = w.fx.Close()
		_ = w.fz.Close()
		_ = w.writeMeta()
	}
	w.idx++
	w.count = 0
	w.currentBase = fmt.Sprintf("chunk_%05d", w.idx)

	var err error
	w.fx, err = os.Create(filepath.Join(w.outDir, w.currentBase+"_X.bin"))
	if err != nil {
		return err
	}
	w.fz, err = os.Create(filepath.Join(w.outDir, w.currentBase+"_Z.bin"))
	if err != nil {
		return err
	}
	return nil
}

func (w *chunkWriter) writeMeta() error {
	meta := map[string]any{
		"samples": w.count,
		"planes":  game.NNPlanes,
		"grid":    game.NNGrid,
	}
	b, _ := json.MarshalIndent(meta, "", "  ")
	return os.WriteFile(filepath.Join(w.outDir, w.currentBase+"_meta.json"), b, 0644)
}

func (w *chunkWriter) writeSample(s sample) error {
	if w.fx == nil || w.count >= w.chunkSize {
		if err := w.rotate(); err != nil {
			return err
		}
	}
	if err := binary.Write(w.fx, binary.LittleEndian, s.state); err != nil {
		return err
	}
	if err := binary.Write(w.fz, binary.LittleEndian, s.value); err != nil {
		return err
	}
	w.count++
	return nil
}

func (w *chunkWriter) close() {
	if w.fx != nil {
		_ = w.fx.Close()
		_ = w.fz.Close()
		_ = w.writeMeta()
	}
}

func (w *chunkWriter) run(ch <-chan []sample, done chan<- struct{}) {
	defer close(done)
	for batch := range ch {
		for _, s := range batch {
			if err := w.writeSample(s); err != nil {
				fmt.Fprintf(os.Stderr, "write sample: %v\n", err)
				return
			}
		}
	}
	w.close()
}

func main() {
	numGames := flag.Int("n", 200, "要生成的对局数")
	workers := flag.Int("workers", 0, "并发局数（默认=CPU/2，至少1）")
	budget := flag.Duration("budget", 100*time.Millisecond, "每步思考时间")
	outDir := flag.String("out", "selfplay_out", "输出目录")
	chunkSize := flag.Int("chunk", 5000, "每个分片的样本数")
	seed := flag.Int64("seed", time.Now().UnixNano(), "随机种子")
	randomLower := flag.Bool("random", false, "下方用随机基线代替搜索")
	flag.Parse()

	if *workers <= 0 {
		*workers = runtime.NumCPU() / 2
		if *workers < 1 {
			*workers = 1
		}
	}
	if err := os.MkdirAll(*outDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "mkdir %s: %v\n", *outDir, err)
		os.Exit(1)
	}

	log := zerolog.New(os.Stderr).With().Timestamp().Logger()
	log.Info().
		Int("games", *numGames).
		Int("workers", *workers).
		Dur("budget", *budget).
		Str("out", *outDir).
		Msg("selfplay starting")

	samplesCh := make(chan []sample, *workers)
	writerDone := make(chan struct{})
	go newChunkWriter(*outDir, *chunkSize).run(samplesCh, writerDone)

	var wins, draws, losses atomic.Int64

	jobs := make(chan int, *workers*2)
	var g errgroup.Group
	for w := 0; w < *workers; w++ {
		wid := w
		g.Go(func() error {
			for gameIdx := range jobs {
				samps, outcome := playOneGame(*budget, *seed+int64(wid*100000+gameIdx), *randomLower, log)
				switch outcome {
				case game.Win:
					wins.Add(1)
				case game.Loss:
					losses.Add(1)
				default:
					draws.Add(1)
				}
				if len(samps) > 0 {
					samplesCh <- samps
				}
			}
			return nil
		})
	}

	for i := 0; i < *numGames; i++ {
		jobs <- i
	}
	close(jobs)
	_ = g.Wait()
	close(samplesCh)
	<-writerDone
	log.Info().
		Int64("upper_wins", wins.Load()).
		Int64("draws", draws.Load()).
		Int64("lower_wins", losses.Load()).
		Msg("selfplay done")
}

// playOneGame 打完一局，按终局结果给每步局面贴标签
func playOneGame(budget time.Duration, seed int64, randomLower bool, log zerolog.Logger) ([]sample, game.Outcome) {
	upper := game.NewAgent("upper", zerolog.Nop())
	upper.Budget = budget
	upper.Seed(seed)
	lower := game.NewAgent("lower", zerolog.Nop())
	lower.Budget = budget
	lower.Seed(seed + 1)
	lower.Random = randomLower

	m := game.NewMatch(upper, lower, log)

	type rawSample struct {
		state []float32
		upper bool
	}
	var raws []rawSample

	m.Observe(func(b *game.Board, mv game.Move) {
		state := make([]float32, game.NNPlanes*game.NNGrid*game.NNGrid)
		game.EncodeBoard(b, mv.Upper, state)
		raws = append(raws, rawSample{state: state, upper: mv.Upper})
	})

	res := m.Run()

	out := make([]sample, len(raws))
	for i, r := range raws {
		var v int8
		switch res.Outcome {
		case game.Win:
			if r.upper {
				v = 1
			} else {
				v = -1
			}
		case game.Loss:
			if r.upper {
				v = -1
			} else {
				v = 1
			}
		}
		out[i] = sample{state: r.state, value: v}
	}
	return out, res.Outcome
}
