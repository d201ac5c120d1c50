// File game/onnx_infer.go
package game

import (
	"fmt"
	"math"
	"os"
	"sync"

	ort "github.com/yalue/onnxruntime_go"
)

// 训练脚本导出的张量名，改了导出脚本要同步改这里。
const (
	onnxInputName = "state"
	onnxValueName = "value"

	// ModelPathEnv names the environment variable pointing at the ONNX
	// model file. Unset means the network evaluator stays disabled.
	ModelPathEnv = "HIVE_ONNX_PATH"
)

var (
	ortOnce sync.Once
	ortErr  error
	ortSess *ort.AdvancedSession
	// AdvancedSession 绑定固定张量，从填输入到读输出整段必须串行。
	ortMu    sync.Mutex
	inTensor *ort.Tensor[float32]
	outV     *ort.Tensor[float32]
)

// NNAvailable reports whether a model path is configured.
func NNAvailable() bool { return os.Getenv(ModelPathEnv) != "" }

// ensureONNX loads the runtime and builds the session on first use.
func ensureONNX() error {
	ortOnce.Do(func() {
		path := os.Getenv(ModelPathEnv)
		if path == "" {
			ortErr = fmt.Errorf("no ONNX model: set %s", ModelPathEnv)
			return
		}
		modelBytes, err := os.ReadFile(path)
		if err != nil {
			ortErr = fmt.Errorf("read %s %s: %w", ModelPathEnv, path, err)
			return
		}

		libPath, err := prepareORTSharedLib()
		if err != nil {
			ortErr = fmt.Errorf("prepare ORT lib: %w", err)
			return
		}
		ort.SetSharedLibraryPath(libPath)

		if err := ort.InitializeEnvironment(); err != nil {
			ortErr = fmt.Errorf("InitializeEnvironment: %w", err)
			return
		}

		var e error
		inTensor, e = ort.NewTensor(
			ort.NewShape(1, NNPlanes, NNGrid, NNGrid),
			make([]float32, NNPlanes*NNGrid*NNGrid),
		)
		if e != nil || inTensor == nil {
			ortErr = fmt.Errorf("NewTensor input failed: %v", e)
			return
		}
		outV, e = ort.NewEmptyTensor[float32](ort.NewShape(1, 1))
		if e != nil || outV == nil {
			ortErr = fmt.Errorf("NewEmptyTensor value failed: %v", e)
			return
		}

		so, err := ort.NewSessionOptions()
		if err != nil {
			ortErr = fmt.Errorf("NewSessionOptions: %w", err)
			return
		}

		ortSess, e = ort.NewAdvancedSessionWithONNXData(
			modelBytes,
			[]string{onnxInputName},
			[]string{onnxValueName},
			[]ort.Value{inTensor},
			[]ort.Value{outV},
			so,
		)
		if e != nil || ortSess == nil {
			ortErr = fmt.Errorf("NewAdvancedSessionWithONNXData: %v", e)
			return
		}
	})
	return ortErr
}

// ShutdownONNX releases the session and runtime.
func ShutdownONNX() {
	if ortSess != nil {
		ortSess.Destroy()
		ortSess = nil
	}
	ort.DestroyEnvironment()
}

// EvaluateNN scores the position with the value head. The returned score is
// the win probability of the given side stretched onto the static
// evaluation scale, so the two evaluators stay comparable.
func EvaluateNN(b *Board, targetUpper bool) (int, error) {
	if err := ensureONNX(); err != nil {
		return 0, err
	}

	// 会话绑定固定的输入输出张量，编码、推理、读结果都得攥着锁。
	ortMu.Lock()
	EncodeBoard(b, targetUpper, inTensor.GetData())
	err := ortSess.Run()
	var vLogit float32
	if err == nil {
		vLogit = outV.GetData()[0]
	}
	ortMu.Unlock()
	if err != nil {
		return 0, fmt.Errorf("onnx run: %w", err)
	}

	// value 头输出 logit，sigmoid 后是胜率。
	vProb := 1 / (1 + math.Exp(float64(-vLogit)))
	return int((vProb - 0.5) * 200000), nil
}
