package game

import "testing"

func TestEvaluateNNDisabledWithoutModel(t *testing.T) {
	t.Setenv(ModelPathEnv, "")
	if NNAvailable() {
		t.Fatal("NNAvailable with no model path set")
	}
	b := NewGameBoard(DefaultBoardSize, true)
	if _, err := EvaluateNN(b, true); err == nil {
		t.Fatal("EvaluateNN succeeded with no model configured")
	}
}
