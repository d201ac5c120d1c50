// File game/ort_windows.go
//go:build windows

package game

import "os"

func prepareORTSharedLib() (string, error) {
	if p := os.Getenv("HIVE_ORT_LIB"); p != "" {
		return p, nil
	}
	// 依赖系统 PATH 搜索
	return "onnxruntime.dll", nil
}
