// File game/ort_darwin.go
//go:build darwin

package game

import (
	"os"
	"path/filepath"
)

// 与 linux 版同一套查找顺序，只是库文件名不同。
func prepareORTSharedLib() (string, error) {
	if p := os.Getenv("HIVE_ORT_LIB"); p != "" {
		return p, nil
	}
	exe, err := os.Executable()
	if err == nil {
		p := filepath.Join(filepath.Dir(exe), "libonnxruntime.dylib")
		if fi, err := os.Stat(p); err == nil && fi.Mode().IsRegular() {
			return p, nil
		}
	}
	return "libonnxruntime.dylib", nil
}
