// File game/ort_linux.go
//go:build linux

package game

import (
	"os"
	"path/filepath"
)

// prepareORTSharedLib 返回 ORT 动态库路径：优先环境变量，其次可执行文件
// 旁边的 libonnxruntime.so，最后交给系统加载器按默认路径找。
func prepareORTSharedLib() (string, error) {
	if p := os.Getenv("HIVE_ORT_LIB"); p != "" {
		return p, nil
	}
	exe, err := os.Executable()
	if err == nil {
		p := filepath.Join(filepath.Dir(exe), "libonnxruntime.so")
		if fi, err := os.Stat(p); err == nil && fi.Mode().IsRegular() {
			return p, nil
		}
	}
	return "libonnxruntime.so", nil
}
