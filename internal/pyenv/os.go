package pyenv

import "path/filepath"

func evalSymlinksOS(path string) (string, error) {
	return filepath.EvalSymlinks(path)
}
