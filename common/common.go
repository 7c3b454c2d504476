package common

import (
	"errors"
	"os"
)

// DoesFileExist reports whether fileName can be stat'ed. Permission errors
// count as missing.
func DoesFileExist(fileName string) bool {
	_, err := os.Stat(fileName)
	if err == nil {
		return true
	}
	return !errors.Is(err, os.ErrNotExist) && !errors.Is(err, os.ErrPermission)
}
