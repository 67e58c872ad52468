//go:build !linux && !darwin

package internal

import (
	"os"
	"time"
)

func birthTime(os.FileInfo) time.Time {
	return time.Time{}
}

func changeTime(os.FileInfo) time.Time {
	return time.Time{}
}
