//go:build linux

package internal

import (
	"os"
	"syscall"
	"time"
)

// Linux does not expose birth time through os.Stat.
func birthTime(os.FileInfo) time.Time {
	return time.Time{}
}

func changeTime(info os.FileInfo) time.Time {
	if st, ok := info.Sys().(*syscall.Stat_t); ok {
		return time.Unix(st.Ctim.Sec, st.Ctim.Nsec)
	}
	return time.Time{}
}
