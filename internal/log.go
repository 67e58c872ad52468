package internal

import (
	"fmt"
	"os"
	"sync"
	"time"
)

// Logger writes the run log. A nil *Logger is valid and drops everything,
// which keeps tests quiet.
type Logger struct {
	mu      sync.Mutex
	f       *os.File
	verbose bool
}

func NewLogger(path string, verbose bool) (*Logger, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	return &Logger{f: f, verbose: verbose}, nil
}

func (l *Logger) Logf(format string, args ...interface{}) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.f, time.Now().Format("2006-01-02 15:04:05")+" "+format+"\n", args...)
}

// Debugf logs only when verbose mode is on.
func (l *Logger) Debugf(format string, args ...interface{}) {
	if l == nil || !l.verbose {
		return
	}
	l.Logf("debug: "+format, args...)
}

func (l *Logger) Close() error {
	if l == nil {
		return nil
	}
	return l.f.Close()
}
