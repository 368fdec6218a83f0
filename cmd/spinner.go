package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

// progressInterval is how often the progress indicator turns.
const progressInterval = 100 * time.Millisecond

// withProgress runs fn while an indicator labelled label turns on w. The
// indicator line is erased before withProgress returns fn's error.
func withProgress(w io.Writer, label string, interval time.Duration, fn func() error) (err error) {
	ctx, cancel := context.WithCancel(context.Background())

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		turn(ctx, w, label, interval)
	}()

	err = fn()

	cancel()
	wg.Wait()
	return err
}

// turn draws label followed by a rotating frame until ctx is done.
func turn(ctx context.Context, w io.Writer, label string, interval time.Duration) {
	frames := []string{"|", "/", "-", "\\"}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	_, _ = fmt.Fprintf(w, "%s ", label)
	for frame := 0; ; frame++ {
		select {
		case <-ctx.Done():
			_, _ = fmt.Fprintf(w, "\r%s\r", strings.Repeat(" ", len(label)+2))
			return
		case <-ticker.C:
			_, _ = fmt.Fprintf(w, "\r%s %s", label, frames[frame%len(frames)])
		}
	}
}
