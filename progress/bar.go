package progress

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"
)

// Bar draws a terminal progress bar per session.
type Bar struct {
	Writer io.Writer
}

func (b *Bar) Start(total uint64, label string) Tracker {
	w := b.Writer
	if w == nil {
		w = os.Stderr
	}

	bar := progressbar.NewOptions64(int64(total),
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(label),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "#",
			SaucerHead:    ">",
			SaucerPadding: "-",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
	return NewCounter(&barDisplay{bar: bar, w: w}, DefaultEvery)
}

type barDisplay struct {
	bar    *progressbar.ProgressBar
	w      io.Writer
	failed sync.Once
}

func (d *barDisplay) SetPosition(n uint64) {
	d.check(d.bar.Set64(int64(n)))
}

func (d *barDisplay) Finish(message string) {
	d.check(d.bar.Finish())
	_, err := fmt.Fprintf(d.w, "\n%s\n", message)
	d.check(err)
}

// check logs the first write failure of the session. Progress output never
// fails the work it reports on.
func (d *barDisplay) check(err error) {
	if err != nil {
		d.failed.Do(func() {
			slog.Debug("could not draw progress bar", "error", err)
		})
	}
}
