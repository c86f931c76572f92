package progress

import (
	"log/slog"
	"sync/atomic"
)

// Log reports through slog, at most once per tenth of the work.
type Log struct {
	Logger *slog.Logger
}

func (l *Log) Start(total uint64, label string) Tracker {
	logger := l.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("task", label)
	logger.Info("started", "total", total)
	return NewCounter(&logDisplay{logger: logger, total: total}, DefaultEvery)
}

type logDisplay struct {
	logger *slog.Logger
	total  uint64
	decile atomic.Int64
}

func (d *logDisplay) SetPosition(n uint64) {
	if d.total == 0 {
		return
	}
	dec := int64(n * 10 / d.total)
	for {
		last := d.decile.Load()
		if dec <= last {
			return
		}
		if d.decile.CompareAndSwap(last, dec) {
			break
		}
	}
	d.logger.Info("progress", "done", n, "total", d.total, "percent", dec*10)
}

func (d *logDisplay) Finish(message string) {
	d.logger.Info(message)
}
