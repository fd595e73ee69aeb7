package services

import (
	"context"
	"sync"
	"time"

	"transitlog/internal/domain/models"
	"transitlog/internal/metrics"
	"transitlog/internal/utils"
)

const (
	archiveQueueSize    = 256
	archiveWriteTimeout = 5 * time.Second
)

type archiveJob struct {
	reqID string
	event *models.TravelEvent
	trip  *models.CompletedTrip
}

func (j archiveJob) kind() string {
	if j.trip != nil {
		return "trip"
	}
	return "event"
}

// archiveWriter drains archive rows on a single goroutine. Callers never
// wait on the database; a full queue drops the row and logs it.
type archiveWriter struct {
	archive TripArchive
	jobs    chan archiveJob
	done    chan struct{}

	mu     sync.RWMutex
	closed bool
}

func newArchiveWriter(archive TripArchive, size int) *archiveWriter {
	w := &archiveWriter{
		archive: archive,
		jobs:    make(chan archiveJob, size),
		done:    make(chan struct{}),
	}
	go w.run()
	return w
}

func (w *archiveWriter) enqueue(job archiveJob) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.closed {
		metrics.ArchiveWrites.WithLabelValues(job.kind(), "dropped").Inc()
		utils.LogEvent(job.reqID, "archive", "writer_closed", "dropped "+job.kind())
		return
	}
	select {
	case w.jobs <- job:
	default:
		metrics.ArchiveWrites.WithLabelValues(job.kind(), "dropped").Inc()
		utils.LogEvent(job.reqID, "archive", "queue_full", "dropped "+job.kind())
	}
}

func (w *archiveWriter) run() {
	defer close(w.done)
	for job := range w.jobs {
		w.write(job)
	}
}

func (w *archiveWriter) write(job archiveJob) {
	ctx, cancel := context.WithTimeout(utils.WithRequestID(context.Background(), job.reqID), archiveWriteTimeout)
	defer cancel()

	var err error
	if job.trip != nil {
		err = w.archive.ArchiveTrip(ctx, *job.trip)
	} else {
		err = w.archive.ArchiveEvent(ctx, *job.event)
	}
	if err != nil {
		metrics.ArchiveWrites.WithLabelValues(job.kind(), "failed").Inc()
		utils.LogEvent(job.reqID, "archive", "archive_"+job.kind()+"_failed", err.Error())
		return
	}
	metrics.ArchiveWrites.WithLabelValues(job.kind(), "ok").Inc()
}

// close stops accepting rows and waits until the queued ones are written.
func (w *archiveWriter) close() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		<-w.done
		return
	}
	w.closed = true
	close(w.jobs)
	w.mu.Unlock()
	<-w.done
}
