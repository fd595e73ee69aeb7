package services

import (
	"testing"

	"transitlog/internal/domain/models"
	"transitlog/internal/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestArchiveWriterDropsAfterClose(t *testing.T) {
	archive := &fakeArchive{}
	w := newArchiveWriter(archive, 4)

	ev := models.TravelEvent{PassengerName: "Alice", Station: "A", Kind: models.EventCheckIn}
	w.enqueue(archiveJob{event: &ev})
	w.close()
	if len(archive.events) != 1 {
		t.Fatalf("expected queued event to be flushed on close, got %d", len(archive.events))
	}

	before := testutil.ToFloat64(metrics.ArchiveWrites.WithLabelValues("event", "dropped"))
	w.enqueue(archiveJob{event: &ev})
	w.close()
	if got := testutil.ToFloat64(metrics.ArchiveWrites.WithLabelValues("event", "dropped")); got != before+1 {
		t.Fatalf("expected one dropped event, got %v", got-before)
	}
	if len(archive.events) != 1 {
		t.Fatalf("closed writer must not archive, got %d events", len(archive.events))
	}
}
