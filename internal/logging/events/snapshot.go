package events

import "github.com/atomicstack/tav/internal/logging"

type SnapshotTracer struct{}

var Snapshot = SnapshotTracer{}

func (SnapshotTracer) Fetched(source string, lines int) {
	logging.Trace("snapshot.fetch", map[string]interface{}{"source": source, "lines": lines})
}

func (SnapshotTracer) Fallback(reason error) {
	logging.Trace("snapshot.fallback", map[string]interface{}{"reason": reason.Error()})
}

func (SnapshotTracer) Built(sessions, windows, panes int) {
	logging.Trace("snapshot.build", map[string]interface{}{
		"sessions": sessions,
		"windows":  windows,
		"panes":    panes,
	})
}

func (SnapshotTracer) Geometry(width, height int, source string) {
	logging.Trace("snapshot.geometry", map[string]interface{}{
		"width":  width,
		"height": height,
		"source": source,
	})
}
