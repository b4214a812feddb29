package events

import "github.com/atomicstack/tav/internal/logging"

type FeedTracer struct{}

var Feed = FeedTracer{}

func (FeedTracer) Rendered(lines, width, height, dead int) {
	logging.Trace("feed.render", map[string]interface{}{
		"lines":  lines,
		"width":  width,
		"height": height,
		"dead":   dead,
	})
}

func (FeedTracer) Registry(dir string, names int) {
	logging.Trace("feed.registry", map[string]interface{}{"dir": dir, "names": names})
}
