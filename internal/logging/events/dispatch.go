package events

import "github.com/atomicstack/tav/internal/logging"

type DispatchTracer struct{}

var Dispatch = DispatchTracer{}

func (DispatchTracer) Switch(target string) {
	logging.Trace("dispatch.switch", map[string]interface{}{"target": target})
}

func (DispatchTracer) Resurrect(name, script string) {
	logging.Trace("dispatch.resurrect", map[string]interface{}{"name": name, "script": script})
}

func (DispatchTracer) Ignored(key, kind string) {
	logging.Trace("dispatch.ignore", map[string]interface{}{"key": key, "kind": kind})
}
