package events

import "github.com/atomicstack/tav/internal/logging"

type AppTracer struct{}

var App = AppTracer{}

func (AppTracer) Start(payload map[string]interface{}) {
	logging.Trace("app.start", payload)
}

func (AppTracer) Empty() {
	logging.Trace("app.empty", nil)
}

func (AppTracer) PickerChosen(kind, command string) {
	logging.Trace("app.picker", map[string]interface{}{"kind": kind, "command": command})
}

func (AppTracer) Exit(err error) {
	payload := map[string]interface{}{}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("app.exit", payload)
}
