package events

import "github.com/atomicstack/tav/internal/logging"

type PickerTracer struct{}

var Picker = PickerTracer{}

func (PickerTracer) Launch(command string, args []string) {
	logging.Trace("picker.launch", map[string]interface{}{"command": command, "args": args})
}

func (PickerTracer) Selected(key string) {
	logging.Trace("picker.select", map[string]interface{}{"key": key})
}

func (PickerTracer) Cancelled() {
	logging.Trace("picker.cancel", nil)
}
