package events

import (
	"bufio"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/atomicstack/tav/internal/logging"
)

func TestTracersWriteNamedEvents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.log")
	if err := logging.Setup(logging.Options{File: path, Trace: true}); err != nil {
		t.Fatalf("setup: %v", err)
	}
	t.Cleanup(func() {
		_ = logging.Setup(logging.Options{File: filepath.Join(os.TempDir(), "tav-test.log")})
		logging.Close()
	})

	App.Start(map[string]interface{}{"pid": 1})
	Snapshot.Built(2, 2, 3)
	Feed.Rendered(7, 50, 7, 1)
	Picker.Selected("@1")
	Dispatch.Switch("@1")
	App.Exit(errors.New("boom"))
	logging.Close()

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	var events []string
	var last map[string]any
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var rec map[string]any
		if err := json.Unmarshal(scanner.Bytes(), &rec); err != nil {
			t.Fatalf("decode: %v", err)
		}
		events = append(events, rec["msg"].(string))
		last = rec
	}
	want := []string{"app.start", "snapshot.build", "feed.render", "picker.select", "dispatch.switch", "app.exit"}
	if len(events) != len(want) {
		t.Fatalf("expected %v, got %v", want, events)
	}
	for i := range want {
		if events[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, events)
		}
	}
	payload := last["payload"].(map[string]any)
	if payload["error"] != "boom" {
		t.Fatalf("unexpected exit payload %v", payload)
	}
}
