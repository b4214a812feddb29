package tmux

import (
	"fmt"
	"strings"

	"github.com/atomicstack/tav/internal/logging/events"
)

// RecordFormat asks tmux for one tab-separated record per pane.
const RecordFormat = "#{session_id}\t#{session_name}\t#{window_id}\t#{window_index}\t#{window_name}\t#{pane_id}\t#{pane_index}\t#{pane_title}"

// FetchRecords lists every pane on the server as raw records. The
// control-mode client is tried first; a direct tmux invocation is used when
// it cannot connect or the listing fails.
func FetchRecords(socketPath string) ([]string, error) {
	client, err := getClient(socketPath)
	if err == nil {
		lines, listErr := client.ListPanesFormat("", "", RecordFormat)
		if listErr == nil {
			events.Snapshot.Fetched("control", len(lines))
			return lines, nil
		}
		err = listErr
	}
	events.Snapshot.Fallback(err)
	return fetchRecordsFallback(socketPath)
}

func fetchRecordsFallback(socketPath string) ([]string, error) {
	args := append(baseArgs(socketPath), "list-panes", "-a", "-F", RecordFormat)
	output, err := runExecCommand("tmux", args...).Output()
	if err != nil {
		return nil, fmt.Errorf("tmux list-panes: %w", err)
	}
	lines := splitLines(string(output))
	events.Snapshot.Fetched("exec", len(lines))
	return lines, nil
}

func splitLines(text string) []string {
	text = strings.TrimRight(text, "\n")
	if text == "" {
		return []string{}
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
