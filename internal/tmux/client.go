package tmux

import (
	"os"
	"strings"
)

// getClient returns the control-mode connection for socketPath, opening it
// on first use. One connection serves the whole run.
func getClient(socketPath string) (tmuxClient, error) {
	clientMu.Lock()
	defer clientMu.Unlock()
	if cachedClient != nil && cachedSocket == socketPath {
		return cachedClient, nil
	}
	if cachedClient != nil {
		_ = cachedClient.Close()
		cachedClient = nil
	}
	client, err := newTmux(socketPath)
	if err != nil {
		return nil, err
	}
	cachedClient = client
	cachedSocket = socketPath
	return client, nil
}

// Shutdown closes the cached control-mode connection.
func Shutdown() {
	clientMu.Lock()
	defer clientMu.Unlock()
	if cachedClient != nil {
		_ = cachedClient.Close()
	}
	cachedClient = nil
	cachedSocket = ""
}

// CurrentClientID attempts to detect the client that launched the popup so
// SwitchClient commands can target the visible tmux client instead of the
// control-mode connection.
func CurrentClientID(socketPath string) string {
	target := strings.TrimSpace(os.Getenv("TMUX_PANE"))
	if target == "" {
		return ""
	}
	client, err := getClient(socketPath)
	if err != nil {
		return ""
	}
	name, err := client.DisplayMessage(target, "#{client_name}")
	if err != nil {
		return ""
	}
	return strings.TrimSpace(name)
}
