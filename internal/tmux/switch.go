package tmux

import (
	"fmt"
	"strings"

	gotmux "github.com/atomicstack/gotmuxcc/gotmuxcc"
)

// SwitchClient points clientID at target (a session or window id, or a
// session name). Without a known client the switch is issued through the
// tmux binary, which resolves the invoking client itself.
func SwitchClient(socketPath, clientID, target string) error {
	target = strings.TrimSpace(target)
	if target == "" {
		return fmt.Errorf("switch target required")
	}
	if strings.TrimSpace(clientID) == "" {
		return switchClientExec(socketPath, target)
	}
	client, err := getClient(socketPath)
	if err != nil {
		return switchClientExec(socketPath, target)
	}
	opts := &gotmux.SwitchClientOptions{TargetSession: target, TargetClient: clientID}
	return client.SwitchClient(opts)
}

func switchClientExec(socketPath, target string) error {
	args := append(baseArgs(socketPath), "switch-client", "-t", target)
	if err := runExecCommand("tmux", args...).Run(); err != nil {
		return fmt.Errorf("tmux switch-client -t %s: %w", target, err)
	}
	return nil
}

// Switcher binds SwitchClient to one server and client.
type Switcher struct {
	SocketPath string
	ClientID   string
}

func (s Switcher) Switch(target string) error {
	return SwitchClient(s.SocketPath, s.ClientID, target)
}
