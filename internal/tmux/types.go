package tmux

import (
	"os/exec"
	"sync"

	gotmux "github.com/atomicstack/gotmuxcc/gotmuxcc"
	"golang.org/x/term"
)

var (
	newTmux = func(socketPath string) (tmuxClient, error) {
		if socketPath != "" {
			return gotmux.NewTmux(socketPath)
		}
		return gotmux.DefaultTmux()
	}

	runExecCommand = func(name string, args ...string) commander {
		return realCommander{cmd: exec.Command(name, args...)}
	}

	terminalSize = term.GetSize

	clientMu     sync.Mutex
	cachedClient tmuxClient
	cachedSocket string
)

type tmuxClient interface {
	ListPanesFormat(target, filter, format string) ([]string, error)
	DisplayMessage(target, format string) (string, error)
	SwitchClient(*gotmux.SwitchClientOptions) error
	Close() error
}

type commander interface {
	Run() error
	Output() ([]byte, error)
}

type realCommander struct {
	cmd *exec.Cmd
}

func (r realCommander) Run() error {
	return r.cmd.Run()
}

func (r realCommander) Output() ([]byte, error) {
	return r.cmd.Output()
}
