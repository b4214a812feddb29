package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/atomicstack/tav/internal/app"
	"github.com/atomicstack/tav/internal/logging"
	"github.com/atomicstack/tav/internal/picker"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// Config captures runtime configuration for the application.
type Config struct {
	App        app.Config
	Logging    Logging
	Flags      map[string]string
	Args       []string
	ConfigFile string
}

type Logging struct {
	FilePath string
	Level    string
	Trace    bool
}

const (
	envSocketPath  = "TAV_SOCKET"
	envConfig      = "TAV_CONFIG"
	envSessionsDir = "TAV_SESSIONS_DIR"
	envPicker      = "TAV_PICKER"
	envFZFCommand  = "TAV_FZF_COMMAND"
	envTimeout     = "TAV_TIMEOUT"
	envWidth       = "TAV_WIDTH"
	envHeight      = "TAV_HEIGHT"
	envPlain       = "TAV_PLAIN"
	envLogFile     = "TAV_LOG_FILE"
	envLogLevel    = "TAV_LOG_LEVEL"
	envTrace       = "TAV_TRACE"
)

// fileConfig is the YAML layout of ~/.config/tav/config.yaml.
type fileConfig struct {
	SessionsDir string            `yaml:"sessions_dir"`
	Picker      string            `yaml:"picker"`
	FZFCommand  string            `yaml:"fzf_command"`
	Timeout     string            `yaml:"timeout"`
	Icons       map[string]string `yaml:"icons"`
	Log         struct {
		File  string `yaml:"file"`
		Level string `yaml:"level"`
	} `yaml:"log"`
}

// Flags holds the command-line values registered on a flag set.
type Flags struct {
	set *pflag.FlagSet

	socket      string
	configFile  string
	sessionsDir string
	picker      string
	fzfCommand  string
	filter      string
	timeout     time.Duration
	width       int
	height      int
	plain       bool
	logFile     string
	logLevel    string
	trace       bool
}

// AddFlags registers tav's options on fs. Defaults are applied later by
// Resolve so that the config file and environment can sit between them and
// explicitly given flags.
func AddFlags(fs *pflag.FlagSet) *Flags {
	f := &Flags{set: fs}
	fs.StringVar(&f.socket, "socket", "", "path to the tmux socket (overrides environment detection)")
	fs.StringVar(&f.configFile, "config", "", "path to the config file (default ~/.config/tav/config.yaml)")
	fs.StringVar(&f.sessionsDir, "sessions-dir", "", "directory holding <name>.tmux-session.zsh scripts (default ~/.config/tav/sessions)")
	fs.StringVar(&f.picker, "picker", "", "picker to use: auto, fzf, builtin (default auto)")
	fs.StringVar(&f.fzfCommand, "fzf-command", "", "fzf executable (default "+picker.DefaultCommand+")")
	fs.StringVar(&f.filter, "filter", "", "pick the best match for this query without any UI")
	fs.DurationVar(&f.timeout, "timeout", 0, "give up waiting for a selection after this long (0 waits forever)")
	fs.IntVar(&f.width, "width", 0, "terminal width in cells (0 detects)")
	fs.IntVar(&f.height, "height", 0, "terminal height in rows (0 detects)")
	fs.BoolVar(&f.plain, "plain", false, "render the feed without colours")
	fs.StringVar(&f.logFile, "log-file", "", "path to the log file")
	fs.StringVar(&f.logLevel, "log-level", "", "log level: error, warn, info, debug (default error)")
	fs.BoolVar(&f.trace, "trace", false, "enable verbose JSON trace logging")
	return f
}

// Resolve merges defaults, the config file, the environment and the parsed
// flags, in increasing order of precedence.
func (f *Flags) Resolve(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)
	home := envOrDefault(env, "HOME", "")
	if home == "" {
		home, _ = os.UserHomeDir()
	}

	path, explicit := f.configFile, f.changed("config")
	if !explicit {
		if v := envOrDefault(env, envConfig, ""); v != "" {
			path, explicit = v, true
		} else {
			path = defaultConfigPath(env, home)
		}
	}
	path = expandHome(path, home)
	file, loaded, err := readFile(path, explicit)
	if err != nil {
		return Config{}, err
	}
	if !loaded {
		path = ""
	}

	sessionsDir := firstNonEmpty(file.SessionsDir, filepath.Join(home, ".config", "tav", "sessions"))
	sessionsDir = envOrDefault(env, envSessionsDir, sessionsDir)
	pickerName := envOrDefault(env, envPicker, firstNonEmpty(file.Picker, string(app.PickerAuto)))
	fzfCommand := envOrDefault(env, envFZFCommand, firstNonEmpty(file.FZFCommand, picker.DefaultCommand))
	logFile := envOrDefault(env, envLogFile, file.Log.File)
	logLevel := envOrDefault(env, envLogLevel, file.Log.Level)

	timeout := time.Duration(0)
	if file.Timeout != "" {
		if timeout, err = time.ParseDuration(file.Timeout); err != nil {
			return Config{}, fmt.Errorf("config file %s: invalid timeout %q: %w", path, file.Timeout, err)
		}
	}
	timeout = envOrDuration(env, envTimeout, timeout)

	socket := envOrDefault(env, envSocketPath, "")
	width := envOrInt(env, envWidth, 0)
	height := envOrInt(env, envHeight, 0)
	plain := envOrBool(env, envPlain, false)
	trace := envOrBool(env, envTrace, false)
	filter := ""

	if f.changed("socket") {
		socket = f.socket
	}
	if f.changed("sessions-dir") {
		sessionsDir = f.sessionsDir
	}
	if f.changed("picker") {
		pickerName = f.picker
	}
	if f.changed("fzf-command") {
		fzfCommand = f.fzfCommand
	}
	if f.changed("filter") {
		filter = f.filter
	}
	if f.changed("timeout") {
		timeout = f.timeout
	}
	if f.changed("width") {
		width = f.width
	}
	if f.changed("height") {
		height = f.height
	}
	if f.changed("plain") {
		plain = f.plain
	}
	if f.changed("log-file") {
		logFile = f.logFile
	}
	if f.changed("log-level") {
		logLevel = f.logLevel
	}
	if f.changed("trace") {
		trace = f.trace
	}

	if width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", width)
	}
	if height < 0 {
		return Config{}, fmt.Errorf("height must be >= 0 (got %d)", height)
	}
	if timeout < 0 {
		return Config{}, fmt.Errorf("timeout must be >= 0 (got %s)", timeout)
	}
	mode, err := app.ParsePickerMode(pickerName)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		App: app.Config{
			SocketPath:  socket,
			SessionsDir: expandHome(sessionsDir, home),
			Picker:      mode,
			FZFCommand:  fzfCommand,
			Filter:      filter,
			Timeout:     timeout,
			Width:       width,
			Height:      height,
			Plain:       plain,
			Icons:       file.Icons,
		},
		Logging: Logging{
			FilePath: expandHome(logFile, home),
			Level:    logLevel,
			Trace:    trace,
		},
		Flags: map[string]string{
			"socket":      socket,
			"sessionsDir": sessionsDir,
			"picker":      string(mode),
			"fzfCommand":  fzfCommand,
			"filter":      filter,
			"timeout":     timeout.String(),
			"width":       strconv.Itoa(width),
			"height":      strconv.Itoa(height),
			"plain":       strconv.FormatBool(plain),
			"logLevel":    logLevel,
		},
		Args:       append([]string(nil), args...),
		ConfigFile: path,
	}
	return cfg, nil
}

func (f *Flags) changed(name string) bool {
	return f.set != nil && f.set.Changed(name)
}

func defaultConfigPath(env map[string]string, home string) string {
	if dir := envOrDefault(env, "XDG_CONFIG_HOME", ""); dir != "" {
		return filepath.Join(dir, "tav", "config.yaml")
	}
	return filepath.Join(home, ".config", "tav", "config.yaml")
}

// readFile loads the YAML config. A missing default file is fine; a missing
// file that was asked for is not.
func readFile(path string, explicit bool) (fileConfig, bool, error) {
	var file fileConfig
	if path == "" {
		return file, false, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			return file, false, nil
		}
		return file, false, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return file, false, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return file, true, nil
}

func expandHome(path, home string) string {
	if home == "" {
		return path
	}
	if path == "~" {
		return home
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:])
	}
	return path
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok && v != "" {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrDuration(env map[string]string, key string, fallback time.Duration) time.Duration {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// Validate ensures required minimum configuration is present.
func Validate(cfg Config) error {
	if _, err := logging.ParseLevel(cfg.Logging.Level); err != nil {
		return err
	}
	if cfg.App.Picker == app.PickerFZF && strings.TrimSpace(cfg.App.FZFCommand) == "" {
		return fmt.Errorf("fzf picker requires a command")
	}
	if strings.TrimSpace(cfg.App.SessionsDir) == "" {
		return fmt.Errorf("sessions directory required")
	}
	return nil
}
