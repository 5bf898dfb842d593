package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/rs/zerolog/log"

	"github.com/colonyops/reportbox/internal/core/config"
	"github.com/colonyops/reportbox/internal/core/styles"
	"github.com/colonyops/reportbox/internal/data/provider"
)

const appName = "reportbox"

type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string

	// Config is loaded in the Before hook and available to all commands.
	// When loading fails it holds the defaults and ConfigErr is set.
	Config    *config.Config
	ConfigErr error

	// Provider is built from Config.Source in the Before hook.
	Provider provider.Provider
}

// Ready returns the error that prevented config or provider setup, if any.
func (f *Flags) Ready() error {
	if f.ConfigErr != nil {
		return f.ConfigErr
	}
	if f.Provider == nil {
		return errors.New("no report source configured")
	}
	return nil
}

// Load reads the config file, applies the theme and builds the provider.
// A config or provider error is kept in ConfigErr rather than returned so
// commands that do not need a source, such as init, still run.
func (f *Flags) Load() {
	cfg, err := config.Load(f.ConfigPath)
	if err != nil {
		log.Warn().Err(err).Str("path", f.ConfigPath).Msg("config not usable, using defaults")
		def := config.DefaultConfig()
		f.Config = &def
		f.ConfigErr = fmt.Errorf("load config: %w", err)
		return
	}
	f.Config = cfg

	palette, _ := styles.GetPalette(cfg.TUI.Theme)
	styles.SetTheme(palette)

	p, err := provider.New(cfg.Source)
	if err != nil {
		f.ConfigErr = fmt.Errorf("build provider: %w", err)
		return
	}
	f.Provider = p

	log.Debug().Str("provider", p.Name()).Str("config", f.ConfigPath).Msg("configured")
}

// DefaultConfigPath returns the default config file path using XDG_CONFIG_HOME.
func DefaultConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, appName, "config.yaml")
}

// DefaultLogFile returns the default log file path in the system's state
// directory:
//
//	$XDG_STATE_HOME/reportbox/reportbox.log when XDG_STATE_HOME is set
//	~/Library/Logs/reportbox/reportbox.log on macOS
//	~/.local/state/reportbox/reportbox.log otherwise
func DefaultLogFile() string {
	if stateHome := os.Getenv("XDG_STATE_HOME"); stateHome != "" {
		return filepath.Join(stateHome, appName, appName+".log")
	}

	home, _ := os.UserHomeDir()
	if runtime.GOOS == "darwin" {
		return filepath.Join(home, "Library", "Logs", appName, appName+".log")
	}
	return filepath.Join(home, ".local", "state", appName, appName+".log")
}
