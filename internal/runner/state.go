package runner

import (
	"sync/atomic"

	"github.com/tacogips/tplctl/internal/debug"
)

// Provider supplies the shared invocation settings.
type Provider interface {
	// ExecutablePath returns the devinit path, or "" to search PATH.
	ExecutablePath() string
	// ConfigPath returns the devinitrc path, or "" for devinit's own default.
	ConfigPath() string
}

type snapshot struct {
	executablePath string
	configPath     string
}

// State holds the executable and config paths shared by every invocation.
// Refresh replaces both at once; each Spec copies them when it is created.
type State struct {
	provider Provider
	current  atomic.Pointer[snapshot]
}

// NewState creates a State and reads the provider once.
func NewState(provider Provider) *State {
	s := &State{provider: provider}
	s.Refresh()
	return s
}

// Refresh re-reads the provider. Call it whenever the settings change.
func (s *State) Refresh() {
	next := &snapshot{
		executablePath: s.provider.ExecutablePath(),
		configPath:     s.provider.ConfigPath(),
	}
	s.current.Store(next)
	debug.Debug("[runner] State refreshed: executable=%q config=%q", next.executablePath, next.configPath)
}

// ExecutablePath returns the current executable path.
func (s *State) ExecutablePath() string {
	return s.current.Load().executablePath
}

// ConfigPath returns the current config path.
func (s *State) ConfigPath() string {
	return s.current.Load().configPath
}

// NewSpec returns a file/path Spec seeded with the current settings.
func (s *State) NewSpec() Spec {
	snap := s.current.Load()
	return Spec{
		ExecutablePath: snap.executablePath,
		ConfigPath:     snap.configPath,
		Subcommand:     SubcommandFile,
		OutputMode:     OutputToPath,
		Variables:      &Variables{},
	}
}

// StaticProvider is a Provider with fixed values.
type StaticProvider struct {
	Executable string
	Config     string
}

// ExecutablePath implements Provider.
func (p StaticProvider) ExecutablePath() string { return p.Executable }

// ConfigPath implements Provider.
func (p StaticProvider) ConfigPath() string { return p.Config }
