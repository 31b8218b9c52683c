package cli

import (
	"github.com/tacogips/tplctl/internal/config"
	"github.com/tacogips/tplctl/internal/debug"
	"github.com/tacogips/tplctl/internal/runner"
)

// session holds what one command needs to talk to devinit.
type session struct {
	provider *config.FileProvider
	state    *runner.State
	invoker  *runner.ProcessInvoker
}

// newSession loads settings from the --settings path (or the default path)
// and applies the --devinit and --devinit-config overrides.
func newSession() (*session, error) {
	path := globalSettings
	if path == "" {
		path = config.DefaultSettingsPath()
	}
	path, err := config.ExpandPath(path)
	if err != nil {
		return nil, err
	}
	debug.DebugValue("[cli] Settings path", path)

	provider, err := config.NewFileProvider(config.NewLoader(), path)
	if err != nil {
		return nil, err
	}
	provider.SetOverrides(globalDevinit, globalDevinitConfig)

	return &session{
		provider: provider,
		state:    runner.NewState(provider),
		invoker:  runner.NewProcessInvoker(provider.Timeout()),
	}, nil
}

// watchSettings reloads settings and refreshes the state whenever the
// settings file changes, until the returned stop function is called. Specs
// already built keep the paths they were created with.
func (s *session) watchSettings() (stop func()) {
	w, err := config.NewWatcher(s.provider.Path(), s.reload)
	if err != nil {
		debug.Debug("[cli] Settings watcher unavailable: %v", err)
		return func() {}
	}
	w.Start()
	return func() {
		if err := w.Stop(); err != nil {
			debug.Debug("[cli] Failed to stop settings watcher: %v", err)
		}
	}
}

func (s *session) reload() {
	if err := s.provider.Reload(); err != nil {
		printWarning("Settings not reloaded: " + err.Error())
		return
	}
	s.state.Refresh()
}
