package config

import (
	"sync"
	"time"

	"github.com/tacogips/tplctl/internal/debug"
	"github.com/tacogips/tplctl/internal/runner"
)

var _ runner.Provider = (*FileProvider)(nil)

// FileProvider serves settings read from a settings file. It implements
// runner.Provider; call Reload when the file changes.
type FileProvider struct {
	loader Loader
	path   string

	mu             sync.RWMutex
	settings       *Settings
	executableFlag string
	configFlag     string
}

// NewFileProvider loads path (or defaults when it doesn't exist).
func NewFileProvider(loader Loader, path string) (*FileProvider, error) {
	p := &FileProvider{loader: loader, path: path}
	if err := p.Reload(); err != nil {
		return nil, err
	}
	return p, nil
}

// Path returns the settings file path.
func (p *FileProvider) Path() string {
	return p.path
}

// Reload re-reads the settings file. On failure the previous settings are kept.
func (p *FileProvider) Reload() error {
	settings, err := p.loader.LoadOrDefault(p.path)
	if err != nil {
		debug.Debug("[config] Failed to load settings from %s: %v", p.path, err)
		return err
	}

	p.mu.Lock()
	p.settings = settings
	p.mu.Unlock()

	debug.Debug("[config] Settings loaded from %s", p.path)
	debug.DebugJSON("[config] Settings", settings)
	return nil
}

// SetOverrides sets command-line values that take precedence over the file.
// Empty values leave the file setting in effect.
func (p *FileProvider) SetOverrides(executablePath, configPath string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.executableFlag = executablePath
	p.configFlag = configPath
}

// Settings returns the current settings. Callers must not modify them.
func (p *FileProvider) Settings() *Settings {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.settings
}

// ExecutablePath implements runner.Provider.
func (p *FileProvider) ExecutablePath() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.executableFlag != "" {
		return p.executableFlag
	}
	return p.settings.Environment.ExecutablePath
}

// ConfigPath implements runner.Provider.
func (p *FileProvider) ConfigPath() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.configFlag != "" {
		return p.configFlag
	}
	return p.settings.Environment.ConfigurationFile
}

// DefaultVariables returns a copy of the stored defaults for template, or nil.
func (p *FileProvider) DefaultVariables(template string) map[string]string {
	p.mu.RLock()
	defer p.mu.RUnlock()

	stored, ok := p.settings.Automation.DefaultTemplateVariables[template]
	if !ok {
		return nil
	}
	out := make(map[string]string, len(stored))
	for k, v := range stored {
		out[k] = v
	}
	return out
}

// Associations returns a copy of the template associations.
func (p *FileProvider) Associations() map[string]string {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make(map[string]string, len(p.settings.Automation.TemplateAssociations))
	for k, v := range p.settings.Automation.TemplateAssociations {
		out[k] = v
	}
	return out
}

// Timeout returns the devinit command timeout.
func (p *FileProvider) Timeout() time.Duration {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return time.Duration(p.settings.CommandTimeout) * time.Second
}
