package sandbox

import (
	"errors"
	"sort"
	"sync"

	"github.com/Mihailob5017/codegames/internal/config"
	"github.com/Mihailob5017/codegames/internal/domain"
)

var ErrRuntimeNotFound = errors.New("no runtime registered for language")

// Runtime is an interpreter invocation; the program text is appended as the last argument
type Runtime struct {
	Binary string
	Args   []string
}

func (r Runtime) argv(source string) []string {
	args := make([]string, 0, len(r.Args)+1)
	args = append(args, r.Args...)
	return append(args, source)
}

type Registry struct {
	mu       sync.RWMutex
	runtimes map[domain.Language]Runtime
}

func NewRegistry() *Registry {
	return &Registry{
		runtimes: make(map[domain.Language]Runtime),
	}
}

// NewDefaultRegistry registers node and python with the configured binaries
func NewDefaultRegistry(cfg *config.SandboxConfig) *Registry {
	r := NewRegistry()
	r.Register(domain.LanguageJavaScript, Runtime{
		Binary: cfg.NodeBinary,
		Args:   []string{"-e"},
	})
	r.Register(domain.LanguagePython, Runtime{
		Binary: cfg.PythonBinary,
		Args:   []string{"-I", "-c"},
	})
	return r
}

func (r *Registry) Register(lang domain.Language, rt Runtime) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.runtimes[lang] = rt
}

func (r *Registry) Get(lang domain.Language) (Runtime, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rt, ok := r.runtimes[lang]
	if !ok {
		return Runtime{}, ErrRuntimeNotFound
	}
	return rt, nil
}

func (r *Registry) Languages() []domain.Language {
	r.mu.RLock()
	defer r.mu.RUnlock()
	langs := make([]domain.Language, 0, len(r.runtimes))
	for l := range r.runtimes {
		langs = append(langs, l)
	}
	sort.Slice(langs, func(i, j int) bool { return langs[i] < langs[j] })
	return langs
}
