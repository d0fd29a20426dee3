package runtime

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/forgeqa/plugmatrix/cache"
	"github.com/forgeqa/plugmatrix/executor"
	"github.com/forgeqa/plugmatrix/toolchain"
)

// baseRuntime implements the Runtime interface.
type baseRuntime struct {
	exec        executor.Executor
	tools       toolchain.Toolchain
	workDir     string
	objectName  string
	runID       string
	verbose     bool
	ignoreError bool
	basePath    string

	mu           sync.Mutex
	env          map[string]string
	pathPrefixes []string

	store *cache.Cache[string, string]
}

// Config for creating a new Runtime.
type Config struct {
	Executor    executor.Executor
	Toolchain   toolchain.Toolchain
	WorkDir     string
	ObjectName  string
	Verbose     bool
	IgnoreError bool
	// BasePath is the PATH value prefixes are prepended to. Defaults to the
	// local process PATH; remote runs should pass the target's PATH.
	BasePath string
}

// NewRuntime creates a Runtime with a fresh run ID.
func NewRuntime(cfg Config) (Runtime, error) {
	if cfg.Executor == nil {
		return nil, fmt.Errorf("runtime requires an executor")
	}
	if cfg.Toolchain == nil {
		return nil, fmt.Errorf("runtime requires a toolchain")
	}
	if cfg.BasePath == "" {
		cfg.BasePath = os.Getenv("PATH")
	}
	return &baseRuntime{
		exec:        cfg.Executor,
		tools:       cfg.Toolchain,
		workDir:     cfg.WorkDir,
		objectName:  cfg.ObjectName,
		runID:       uuid.NewString(),
		verbose:     cfg.Verbose,
		ignoreError: cfg.IgnoreError,
		basePath:    cfg.BasePath,
		env:         make(map[string]string),
		store:       cache.New[string, string](),
	}, nil
}

func (r *baseRuntime) GetExecutor() executor.Executor    { return r.exec }
func (r *baseRuntime) GetToolchain() toolchain.Toolchain { return r.tools }
func (r *baseRuntime) WorkDir() string                   { return r.workDir }
func (r *baseRuntime) ObjectName() string                { return r.objectName }
func (r *baseRuntime) RunID() string                     { return r.runID }
func (r *baseRuntime) Verbose() bool                     { return r.verbose }
func (r *baseRuntime) IgnoreError() bool                 { return r.ignoreError }

func (r *baseRuntime) ExecOptions() executor.ExecOptions {
	r.mu.Lock()
	defer r.mu.Unlock()

	keys := make([]string, 0, len(r.env))
	for k := range r.env {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	env := make([]string, 0, len(keys)+1)
	for _, k := range keys {
		env = append(env, k+"="+r.env[k])
	}
	if len(r.pathPrefixes) > 0 {
		env = append(env, "PATH="+strings.Join(r.pathPrefixes, ":")+":"+r.basePath)
	}
	return executor.ExecOptions{Dir: r.workDir, Env: env}
}

func (r *baseRuntime) SetEnv(key, value string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.env[key] = value
}

func (r *baseRuntime) UnsetEnv(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.env, key)
}

func (r *baseRuntime) PrependPath(dir string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.pathPrefixes {
		if existing == dir {
			return
		}
	}
	r.pathPrefixes = append([]string{dir}, r.pathPrefixes...)
}

func (r *baseRuntime) RemovePathPrefix(dir string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.pathPrefixes[:0]
	for _, existing := range r.pathPrefixes {
		if existing != dir {
			kept = append(kept, existing)
		}
	}
	r.pathPrefixes = kept
}

func (r *baseRuntime) Cache() *cache.Cache[string, string] {
	return r.store
}
