package sandbox

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"syscall"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/Mihailob5017/codegames/internal/adapter/logging"
	"github.com/Mihailob5017/codegames/internal/adapter/metrics"
	"github.com/Mihailob5017/codegames/internal/config"
	"github.com/Mihailob5017/codegames/internal/core/ports/primary"
	"github.com/Mihailob5017/codegames/internal/core/ports/secondary"
	"github.com/Mihailob5017/codegames/internal/domain"
)

const (
	ErrTimeout   = domain.ExecutionTimeoutError
	ErrCancelled = domain.ExecutionCancelledError

	// how long Wait keeps draining pipes held open by descendants after the
	// interpreter itself has exited
	pipeDrainDelay = 250 * time.Millisecond
)

var _ secondary.CodeExecutor = (*ProcessExecutor)(nil)

type Options struct {
	MaxOutputBytes   int
	MaxConcurrent    int
	DefaultTimeLimit time.Duration
	WorkDir          string
}

// ProcessExecutor runs each program as a fresh interpreter process in its
// own process group, so the whole group can be killed on timeout
type ProcessExecutor struct {
	registry *Registry
	sem      *semaphore.Weighted
	opts     Options
	logger   primary.Logger
}

func NewProcessExecutor(registry *Registry, opts Options, logger primary.Logger) *ProcessExecutor {
	if opts.MaxOutputBytes <= 0 {
		opts.MaxOutputBytes = 1 << 20
	}
	if opts.MaxConcurrent <= 0 {
		opts.MaxConcurrent = 1
	}
	if opts.DefaultTimeLimit <= 0 {
		opts.DefaultTimeLimit = time.Duration(domain.DefaultTimeLimitMs) * time.Millisecond
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &ProcessExecutor{
		registry: registry,
		sem:      semaphore.NewWeighted(int64(opts.MaxConcurrent)),
		opts:     opts,
		logger:   logger,
	}
}

func NewProcessExecutorFromConfig(cfg *config.SandboxConfig, logger primary.Logger) *ProcessExecutor {
	return NewProcessExecutor(NewDefaultRegistry(cfg), Options{
		MaxOutputBytes:   cfg.MaxOutputBytes,
		MaxConcurrent:    cfg.MaxConcurrent,
		DefaultTimeLimit: time.Duration(cfg.DefaultTimeLimitMs) * time.Millisecond,
		WorkDir:          cfg.WorkDir,
	}, logger)
}

func (e *ProcessExecutor) Run(ctx context.Context, req domain.ExecutionRequest) domain.ExecutionResult {
	lang := string(req.Language)

	rt, err := e.registry.Get(req.Language)
	if err != nil {
		metrics.ExecutionsTotal.WithLabelValues(lang, "spawn_error").Inc()
		return domain.ExecutionResult{Error: fmt.Sprintf("unsupported language: %s", req.Language)}
	}

	limit := e.opts.DefaultTimeLimit
	if req.TimeLimitMs > 0 {
		limit = time.Duration(req.TimeLimitMs) * time.Millisecond
	}

	if err := e.sem.Acquire(ctx, 1); err != nil {
		metrics.ExecutionsTotal.WithLabelValues(lang, "cancelled").Inc()
		return domain.ExecutionResult{Error: ErrCancelled}
	}
	defer e.sem.Release(1)

	metrics.ExecutionsInFlight.Inc()
	defer metrics.ExecutionsInFlight.Dec()

	result, status := e.run(ctx, rt, req, limit)

	metrics.ExecutionsTotal.WithLabelValues(lang, status).Inc()
	metrics.ExecutionDuration.WithLabelValues(lang).Observe(float64(result.ExecutionTimeMs))
	if result.MemoryUsedKB > 0 {
		metrics.MemoryUsage.WithLabelValues(lang).Observe(float64(result.MemoryUsedKB))
	}
	return result
}

func (e *ProcessExecutor) run(ctx context.Context, rt Runtime, req domain.ExecutionRequest, limit time.Duration) (domain.ExecutionResult, string) {
	stdout := newCappedBuffer(e.opts.MaxOutputBytes)
	stderr := newCappedBuffer(e.opts.MaxOutputBytes)

	cmd := exec.Command(rt.Binary, rt.argv(req.SourceCode)...)
	cmd.Dir = e.opts.WorkDir
	cmd.Env = e.environment()
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	cmd.WaitDelay = pipeDrainDelay
	if req.Stdin != "" {
		cmd.Stdin = strings.NewReader(req.Stdin)
	}

	start := time.Now()
	if err := cmd.Start(); err != nil {
		e.logger.Warn("failed to start interpreter", "binary", rt.Binary, "error", err)
		return domain.ExecutionResult{
			Error:           err.Error(),
			ExecutionTimeMs: time.Since(start).Milliseconds(),
		}, "spawn_error"
	}

	done := make(chan error, 1)
	go func() {
		done <- cmd.Wait()
	}()

	timer := time.NewTimer(limit)
	defer timer.Stop()

	var (
		waitErr error
		reason  string
	)
	select {
	case waitErr = <-done:
	case <-timer.C:
		killGroup(cmd.Process.Pid)
		waitErr = <-done
		reason = ErrTimeout
	case <-ctx.Done():
		killGroup(cmd.Process.Pid)
		waitErr = <-done
		reason = ErrCancelled
	}
	elapsed := time.Since(start)

	// descendants left behind by a finished program must not outlive the call
	killGroup(cmd.Process.Pid)

	result := domain.ExecutionResult{
		Stdout:          stdout.String(),
		Stderr:          stderr.String(),
		ExecutionTimeMs: elapsed.Milliseconds(),
		MemoryUsedKB:    peakRSSKB(cmd.ProcessState),
	}

	switch reason {
	case ErrTimeout:
		e.logger.Debug("execution timed out", "language", req.Language, "limit", limit)
		result.Error = ErrTimeout
		return result, "timeout"
	case ErrCancelled:
		e.logger.Debug("execution cancelled", "language", req.Language, "error", ctx.Err())
		result.Error = ErrCancelled
		return result, "cancelled"
	}

	if waitErr != nil && !errors.Is(waitErr, exec.ErrWaitDelay) {
		result.Error = exitError(waitErr, result.Stderr)
		return result, "error"
	}

	result.Success = true
	return result, "ok"
}

func (e *ProcessExecutor) environment() []string {
	home := e.opts.WorkDir
	if home == "" {
		home = os.TempDir()
	}
	path := os.Getenv("PATH")
	if path == "" {
		path = "/usr/local/bin:/usr/bin:/bin"
	}
	return []string{
		"PATH=" + path,
		"HOME=" + home,
		"LANG=C.UTF-8",
		"PYTHONDONTWRITEBYTECODE=1",
		"PYTHONIOENCODING=utf-8",
		"PYTHONUNBUFFERED=1",
	}
}

func exitError(err error, stderr string) string {
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return err.Error()
	}
	if status, ok := exitErr.Sys().(syscall.WaitStatus); ok && status.Signaled() {
		return fmt.Sprintf("Process killed by signal %s", status.Signal())
	}
	if msg := strings.TrimSpace(stderr); msg != "" {
		return msg
	}
	return fmt.Sprintf("Process exited with code %d", exitErr.ExitCode())
}

// killGroup sends SIGKILL to every process in the group led by pid
func killGroup(pid int) {
	if pid <= 0 {
		return
	}
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}

func peakRSSKB(state *os.ProcessState) int64 {
	if state == nil {
		return 0
	}
	if ru, ok := state.SysUsage().(*syscall.Rusage); ok {
		return int64(ru.Maxrss)
	}
	return 0
}
