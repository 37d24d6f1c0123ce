// Package shell provides the runner spawning external build tools.
package shell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/kballard/go-shellquote"
	"go.trai.ch/rbwasm/internal/core/domain"
	"go.trai.ch/rbwasm/internal/core/ports"
	"go.trai.ch/zerr"
)

// tailLines is the number of trailing stderr lines attached to a failure.
const tailLines = 20

var _ ports.CommandRunner = (*Executor)(nil)

// Executor implements ports.CommandRunner using os/exec.
type Executor struct {
	logger  ports.Logger
	environ func() []string
}

// NewExecutor creates a new Executor.
func NewExecutor(logger ports.Logger) *Executor {
	return &Executor{
		logger:  logger,
		environ: os.Environ,
	}
}

// Run spawns the command and waits for it to complete.
//
// Child output is logged line by line at debug level, so it only reaches the
// user in verbose mode, and is mirrored to the vertex carried by ctx.
func (e *Executor) Run(ctx context.Context, c *domain.Command) error {
	cmdEnv := resolveEnvironment(e.environ(), c.PathPrepend, c.Env)

	executable := c.Name
	if !filepath.IsAbs(c.Name) && !strings.ContainsRune(c.Name, filepath.Separator) {
		lp, err := lookPath(c.Name, cmdEnv)
		if err != nil {
			return zerr.With(zerr.Wrap(errors.Join(domain.ErrCommandNotFound, err), "binary missing"), "command", c.Name)
		}
		executable = lp
	}

	e.trace(c)

	stdoutLog := &logWriter{logger: e.logger}
	stderrLog := &logWriter{logger: e.logger, keep: tailLines}
	var stdout, stderr io.Writer = stdoutLog, stderrLog
	if v, ok := ports.VertexFromContext(ctx); ok {
		stdout = io.MultiWriter(stdoutLog, v.Stdout())
		stderr = io.MultiWriter(stderrLog, v.Stderr())
	}

	cmd := exec.CommandContext(ctx, executable, c.Args...) //nolint:gosec // tool paths come from the toolchain
	cmd.Args[0] = c.Name
	cmd.Dir = c.Dir
	cmd.Env = cmdEnv
	cmd.Stdin = c.Stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	err := cmd.Run()
	_ = stdoutLog.Close()
	_ = stderrLog.Close()
	if err == nil {
		return nil
	}

	exitCode := -1
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		exitCode = exitErr.ExitCode()
	}

	failure := zerr.With(zerr.Wrap(err, domain.ErrCommandFailed.Error()), "command", c.Label())
	failure = zerr.With(failure, "exit_code", exitCode)
	if c.Dir != "" {
		failure = zerr.With(failure, "dir", c.Dir)
	}
	if tail := stderrLog.Tail(); tail != "" {
		failure = zerr.With(failure, "stderr", tail)
	}
	return failure
}

// trace reports the command about to run. Verbose mode adds the directory and full command line.
func (e *Executor) trace(c *domain.Command) {
	if !e.logger.Verbose() {
		e.logger.Info("running " + c.Label())
		return
	}

	line := shellquote.Join(c.Argv()...)
	if len(c.PathPrepend) > 0 {
		e.logger.Debug("prepending PATH with " + strings.Join(c.PathPrepend, string(os.PathListSeparator)))
	}
	if c.Dir != "" {
		e.logger.Info("running " + c.Label() + " in " + c.Dir + ": " + line)
		return
	}
	e.logger.Info("running " + c.Label() + ": " + line)
}

// logWriter forwards complete lines to the logger at debug level and
// optionally remembers the last few of them.
type logWriter struct {
	logger ports.Logger
	buf    []byte
	keep   int
	tail   []string
}

func (w *logWriter) Write(p []byte) (n int, err error) {
	w.buf = append(w.buf, p...)

	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}
		w.logLine(w.buf[:i])
		w.buf = w.buf[i+1:]
	}

	return len(p), nil
}

func (w *logWriter) Close() error {
	if len(w.buf) > 0 {
		w.logLine(w.buf)
		w.buf = nil
	}
	return nil
}

// Tail returns the remembered lines.
func (w *logWriter) Tail() string {
	return strings.Join(w.tail, "\n")
}

func (w *logWriter) logLine(line []byte) {
	msg := strings.TrimSuffix(string(line), "\r")
	w.logger.Debug(msg)

	if w.keep == 0 {
		return
	}
	w.tail = append(w.tail, msg)
	if len(w.tail) > w.keep {
		w.tail = w.tail[len(w.tail)-w.keep:]
	}
}

// resolveEnvironment applies the overrides to the system environment.
// PATH entries of pathPrepend go in front of the inherited PATH.
func resolveEnvironment(sysEnv, pathPrepend, overrides []string) []string {
	envMap := make(map[string]string, len(sysEnv))
	order := make([]string, 0, len(sysEnv)+len(overrides))
	set := func(k, v string) {
		if _, exists := envMap[k]; !exists {
			order = append(order, k)
		}
		envMap[k] = v
	}

	for _, entry := range sysEnv {
		if k, v, ok := strings.Cut(entry, "="); ok {
			set(k, v)
		}
	}

	for _, entry := range overrides {
		if k, v, ok := strings.Cut(entry, "="); ok {
			set(k, v)
		}
	}

	if len(pathPrepend) > 0 {
		path := strings.Join(pathPrepend, string(os.PathListSeparator))
		if sysPath := envMap["PATH"]; sysPath != "" {
			path += string(os.PathListSeparator) + sysPath
		}
		set("PATH", path)
	}

	result := make([]string, 0, len(order))
	for _, k := range order {
		result = append(result, k+"="+envMap[k])
	}
	return result
}

// lookPath searches for an executable in the directories named by the PATH of env.
func lookPath(file string, env []string) (string, error) {
	var path string
	for _, e := range env {
		if v, ok := strings.CutPrefix(e, "PATH="); ok {
			path = v
		}
	}

	if path == "" {
		return "", exec.ErrNotFound
	}

	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		candidate := filepath.Join(dir, file)
		if err := findExecutable(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", exec.ErrNotFound
}

func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0o111 != 0 {
		return nil
	}
	return os.ErrPermission
}
