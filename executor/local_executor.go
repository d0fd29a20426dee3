package executor

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/forgeqa/plugmatrix/file"
)

// localExecutor implements Executor against the local machine.
type localExecutor struct{}

// NewLocalExecutor creates an Executor for local operations.
func NewLocalExecutor() Executor {
	return &localExecutor{}
}

func (l *localExecutor) Execute(ctx context.Context, command string, opts ExecOptions) (string, string, int, error) {
	if command == "" {
		return "", "", 0, fmt.Errorf("empty command")
	}
	// Commands come from rendered templates and may contain quoting, so they
	// go through the shell rather than a naive argv split.
	cmd := exec.CommandContext(ctx, "/bin/bash", "-c", command)
	if opts.Dir != "" {
		cmd.Dir = opts.Dir
	}
	if len(opts.Env) > 0 {
		cmd.Env = append(os.Environ(), opts.Env...)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err == nil {
		return stdout.String(), stderr.String(), 0, nil
	}
	if exitErr, ok := err.(*exec.ExitError); ok {
		// Non-zero exit is a result, not an invocation failure.
		return stdout.String(), stderr.String(), exitErr.ExitCode(), nil
	}
	return stdout.String(), stderr.String(), 1, errors.Wrapf(err, "failed to run command %q", command)
}

func (l *localExecutor) FileExists(ctx context.Context, path string) (bool, error) {
	return file.IsFile(path)
}

func (l *localExecutor) DirExists(ctx context.Context, path string) (bool, error) {
	return file.IsDir(path)
}

func (l *localExecutor) Glob(ctx context.Context, pattern string) ([]string, error) {
	return file.Glob(pattern)
}

func (l *localExecutor) Remove(ctx context.Context, path string) error {
	return os.Remove(path)
}

func (l *localExecutor) MkdirAll(ctx context.Context, path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

func (l *localExecutor) UploadFile(ctx context.Context, localPath, targetPath string, perm os.FileMode) error {
	src, err := os.Open(localPath)
	if err != nil {
		return errors.Wrapf(err, "failed to open source file %s", localPath)
	}
	defer src.Close()

	if err := file.CreateDir(filepath.Dir(targetPath)); err != nil {
		return errors.Wrapf(err, "failed to create directory for %s", targetPath)
	}
	dst, err := os.OpenFile(targetPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return errors.Wrapf(err, "failed to create destination file %s", targetPath)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return errors.Wrapf(err, "failed to copy %s to %s", localPath, targetPath)
	}
	return dst.Chmod(perm)
}

func (l *localExecutor) Close() error {
	return nil
}
