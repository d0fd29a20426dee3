package executor

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"

	"github.com/forgeqa/plugmatrix/common"
)

// SSHConfig describes how to reach a remote test host.
type SSHConfig struct {
	Address        string
	Port           int
	User           string
	Password       string
	PrivateKeyPath string
	Timeout        time.Duration
}

// sshExecutor implements Executor over an SSH connection, so a matrix can run
// against a dedicated test machine. File operations go through SFTP.
type sshExecutor struct {
	client *ssh.Client
	sftp   *sftp.Client
}

// NewSSHExecutor dials the remote host and returns an Executor bound to it.
func NewSSHExecutor(cfg SSHConfig) (Executor, error) {
	if cfg.Address == "" {
		return nil, fmt.Errorf("ssh executor requires a host address")
	}
	if cfg.Port == 0 {
		cfg.Port = common.DefaultSSHPort
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}

	var auths []ssh.AuthMethod
	if cfg.PrivateKeyPath != "" {
		key, err := os.ReadFile(cfg.PrivateKeyPath)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read private key %s", cfg.PrivateKeyPath)
		}
		signer, err := ssh.ParsePrivateKey(key)
		if err != nil {
			return nil, errors.Wrap(err, "failed to parse private key")
		}
		auths = append(auths, ssh.PublicKeys(signer))
	}
	if cfg.Password != "" {
		auths = append(auths, ssh.Password(cfg.Password))
	}
	if len(auths) == 0 {
		return nil, fmt.Errorf("ssh executor requires a password or private key for %s", cfg.Address)
	}

	clientCfg := &ssh.ClientConfig{
		User:            cfg.User,
		Auth:            auths,
		Timeout:         cfg.Timeout,
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
	}
	addr := net.JoinHostPort(cfg.Address, fmt.Sprintf("%d", cfg.Port))
	client, err := ssh.Dial("tcp", addr, clientCfg)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to dial %s", addr)
	}
	sftpClient, err := sftp.NewClient(client)
	if err != nil {
		client.Close()
		return nil, errors.Wrap(err, "failed to open sftp session")
	}
	return &sshExecutor{client: client, sftp: sftpClient}, nil
}

func (s *sshExecutor) Execute(ctx context.Context, command string, opts ExecOptions) (string, string, int, error) {
	if command == "" {
		return "", "", 0, fmt.Errorf("empty command")
	}
	session, err := s.client.NewSession()
	if err != nil {
		return "", "", 1, errors.Wrap(err, "failed to open ssh session")
	}
	defer session.Close()

	var stdout, stderr bytes.Buffer
	session.Stdout = &stdout
	session.Stderr = &stderr

	// Env overlay and working directory are applied in the remote shell:
	// sshd commonly rejects Setenv for arbitrary names.
	full := command
	if len(opts.Env) > 0 {
		quoted := make([]string, 0, len(opts.Env))
		for _, kv := range opts.Env {
			quoted = append(quoted, fmt.Sprintf("%q", kv))
		}
		full = "env " + strings.Join(quoted, " ") + " " + full
	}
	if opts.Dir != "" {
		full = fmt.Sprintf("cd %q && %s", opts.Dir, full)
	}

	done := make(chan error, 1)
	go func() {
		done <- session.Run(full)
	}()

	select {
	case <-ctx.Done():
		session.Signal(ssh.SIGKILL)
		return stdout.String(), stderr.String(), 1, ctx.Err()
	case err = <-done:
	}

	if err == nil {
		return stdout.String(), stderr.String(), 0, nil
	}
	if exitErr, ok := err.(*ssh.ExitError); ok {
		return stdout.String(), stderr.String(), exitErr.ExitStatus(), nil
	}
	return stdout.String(), stderr.String(), 1, errors.Wrapf(err, "failed to run remote command %q", command)
}

func (s *sshExecutor) FileExists(ctx context.Context, path string) (bool, error) {
	info, err := s.sftp.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return !info.IsDir(), nil
}

func (s *sshExecutor) DirExists(ctx context.Context, path string) (bool, error) {
	info, err := s.sftp.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return info.IsDir(), nil
}

func (s *sshExecutor) Glob(ctx context.Context, pattern string) ([]string, error) {
	matches, err := s.sftp.Glob(pattern)
	if err != nil {
		return nil, errors.Wrapf(err, "bad remote glob pattern %q", pattern)
	}
	return matches, nil
}

func (s *sshExecutor) Remove(ctx context.Context, path string) error {
	return s.sftp.Remove(path)
}

func (s *sshExecutor) MkdirAll(ctx context.Context, path string, perm os.FileMode) error {
	if err := s.sftp.MkdirAll(path); err != nil {
		return errors.Wrapf(err, "failed to create remote directory %s", path)
	}
	return s.sftp.Chmod(path, perm)
}

func (s *sshExecutor) UploadFile(ctx context.Context, localPath, targetPath string, perm os.FileMode) error {
	src, err := os.Open(localPath)
	if err != nil {
		return errors.Wrapf(err, "failed to open source file %s", localPath)
	}
	defer src.Close()

	if err := s.sftp.MkdirAll(filepath.Dir(targetPath)); err != nil {
		return errors.Wrapf(err, "failed to create remote directory for %s", targetPath)
	}
	dst, err := s.sftp.Create(targetPath)
	if err != nil {
		return errors.Wrapf(err, "failed to create remote file %s", targetPath)
	}
	defer dst.Close()

	if _, err := dst.ReadFrom(src); err != nil {
		return errors.Wrapf(err, "failed to upload %s to %s", localPath, targetPath)
	}
	return s.sftp.Chmod(targetPath, perm)
}

func (s *sshExecutor) Close() error {
	if s.sftp != nil {
		s.sftp.Close()
	}
	if s.client != nil {
		return s.client.Close()
	}
	return nil
}
