// Package sftpclient uploads backup artifacts to an SFTP drop box.
package sftpclient

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"time"

	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/knownhosts"

	"course-catalog/internal/concurrency"
)

type Config struct {
	Host                  string
	Port                  int
	User                  string
	Pass                  string
	RemoteDir             string
	InsecureIgnoreHostKey bool
	// KnownHostsFile defaults to ~/.ssh/known_hosts when host keys are checked.
	KnownHostsFile string
}

// Item is one file to upload, held in memory.
type Item struct {
	Name string
	Data []byte
}

// Session is an open SFTP connection rooted at a remote directory.
type Session struct {
	ssh *ssh.Client
	cli *sftp.Client
	dir string
}

func (c *Config) withDefaults() error {
	if c.Host == "" || c.User == "" || c.Pass == "" {
		return fmt.Errorf("sftp: missing env SFTP_HOST / SFTP_USER / SFTP_PASS")
	}
	if c.Port <= 0 {
		c.Port = 22
	}
	if c.RemoteDir == "" {
		c.RemoteDir = "/"
	}
	return nil
}

func hostKeyCallback(cfg Config) (ssh.HostKeyCallback, error) {
	if cfg.InsecureIgnoreHostKey {
		return ssh.InsecureIgnoreHostKey(), nil
	}
	file := cfg.KnownHostsFile
	if file == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("sftp: locate known_hosts: %w", err)
		}
		file = filepath.Join(home, ".ssh", "known_hosts")
	}
	cb, err := knownhosts.New(file)
	if err != nil {
		return nil, fmt.Errorf("sftp: load known_hosts: %w", err)
	}
	return cb, nil
}

// Dial connects and authenticates with a password. ctx bounds the TCP
// dial and SSH handshake.
func Dial(ctx context.Context, cfg Config) (*Session, error) {
	if err := cfg.withDefaults(); err != nil {
		return nil, err
	}
	cb, err := hostKeyCallback(cfg)
	if err != nil {
		return nil, err
	}

	sshCfg := &ssh.ClientConfig{
		User:            cfg.User,
		Auth:            []ssh.AuthMethod{ssh.Password(cfg.Pass)},
		HostKeyCallback: cb,
		Timeout:         20 * time.Second,
	}
	addr := net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))

	d := net.Dialer{Timeout: sshCfg.Timeout}
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("sftp: dial error: %w", err)
	}
	if dl, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(dl)
	}
	c, chans, reqs, err := ssh.NewClientConn(conn, addr, sshCfg)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("sftp: handshake: %w", err)
	}
	_ = conn.SetDeadline(time.Time{})
	sshClient := ssh.NewClient(c, chans, reqs)

	cli, err := sftp.NewClient(sshClient)
	if err != nil {
		sshClient.Close()
		return nil, fmt.Errorf("sftp: new client: %w", err)
	}
	s := NewSession(cli, cfg.RemoteDir)
	s.ssh = sshClient
	return s, nil
}

// NewSession wraps an already connected client.
func NewSession(cli *sftp.Client, remoteDir string) *Session {
	if remoteDir == "" {
		remoteDir = "/"
	}
	return &Session{cli: cli, dir: remoteDir}
}

func (s *Session) Close() error {
	err := s.cli.Close()
	if s.ssh != nil {
		err = errors.Join(err, s.ssh.Close())
	}
	return err
}

// Put streams r to name inside the session directory, creating the
// directory first.
func (s *Session) Put(ctx context.Context, name string, r io.Reader) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.cli.MkdirAll(s.dir); err != nil {
		return fmt.Errorf("sftp: mkdir %s: %w", s.dir, err)
	}

	remotePath := path.Join(s.dir, name)
	dst, err := s.cli.Create(remotePath)
	if err != nil {
		return fmt.Errorf("sftp: create remote file: %w", err)
	}
	if _, err := io.Copy(dst, r); err != nil {
		dst.Close()
		return fmt.Errorf("sftp: upload copy %s: %w", name, err)
	}
	if err := dst.Close(); err != nil {
		return fmt.Errorf("sftp: close %s: %w", name, err)
	}
	return nil
}

// PutAll uploads items concurrently over the one connection.
func (s *Session) PutAll(ctx context.Context, items []Item) error {
	errs := concurrency.ForEach(ctx, items, concurrency.ParallelOptions{MaxWorkers: 4},
		func(ctx context.Context, _ int, it Item) error {
			return s.Put(ctx, it.Name, bytes.NewReader(it.Data))
		})
	if err := ctx.Err(); err != nil {
		return err
	}
	return errors.Join(errs...)
}

// UploadFile copies one local file to remoteFileName.
func UploadFile(ctx context.Context, cfg Config, localPath string, remoteFileName string) error {
	s, err := Dial(ctx, cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	src, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("sftp: open local file: %w", err)
	}
	defer src.Close()

	return s.Put(ctx, remoteFileName, src)
}

// UploadAll dials once and uploads every item.
func UploadAll(ctx context.Context, cfg Config, items []Item) error {
	s, err := Dial(ctx, cfg)
	if err != nil {
		return err
	}
	defer s.Close()
	return s.PutAll(ctx, items)
}
