// Package credentials stores the access token used by the command line tool.
//
// The token lives in a TOML file at s2/config.toml below the user config
// directory.
package credentials

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

var ErrConfigDirNotFound = errors.New("could not find the user config directory")

// LoadError is returned when the credentials file exists but could not be
// read.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return "failed to load credentials from " + e.Path + ": " + e.Err.Error()
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// WriteError is returned when the credentials file could not be written.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return "failed to write credentials to " + e.Path + ": " + e.Err.Error()
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

type Credentials struct {
	Token string `toml:"token"`
}

// Path returns the location of the credentials file.
func Path() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		return "", ErrConfigDirNotFound
	}

	return filepath.Join(dir, "s2", "config.toml"), nil
}

// Load reads the credentials at path. A missing file results in empty
// credentials.
func Load(path string) (*Credentials, error) {
	var c Credentials
	_, err := toml.DecodeFile(path, &c)
	if errors.Is(err, os.ErrNotExist) {
		return &Credentials{}, nil
	} else if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	return &c, nil
}

// Save writes the credentials to path, creating the directory if needed. The
// file is replaced atomically and only readable by the current user.
func Save(path string, c *Credentials) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return &WriteError{Path: path, Err: err}
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return &WriteError{Path: path, Err: fmt.Errorf("could not encode: %w", err)}
	}

	if err := writeFile(path, buf.Bytes(), 0o600); err != nil {
		return &WriteError{Path: path, Err: err}
	}

	return nil
}

// writeFile writes via a temp file in the same directory and renames it over
// the target.
func writeFile(path string, b []byte, mode os.FileMode) error {
	f, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()

	// No-op once renamed
	defer func() { _ = os.Remove(tmp) }()

	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Chmod(mode); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	return os.Rename(tmp, path)
}
