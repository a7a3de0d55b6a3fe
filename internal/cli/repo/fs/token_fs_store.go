package fs

import (
	"errors"
	"os"
	"path/filepath"
)

// TokenFSStore keeps the two bearer tokens as files, mirroring the web
// client's accessToken/refreshToken local storage keys. No expiry is
// tracked.
type TokenFSStore struct {
	// Dir overrides the default <user config dir>/findcourse location.
	Dir string
}

const (
	accessTokenFile  = "accessToken"
	refreshTokenFile = "refreshToken"
)

func (s TokenFSStore) dir() (string, error) {
	if s.Dir != "" {
		if err := os.MkdirAll(s.Dir, 0o700); err != nil {
			return "", err
		}
		return s.Dir, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	p := filepath.Join(dir, "findcourse")
	if err := os.MkdirAll(p, 0o700); err != nil {
		return "", err
	}
	return p, nil
}

// SaveAccess writes the access token file.
func (s TokenFSStore) SaveAccess(token string) error { return s.save(accessTokenFile, token) }

// SaveRefresh writes the refresh token file.
func (s TokenFSStore) SaveRefresh(token string) error { return s.save(refreshTokenFile, token) }

// LoadAccess reads the access token.
func (s TokenFSStore) LoadAccess() (string, error) { return s.load(accessTokenFile) }

// LoadRefresh reads the refresh token.
func (s TokenFSStore) LoadRefresh() (string, error) { return s.load(refreshTokenFile) }

// Clear removes both token files. Missing files are not an error.
func (s TokenFSStore) Clear() error {
	dir, err := s.dir()
	if err != nil {
		return err
	}
	for _, name := range []string{accessTokenFile, refreshTokenFile} {
		if err := os.Remove(filepath.Join(dir, name)); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return nil
}

func (s TokenFSStore) save(name, token string) error {
	if token == "" {
		return errors.New("empty token")
	}
	dir, err := s.dir()
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, name), []byte(token), 0o600)
}

func (s TokenFSStore) load(name string) (string, error) {
	dir, err := s.dir()
	if err != nil {
		return "", err
	}
	b, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return "", err
	}
	// trim trailing whitespace
	for len(b) > 0 {
		c := b[len(b)-1]
		if c == '\n' || c == '\r' || c == ' ' || c == '\t' {
			b = b[:len(b)-1]
			continue
		}
		break
	}
	if len(b) == 0 {
		return "", errors.New("empty token file")
	}
	return string(b), nil
}
