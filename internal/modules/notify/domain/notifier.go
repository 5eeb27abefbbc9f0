package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	ErrNotifierDisabled = errors.New("notifier is disabled")
	ErrNoEndpoint       = errors.New("mentee has no notify endpoint")
	ErrNotifierTimeout  = errors.New("notifier timeout")
	ErrChecksumMismatch = errors.New("notifier checksum mismatch")
)

var sha256Pattern = regexp.MustCompile(`^[a-f0-9]{64}$`)

// Manifest describes an external notifier binary. The binary is launched
// per delivery and speaks the notifier rpc contract.
type Manifest struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
	Binary  string `yaml:"binary"`
	SHA256  string `yaml:"sha256"`
	Enabled bool   `yaml:"enabled"`
}

func (m Manifest) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("notifier name is required")
	}
	if m.Version == "" {
		return fmt.Errorf("notifier version is required")
	}
	if m.Binary == "" {
		return fmt.Errorf("notifier binary path is required")
	}
	if !sha256Pattern.MatchString(m.SHA256) {
		return fmt.Errorf("notifier sha256 must be lowercase 64-char hex")
	}
	return nil
}

type Metadata struct {
	Name    string
	Version string
}

// Message is one nudge to be delivered to a mentee's endpoint.
type Message struct {
	Endpoint string
	Text     string
}

func (m Message) Validate() error {
	if strings.TrimSpace(m.Endpoint) == "" {
		return ErrNoEndpoint
	}
	if strings.TrimSpace(m.Text) == "" {
		return fmt.Errorf("message text is required")
	}
	return nil
}
