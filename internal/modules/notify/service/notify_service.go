package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"mcad/internal/modules/notify/domain"
	notifyout "mcad/internal/modules/notify/port/out"
	rosterin "mcad/internal/modules/roster/port/in"
)

const defaultNudgeText = "Checking in on this week's mentoring cycle."

const webhookVia = "webhook"

// NotifyService resolves a mentee's endpoint and delivers one message. A
// configured and enabled notifier plugin takes the delivery; otherwise the
// built-in webhook sender does.
type NotifyService struct {
	roster    rosterin.Usecase
	manifests notifyout.ManifestStore
	host      notifyout.Host
	fallback  notifyout.Sender
}

func NewNotifyService(roster rosterin.Usecase, manifests notifyout.ManifestStore, host notifyout.Host, fallback notifyout.Sender) *NotifyService {
	return &NotifyService{roster: roster, manifests: manifests, host: host, fallback: fallback}
}

func (s *NotifyService) Nudge(ctx context.Context, selector, text string) (string, string, string, error) {
	mentee, err := s.roster.Get(ctx, selector)
	if err != nil {
		return "", "", "", err
	}
	if strings.TrimSpace(text) == "" {
		text = defaultNudgeText
	}
	message := domain.Message{Endpoint: mentee.NotifyEndpoint, Text: text}
	if err := message.Validate(); err != nil {
		if err == domain.ErrNoEndpoint {
			return "", "", "", fmt.Errorf("%w: %s", domain.ErrNoEndpoint, mentee.Name)
		}
		return "", "", "", err
	}

	via := webhookVia
	manifest, found, err := s.manifests.Load(ctx)
	if err != nil {
		return "", "", "", err
	}
	if found && manifest.Enabled {
		if err := manifest.Validate(); err != nil {
			return "", "", "", fmt.Errorf("notifier manifest: %w", err)
		}
		// The binary is re-verified before every launch; a manifest whose
		// checksum no longer matches must not run.
		if err := checksumMatches(manifest.Binary, manifest.SHA256); err != nil {
			return "", "", "", err
		}
		if err := s.host.Send(ctx, manifest, message); err != nil {
			return "", "", "", err
		}
		via = manifest.Name
	} else if err := s.fallback.Send(ctx, message); err != nil {
		return "", "", "", err
	}
	return mentee.Name, message.Endpoint, via, nil
}

// DoctorReport mirrors what Doctor could find out without sending anything.
type DoctorReport struct {
	ManifestFound bool
	ManifestError string
	PluginName    string
	PluginVersion string
	PluginError   string
	Fallback      string
}

// Doctor probes the delivery path: manifest readability and validity, and
// a metadata round-trip to the plugin binary when one is configured.
func (s *NotifyService) Doctor(ctx context.Context) (DoctorReport, error) {
	report := DoctorReport{Fallback: webhookVia}
	manifest, found, err := s.manifests.Load(ctx)
	if err != nil {
		report.ManifestError = err.Error()
		return report, nil
	}
	if !found {
		return report, nil
	}
	report.ManifestFound = true
	if err := manifest.Validate(); err != nil {
		report.ManifestError = err.Error()
		return report, nil
	}
	if !manifest.Enabled {
		report.ManifestError = domain.ErrNotifierDisabled.Error()
		return report, nil
	}
	if err := checksumMatches(manifest.Binary, manifest.SHA256); err != nil {
		report.PluginError = err.Error()
		return report, nil
	}
	meta, err := s.host.GetMetadata(ctx, manifest)
	if err != nil {
		report.PluginError = err.Error()
		return report, nil
	}
	report.PluginName = meta.Name
	report.PluginVersion = meta.Version
	return report, nil
}

func checksumMatches(path, expected string) error {
	payload, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read notifier binary: %w", err)
	}
	hash := sha256.Sum256(payload)
	if hex.EncodeToString(hash[:]) != expected {
		return fmt.Errorf("%w: %s", domain.ErrChecksumMismatch, filepath.Base(path))
	}
	return nil
}
