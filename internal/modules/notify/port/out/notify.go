package out

import (
	"context"

	"mcad/internal/modules/notify/domain"
)

// Sender delivers one message to an endpoint. Delivery is fire-and-forget
// from the caller's perspective: one attempt, success or error.
type Sender interface {
	Send(ctx context.Context, message domain.Message) error
}

// Host runs a notifier plugin binary for the duration of one call.
type Host interface {
	GetMetadata(ctx context.Context, manifest domain.Manifest) (domain.Metadata, error)
	Send(ctx context.Context, manifest domain.Manifest, message domain.Message) error
}

// ManifestStore loads the configured notifier manifest, if any.
type ManifestStore interface {
	Load(ctx context.Context) (domain.Manifest, bool, error)
}
