package notify

import (
	"context"
	"fmt"

	"github.com/tom3k5/portfel-gpw-advisor-sub001/internal/interfaces"
)

// NoopCapability stands in on hosts without local-notification support
// (e.g. a plain browser target). Permission checks report false, so the
// scheduler short-circuits every scheduling operation to a no-op.
type NoopCapability struct{}

// NewNoopCapability returns a capability that never grants permission.
func NewNoopCapability() *NoopCapability {
	return &NoopCapability{}
}

func (c *NoopCapability) PermissionStatus(_ context.Context) (bool, error)  { return false, nil }
func (c *NoopCapability) RequestPermission(_ context.Context) (bool, error) { return false, nil }

func (c *NoopCapability) Schedule(_ context.Context, _ interfaces.AlarmRequest) (string, error) {
	return "", fmt.Errorf("notifications not supported on this host")
}

func (c *NoopCapability) Cancel(_ context.Context, _ string) error        { return nil }
func (c *NoopCapability) CancelAll(_ context.Context) error               { return nil }
func (c *NoopCapability) CreateChannel(_ context.Context, _, _ string) error { return nil }
