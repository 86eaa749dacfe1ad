package provider

import (
	"context"
	"fmt"

	"github.com/daikw/ovasettings/internal/voice"
)

// Names returns the cloud listers that can be requested by name
func Names() []string {
	return []string{"polly", "gcp"}
}

// NewLister creates a cloud lister by name
func NewLister(ctx context.Context, name string, opts Options) (voice.Lister, error) {
	switch name {
	case "polly":
		return NewPollyLister(ctx, opts)
	case "gcp":
		return NewGCPLister(ctx, opts)
	default:
		return nil, fmt.Errorf("unknown voice provider: %s", name)
	}
}
