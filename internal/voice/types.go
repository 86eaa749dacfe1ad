package voice

import "context"

// Source tells where a voice is synthesized.
type Source string

const (
	// SourceCloud voices are rendered by a remote synthesis service.
	SourceCloud Source = "cloud"
	// SourceLocal voices come from the text-to-speech engine on this machine.
	SourceLocal Source = "local"
)

// Voice is one selectable voice. Source is fixed by the lister that produced
// it and never derived from the shape of ID.
type Voice struct {
	Source      Source `json:"source"`
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Language    string `json:"language,omitempty"`
}

// Lister enumerates the voices of one engine or catalog.
type Lister interface {
	// Name identifies the lister in logs
	Name() string

	// ListVoices returns the voices known at call time
	ListVoices(ctx context.Context) ([]Voice, error)
}
