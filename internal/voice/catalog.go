package voice

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"
)

// Catalog concatenates the voices of several listers, in lister order.
type Catalog struct {
	listers []Lister
}

// NewCatalog creates a catalog over the given listers
func NewCatalog(listers ...Lister) *Catalog {
	return &Catalog{listers: listers}
}

// DefaultCatalog is the built-in cloud catalog followed by the local engine.
func DefaultCatalog(local Lister) *Catalog {
	if local == nil {
		return NewCatalog(CloudCatalog{})
	}
	return NewCatalog(CloudCatalog{}, local)
}

// Voices enumerates every lister. A lister that fails contributes nothing;
// the failure is logged and the rest of the catalog is still returned.
func (c *Catalog) Voices(ctx context.Context) []Voice {
	var voices []Voice
	for _, l := range c.listers {
		vs, err := l.ListVoices(ctx)
		if err != nil {
			log.Warn().Err(err).Str("lister", l.Name()).Msg("Voice enumeration failed")
			continue
		}
		log.Debug().Str("lister", l.Name()).Int("count", len(vs)).Msg("Enumerated voices")
		voices = append(voices, vs...)
	}
	return voices
}

// BySource enumerates the catalog and returns the voices of one source
func (c *Catalog) BySource(ctx context.Context, source Source) []Voice {
	return FilterSource(c.Voices(ctx), source)
}

// Resolve enumerates the catalog and maps a display name to a voice id
// within one source.
func (c *Catalog) Resolve(ctx context.Context, source Source, displayName string) (string, bool) {
	v, ok := FindByName(c.Voices(ctx), source, displayName)
	return v.ID, ok
}

// Lookup enumerates the catalog and finds a voice by id within one source.
func (c *Catalog) Lookup(ctx context.Context, source Source, id string) (Voice, bool) {
	return FindByID(c.Voices(ctx), source, id)
}

// FilterSource returns the voices of one source, keeping their order
func FilterSource(voices []Voice, source Source) []Voice {
	var out []Voice
	for _, v := range voices {
		if v.Source == source {
			out = append(out, v)
		}
	}
	return out
}

// FindByName returns the first voice of source with the display name
func FindByName(voices []Voice, source Source, displayName string) (Voice, bool) {
	for _, v := range voices {
		if v.Source == source && v.DisplayName == displayName {
			return v, true
		}
	}
	return Voice{}, false
}

// FindByID returns the first voice of source with the id
func FindByID(voices []Voice, source Source, id string) (Voice, bool) {
	for _, v := range voices {
		if v.Source == source && v.ID == id {
			return v, true
		}
	}
	return Voice{}, false
}

// languageOf extracts the BCP 47 tag from ids shaped like "en-US-AnaNeural".
func languageOf(id string) string {
	parts := strings.SplitN(id, "-", 3)
	if len(parts) < 2 {
		return ""
	}
	tag, err := language.Parse(parts[0] + "-" + parts[1])
	if err != nil {
		return ""
	}
	return tag.String()
}
