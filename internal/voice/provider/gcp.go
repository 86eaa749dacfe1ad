package provider

import (
	"context"
	"fmt"

	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	"cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
	"github.com/daikw/ovasettings/internal/voice"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// GCPLister lists Google Cloud Text-to-Speech voices as cloud voices
type GCPLister struct {
	client   *texttospeech.Client
	language string
}

// NewGCPLister creates a lister. Authentication is handled via
// GOOGLE_APPLICATION_CREDENTIALS or Application Default Credentials, unless
// opts.Endpoint points at an emulator, which is dialed without credentials.
func NewGCPLister(ctx context.Context, opts Options) (*GCPLister, error) {
	var clientOpts []option.ClientOption
	if opts.Endpoint != "" {
		clientOpts = append(clientOpts,
			option.WithEndpoint(opts.Endpoint),
			option.WithoutAuthentication(),
			option.WithGRPCDialOption(grpc.WithTransportCredentials(insecure.NewCredentials())),
		)
	}

	client, err := texttospeech.NewClient(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCP TTS client: %w", err)
	}

	return NewGCPListerWithClient(client, opts.Language), nil
}

// NewGCPListerWithClient wraps an existing client
func NewGCPListerWithClient(client *texttospeech.Client, language string) *GCPLister {
	return &GCPLister{client: client, language: language}
}

// Name returns the lister name
func (p *GCPLister) Name() string {
	return "gcp"
}

// ListVoices returns one entry per voice, tagged with its first language
func (p *GCPLister) ListVoices(ctx context.Context) ([]voice.Voice, error) {
	resp, err := p.client.ListVoices(ctx, &texttospeechpb.ListVoicesRequest{})
	if err != nil {
		return nil, fmt.Errorf("failed to list GCP voices: %w", err)
	}

	var voices []voice.Voice
	for _, v := range resp.GetVoices() {
		lang := ""
		for _, code := range v.GetLanguageCodes() {
			if matchesLanguage(code, p.language) {
				lang = code
				break
			}
		}
		if lang == "" {
			continue
		}

		voices = append(voices, voice.Voice{
			Source:      voice.SourceCloud,
			ID:          v.GetName(),
			DisplayName: fmt.Sprintf("%s (%s)", v.GetName(), displayGender(gcpGender(v.GetSsmlGender()))),
			Language:    lang,
		})
	}

	log.Debug().Int("count", len(voices)).Msg("Listed GCP TTS voices")
	return voices, nil
}

func gcpGender(g texttospeechpb.SsmlVoiceGender) string {
	switch g {
	case texttospeechpb.SsmlVoiceGender_MALE:
		return "male"
	case texttospeechpb.SsmlVoiceGender_FEMALE:
		return "female"
	case texttospeechpb.SsmlVoiceGender_NEUTRAL:
		return "neutral"
	default:
		return ""
	}
}

// Close releases the underlying connection
func (p *GCPLister) Close() error {
	return p.client.Close()
}
