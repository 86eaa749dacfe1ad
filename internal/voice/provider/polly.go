package provider

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/polly"
	"github.com/daikw/ovasettings/internal/voice"
	"github.com/rs/zerolog/log"
)

// PollyClient interface defines the methods we need from the Polly client
type PollyClient interface {
	DescribeVoices(ctx context.Context, params *polly.DescribeVoicesInput, optFns ...func(*polly.Options)) (*polly.DescribeVoicesOutput, error)
}

// PollyLister lists Amazon Polly voices as cloud voices
type PollyLister struct {
	client   PollyClient
	region   string
	language string
}

// NewPollyLister creates a lister using the default AWS credential chain
func NewPollyLister(ctx context.Context, opts Options) (*PollyLister, error) {
	region := opts.Region
	if region == "" {
		region = "us-east-1" // Default region
	}

	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return NewPollyListerWithClient(polly.NewFromConfig(cfg), region, opts.Language), nil
}

// NewPollyListerWithClient wraps an existing client
func NewPollyListerWithClient(client PollyClient, region, language string) *PollyLister {
	return &PollyLister{client: client, region: region, language: language}
}

// Name returns the lister name
func (p *PollyLister) Name() string {
	return "polly"
}

// ListVoices pages through DescribeVoices
func (p *PollyLister) ListVoices(ctx context.Context) ([]voice.Voice, error) {
	var voices []voice.Voice
	input := &polly.DescribeVoicesInput{}

	for {
		result, err := p.client.DescribeVoices(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("failed to list Polly voices: %w", err)
		}

		for _, v := range result.Voices {
			lang := string(v.LanguageCode)
			if !matchesLanguage(lang, p.language) {
				continue
			}
			voices = append(voices, voice.Voice{
				Source:      voice.SourceCloud,
				ID:          string(v.Id),
				DisplayName: fmt.Sprintf("%s (%s, %s)", aws.ToString(v.Name), lang, displayGender(string(v.Gender))),
				Language:    lang,
			})
		}

		if aws.ToString(result.NextToken) == "" {
			break
		}
		input = &polly.DescribeVoicesInput{NextToken: result.NextToken}
	}

	log.Debug().Str("region", p.region).Int("count", len(voices)).Msg("Listed Polly voices")
	return voices, nil
}
