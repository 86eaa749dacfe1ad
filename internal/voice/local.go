package voice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// Engine constants
const (
	EngineVoicevox    = "voicevox"
	EngineAivisSpeech = "aivisspeech"
)

// Default engine URLs
const (
	VoicevoxURL    = "http://127.0.0.1:50021"
	AivisSpeechURL = "http://127.0.0.1:10101"
)

// LocalEngine enumerates the voices of the text-to-speech engine running on
// this machine. Both supported engines speak the VOICEVOX HTTP API.
type LocalEngine struct {
	engine     string
	baseURL    string
	httpClient *http.Client
}

// speaker is one entry of the engine's /speakers response
type speaker struct {
	Name        string `json:"name"`
	SpeakerUUID string `json:"speaker_uuid"`
	Styles      []struct {
		Name string `json:"name"`
		ID   int64  `json:"id"`
	} `json:"styles"`
}

// NewLocalEngine creates a local engine lister. An empty baseURL selects the
// engine's default address.
func NewLocalEngine(engine, baseURL string) *LocalEngine {
	if engine == "" {
		engine = EngineVoicevox
	}
	if baseURL == "" {
		switch engine {
		case EngineAivisSpeech:
			baseURL = AivisSpeechURL
		default:
			baseURL = VoicevoxURL
		}
	}

	return &LocalEngine{
		engine:  engine,
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

// Name returns the lister name
func (e *LocalEngine) Name() string {
	return e.engine
}

// IsAvailable checks if the engine answers on its version endpoint
func (e *LocalEngine) IsAvailable(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, e.baseURL+"/version", nil)
	if err != nil {
		return false
	}

	resp, err := e.httpClient.Do(req)
	if err != nil {
		log.Debug().Err(err).Str("engine", e.engine).Msg("Local engine availability check failed")
		return false
	}
	defer func() { _ = resp.Body.Close() }()

	available := resp.StatusCode == http.StatusOK
	log.Debug().Bool("available", available).Str("engine", e.engine).Msg("Local engine availability")
	return available
}

// ListVoices returns one voice per speaker style. The style id is the voice id.
func (e *LocalEngine) ListVoices(ctx context.Context) ([]Voice, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, e.baseURL+"/speakers", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create speakers request: %w", err)
	}

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s speakers: %w", e.engine, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("speakers request failed: status %d, body: %s", resp.StatusCode, string(body))
	}

	var speakers []speaker
	if err := json.NewDecoder(resp.Body).Decode(&speakers); err != nil {
		return nil, fmt.Errorf("failed to decode speakers: %w", err)
	}

	var voices []Voice
	for _, s := range speakers {
		for _, style := range s.Styles {
			voices = append(voices, Voice{
				Source:      SourceLocal,
				ID:          strconv.FormatInt(style.ID, 10),
				DisplayName: fmt.Sprintf("%s (%s)", s.Name, style.Name),
			})
		}
	}

	log.Debug().Str("engine", e.engine).Int("count", len(voices)).Msg("Listed local voices")
	return voices, nil
}
