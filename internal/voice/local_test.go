package voice

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngineServer(t *testing.T, speakers string, status int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/version":
			w.WriteHeader(status)
			_, _ = w.Write([]byte(`"0.14.0"`))
		case "/speakers":
			w.WriteHeader(status)
			_, _ = w.Write([]byte(speakers))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestNewLocalEngine_Defaults(t *testing.T) {
	assert.Equal(t, VoicevoxURL, NewLocalEngine("", "").baseURL)
	assert.Equal(t, EngineVoicevox, NewLocalEngine("", "").Name())
	assert.Equal(t, AivisSpeechURL, NewLocalEngine(EngineAivisSpeech, "").baseURL)
	assert.Equal(t, "http://host:1", NewLocalEngine(EngineVoicevox, "http://host:1/").baseURL)
}

func TestLocalEngine_ListVoices(t *testing.T) {
	body := `[
		{"name": "Metan", "speaker_uuid": "a", "styles": [{"name": "Normal", "id": 2}, {"name": "Sweet", "id": 0}]},
		{"name": "Zunda", "speaker_uuid": "b", "styles": [{"name": "Normal", "id": 3}]}
	]`
	srv := newEngineServer(t, body, http.StatusOK)
	engine := NewLocalEngine(EngineVoicevox, srv.URL)

	assert.True(t, engine.IsAvailable(context.Background()))

	voices, err := engine.ListVoices(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []Voice{
		{Source: SourceLocal, ID: "2", DisplayName: "Metan (Normal)"},
		{Source: SourceLocal, ID: "0", DisplayName: "Metan (Sweet)"},
		{Source: SourceLocal, ID: "3", DisplayName: "Zunda (Normal)"},
	}, voices)
}

func TestLocalEngine_ServerError(t *testing.T) {
	srv := newEngineServer(t, "boom", http.StatusInternalServerError)
	engine := NewLocalEngine(EngineAivisSpeech, srv.URL)

	assert.False(t, engine.IsAvailable(context.Background()))

	_, err := engine.ListVoices(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestLocalEngine_Unreachable(t *testing.T) {
	srv := newEngineServer(t, "[]", http.StatusOK)
	url := srv.URL
	srv.Close()

	engine := NewLocalEngine(EngineVoicevox, url)
	assert.False(t, engine.IsAvailable(context.Background()))

	// The catalog swallows the failure and keeps the cloud voices
	c := DefaultCatalog(engine)
	assert.Empty(t, c.BySource(context.Background(), SourceLocal))
	assert.NotEmpty(t, c.BySource(context.Background(), SourceCloud))
}

func TestLocalEngine_BadJSON(t *testing.T) {
	srv := newEngineServer(t, "{not json", http.StatusOK)
	_, err := NewLocalEngine(EngineVoicevox, srv.URL).ListVoices(context.Background())
	assert.Error(t, err)
}
