package provider

import (
	"context"
	"net"
	"testing"

	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	"cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
	"github.com/daikw/ovasettings/internal/voice"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

// fakeTTSServer serves a fixed ListVoices response
type fakeTTSServer struct {
	texttospeechpb.UnimplementedTextToSpeechServer
	voices []*texttospeechpb.Voice
	err    error
}

func (s *fakeTTSServer) ListVoices(ctx context.Context, req *texttospeechpb.ListVoicesRequest) (*texttospeechpb.ListVoicesResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &texttospeechpb.ListVoicesResponse{Voices: s.voices}, nil
}

func newGCPTestLister(t *testing.T, srv *fakeTTSServer, language string) *GCPLister {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	gs := grpc.NewServer()
	texttospeechpb.RegisterTextToSpeechServer(gs, srv)
	go func() { _ = gs.Serve(lis) }()
	t.Cleanup(gs.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)

	client, err := texttospeech.NewClient(context.Background(), option.WithGRPCConn(conn))
	require.NoError(t, err)

	lister := NewGCPListerWithClient(client, language)
	t.Cleanup(func() { _ = lister.Close() })
	return lister
}

func TestGCPLister_Name(t *testing.T) {
	assert.Equal(t, "gcp", (&GCPLister{}).Name())
}

func TestGCPLister_ListVoices(t *testing.T) {
	srv := &fakeTTSServer{voices: []*texttospeechpb.Voice{
		{Name: "en-US-Neural2-F", LanguageCodes: []string{"en-US"}, SsmlGender: texttospeechpb.SsmlVoiceGender_FEMALE},
		{Name: "ja-JP-Neural2-B", LanguageCodes: []string{"ja-JP"}, SsmlGender: texttospeechpb.SsmlVoiceGender_FEMALE},
		{Name: "en-GB-Studio-B", LanguageCodes: []string{"en-GB"}, SsmlGender: texttospeechpb.SsmlVoiceGender_MALE},
		{Name: "multi-1", LanguageCodes: []string{"de-DE", "en-AU"}},
	}}
	lister := newGCPTestLister(t, srv, "en")

	voices, err := lister.ListVoices(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []voice.Voice{
		{Source: voice.SourceCloud, ID: "en-US-Neural2-F", DisplayName: "en-US-Neural2-F (Female)", Language: "en-US"},
		{Source: voice.SourceCloud, ID: "en-GB-Studio-B", DisplayName: "en-GB-Studio-B (Male)", Language: "en-GB"},
		{Source: voice.SourceCloud, ID: "multi-1", DisplayName: "multi-1 (Unknown)", Language: "en-AU"},
	}, voices)
}

func TestGCPLister_Error(t *testing.T) {
	srv := &fakeTTSServer{err: status.Error(codes.PermissionDenied, "no project")}
	lister := newGCPTestLister(t, srv, "")

	_, err := lister.ListVoices(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to list GCP voices")
}
