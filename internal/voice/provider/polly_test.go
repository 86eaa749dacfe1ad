package provider

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/polly"
	"github.com/aws/aws-sdk-go-v2/service/polly/types"
	"github.com/daikw/ovasettings/internal/voice"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockPollyClient is a mock implementation of the Polly API client
type MockPollyClient struct {
	mock.Mock
}

func (m *MockPollyClient) DescribeVoices(ctx context.Context, params *polly.DescribeVoicesInput, optFns ...func(*polly.Options)) (*polly.DescribeVoicesOutput, error) {
	args := m.Called(ctx, params)
	result := args.Get(0)
	if result == nil {
		return nil, args.Error(1)
	}
	return result.(*polly.DescribeVoicesOutput), args.Error(1)
}

func TestPollyLister_Name(t *testing.T) {
	assert.Equal(t, "polly", (&PollyLister{}).Name())
}

func TestPollyLister_ListVoices(t *testing.T) {
	client := new(MockPollyClient)
	client.On("DescribeVoices", mock.Anything, &polly.DescribeVoicesInput{}).Return(&polly.DescribeVoicesOutput{
		Voices: []types.Voice{
			{Id: types.VoiceIdJoanna, Name: aws.String("Joanna"), LanguageCode: types.LanguageCodeEnUs, Gender: types.GenderFemale},
			{Id: types.VoiceIdMizuki, Name: aws.String("Mizuki"), LanguageCode: types.LanguageCodeJaJp, Gender: types.GenderFemale},
		},
		NextToken: aws.String("page-2"),
	}, nil).Once()
	client.On("DescribeVoices", mock.Anything, &polly.DescribeVoicesInput{NextToken: aws.String("page-2")}).Return(&polly.DescribeVoicesOutput{
		Voices: []types.Voice{
			{Id: types.VoiceIdBrian, Name: aws.String("Brian"), LanguageCode: types.LanguageCodeEnGb, Gender: types.GenderMale},
		},
	}, nil).Once()

	lister := NewPollyListerWithClient(client, "us-east-1", "en")
	voices, err := lister.ListVoices(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []voice.Voice{
		{Source: voice.SourceCloud, ID: "Joanna", DisplayName: "Joanna (en-US, Female)", Language: "en-US"},
		{Source: voice.SourceCloud, ID: "Brian", DisplayName: "Brian (en-GB, Male)", Language: "en-GB"},
	}, voices)
	client.AssertExpectations(t)
}

func TestPollyLister_Error(t *testing.T) {
	client := new(MockPollyClient)
	client.On("DescribeVoices", mock.Anything, mock.Anything).Return(nil, errors.New("access denied"))

	_, err := NewPollyListerWithClient(client, "us-east-1", "").ListVoices(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to list Polly voices")
	assert.Contains(t, err.Error(), "access denied")
}

func TestPollyLister_InCatalog(t *testing.T) {
	client := new(MockPollyClient)
	client.On("DescribeVoices", mock.Anything, mock.Anything).Return(&polly.DescribeVoicesOutput{
		Voices: []types.Voice{
			{Id: types.VoiceIdJoanna, Name: aws.String("Joanna"), LanguageCode: types.LanguageCodeEnUs, Gender: types.GenderFemale},
		},
	}, nil)

	c := voice.NewCatalog(voice.CloudCatalog{}, NewPollyListerWithClient(client, "us-east-1", ""))
	id, ok := c.Resolve(context.Background(), voice.SourceCloud, "Joanna (en-US, Female)")
	require.True(t, ok)
	assert.Equal(t, "Joanna", id)
}
