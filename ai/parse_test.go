package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSONResponsePlain(t *testing.T) {
	var result WritingResult
	err := parseJSONResponse(`{"overall_band": 7, "feedback_short": "Good work"}`, &result)
	require.NoError(t, err)
	require.NotNil(t, result.OverallBand)
	assert.Equal(t, 7.0, *result.OverallBand)
	assert.Equal(t, "Good work", result.FeedbackShort)
}

func TestParseJSONResponseFenced(t *testing.T) {
	var result WritingResult
	err := parseJSONResponse("```json\n{\"overall_band\":7}\n```", &result)
	require.NoError(t, err)
	require.NotNil(t, result.OverallBand)
	assert.Equal(t, 7.0, *result.OverallBand)
}

func TestParseJSONResponseFencedNoTag(t *testing.T) {
	var result SpeakingResult
	err := parseJSONResponse("```\n{\"pronunciation\": 6.5, \"on_topic\": true}\n```", &result)
	require.NoError(t, err)
	require.NotNil(t, result.Pronunciation)
	assert.Equal(t, 6.5, *result.Pronunciation)
	require.NotNil(t, result.OnTopic)
	assert.True(t, *result.OnTopic)
}

func TestParseJSONResponseNotJSON(t *testing.T) {
	var result WritingResult
	err := parseJSONResponse("I'm sorry, I cannot evaluate this answer.", &result)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestParseJSONResponseMissingFieldsStayNil(t *testing.T) {
	var result WritingResult
	err := parseJSONResponse(`{"feedback_short": "ok"}`, &result)
	require.NoError(t, err)
	assert.Nil(t, result.OverallBand)
	assert.Nil(t, result.TaskResponse)
	assert.Nil(t, result.IsGoodEnough)
}

func TestStripCodeFenceLeavesBareTextAlone(t *testing.T) {
	assert.Equal(t, `{"a":1}`, stripCodeFence("  {\"a\":1}  "))
}

func TestExtensionForMime(t *testing.T) {
	assert.Equal(t, "wav", extensionForMime("audio/wav"))
	assert.Equal(t, "m4a", extensionForMime("audio/mp4; codecs=mp4a"))
	assert.Equal(t, "webm", extensionForMime("AUDIO/WEBM"))
	assert.Equal(t, "mp3", extensionForMime("audio/mpeg"))
	assert.Equal(t, "mp3", extensionForMime(""))
}
