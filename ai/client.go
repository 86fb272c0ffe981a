package ai

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// Bridge error kinds. Controllers map these onto HTTP statuses.
var (
	// ErrUpstream means the external AI call itself failed.
	ErrUpstream = errors.New("ai upstream failure")

	// ErrTimeout means the external call exceeded the configured deadline.
	ErrTimeout = errors.New("ai call timed out")

	// ErrInvalidResponse means the model's output was not parseable JSON.
	ErrInvalidResponse = errors.New("ai response not valid JSON")
)

// WritingResult mirrors the JSON schema the examiner prompt demands. Pointer
// fields stay nil when the model omits a sub-score; nil means "not scored",
// never "scored zero".
type WritingResult struct {
	OverallBand                 *float64 `json:"overall_band"`
	TaskResponse                *float64 `json:"task_response"`
	CoherenceAndCohesion        *float64 `json:"coherence_and_cohesion"`
	LexicalResource             *float64 `json:"lexical_resource"`
	GrammaticalRangeAndAccuracy *float64 `json:"grammatical_range_and_accuracy"`
	IsGoodEnough                *bool    `json:"is_good_enough"`
	FeedbackShort               string   `json:"feedback_short"`
	FeedbackDetailed            string   `json:"feedback_detailed"`
	ModelAnswer                 string   `json:"model_answer"`
	Raw                         []byte   `json:"-"`
}

// SpeakingResult mirrors the speaking examiner schema.
type SpeakingResult struct {
	OverallBand                 *float64 `json:"overall_band"`
	FluencyAndCoherence         *float64 `json:"fluency_and_coherence"`
	LexicalResource             *float64 `json:"lexical_resource"`
	GrammaticalRangeAndAccuracy *float64 `json:"grammatical_range_and_accuracy"`
	Pronunciation               *float64 `json:"pronunciation"`
	OnTopic                     *bool    `json:"on_topic"`
	RelevanceScore              *float64 `json:"relevance_score"`
	RelevanceFeedback           string   `json:"relevance_feedback"`
	IsGoodEnough                *bool    `json:"is_good_enough"`
	FeedbackShort               string   `json:"feedback_short"`
	FeedbackDetailed            string   `json:"feedback_detailed"`
	Transcript                  string   `json:"transcript"`
	Raw                         []byte   `json:"-"`
}

// Client wraps an OpenAI-compatible API for IELTS evaluation. One blocking
// call per evaluation, no retry, no streaming; callers must not hold any
// exclusive resource across an invocation.
type Client struct {
	api             *openai.Client
	model           string
	transcribeModel string
	timeout         time.Duration
}

// New creates a new evaluation client. baseURL may point at any
// OpenAI-compatible endpoint; empty keeps the library default.
func New(baseURL, apiKey, modelName, transcribeModel string, timeout time.Duration) *Client {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return &Client{
		api:             openai.NewClientWithConfig(config),
		model:           modelName,
		transcribeModel: transcribeModel,
		timeout:         timeout,
	}
}

// EvaluateWriting scores one writing answer against the target band.
func (c *Client) EvaluateWriting(ctx context.Context, prompt, candidateAnswer, taskType string, targetBand float64) (*WritingResult, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	userContent := fmt.Sprintf(
		"Task type: %s\nTarget band threshold: %g\nQuestion prompt:\n%s\n\nCandidate answer:\n%s\n",
		taskType, targetBand, prompt, candidateAnswer,
	)

	raw, err := c.complete(ctx, writingSystemPrompt, userContent)
	if err != nil {
		return nil, err
	}

	var result WritingResult
	if err := parseJSONResponse(raw, &result); err != nil {
		return nil, err
	}
	result.Raw = []byte(raw)
	return &result, nil
}

// EvaluateSpeaking scores one recorded speaking attempt. The audio is
// transcribed first, then the transcript is evaluated against the question.
func (c *Client) EvaluateSpeaking(ctx context.Context, audio []byte, mimeType, questionText string, targetBand float64, durationSeconds *int) (*SpeakingResult, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	transcript, err := c.transcribe(ctx, audio, mimeType)
	if err != nil {
		return nil, err
	}

	duration := "unknown"
	if durationSeconds != nil {
		duration = fmt.Sprintf("%d", *durationSeconds)
	}
	userContent := fmt.Sprintf(
		"Question: %s\nTarget band threshold: %g\nApproximate duration (seconds): %s\nTranscript of the candidate's spoken response:\n%s\n",
		questionText, targetBand, duration, transcript,
	)

	raw, err := c.complete(ctx, speakingSystemPrompt, userContent)
	if err != nil {
		return nil, err
	}

	var result SpeakingResult
	if err := parseJSONResponse(raw, &result); err != nil {
		return nil, err
	}
	result.Raw = []byte(raw)
	if result.Transcript == "" {
		result.Transcript = transcript
	}
	return &result, nil
}

func (c *Client) complete(ctx context.Context, systemPrompt, userContent string) (string, error) {
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userContent},
		},
		Temperature: 0.3,
	})
	if err != nil {
		return "", wrapCallError(err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices returned", ErrUpstream)
	}
	return resp.Choices[0].Message.Content, nil
}

func (c *Client) transcribe(ctx context.Context, audio []byte, mimeType string) (string, error) {
	resp, err := c.api.CreateTranscription(ctx, openai.AudioRequest{
		Model:    c.transcribeModel,
		Reader:   bytes.NewReader(audio),
		FilePath: "attempt." + extensionForMime(mimeType),
	})
	if err != nil {
		return "", wrapCallError(err)
	}
	return resp.Text, nil
}

func wrapCallError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	return fmt.Errorf("%w: %v", ErrUpstream, err)
}

// extensionForMime picks the file extension the transcription endpoint uses
// to sniff the container format.
func extensionForMime(mimeType string) string {
	switch strings.ToLower(strings.TrimSpace(strings.SplitN(mimeType, ";", 2)[0])) {
	case "audio/wav", "audio/x-wav":
		return "wav"
	case "audio/mp4", "audio/m4a", "audio/x-m4a":
		return "m4a"
	case "audio/webm":
		return "webm"
	case "audio/ogg":
		return "ogg"
	case "audio/flac":
		return "flac"
	default:
		return "mp3"
	}
}
