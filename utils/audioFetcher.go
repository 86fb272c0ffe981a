package utils

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// AudioClient downloads stored speaking recordings from the public audio
// bucket over HTTP.
type AudioClient struct {
	client  *resty.Client
	baseURL string
}

func NewAudioClient(baseURL string) *AudioClient {
	return &AudioClient{
		client:  resty.New().SetTimeout(30 * time.Second),
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Fetch returns the recording bytes and content type for a storage path.
func (a *AudioClient) Fetch(ctx context.Context, audioPath string) ([]byte, string, error) {
	url := a.baseURL + "/" + strings.TrimLeft(audioPath, "/")

	resp, err := a.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, "", fmt.Errorf("download audio: %w", err)
	}
	if resp.StatusCode() >= 400 {
		return nil, "", fmt.Errorf("download audio: status %d", resp.StatusCode())
	}

	mimeType := resp.Header().Get("Content-Type")
	if mimeType == "" {
		mimeType = "audio/mpeg"
	}
	return resp.Body(), mimeType, nil
}
