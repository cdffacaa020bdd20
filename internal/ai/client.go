// Package ai is the proxy to the OpenAI-compatible API used for two jobs:
// recognising what a student drew, and generating scene illustrations for
// teachers. All upstream failures are translated to the package's sentinel
// errors so handlers can map them to sensible status codes.
package ai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
)

var (
	// ErrBadPrompt means the upstream rejected the request content
	ErrBadPrompt = errors.New("upstream rejected prompt")
	// ErrUnauthorized means the API key was rejected
	ErrUnauthorized = errors.New("upstream rejected credentials")
	// ErrRateLimited means the upstream throttled us
	ErrRateLimited = errors.New("upstream rate limited")
	// ErrUpstream covers every other upstream failure
	ErrUpstream = errors.New("upstream error")
	// ErrInvalidReply means the model's reply could not be parsed, even
	// after a retry
	ErrInvalidReply = errors.New("invalid model reply")
)

// Client talks to an OpenAI-compatible API
type Client struct {
	httpClient  *http.Client
	baseURL     string
	apiKey      string
	visionModel string
	imageModel  string
	logger      zerolog.Logger
}

// NewClient creates a client. baseURL points at the API root, e.g.
// "https://api.openai.com/v1".
func NewClient(httpClient *http.Client, baseURL, apiKey, visionModel, imageModel string, logger zerolog.Logger) *Client {
	return &Client{
		httpClient:  httpClient,
		baseURL:     strings.TrimRight(baseURL, "/"),
		apiKey:      apiKey,
		visionModel: visionModel,
		imageModel:  imageModel,
		logger:      logger,
	}
}

const recognizeSystemPrompt = `You are looking at a child's simple drawing.
Reply with JSON only, in the form {"guess": "<one or two words naming what is drawn>"}.
Use lowercase. Do not add any other text.`

// chat completion shapes, OpenAI-compatible
type chatContent struct {
	Type     string `json:"type"`
	Text     string `json:"text,omitempty"`
	ImageURL *struct {
		URL string `json:"url"`
	} `json:"image_url,omitempty"`
}

type chatMessage struct {
	Role    string      `json:"role"`
	Content interface{} `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type recognizeReply struct {
	Guess string `json:"guess"`
}

// RecognizeDrawing sends a PNG drawing to the vision model and returns its
// one-or-two-word guess. A malformed reply is retried once with a reminder
// to answer in JSON.
func (c *Client) RecognizeDrawing(ctx context.Context, imagePNG []byte) (string, error) {
	dataURL := "data:image/png;base64," + base64.StdEncoding.EncodeToString(imagePNG)

	userContent := []chatContent{
		{Type: "text", Text: "What is drawn here?"},
		{Type: "image_url", ImageURL: &struct {
			URL string `json:"url"`
		}{URL: dataURL}},
	}

	content, err := c.chat(ctx, recognizeSystemPrompt, userContent)
	if err != nil {
		return "", err
	}

	var reply recognizeReply
	if err := json.Unmarshal([]byte(content), &reply); err != nil {
		c.logger.Warn().Err(err).Msg("vision model returned invalid JSON, retrying")
		retry := []chatContent{
			{Type: "text", Text: fmt.Sprintf(
				"Your previous reply was not valid JSON:\n%s\nReply again with only {\"guess\": \"...\"}.", content)},
			{Type: "image_url", ImageURL: &struct {
				URL string `json:"url"`
			}{URL: dataURL}},
		}
		content, err = c.chat(ctx, recognizeSystemPrompt, retry)
		if err != nil {
			return "", err
		}
		if err := json.Unmarshal([]byte(content), &reply); err != nil {
			return "", fmt.Errorf("%w: %v", ErrInvalidReply, err)
		}
	}

	guess := strings.ToLower(strings.TrimSpace(reply.Guess))
	if guess == "" {
		return "", ErrInvalidReply
	}
	return guess, nil
}

func (c *Client) chat(ctx context.Context, system string, user []chatContent) (string, error) {
	reqBody := chatRequest{
		Model: c.visionModel,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
	}

	respBody, err := c.post(ctx, "/chat/completions", reqBody)
	if err != nil {
		return "", err
	}

	var chatResp chatResponse
	if err := json.Unmarshal(respBody, &chatResp); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", ErrUpstream, err)
	}
	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices in response", ErrUpstream)
	}
	return strings.TrimSpace(chatResp.Choices[0].Message.Content), nil
}

type imageRequest struct {
	Model          string `json:"model"`
	Prompt         string `json:"prompt"`
	Size           string `json:"size"`
	ResponseFormat string `json:"response_format"`
}

type imageResponse struct {
	Data []struct {
		B64JSON string `json:"b64_json"`
	} `json:"data"`
}

// GenerateSceneImage asks the image model for an illustration and returns
// the decoded image bytes.
func (c *Client) GenerateSceneImage(ctx context.Context, prompt, size string) ([]byte, error) {
	reqBody := imageRequest{
		Model:          c.imageModel,
		Prompt:         prompt,
		Size:           size,
		ResponseFormat: "b64_json",
	}

	respBody, err := c.post(ctx, "/images/generations", reqBody)
	if err != nil {
		return nil, err
	}

	var imgResp imageResponse
	if err := json.Unmarshal(respBody, &imgResp); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrUpstream, err)
	}
	if len(imgResp.Data) == 0 {
		return nil, fmt.Errorf("%w: no image in response", ErrUpstream)
	}

	img, err := base64.StdEncoding.DecodeString(imgResp.Data[0].B64JSON)
	if err != nil {
		return nil, fmt.Errorf("%w: decode image: %v", ErrUpstream, err)
	}
	return img, nil
}

// post sends a JSON request and returns the raw body, translating HTTP
// failures into the package's sentinel errors.
func (c *Client) post(ctx context.Context, path string, payload interface{}) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", ErrUpstream, err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		return respBody, nil
	case resp.StatusCode == http.StatusBadRequest:
		return nil, fmt.Errorf("%w: %s", ErrBadPrompt, truncate(respBody))
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, ErrUnauthorized
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, ErrRateLimited
	default:
		return nil, fmt.Errorf("%w: status %d: %s", ErrUpstream, resp.StatusCode, truncate(respBody))
	}
}

func truncate(b []byte) string {
	const max = 256
	if len(b) <= max {
		return string(b)
	}
	return string(b[:max]) + "..."
}
