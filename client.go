package gosign

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
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

// ResultCache is the interface for caching text-to-sign results.
type ResultCache interface {
	Get(key string) (string, bool)
	Set(key string, value string) error
}

// Translator is the interface shared by the Client and its wrappers.
type Translator interface {
	TextToSign(ctx context.Context, req TextToSignRequest) (*TextToSignResult, error)
	SignToText(ctx context.Context, req SignToTextRequest) (*SignToTextResult, error)
}

// Client talks to the sign.mt translation API.
type Client struct {
	apiKey     string
	baseURL    string
	timeout    time.Duration
	quality    string
	userAgent  string
	httpClient *http.Client
	cache      ResultCache
	flight     singleflight.Group
}

// ClientOption is a functional option for configuring the Client.
type ClientOption func(*Client)

// WithCache sets the text-to-sign result cache.
func WithCache(cache ResultCache) ClientOption {
	return func(c *Client) {
		c.cache = cache
	}
}

// WithHTTPClient sets a custom HTTP client, for transport tuning or tests.
// The request timeout still comes from ClientConfig.Timeout.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithQuality sets the default video quality preset for text-to-sign
// requests that leave Quality empty.
func WithQuality(quality string) ClientOption {
	return func(c *Client) {
		c.quality = quality
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// NewClient creates a new Client from the given configuration.
// It fails if the API key is empty.
func NewClient(cfg ClientConfig, opts ...ClientOption) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, &ConfigError{Message: "api key is required"}
	}

	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = ProductionBaseURL
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	c := &Client{
		apiKey:     cfg.APIKey,
		baseURL:    baseURL,
		timeout:    timeout,
		quality:    QualityStandard,
		userAgent:  UserAgent(),
		httpClient: &http.Client{},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// BaseURL returns the configured API endpoint.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// textToSignBody is the wire format of the text-to-sign request.
type textToSignBody struct {
	Text           string `json:"text"`
	TargetLanguage string `json:"target_language"`
	AvatarStyle    string `json:"avatar_style"`
	Quality        string `json:"quality,omitempty"`
}

// textToSignResponse is the wire format of the text-to-sign response.
type textToSignResponse struct {
	VideoURL string `json:"video_url"`
}

// signToTextBody is the wire format of the sign-to-text request.
type signToTextBody struct {
	ImageData           string  `json:"image_data"`
	SignLanguage        string  `json:"sign_language"`
	ConfidenceThreshold float64 `json:"confidence_threshold"`
}

// signToTextResponse is the wire format of the sign-to-text response.
type signToTextResponse struct {
	TranslatedText string  `json:"translated_text"`
	Confidence     float64 `json:"confidence"`
}

// TextToSign translates spoken-language text into a sign-language video.
//
// The text is trimmed and validated before any network call. Results are
// cached by text, target language and avatar style; a cache hit is served
// without touching the network. Concurrent calls for the same key share a
// single in-flight request.
func (c *Client) TextToSign(ctx context.Context, req TextToSignRequest) (*TextToSignResult, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, &ValidationError{Field: "text", Message: "must not be empty"}
	}
	if len([]rune(text)) > MaxTextLength {
		return nil, &ValidationError{
			Field:   "text",
			Message: fmt.Sprintf("exceeds %d characters", MaxTextLength),
		}
	}

	style := req.AvatarStyle
	if style == "" {
		style = StyleRealistic
	}

	quality := req.Quality
	if quality == "" {
		quality = c.quality
	}

	key := CacheKey(HashText(text), req.TargetLanguage, style)

	if c.cache != nil {
		if cached, ok := c.cache.Get(key); ok {
			return &TextToSignResult{VideoURL: cached, Cached: true}, nil
		}
	}

	// Coalesce concurrent misses for the same key into one request.
	videoURL, err, _ := c.flight.Do(key, func() (interface{}, error) {
		var resp textToSignResponse
		err := c.post(ctx, "/text-to-sign", textToSignBody{
			Text:           text,
			TargetLanguage: req.TargetLanguage,
			AvatarStyle:    string(style),
			Quality:        quality,
		}, &resp)
		if err != nil {
			return nil, err
		}

		if c.cache != nil {
			_ = c.cache.Set(key, resp.VideoURL) // Ignore cache set errors
		}
		return resp.VideoURL, nil
	})
	if err != nil {
		return nil, err
	}

	return &TextToSignResult{VideoURL: videoURL.(string)}, nil
}

// SignToText recognizes signed content in an image and returns the
// spoken-language text with a confidence score.
func (c *Client) SignToText(ctx context.Context, req SignToTextRequest) (*SignToTextResult, error) {
	if len(req.ImageData) == 0 {
		return nil, &ValidationError{Field: "imageData", Message: "must not be empty"}
	}
	if req.ConfidenceThreshold < 0 || req.ConfidenceThreshold > 1 {
		return nil, &ValidationError{
			Field:   "confidenceThreshold",
			Message: "must be between 0 and 1",
		}
	}

	var resp signToTextResponse
	err := c.post(ctx, "/sign-to-text", signToTextBody{
		ImageData:           base64.StdEncoding.EncodeToString(req.ImageData),
		SignLanguage:        req.SignLanguage,
		ConfidenceThreshold: req.ConfidenceThreshold,
	}, &resp)
	if err != nil {
		return nil, err
	}

	return &SignToTextResult{Text: resp.TranslatedText, Confidence: resp.Confidence}, nil
}

// apiErrorBody is the error shape returned by the API on failure.
type apiErrorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// maxErrorBody bounds how much of an error response body is read.
const maxErrorBody = 64 * 1024

// post issues an authenticated JSON POST bounded by the configured timeout
// and decodes the response into out.
func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encoding request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}

	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)
	httpReq.Header.Set("X-Request-ID", uuid.NewString())

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return c.classifyTransportError(path, err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		return c.buildAPIError(httpResp)
	}

	if err := json.NewDecoder(httpResp.Body).Decode(out); err != nil {
		return &APIError{
			Kind:       KindUnknown,
			StatusCode: httpResp.StatusCode,
			Message:    "malformed response body",
		}
	}

	return nil
}

// classifyTransportError separates timeouts from connection-level failures.
func (c *Client) classifyTransportError(path string, err error) error {
	op := "POST " + path

	if errors.Is(err, context.DeadlineExceeded) {
		return &TimeoutError{Operation: op, Cause: err}
	}

	var netErr interface{ Timeout() bool }
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &TimeoutError{Operation: op, Cause: err}
	}

	return &NetworkError{Operation: op, Cause: err}
}

// buildAPIError maps a non-success response to an APIError, pulling a
// message from the body when the API provides one.
func (c *Client) buildAPIError(resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	message := http.StatusText(resp.StatusCode)
	var parsed apiErrorBody
	if err := json.Unmarshal(data, &parsed); err == nil {
		if parsed.Message != "" {
			message = parsed.Message
		} else if parsed.Error != "" {
			message = parsed.Error
		}
	}

	return &APIError{
		Kind:       KindForStatus(resp.StatusCode),
		StatusCode: resp.StatusCode,
		Message:    message,
	}
}

// Verify Client implements Translator
var _ Translator = (*Client)(nil)
