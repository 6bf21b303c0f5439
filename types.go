// Package gosign provides a typed Go client for the sign.mt translation API.
package gosign

import "time"

// AvatarStyle controls the visual rendering mode of generated sign videos.
type AvatarStyle string

const (
	// StyleRealistic renders a photorealistic signing avatar.
	StyleRealistic AvatarStyle = "realistic"
	// StyleCartoon renders a stylized cartoon avatar suitable for children's content.
	StyleCartoon AvatarStyle = "cartoon"
	// StyleMinimal renders a low-detail avatar optimized for small players.
	StyleMinimal AvatarStyle = "minimal"
)

// Video quality presets accepted by the text-to-sign endpoint.
const (
	QualityLow      = "low"
	QualityStandard = "standard"
	QualityHigh     = "high"
)

// MaxTextLength is the maximum accepted input length, in characters,
// after whitespace trimming.
const MaxTextLength = 1000

// Default endpoints and limits.
const (
	// ProductionBaseURL is the production API endpoint.
	ProductionBaseURL = "https://api.sign.mt"
	// StagingBaseURL is the staging API endpoint for non-production use.
	StagingBaseURL = "https://api.staging.sign.mt"
	// DefaultTimeout bounds each request, including connection setup and
	// body read.
	DefaultTimeout = 30 * time.Second
)

// ClientConfig holds construction-time configuration for the Client.
// It is copied at construction; later mutation has no effect.
type ClientConfig struct {
	APIKey  string        // API key sent as a bearer token (required)
	BaseURL string        // API endpoint (default: ProductionBaseURL)
	Timeout time.Duration // Per-request timeout (default: DefaultTimeout)
}

// TextToSignRequest asks for a sign-language video rendering of spoken text.
type TextToSignRequest struct {
	Text           string      // Input text, 1..1000 chars after trimming
	TargetLanguage string      // Sign language code (e.g., "ase", "gsg")
	AvatarStyle    AvatarStyle // Rendering style (default: StyleRealistic)
	Quality        string      // Video quality preset (default: client quality)
}

// TextToSignResult is the outcome of a text-to-sign translation.
type TextToSignResult struct {
	VideoURL string // URL of the rendered sign-language video
	Cached   bool   // True if served from the local cache without a network call
}

// SignToTextRequest asks for recognition of signed content in an image.
type SignToTextRequest struct {
	ImageData           []byte  // Raw image bytes; sent base64-encoded
	SignLanguage        string  // Sign language code of the signed content
	ConfidenceThreshold float64 // Minimum acceptable confidence, in [0, 1]
}

// SignToTextResult is the outcome of a sign-to-text recognition.
type SignToTextResult struct {
	Text       string  // Recognized spoken-language text
	Confidence float64 // Recognition confidence, in [0, 1]
}
