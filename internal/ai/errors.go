package ai

import "errors"

var (
	// ErrEmptyInput means both raw text and attachments were empty. Rejected
	// before any external capability is called.
	ErrEmptyInput = errors.New("no text or attachments provided")
	// ErrAnalysisFailed means the text-generation call failed or returned
	// malformed output. The analysis call has no partial-success mode.
	ErrAnalysisFailed      = errors.New("analysis failed")
	ErrProviderUnavailable = errors.New("ai provider unavailable")
	ErrInferenceTimeout    = errors.New("ai inference timeout")
	ErrInvalidResponse     = errors.New("ai provider returned invalid response")
)
