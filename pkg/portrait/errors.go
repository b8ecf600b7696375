package portrait

// ValidationError means the request itself is unusable (HTTP 400).
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ConfigurationError means the deployment is missing something (HTTP 500).
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string {
	return e.Message
}

// ProviderError wraps any failure of the upstream image provider. Its message is
// the cause's message, unchanged.
type ProviderError struct {
	Err error
}

func (e *ProviderError) Error() string {
	return e.Err.Error()
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

var (
	ErrMissingImage = &ValidationError{Message: "Face image is required"}
	ErrInvalidImage = &ValidationError{Message: "Face image must be a base64 data URL"}

	ErrNotConfigured = &ConfigurationError{Message: "REPLICATE_API_TOKEN is not configured"}
)
