package ai

import "fmt"

// ConfigError reports a misconfiguration (unknown provider, missing API key).
// It is raised at construction time only.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string {
	return e.Message
}

// VendorError reports a non-success HTTP status from a vendor, carrying the
// message extracted from that vendor's error envelope.
type VendorError struct {
	Provider   string
	StatusCode int
	Message    string
}

func (e *VendorError) Error() string {
	return fmt.Sprintf("%s analysis failed: %s", e.Provider, e.Message)
}

// TransportError reports a network-level failure (DNS, connection, timeout)
// before any vendor response was received.
type TransportError struct {
	Provider string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s request failed: %v", e.Provider, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ParseError reports a successful vendor response whose payload did not match
// the structured shape the prompt asked for.
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("unparsable model output: %s", e.Reason)
}
