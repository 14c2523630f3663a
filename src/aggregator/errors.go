package aggregator

import "fmt"

// ConfigurationError reports missing or malformed aggregator credentials.
// It is raised before any network call is made.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("aggregator configuration: %s %s", e.Field, e.Reason)
}

// AuthenticationError means the token endpoint rejected the client credentials.
type AuthenticationError struct {
	StatusCode int
	Body       string
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("aggregator authentication failed with status %d", e.StatusCode)
}

// RemoteFetchError wraps a failed account or transaction listing.
type RemoteFetchError struct {
	Resource   string
	StatusCode int
	Body       string
	Err        error
}

func (e *RemoteFetchError) Error() string {
	switch {
	case e.Err != nil && e.StatusCode == 0:
		return fmt.Sprintf("fetching %s: %v", e.Resource, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("fetching %s (status %d): %v", e.Resource, e.StatusCode, e.Err)
	default:
		return fmt.Sprintf("fetching %s failed with status %d: %s", e.Resource, e.StatusCode, e.Body)
	}
}

func (e *RemoteFetchError) Unwrap() error {
	return e.Err
}
