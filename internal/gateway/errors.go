package gateway

import "fmt"

// ApiError is any REST failure: transport-level (non-2xx status, malformed
// body) or logical (envelope code outside [200,300) regardless of transport
// status). It carries whatever diagnostics were available.
type ApiError struct {
	Status  int
	Code    int
	Message string
	Body    []byte
}

func (e *ApiError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend request failed: %s (status=%d code=%d)", e.Message, e.Status, e.Code)
	}
	return fmt.Sprintf("backend request failed (status=%d code=%d)", e.Status, e.Code)
}

// Unauthorized reports whether the failure indicates an invalid or expired
// session.
func (e *ApiError) Unauthorized() bool {
	return e.Status == 401 || e.Code == 401
}
