package crpt

import "time"

// Outcome classifies how a submission ended.
type Outcome string

const (
	OutcomeSuccess        Outcome = "success"         // registry answered 2xx
	OutcomeHTTPError      Outcome = "http_error"      // registry answered non-2xx
	OutcomeTransportError Outcome = "transport_error" // no response received
	OutcomeEncodingError  Outcome = "encoding_error"  // document could not be serialized
	OutcomeCanceled       Outcome = "canceled"        // context ended before the call
)

// Result reports a single submission. Submit never returns an error; callers
// inspect Outcome and Err instead.
type Result struct {
	Outcome    Outcome
	StatusCode int
	Body       []byte
	Started    time.Time
	Duration   time.Duration // POST round trip, zero when no request was made
	Signed     bool          // signature was attached to the request
	Err        error
}

// OK reports whether the registry accepted the document.
func (r Result) OK() bool {
	return r.Outcome == OutcomeSuccess
}

// ErrorMessage returns Err's text or an empty string.
func (r Result) ErrorMessage() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Error()
}
