// Package crpt submits documents to the registry document creation endpoint
// through a rate limited, fully serialized HTTP client.
//
// SUBMISSION FLOW:
//  1. Encode the document to JSON (failure: OutcomeEncodingError, no request)
//  2. Acquire the throttle gate slot (context end: OutcomeCanceled)
//  3. POST the body once with Content-Type: application/json
//  4. Hold the slot until the minimum interval since the POST started elapsed
//  5. Release the slot and return a Result
//
// The Submitter wraps the Resty HTTP client the same way the CLI API clients
// do: request/response hooks log through the logging package and the client is
// configured once at construction.
package crpt

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/concave-dev/crpt/internal/document"
	"github.com/concave-dev/crpt/internal/logging"
	"github.com/concave-dev/crpt/internal/metrics"
	"github.com/concave-dev/crpt/internal/throttle"
	"github.com/go-resty/resty/v2"
)

// Submitter posts documents to the registry, at most Rate.Limit per window and
// never more than one at a time. Safe for concurrent use.
type Submitter struct {
	client          *resty.Client
	endpoint        string
	signatureHeader string
	gate            *throttle.Gate
}

// NewSubmitter validates cfg and builds the HTTP client and throttle gate.
// gateOpts are passed to throttle.NewGate (shared limiter, observer).
func NewSubmitter(cfg *Config, gateOpts ...throttle.Option) (*Submitter, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	gate, err := throttle.NewGate(cfg.Rate, gateOpts...)
	if err != nil {
		return nil, err
	}

	client := resty.New()

	// Route Resty's internal logging through our structured logging system
	client.SetLogger(logging.RestyLogger{})

	client.
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	if cfg.UserAgent != "" {
		client.SetHeader("User-Agent", cfg.UserAgent)
	}

	if cfg.RetryCount > 0 {
		client.
			SetRetryCount(cfg.RetryCount).
			SetRetryWaitTime(100 * time.Millisecond).
			SetRetryMaxWaitTime(time.Second).
			AddRetryCondition(func(r *resty.Response, err error) bool {
				// Only retry on connection errors, not HTTP errors
				return err != nil
			})
	}

	client.OnBeforeRequest(func(c *resty.Client, req *resty.Request) error {
		logging.Debug("Making registry request: %s %s", req.Method, req.URL)
		return nil
	})

	client.OnAfterResponse(func(c *resty.Client, resp *resty.Response) error {
		logging.Debug("Registry response: %d %s (took %v)",
			resp.StatusCode(), resp.Status(), resp.Time())
		return nil
	})

	client.OnError(func(req *resty.Request, err error) {
		logging.Debug("Registry request failed: %s %s - %v", req.Method, req.URL, err)
	})

	logging.Debug("Submitter: %s limited to %v (min interval %v)", cfg.Endpoint, cfg.Rate, gate.MinInterval())

	return &Submitter{
		client:          client,
		endpoint:        cfg.Endpoint,
		signatureHeader: cfg.SignatureHeader,
		gate:            gate,
	}, nil
}

// Submit encodes doc and posts it to the registry. Concurrent calls are
// serialized and spaced by the throttle gate.
//
// The signature is sent in the configured signature header. When no header is
// configured it is accepted and dropped, which is how the registry client has
// always behaved; no signing scheme is applied to the body.
func (s *Submitter) Submit(ctx context.Context, doc any, signature string) Result {
	body, err := document.Encode(doc)
	if err != nil {
		logging.Error("Document submission failed: %v", err)
		return s.record(Result{Outcome: OutcomeEncodingError, Err: err})
	}

	signed := signature != "" && s.signatureHeader != ""
	if signature != "" && !signed {
		logging.Debug("Submitter: no signature header configured, signature not sent")
	}

	var result Result
	err = s.gate.Do(ctx, func(ctx context.Context) {
		result = s.post(ctx, body, signature, signed)
	})
	if err != nil {
		if ctx.Err() != nil {
			logging.Warn("Document submission canceled before sending: %v", err)
			return s.record(Result{Outcome: OutcomeCanceled, Err: err})
		}
		// The shared limiter failed, nothing was sent
		logging.Error("Document submission failed: %v", err)
		return s.record(Result{Outcome: OutcomeTransportError, Err: err})
	}

	switch result.Outcome {
	case OutcomeSuccess:
		logging.Info("Document submitted: %d %s (took %v)",
			result.StatusCode, http.StatusText(result.StatusCode), result.Duration)
	case OutcomeHTTPError:
		logging.Error("Document submission rejected: %v", result.Err)
	default:
		logging.Error("Document submission failed: %v", result.Err)
	}
	return s.record(result)
}

// post performs the single POST. It runs inside the gate slot.
func (s *Submitter) post(ctx context.Context, body []byte, signature string, signed bool) Result {
	req := s.client.R().
		SetContext(ctx).
		SetBody(body)
	if signed {
		req.SetHeader(s.signatureHeader, signature)
	}

	started := time.Now()
	resp, err := req.Post(s.endpoint)
	result := Result{
		Started:  started,
		Duration: time.Since(started),
		Signed:   signed,
	}

	if err != nil {
		result.Outcome = OutcomeTransportError
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			if ctx.Err() != nil {
				result.Outcome = OutcomeCanceled
			}
		}
		result.Err = fmt.Errorf("failed to reach registry at %s: %w", s.endpoint, err)
		return result
	}

	result.StatusCode = resp.StatusCode()
	result.Body = resp.Body()
	if resp.IsSuccess() {
		result.Outcome = OutcomeSuccess
		return result
	}

	result.Outcome = OutcomeHTTPError
	result.Err = fmt.Errorf("registry request failed with status %d: %s", resp.StatusCode(), resp.String())
	return result
}

func (s *Submitter) record(r Result) Result {
	metrics.Submissions.WithLabelValues(string(r.Outcome)).Inc()
	if r.Duration > 0 {
		metrics.SubmissionDuration.Observe(r.Duration.Seconds())
	}
	return r
}

// Stats returns the throttle gate snapshot.
func (s *Submitter) Stats() throttle.Stats {
	return s.gate.Stats()
}

// MinInterval returns the enforced spacing between POST starts.
func (s *Submitter) MinInterval() time.Duration {
	return s.gate.MinInterval()
}
