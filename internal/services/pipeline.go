package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/wayfarer/internal/models"
	"github.com/desertthunder/wayfarer/internal/shared"
)

// Pipeline wraps every transport call with credential injection and
// busy-indicator signaling before the call, and envelope classification
// after it.
//
// Classification order is deterministic: network failure, malformed body,
// 401 (session destroyed, redirect, never retried), 403, other non-2xx,
// business failure (success=false), success. Every exit path releases this
// call's busy contribution and reports failures to the notifier.
type Pipeline struct {
	client   *Client
	creds    *CredentialStore
	notifier Notifier
	logger   *log.Logger

	busyMu    sync.Mutex
	busyCount int
}

// NewPipeline creates a request pipeline over the given transport client.
func NewPipeline(client *Client, creds *CredentialStore, notifier Notifier, logger *log.Logger) *Pipeline {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Pipeline{
		client:   client,
		creds:    creds,
		notifier: notifier,
		logger:   logger,
	}
}

// CallOpts tags a call for the pre-call hooks.
type CallOpts struct {
	// LongRunning marks generation and upload calls that should hold the
	// busy indicator for their duration.
	LongRunning bool
}

// Do executes a JSON request and classifies the outcome.
//
// payload, when non-nil, is JSON-encoded as the request body. On success the
// decoded envelope is returned; every failure returns exactly one of
// [TransportError], [AuthError], or [BusinessError].
func (p *Pipeline) Do(ctx context.Context, method, path string, payload any, opts CallOpts) (*models.Envelope, error) {
	var body []byte
	contentType := ""
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		body = data
		contentType = "application/json"
	}

	return p.roundTrip(ctx, Request{
		Method:      method,
		Path:        path,
		Body:        body,
		ContentType: contentType,
	}, opts)
}

// Upload executes a single-file multipart request through the same
// classification path. Uploads always count as long-running.
func (p *Pipeline) Upload(ctx context.Context, path, field, filename string, content []byte) (*models.Envelope, error) {
	body, contentType, err := MultipartBody(field, filename, content)
	if err != nil {
		return nil, err
	}

	return p.roundTrip(ctx, Request{
		Method:      http.MethodPost,
		Path:        path,
		Body:        body,
		ContentType: contentType,
	}, CallOpts{LongRunning: true})
}

// Download executes a GET for a non-envelope payload (file export) and
// returns the raw bytes. Failure classification matches Do, minus the
// envelope checks.
func (p *Pipeline) Download(ctx context.Context, path string) ([]byte, error) {
	resp, err := p.client.Do(ctx, Request{
		Method:  http.MethodGet,
		Path:    path,
		Prepare: p.creds.Attach,
	})
	if err != nil {
		return nil, p.fail(&TransportError{Kind: TransportNetwork, Err: err})
	}

	if err := p.classifyStatus(resp); err != nil {
		return nil, err
	}
	return resp.Body, nil
}

// roundTrip runs the pre-call hooks, the transport call, and classification.
func (p *Pipeline) roundTrip(ctx context.Context, req Request, opts CallOpts) (*models.Envelope, error) {
	req.Prepare = p.creds.Attach

	if opts.LongRunning {
		p.beginBusy()
		defer p.endBusy()
	}

	resp, err := p.client.Do(ctx, req)
	if err != nil {
		return nil, p.fail(&TransportError{Kind: TransportNetwork, Err: err})
	}

	return p.classify(resp)
}

// classify applies the post-call taxonomy to a transport response.
func (p *Pipeline) classify(resp *Response) (*models.Envelope, error) {
	if err := p.classifyStatus(resp); err != nil {
		return nil, err
	}

	var env models.Envelope
	if err := json.Unmarshal(resp.Body, &env); err != nil {
		return nil, p.fail(&TransportError{Kind: TransportMalformed, Err: err})
	}

	if !env.Success {
		message := env.Message
		if message == "" {
			message = env.Error
		}
		return nil, p.fail(&BusinessError{Message: message})
	}

	return &env, nil
}

// classifyStatus handles the status-code branches shared by envelope and
// download calls. Returns nil for 2xx.
func (p *Pipeline) classifyStatus(resp *Response) error {
	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		// Session destroyed; the original request is not retried after a
		// fresh login.
		if err := p.creds.Clear(); err != nil {
			p.logger.Warn("failed to clear credentials", "error", err)
		}
		p.notifier.RedirectToLogin()
		return p.fail(&AuthError{})

	case resp.StatusCode == http.StatusForbidden:
		return p.fail(&AuthError{Forbidden: true})

	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return p.fail(&TransportError{
			Kind:   TransportStatus,
			Status: resp.StatusCode,
			Detail: extractDetail(resp.Body),
		})
	}
	return nil
}

// fail reports a classified failure to the notifier and returns it.
func (p *Pipeline) fail(err error) error {
	level := LevelError
	if authErr, ok := err.(*AuthError); ok && authErr.Forbidden {
		level = LevelWarning
	}
	p.notifier.Notify(level, err.Error())
	p.logger.Debug("request failed", "error", err)
	return err
}

// beginBusy increments the process-wide busy reference count, signaling the
// indicator on the 0→1 transition.
func (p *Pipeline) beginBusy() {
	p.busyMu.Lock()
	p.busyCount++
	show := p.busyCount == 1
	p.busyMu.Unlock()

	if show {
		p.notifier.BusyChanged(true)
	}
}

// endBusy decrements the busy reference count, clearing the indicator only
// when the count returns to zero.
func (p *Pipeline) endBusy() {
	p.busyMu.Lock()
	p.busyCount--
	hide := p.busyCount == 0
	p.busyMu.Unlock()

	if hide {
		p.notifier.BusyChanged(false)
	}
}

// BusyCount returns the current busy reference count.
func (p *Pipeline) BusyCount() int {
	p.busyMu.Lock()
	defer p.busyMu.Unlock()
	return p.busyCount
}

// extractDetail pulls structured validation messages out of an error body.
//
// The backend wraps most errors in the standard envelope; validation
// failures additionally carry a detail array of {msg} objects.
func extractDetail(body []byte) string {
	var env models.Envelope
	if err := json.Unmarshal(body, &env); err == nil {
		if env.Details != "" {
			return env.Details
		}
		if env.Message != "" {
			return env.Message
		}
	}

	var validation struct {
		Detail []struct {
			Msg string `json:"msg"`
		} `json:"detail"`
	}
	if err := json.Unmarshal(body, &validation); err == nil && len(validation.Detail) > 0 {
		msgs := make([]string, 0, len(validation.Detail))
		for _, d := range validation.Detail {
			if d.Msg != "" {
				msgs = append(msgs, d.Msg)
			}
		}
		return strings.Join(msgs, ", ")
	}

	return ""
}
