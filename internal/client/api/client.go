package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"newsdesk/internal/client/models"
	"newsdesk/internal/common"
	"newsdesk/internal/logging"
)

// TokenProvider resolves the bearer token for authenticated operations.
type TokenProvider func(ctx context.Context) (string, error)

// Remote is the operation surface the service layer depends on. *Client is
// the production implementation; tests substitute counting fakes.
type Remote interface {
	// FetchList walks the descriptor chain and returns the first
	// successfully fetched and normalized item sequence.
	FetchList(ctx context.Context, op Op, descs []Descriptor) ([]models.Partial, error)

	// FetchItem is FetchList for a single-item response body.
	FetchItem(ctx context.Context, op Op, descs []Descriptor) (*models.Partial, error)

	// Send executes a body-carrying (or bodiless) write against the chain,
	// succeeding on the first 2xx response.
	Send(ctx context.Context, op Op, descs []Descriptor, payload any) error

	// Submit runs a submission pipeline of (endpoint, payload transform)
	// steps, short-circuiting on the first success.
	Submit(ctx context.Context, op Op, steps []SubmitStep) error
}

// Options configures a Client. Zero fields fall back to defaults.
type Options struct {
	HTTPClient           *http.Client
	Token                TokenProvider
	Logger               logging.Logger
	AttemptTimeout       time.Duration
	UploadAttemptTimeout time.Duration
	UserAgent            string
}

// Client is the HTTP implementation of Remote. Attempts within one logical
// operation run strictly sequentially, each under its own timeout; there is
// no automatic retry of the same descriptor.
type Client struct {
	http                 *http.Client
	token                TokenProvider
	log                  logging.Logger
	attemptTimeout       time.Duration
	uploadAttemptTimeout time.Duration
	userAgent            string
}

func New(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	log := opts.Logger
	if log == nil {
		log = logging.NewDiscard()
	}
	attemptTimeout := opts.AttemptTimeout
	if attemptTimeout <= 0 {
		attemptTimeout = 10 * time.Second
	}
	uploadAttemptTimeout := opts.UploadAttemptTimeout
	if uploadAttemptTimeout <= 0 {
		uploadAttemptTimeout = 60 * time.Second
	}
	token := opts.Token
	if token == nil {
		token = func(ctx context.Context) (string, error) { return "", common.ErrNoAuthToken }
	}
	return &Client{
		http:                 httpClient,
		token:                token,
		log:                  log,
		attemptTimeout:       attemptTimeout,
		uploadAttemptTimeout: uploadAttemptTimeout,
		userAgent:            strings.TrimSpace(opts.UserAgent),
	}
}

// chainStep is one unit of work inside a fallback chain.
type chainStep struct {
	name    string
	timeout time.Duration
	run     func(ctx context.Context) error
}

// runChain is the single fallback-execution primitive shared by fetch and
// submit operations. Steps are attempted strictly in order; a step failure
// is recovered locally (logged, chain continues) and the chain never moves
// backwards. Caller cancellation stops the chain immediately.
func (c *Client) runChain(ctx context.Context, op Op, corr string, steps []chainStep) error {
	log := c.log.With("op", op.Name, "correlation_id", corr)

	attempts := make([]Attempt, 0, len(steps))
	for _, s := range steps {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		actx, cancel := context.WithTimeout(ctx, s.timeout)
		err := s.run(actx)
		cancel()

		if err == nil {
			log.Debug(ctx, "attempt succeeded", "descriptor", s.name, "attempt", len(attempts)+1)
			return nil
		}
		if ctx.Err() != nil {
			// The caller went away; its result must never be applied.
			return ctx.Err()
		}

		log.Warn(ctx, "attempt failed, falling back", "descriptor", s.name, "err", err)
		attempts = append(attempts, Attempt{Descriptor: s.name, Err: err})
	}

	return &ExhaustedError{Op: op.Name, Attempts: attempts}
}

// resolveToken enforces the auth precondition. For unauthenticated
// operations a token is attached opportunistically when one exists.
func (c *Client) resolveToken(ctx context.Context, op Op) (string, error) {
	token, err := c.token(ctx)
	if err != nil {
		if !op.Auth {
			return "", nil
		}
		return "", fmt.Errorf("%s: %w", op.Name, err)
	}
	return token, nil
}

func (c *Client) doRequest(ctx context.Context, d Descriptor, corr, token string, body io.Reader, contentType string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, d.Method, d.URL, body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	for k, vs := range d.Header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	if token != "" {
		req.Header.Set(common.AuthHeaderName, "Bearer "+token)
	}
	req.Header.Set(common.CorrelationHeaderName, corr)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %s %s", ErrTimeout, d.Method, d.URL)
		}
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", ErrTransport, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &ServerError{Status: resp.StatusCode, Message: serverMessage(respBody)}
	}

	return respBody, nil
}

// serverMessage pulls a human-readable reason out of a non-2xx body.
func serverMessage(body []byte) string {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Error != "" {
			return payload.Error
		}
		if payload.Message != "" {
			return payload.Message
		}
	}
	snippet := strings.TrimSpace(string(body))
	if len(snippet) > 200 {
		snippet = snippet[:200]
	}
	return snippet
}

func (c *Client) FetchList(ctx context.Context, op Op, descs []Descriptor) ([]models.Partial, error) {
	token, err := c.resolveToken(ctx, op)
	if err != nil {
		return nil, err
	}
	corr := uuid.NewString()

	var result []models.Partial
	steps := make([]chainStep, 0, len(descs))
	for _, d := range descs {
		d := d
		steps = append(steps, chainStep{
			name:    d.Name,
			timeout: c.attemptTimeout,
			run: func(actx context.Context) error {
				body, err := c.doRequest(actx, d, corr, token, nil, "")
				if err != nil {
					return err
				}
				items, err := DecodeItems(body)
				if err != nil {
					return err
				}
				result = items
				return nil
			},
		})
	}

	if err := c.runChain(ctx, op, corr, steps); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client) FetchItem(ctx context.Context, op Op, descs []Descriptor) (*models.Partial, error) {
	token, err := c.resolveToken(ctx, op)
	if err != nil {
		return nil, err
	}
	corr := uuid.NewString()

	var result *models.Partial
	steps := make([]chainStep, 0, len(descs))
	for _, d := range descs {
		d := d
		steps = append(steps, chainStep{
			name:    d.Name,
			timeout: c.attemptTimeout,
			run: func(actx context.Context) error {
				body, err := c.doRequest(actx, d, corr, token, nil, "")
				if err != nil {
					return err
				}
				item, err := DecodeItem(body)
				if err != nil {
					return err
				}
				result = item
				return nil
			},
		})
	}

	if err := c.runChain(ctx, op, corr, steps); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client) Send(ctx context.Context, op Op, descs []Descriptor, payload any) error {
	token, err := c.resolveToken(ctx, op)
	if err != nil {
		return err
	}
	corr := uuid.NewString()

	var encoded []byte
	contentType := ""
	if payload != nil {
		encoded, err = json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("%s: encoding payload: %w", op.Name, err)
		}
		contentType = "application/json"
	}

	steps := make([]chainStep, 0, len(descs))
	for _, d := range descs {
		d := d
		steps = append(steps, chainStep{
			name:    d.Name,
			timeout: c.attemptTimeout,
			run: func(actx context.Context) error {
				var body io.Reader
				if encoded != nil {
					body = bytes.NewReader(encoded)
				}
				_, err := c.doRequest(actx, d, corr, token, body, contentType)
				return err
			},
		})
	}

	return c.runChain(ctx, op, corr, steps)
}
