// Package solver drives jobs through the remote captcha service: submit, wait, poll,
// classify failures and report verdicts.
package solver

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/sethvargo/go-retry"
	"go.opentelemetry.io/otel"

	"github.com/aixcyberchallenge/captcha-solver/internal/logger"
	"github.com/aixcyberchallenge/captcha-solver/internal/types"
	solveerrors "github.com/aixcyberchallenge/captcha-solver/solve_errors"
)

const name = "github.com/aixcyberchallenge/captcha-solver/solver"

var tracer = otel.Tracer(name)

const (
	DefaultBaseURL      = "https://api.2captcha.com"
	DefaultSoftID       = 4143
	DefaultPollInterval = 5 * time.Second
	DefaultRetryMax     = 3
	DefaultTimeout      = 30 * time.Second
)

type (
	LanguagePool = types.LanguagePool
	Verdict      = types.Verdict
)

const (
	LanguagePoolEn = types.LanguagePoolEn
	LanguagePoolRu = types.LanguagePoolRu

	Correct   = types.VerdictCorrect
	Incorrect = types.VerdictIncorrect
)

//go:generate mockgen -destination ./mock/mock.go -package mock . Doer

// Sends a single http request. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client for the captcha service. Immutable once built and safe for concurrent use.
type Client struct {
	httpClient   Doer
	logger       *slog.Logger
	pollBackoff  func() retry.Backoff
	apiKey       string
	baseURL      string
	callbackURL  string
	languagePool LanguagePool
	softID       int
	pollInterval time.Duration
	initialWait  time.Duration
	timeout      time.Duration
	retryMax     int
	waitOverride bool
}

type Option func(*Client) error

func WithBaseURL(baseURL string) Option {
	return func(c *Client) error {
		u, err := url.Parse(baseURL)
		if err != nil {
			return solveerrors.URLErrorWrap(baseURL, err)
		}
		if u.Scheme == "" || u.Host == "" {
			return solveerrors.URLErrorWrap(baseURL, errMissingHost)
		}
		c.baseURL = strings.TrimSuffix(baseURL, "/")
		return nil
	}
}

func WithLanguagePool(pool LanguagePool) Option {
	return func(c *Client) error {
		p, err := types.ParseLanguagePool(string(pool))
		if err != nil {
			return err
		}
		c.languagePool = p
		return nil
	}
}

// Deliver results to a webhook instead of polling. Solve then returns as soon as the job is created.
func WithCallbackURL(callbackURL string) Option {
	return func(c *Client) error {
		u, err := url.Parse(callbackURL)
		if err != nil {
			return solveerrors.URLErrorWrap(callbackURL, err)
		}
		if u.Scheme == "" || u.Host == "" {
			return solveerrors.URLErrorWrap(callbackURL, errMissingHost)
		}
		c.callbackURL = callbackURL
		return nil
	}
}

// Replace the default retrying transport
func WithHTTPClient(doer Doer) Option {
	return func(c *Client) error {
		c.httpClient = doer
		return nil
	}
}

func WithPollInterval(interval time.Duration) Option {
	return func(c *Client) error {
		c.pollInterval = interval
		return nil
	}
}

// Backoff between polls. Takes precedence over WithPollInterval.
func WithPollBackoff(backoff func() retry.Backoff) Option {
	return func(c *Client) error {
		c.pollBackoff = backoff
		return nil
	}
}

// Wait before the first poll regardless of the task kind's estimate
func WithInitialWait(wait time.Duration) Option {
	return func(c *Client) error {
		c.initialWait = wait
		c.waitOverride = true
		return nil
	}
}

// nil keeps the default logger
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) error {
		if l != nil {
			c.logger = l
		}
		return nil
	}
}

func WithSoftID(softID int) Option {
	return func(c *Client) error {
		c.softID = softID
		return nil
	}
}

// Retries of idempotent calls by the default transport
func WithRetryMax(retryMax int) Option {
	return func(c *Client) error {
		c.retryMax = retryMax
		return nil
	}
}

// Timeout of a single http attempt made by the default transport
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) error {
		c.timeout = timeout
		return nil
	}
}

func New(apiKey string, opts ...Option) (*Client, error) {
	c := &Client{
		apiKey:       apiKey,
		baseURL:      DefaultBaseURL,
		languagePool: LanguagePoolEn,
		softID:       DefaultSoftID,
		pollInterval: DefaultPollInterval,
		retryMax:     DefaultRetryMax,
		timeout:      DefaultTimeout,
		logger:       logger.Logger,
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	if c.pollBackoff == nil {
		interval := c.pollInterval
		c.pollBackoff = func() retry.Backoff {
			return retry.NewConstant(interval)
		}
	}

	if c.httpClient == nil {
		c.httpClient = newRetryClient(c.logger, c.retryMax, c.timeout)
	}

	return c, nil
}

type idempotentKey struct{}

// Mark a request as safe to re-send
func idempotent(ctx context.Context) context.Context {
	return context.WithValue(ctx, idempotentKey{}, true)
}

func isIdempotent(ctx context.Context) bool {
	v, _ := ctx.Value(idempotentKey{}).(bool)
	return v
}

// Retrying transport. Only requests marked idempotent are ever re-sent: re-sending
// createTask could create and bill a second job, re-sending a report could double count it.
func newRetryClient(l *slog.Logger, retryMax int, timeout time.Duration) *http.Client {
	client := retryablehttp.NewClient()
	client.Logger = l
	client.RetryMax = retryMax
	client.HTTPClient.Timeout = timeout
	// hand the last response back so post can classify it as a *StatusError
	client.ErrorHandler = retryablehttp.PassthroughErrorHandler
	client.CheckRetry = func(ctx context.Context, resp *http.Response, err error) (bool, error) {
		if !isIdempotent(ctx) {
			if ctx.Err() != nil {
				return false, ctx.Err()
			}
			return false, nil
		}

		return retryablehttp.DefaultRetryPolicy(ctx, resp, err)
	}

	return client.StandardClient()
}
