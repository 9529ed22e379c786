package solver_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/aixcyberchallenge/captcha-solver/internal/fakeapi"
	solveerrors "github.com/aixcyberchallenge/captcha-solver/solve_errors"
	"github.com/aixcyberchallenge/captcha-solver/solver"
	mocksolver "github.com/aixcyberchallenge/captcha-solver/solver/mock"
)

func response(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     make(http.Header),
	}
}

func TestTransport(t *testing.T) {
	t.Run("ConnectionFailure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		doer := mocksolver.NewMockDoer(ctrl)

		doer.EXPECT().Do(gomock.Any()).Return(nil, errors.New("connection refused")).Times(1)

		c, err := solver.New(apiKey, solver.WithHTTPClient(doer), solver.WithLogger(discard))
		require.NoError(t, err)

		_, err = solver.Solve(context.Background(), c, recaptcha(t))

		var transport *solveerrors.TransportError
		require.ErrorAs(t, err, &transport)
		assert.Equal(t, "/createTask", transport.Op)
	})

	t.Run("RequestShape", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		doer := mocksolver.NewMockDoer(ctrl)

		doer.EXPECT().
			Do(gomock.Any()).
			DoAndReturn(func(req *http.Request) (*http.Response, error) {
				assert.Equal(t, http.MethodPost, req.Method)
				assert.Equal(t, "https://api.2captcha.com/getBalance", req.URL.String())
				assert.Equal(t, "application/json", req.Header.Get("Content-Type"))

				body, err := io.ReadAll(req.Body)
				require.NoError(t, err)
				assert.JSONEq(t, `{"clientKey":"test-key"}`, string(body))

				return response(http.StatusOK, `{"errorId":0,"balance":1.25}`), nil
			}).
			Times(1)

		c, err := solver.New(apiKey, solver.WithHTTPClient(doer), solver.WithLogger(discard))
		require.NoError(t, err)

		balance, err := c.GetBalance(context.Background())
		require.NoError(t, err)
		assert.InDelta(t, 1.25, balance, 0.0001)
	})

	t.Run("MalformedJSON", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		doer := mocksolver.NewMockDoer(ctrl)

		doer.EXPECT().Do(gomock.Any()).Return(response(http.StatusOK, `{"errorId":`), nil).Times(1)

		c, err := solver.New(apiKey, solver.WithHTTPClient(doer), solver.WithLogger(discard))
		require.NoError(t, err)

		_, err = solver.Solve(context.Background(), c, recaptcha(t))

		var decode *solveerrors.DecodeError
		require.ErrorAs(t, err, &decode)
		assert.Equal(t, "/createTask", decode.Op)
	})

	t.Run("BadStatus", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		doer := mocksolver.NewMockDoer(ctrl)

		doer.EXPECT().Do(gomock.Any()).Return(response(http.StatusBadGateway, "upstream down"), nil).Times(1)

		c, err := solver.New(apiKey, solver.WithHTTPClient(doer), solver.WithLogger(discard))
		require.NoError(t, err)

		_, err = c.GetBalance(context.Background())

		var status *solveerrors.StatusError
		require.ErrorAs(t, err, &status)
		assert.Equal(t, http.StatusBadGateway, status.StatusCode)
		assert.Equal(t, "upstream down", status.Body)
	})
}

// The default transport retries idempotent calls only
func TestRetryPolicy(t *testing.T) {
	t.Run("CreateTaskNotRetried", func(t *testing.T) {
		h := newHarness(t)
		h.fake.Enqueue(fakeapi.Script{CreateStatus: http.StatusServiceUnavailable})

		c, err := solver.New(apiKey,
			solver.WithBaseURL(h.server.URL),
			solver.WithLogger(discard),
			solver.WithRetryMax(3),
		)
		require.NoError(t, err)

		_, err = solver.Solve(context.Background(), c, recaptcha(t))

		var status *solveerrors.StatusError
		require.ErrorAs(t, err, &status)
		assert.Equal(t, http.StatusServiceUnavailable, status.StatusCode)
		assert.Equal(t, 1, h.fake.Creates(), "createTask must be sent exactly once")
	})

	t.Run("BalanceRetried", func(t *testing.T) {
		h := newHarness(t)
		h.fake.FailBalance(1)
		h.fake.SetBalance(7.5)

		c, err := solver.New(apiKey,
			solver.WithBaseURL(h.server.URL),
			solver.WithLogger(discard),
			solver.WithRetryMax(1),
		)
		require.NoError(t, err)

		balance, err := c.GetBalance(context.Background())
		require.NoError(t, err)
		assert.InDelta(t, 7.5, balance, 0.0001)
	})

	t.Run("BalanceRetriesExhausted", func(t *testing.T) {
		h := newHarness(t)
		h.fake.FailBalance(5)

		c, err := solver.New(apiKey,
			solver.WithBaseURL(h.server.URL),
			solver.WithLogger(discard),
			solver.WithRetryMax(1),
		)
		require.NoError(t, err)

		_, err = c.GetBalance(context.Background())

		var status *solveerrors.StatusError
		require.ErrorAs(t, err, &status)
		assert.Equal(t, "/getBalance", status.Op)
		assert.Equal(t, http.StatusServiceUnavailable, status.StatusCode)
	})

	t.Run("ConnectionRetriesExhausted", func(t *testing.T) {
		h := newHarness(t)
		h.server.Close()

		c, err := solver.New(apiKey,
			solver.WithBaseURL(h.server.URL),
			solver.WithLogger(discard),
			solver.WithRetryMax(0),
		)
		require.NoError(t, err)

		_, err = c.GetBalance(context.Background())

		var transport *solveerrors.TransportError
		require.ErrorAs(t, err, &transport)
		assert.Equal(t, "/getBalance", transport.Op)
	})
}
