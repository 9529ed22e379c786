package solver_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	solveerrors "github.com/aixcyberchallenge/captcha-solver/solve_errors"
	"github.com/aixcyberchallenge/captcha-solver/solver"
)

func TestReport(t *testing.T) {
	t.Run("Correct", func(t *testing.T) {
		h := newHarness(t)
		c := h.client(t)

		sol, err := solver.Solve(context.Background(), c, recaptcha(t))
		require.NoError(t, err)

		require.NoError(t, c.ReportSolution(context.Background(), sol, solver.Correct))
		assert.Equal(t, solver.Correct, h.fake.Reports()[sol.TaskID])
		assert.Equal(t, "/reportCorrect", h.doer.Paths()[len(h.doer.Paths())-1])
	})

	t.Run("Incorrect", func(t *testing.T) {
		h := newHarness(t)
		c := h.client(t)

		sol, err := solver.Solve(context.Background(), c, recaptcha(t))
		require.NoError(t, err)

		require.NoError(t, c.Report(context.Background(), sol.TaskID, solver.Incorrect))
		assert.Equal(t, solver.Incorrect, h.fake.Reports()[sol.TaskID])
		assert.Equal(t, "/reportIncorrect", h.doer.Paths()[len(h.doer.Paths())-1])
	})

	t.Run("Failure", func(t *testing.T) {
		h := newHarness(t)
		c := h.client(t)

		sol, err := solver.Solve(context.Background(), c, recaptcha(t))
		require.NoError(t, err)

		h.fake.FailReports("ERROR_IP_BLOCKED")
		before := len(h.doer.Paths())
		solved := *sol

		err = c.ReportSolution(context.Background(), sol, solver.Incorrect)
		require.ErrorIs(t, err, solveerrors.ErrIPBlocked)
		assert.Len(t, h.doer.Paths(), before+1, "reports must not be retried")
		assert.Equal(t, solved, *sol, "solution must be left untouched")
	})

	t.Run("UnknownTask", func(t *testing.T) {
		h := newHarness(t)
		c := h.client(t)

		err := c.Report(context.Background(), 42, solver.Correct)
		require.ErrorIs(t, err, solveerrors.ErrCaptchaIDNotFound)
	})

	t.Run("InvalidVerdict", func(t *testing.T) {
		h := newHarness(t)
		c := h.client(t)

		err := c.Report(context.Background(), 42, solver.Verdict("maybe"))
		require.Error(t, err)
		assert.Empty(t, h.doer.Paths())
	})
}

func TestGetBalance(t *testing.T) {
	h := newHarness(t)
	h.fake.SetBalance(12.34)
	c := h.client(t)

	balance, err := c.GetBalance(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 12.34, balance, 0.0001)
}
