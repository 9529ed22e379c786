package exiterrors_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	exiterrors "github.com/aixcyberchallenge/captcha-solver/internal/exit_errors"
	"github.com/aixcyberchallenge/captcha-solver/internal/types"
	solveerrors "github.com/aixcyberchallenge/captcha-solver/solve_errors"
)

func code(t *testing.T, err error) int {
	t.Helper()

	var ee exiterrors.ExitError
	require.ErrorAs(t, err, &ee)
	return ee.Code
}

func TestClassify(t *testing.T) {
	t.Run("Nil", func(t *testing.T) {
		require.NoError(t, exiterrors.Classify(nil))
	})

	t.Run("Remote", func(t *testing.T) {
		err := exiterrors.Classify(solveerrors.FromCode("ERROR_ZERO_BALANCE", ""))
		assert.Equal(t, types.ExitRejected, code(t, err))
		assert.ErrorIs(t, err, solveerrors.ErrZeroBalance)
	})

	t.Run("Abandoned", func(t *testing.T) {
		err := exiterrors.Classify(solveerrors.AbandonedErrorWrap(7, context.DeadlineExceeded))
		assert.Equal(t, types.ExitAbandoned, code(t, err))
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("Other", func(t *testing.T) {
		err := exiterrors.Classify(solveerrors.TransportErrorWrap("/createTask", errors.New("refused")))
		assert.Equal(t, types.ExitErrored, code(t, err))
	})

	t.Run("AlreadyClassified", func(t *testing.T) {
		err := exiterrors.Classify(exiterrors.ExitErrorWrap(9, errors.New("boom")))
		assert.Equal(t, 9, code(t, err))
	})

	t.Run("Message", func(t *testing.T) {
		assert.Equal(t, "2", exiterrors.ExitError{Code: 2}.Error())
		assert.Equal(t, "1: boom", exiterrors.ExitErrorWrap(1, errors.New("boom")).Error())
	})
}
