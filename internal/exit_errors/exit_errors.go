package exiterrors

import (
	"errors"
	"fmt"

	"github.com/aixcyberchallenge/captcha-solver/internal/types"
	solveerrors "github.com/aixcyberchallenge/captcha-solver/solve_errors"
)

// Carries an exit code along with an error so the app can exit correctly
type ExitError struct {
	Err  error
	Code int
}

func (e ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%d", e.Code)
	}

	return fmt.Sprintf("%d: %s", e.Code, e.Err.Error())
}

func (e ExitError) Unwrap() error {
	return e.Err
}

// Wrap an error with an exit code
func ExitErrorWrap(code int, err error) error {
	return ExitError{Code: code, Err: err}
}

// Wrap a solver error with the exit code matching its kind.
//
// Remote rejections exit with types.ExitRejected, jobs given up on with types.ExitAbandoned,
// anything else with types.ExitErrored.
func Classify(err error) error {
	if err == nil {
		return nil
	}

	var ee ExitError
	if errors.As(err, &ee) {
		return err
	}

	var (
		remote    *solveerrors.RemoteError
		abandoned *solveerrors.AbandonedError
	)
	switch {
	case errors.As(err, &abandoned):
		return ExitErrorWrap(types.ExitAbandoned, err)
	case errors.As(err, &remote):
		return ExitErrorWrap(types.ExitRejected, err)
	default:
		return ExitErrorWrap(types.ExitErrored, err)
	}
}
