// Package solveerrors classifies everything that can go wrong while talking to the
// captcha service.
//
// Remote business errors are carried by [RemoteError] and can be matched against the
// sentinels with errors.Is. Local failures (transport, status, decoding, bad user
// input and abandoned jobs) each have their own type and never wrap a [RemoteError].
package solveerrors

import (
	"fmt"
)

var (
	ErrInvalidAPIKey         = &RemoteError{Code: InvalidAPIKey}
	ErrNoSlotAvailable       = &RemoteError{Code: NoSlotAvailable}
	ErrImageTooSmall         = &RemoteError{Code: ImageTooSmall}
	ErrImageTooBig           = &RemoteError{Code: ImageTooBig}
	ErrZeroBalance           = &RemoteError{Code: ZeroBalance}
	ErrIPNotAllowed          = &RemoteError{Code: IPNotAllowed}
	ErrUnsolvableCaptcha     = &RemoteError{Code: UnsolvableCaptcha}
	ErrBadDuplicates         = &RemoteError{Code: BadDuplicates}
	ErrNoSuchMethod          = &RemoteError{Code: NoSuchMethod}
	ErrUnsupportedImageType  = &RemoteError{Code: UnsupportedImageType}
	ErrCaptchaIDNotFound     = &RemoteError{Code: CaptchaIDNotFound}
	ErrIPBlocked             = &RemoteError{Code: IPBlocked}
	ErrTaskNotProvided       = &RemoteError{Code: TaskNotProvided}
	ErrTaskNotSupported      = &RemoteError{Code: TaskNotSupported}
	ErrInvalidSiteKey        = &RemoteError{Code: InvalidSiteKey}
	ErrAccountSuspended      = &RemoteError{Code: AccountSuspended}
	ErrBadProxy              = &RemoteError{Code: BadProxy}
	ErrProxyConnectionFailed = &RemoteError{Code: ProxyConnectionFailed}
	ErrBadParameters         = &RemoteError{Code: BadParameters}
	ErrBadImageInstructions  = &RemoteError{Code: BadImageInstructions}
	// Matches every remote error whose code was not recognized
	ErrUnknownRemote         = &RemoteError{Code: Unknown}
)

// Business error returned by the service in place of a result
type RemoteError struct {
	// Code exactly as the service sent it
	Raw         string
	Description string
	Code        Code
}

// Build a RemoteError from the service's errorCode and errorDescription fields
func FromCode(raw string, description string) *RemoteError {
	return &RemoteError{
		Code:        Lookup(raw),
		Raw:         raw,
		Description: description,
	}
}

func (e *RemoteError) Error() string {
	if e.Code == Unknown {
		if e.Description != "" {
			return fmt.Sprintf("unknown remote error %q: %s", e.Raw, e.Description)
		}
		return fmt.Sprintf("unknown remote error %q", e.Raw)
	}

	return fmt.Sprintf("%s: %s", e.Code, e.Code.message())
}

// Two remote errors match when their codes match
func (e *RemoteError) Is(target error) bool {
	t, ok := target.(*RemoteError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

func (e *RemoteError) Refunded() bool {
	return e.Code.Refunded()
}

// Request never produced a response: dns, connection refused, tls, retries exhausted
type TransportError struct {
	Err error
	// Remote route that was being called
	Op  string
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: transport failure: %s", e.Op, e.Err.Error())
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func TransportErrorWrap(op string, err error) error {
	return &TransportError{Op: op, Err: err}
}

// Response carried a non 2xx status
type StatusError struct {
	Op         string
	Body       string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: invalid status code: %d", e.Op, e.StatusCode)
}

// Response body could not be decoded
type DecodeError struct {
	Err error
	Op  string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: malformed response: %s", e.Op, e.Err.Error())
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func DecodeErrorWrap(op string, err error) error {
	return &DecodeError{Op: op, Err: err}
}

// User supplied url could not be parsed
type URLError struct {
	Err error
	URL string
}

func (e *URLError) Error() string {
	return fmt.Sprintf("malformed url %q: %s", e.URL, e.Err.Error())
}

func (e *URLError) Unwrap() error {
	return e.Err
}

func URLErrorWrap(rawURL string, err error) error {
	return &URLError{URL: rawURL, Err: err}
}

// The caller's context ended while the job was still being processed remotely.
// The job keeps running (and billing) server side, TaskID lets the caller track it.
type AbandonedError struct {
	Err    error
	TaskID int64
}

func (e *AbandonedError) Error() string {
	return fmt.Sprintf("abandoned task %d: %s", e.TaskID, e.Err.Error())
}

func (e *AbandonedError) Unwrap() error {
	return e.Err
}

func AbandonedErrorWrap(taskID int64, err error) error {
	return &AbandonedError{TaskID: taskID, Err: err}
}
