package fakeapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/aixcyberchallenge/captcha-solver/internal/types"
)

const (
	errKeyDoesNotExist = "ERROR_KEY_DOES_NOT_EXIST"
	errNoSuchCaptchaID = "ERROR_NO_SUCH_CAPCHA_ID"
	errBadParameters   = "ERROR_BAD_PARAMETERS"
)

func failure(c echo.Context, errorCode string) error {
	return c.JSON(http.StatusOK, types.ErrorEnvelope{
		ErrorID:          1,
		ErrorCode:        errorCode,
		ErrorDescription: fmt.Sprintf("fake service answered %s", errorCode),
	})
}

// Bind and validate the request, answering with a service error when it is malformed.
// Returns false when the handler should stop.
func (s *Server) bind(c echo.Context, req any, clientKey func() string) (bool, error) {
	if err := c.Bind(req); err != nil {
		return false, failure(c, errBadParameters)
	}
	if err := c.Validate(req); err != nil {
		return false, failure(c, errBadParameters)
	}
	if clientKey() != s.apiKey {
		return false, failure(c, errKeyDoesNotExist)
	}
	return true, nil
}

func (s *Server) createTask(c echo.Context) error {
	var req types.CreateTaskRequest
	if ok, err := s.bind(c, &req, func() string { return req.ClientKey }); !ok {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.creates++

	script := DefaultScript()
	if len(s.scripts) > 0 {
		script = s.scripts[0]
		s.scripts = s.scripts[1:]
	}

	if script.CreateStatus != 0 {
		return c.NoContent(script.CreateStatus)
	}
	if script.CreateError != "" {
		return failure(c, script.CreateError)
	}

	s.nextID++
	job := &Job{
		ID:      s.nextID,
		Request: req,
		Script:  script,
		Created: time.Now(),
	}
	s.jobs[job.ID] = job

	c.Logger().Debugf("created job %d", job.ID)

	return c.JSON(http.StatusOK, types.CreateTaskResponse{TaskID: job.ID})
}

func (s *Server) getTaskResult(c echo.Context) error {
	var req types.TaskRequest
	if ok, err := s.bind(c, &req, func() string { return req.ClientKey }); !ok {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.jobs[req.TaskID]
	if !ok {
		return failure(c, errNoSuchCaptchaID)
	}

	job.Polls++
	if job.Polls <= job.Script.Processing {
		return c.JSON(http.StatusOK, types.TaskResultResponse{Status: types.TaskStatusProcessing})
	}
	if job.Script.PollError != "" {
		return failure(c, job.Script.PollError)
	}

	solution, err := marshalSolution(job.Script.Solution)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, types.TaskResultResponse{
		Status:     types.TaskStatusReady,
		Solution:   solution,
		Cost:       job.Script.Cost,
		IP:         c.RealIP(),
		CreateTime: types.UnixTime{Time: job.Created},
		EndTime:    types.UnixTime{Time: time.Now()},
		SolveCount: 1,
	})
}

func (s *Server) report(verdict types.Verdict) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req types.TaskRequest
		if ok, err := s.bind(c, &req, func() string { return req.ClientKey }); !ok {
			return err
		}

		s.mu.Lock()
		_, known := s.jobs[req.TaskID]
		reportError, delay := s.reportError, s.reportDelay
		s.mu.Unlock()

		if reportError != "" {
			return failure(c, reportError)
		}
		if !known {
			return failure(c, errNoSuchCaptchaID)
		}

		if delay > 0 {
			select {
			case <-time.After(delay):
			case <-c.Request().Context().Done():
				return c.Request().Context().Err()
			}
		}

		s.mu.Lock()
		defer s.mu.Unlock()
		s.reports[req.TaskID] = verdict
		return c.JSON(http.StatusOK, types.ReportResponse{Status: "success"})
	}
}

func (s *Server) getBalance(c echo.Context) error {
	var req types.BalanceRequest
	if ok, err := s.bind(c, &req, func() string { return req.ClientKey }); !ok {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.balanceFailures > 0 {
		s.balanceFailures--
		return c.NoContent(http.StatusServiceUnavailable)
	}

	return c.JSON(http.StatusOK, types.BalanceResponse{Balance: s.balance})
}

func marshalSolution(solution any) (json.RawMessage, error) {
	if raw, ok := solution.(json.RawMessage); ok {
		return raw, nil
	}
	return json.Marshal(solution)
}
