// Package fakeapi is a scripted, in memory stand-in for the captcha service, used by tests
// and cmd/mock_solver. Every created job follows a Script deciding how it is answered.
package fakeapi

import (
	"encoding/json"
	"log/slog"
	"maps"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	slogecho "github.com/samber/slog-echo"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"

	"github.com/aixcyberchallenge/captcha-solver/internal/types"
	"github.com/aixcyberchallenge/captcha-solver/internal/validator"
)

// How the fake answers for one created job
type Script struct {
	// Sent as the solution once the job is ready
	Solution     any
	// errorCode answered by createTask instead of a job id
	CreateError  string
	// errorCode answered by getTaskResult once the processing polls are used up
	PollError    string
	Cost         string
	// Number of polls answered with "processing" before the job is ready
	Processing   int
	// Non zero: createTask answers with this http status and no body
	CreateStatus int
}

// Created job as the fake saw it
type Job struct {
	Created time.Time
	Request types.CreateTaskRequest
	Script  Script
	ID      int64
	Polls   int
}

// Task payload of the job decoded as a map
func (j *Job) Task() (map[string]any, error) {
	var task map[string]any
	if err := json.Unmarshal(j.Request.Task, &task); err != nil {
		return nil, err
	}
	return task, nil
}

type Server struct {
	jobs            map[int64]*Job
	reports         map[int64]types.Verdict
	apiKey          string
	reportError     string
	scripts         []Script
	balance         float64
	nextID          int64
	creates         int
	balanceFailures int
	reportDelay     time.Duration
	mu              sync.Mutex
}

func New(apiKey string) *Server {
	return &Server{
		apiKey:  apiKey,
		jobs:    make(map[int64]*Job),
		reports: make(map[int64]types.Verdict),
		nextID:  1000,
		balance: 10,
	}
}

// Scripts for the next created jobs, in order. Once used up jobs get DefaultScript.
func (s *Server) Enqueue(scripts ...Script) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scripts = append(s.scripts, scripts...)
}

func DefaultScript() Script {
	return Script{
		Solution: map[string]any{"token": "fake-token"},
		Cost:     "0.00145",
	}
}

func (s *Server) SetBalance(balance float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.balance = balance
}

// Answer reports with errorCode, empty to accept them again
func (s *Server) FailReports(errorCode string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reportError = errorCode
}

// Hold accepted reports for d before answering
func (s *Server) DelayReports(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reportDelay = d
}

// Answer the next n getBalance calls with 503
func (s *Server) FailBalance(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.balanceFailures = n
}

// Number of createTask calls, including rejected ones
func (s *Server) Creates() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.creates
}

// Copy of the job with id
func (s *Server) Job(id int64) (Job, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	j, ok := s.jobs[id]
	if !ok {
		return Job{}, false
	}
	return *j, true
}

func (s *Server) Reports() map[int64]types.Verdict {
	s.mu.Lock()
	defer s.mu.Unlock()
	return maps.Clone(s.reports)
}

// Register the service routes on e
func (s *Server) Register(e *echo.Echo) {
	e.POST("/createTask", s.createTask)
	e.POST("/getTaskResult", s.getTaskResult)
	e.POST("/reportCorrect", s.report(types.VerdictCorrect))
	e.POST("/reportIncorrect", s.report(types.VerdictIncorrect))
	e.POST("/getBalance", s.getBalance)
}

func BuildEcho(logger *slog.Logger, s *Server) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	validate := validator.Create()
	e.Validator = &validate

	e.Use(
		otelecho.Middleware("captcha-fakeapi"),
		slogecho.NewWithConfig(logger, slogecho.Config{}),
	)

	s.Register(e)

	return e
}
