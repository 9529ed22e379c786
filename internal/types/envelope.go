package types

import "encoding/json"

type (
	// Body of POST /createTask. Task is the already serialized tagged payload.
	CreateTaskRequest struct {
		ClientKey    string          `json:"clientKey"             validate:"required"`
		Task         json.RawMessage `json:"task"                  validate:"required"`
		SoftID       int             `json:"softId"`
		LanguagePool LanguagePool    `json:"languagePool"          validate:"omitempty,oneof=en ru"`
		CallbackURL  string          `json:"callbackUrl,omitempty" validate:"omitempty,url"`
	}

	// Body of POST /getTaskResult, /reportCorrect and /reportIncorrect
	TaskRequest struct {
		ClientKey string `json:"clientKey" validate:"required"`
		TaskID    int64  `json:"taskId"    validate:"required"`
	}

	// Body of POST /getBalance
	BalanceRequest struct {
		ClientKey string `json:"clientKey" validate:"required"`
	}

	// Fields shared by every response. A non empty ErrorCode means the call failed.
	ErrorEnvelope struct {
		ErrorCode        string `json:"errorCode,omitempty"`
		ErrorDescription string `json:"errorDescription,omitempty"`
		ErrorID          int    `json:"errorId"`
	}

	CreateTaskResponse struct {
		ErrorEnvelope
		TaskID int64 `json:"taskId,omitempty"`
	}

	// Solution is left raw so the caller can decode it into the shape owned by the task kind.
	TaskResultResponse struct {
		ErrorEnvelope
		Status     TaskStatus      `json:"status,omitempty"`
		Solution   json.RawMessage `json:"solution,omitempty"`
		Cost       string          `json:"cost,omitempty"`
		IP         string          `json:"ip,omitempty"`
		CreateTime UnixTime        `json:"createTime,omitempty"`
		EndTime    UnixTime        `json:"endTime,omitempty"`
		SolveCount int             `json:"solveCount,omitempty"`
	}

	BalanceResponse struct {
		ErrorEnvelope
		Balance float64 `json:"balance"`
	}

	ReportResponse struct {
		ErrorEnvelope
		Status string `json:"status,omitempty"`
	}
)

// Failed reports whether the remote service rejected the call
func (e ErrorEnvelope) Failed() bool {
	return e.ErrorCode != "" || e.ErrorID != 0
}
