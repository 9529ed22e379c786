package types_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aixcyberchallenge/captcha-solver/internal/types"
)

func TestUnixTime(t *testing.T) {
	t.Run("Seconds", func(t *testing.T) {
		var u types.UnixTime
		require.NoError(t, json.Unmarshal([]byte("1700000000"), &u))
		assert.Equal(t, time.Unix(1700000000, 0).UTC(), u.Time)

		raw, err := json.Marshal(u)
		require.NoError(t, err)
		assert.JSONEq(t, "1700000000", string(raw))
	})

	t.Run("Zero", func(t *testing.T) {
		var u types.UnixTime
		require.NoError(t, json.Unmarshal([]byte("0"), &u))
		assert.True(t, u.IsZero())

		require.NoError(t, json.Unmarshal([]byte("null"), &u))
		assert.True(t, u.IsZero())
	})

	t.Run("Malformed", func(t *testing.T) {
		var u types.UnixTime
		require.Error(t, json.Unmarshal([]byte(`"yesterday"`), &u))
	})
}

func TestVerdictRoute(t *testing.T) {
	route, err := types.VerdictCorrect.Route()
	require.NoError(t, err)
	assert.Equal(t, "/reportCorrect", route)

	route, err = types.VerdictIncorrect.Route()
	require.NoError(t, err)
	assert.Equal(t, "/reportIncorrect", route)

	_, err = types.Verdict("maybe").Route()
	require.Error(t, err)
}

func TestErrorEnvelope(t *testing.T) {
	var resp types.CreateTaskResponse
	require.NoError(t, json.Unmarshal(
		[]byte(`{"errorId":1,"errorCode":"ERROR_ZERO_BALANCE","errorDescription":"no funds"}`),
		&resp,
	))
	assert.True(t, resp.Failed())
	assert.Equal(t, "ERROR_ZERO_BALANCE", resp.ErrorCode)

	require.NoError(t, json.Unmarshal([]byte(`{"errorId":0,"taskId":72345678901}`), &resp))
	assert.False(t, types.ErrorEnvelope{}.Failed())
	assert.Equal(t, int64(72345678901), resp.TaskID)
}
