package cmds

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aixcyberchallenge/captcha-solver/internal/config"
	exiterrors "github.com/aixcyberchallenge/captcha-solver/internal/exit_errors"
	"github.com/aixcyberchallenge/captcha-solver/internal/fakeapi"
	"github.com/aixcyberchallenge/captcha-solver/internal/fetch"
	"github.com/aixcyberchallenge/captcha-solver/internal/types"
	"github.com/aixcyberchallenge/captcha-solver/tasks"
)

// Run the cli against a fake service, returning stdout
func run(t *testing.T, fake *fakeapi.Server, args ...string) (string, error) {
	t.Helper()

	srv := httptest.NewServer(fakeapi.BuildEcho(slog.New(slog.DiscardHandler), fake))
	t.Cleanup(srv.Close)

	t.Setenv("CAPTCHA_API_KEY", "key")
	t.Setenv("CAPTCHA_BASE_URL", srv.URL)
	t.Setenv("CAPTCHA_POLL_INTERVAL", "1ms")
	t.Setenv("CAPTCHA_INITIAL_WAIT", "1ms")

	// the config is cached and would keep the previous server's url
	config.Reset()

	// flags keep their values between executions
	kindName, fields, files, cookies, proxyURL, solveTimeout = "", nil, nil, nil, "", 0
	reportIDs, correct, incorrect = nil, false, false
	for _, cmd := range rootCmd.Commands() {
		cmd.Flags().VisitAll(func(f *pflag.Flag) {
			f.Changed = false
		})
	}

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)

	err := Execute(context.Background())
	return out.String(), err
}

func testFetcher(t *testing.T) fetch.Fetcher {
	t.Helper()

	f, err := newFetcher(&config.Config{})
	require.NoError(t, err)
	return f
}

func TestBuildTask(t *testing.T) {
	t.Run("Fields", func(t *testing.T) {
		kindName = "recaptcha-v3"
		fields = []string{"websiteURL=https://example.com", "websiteKey=k", "minScore=0.7"}
		files, cookies, proxyURL = nil, []string{"session=abc"}, ""

		task, err := buildTask(context.Background(), testFetcher(t))
		require.NoError(t, err)

		score, _ := task.Get("minScore")
		assert.InDelta(t, 0.7, score, 0.0001)
		jar, _ := task.Get("cookies")
		assert.Equal(t, "session=abc", jar)
	})

	t.Run("File", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "captcha.png")
		require.NoError(t, os.WriteFile(path, bytes.Repeat([]byte{0x89}, 256), 0o600))

		kindName = "image"
		fields, cookies, proxyURL = nil, nil, ""
		files = []string{"body=" + path}

		task, err := buildTask(context.Background(), testFetcher(t))
		require.NoError(t, err)
		assert.Equal(t, "ImageToTextTask", task.Type())
	})

	t.Run("Proxy", func(t *testing.T) {
		kindName = "turnstile"
		fields = []string{"websiteURL=https://example.com", "websiteKey=k"}
		files, cookies = nil, nil
		proxyURL = "http://proxy.local:3128"

		task, err := buildTask(context.Background(), testFetcher(t))
		require.NoError(t, err)
		assert.Equal(t, tasks.KindTurnstile.ProxyType, task.Type())
	})

	t.Run("UnknownKind", func(t *testing.T) {
		kindName = "nope"
		_, err := buildTask(context.Background(), testFetcher(t))
		require.Error(t, err)
	})

	t.Run("MalformedField", func(t *testing.T) {
		kindName = "text"
		fields = []string{"comment"}
		files, cookies, proxyURL = nil, nil, ""

		_, err := buildTask(context.Background(), testFetcher(t))
		require.Error(t, err)
	})
}

func TestSolveCommand(t *testing.T) {
	fake := fakeapi.New("key")
	fake.Enqueue(fakeapi.Script{Processing: 1, Solution: map[string]any{"text": "w68hp"}, Cost: "0.0005"})

	path := filepath.Join(t.TempDir(), "captcha.png")
	require.NoError(t, os.WriteFile(path, bytes.Repeat([]byte{0x89}, 256), 0o600))

	out, err := run(t, fake, "solve", "--kind", "image", "--file", "body="+path, "-f", "numeric=1")
	require.NoError(t, err)

	var result solveOutput
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, int64(1001), result.TaskID)
	assert.JSONEq(t, `{"text":"w68hp"}`, string(result.Solution))
	assert.Equal(t, "0.0005", result.Cost)
}

// Create n jobs on the fake through the cli, returning their ids
func solveJobs(t *testing.T, fake *fakeapi.Server, n int) []int64 {
	t.Helper()

	ids := make([]int64, 0, n)
	for range n {
		out, err := run(t, fake, "solve", "--kind", "turnstile",
			"-f", "websiteURL=https://example.com", "-f", "websiteKey=k")
		require.NoError(t, err)

		var result solveOutput
		require.NoError(t, json.Unmarshal([]byte(out), &result))
		ids = append(ids, result.TaskID)
	}
	return ids
}

func TestReportCommand(t *testing.T) {
	t.Run("Correct", func(t *testing.T) {
		fake := fakeapi.New("key")
		ids := solveJobs(t, fake, 2)

		_, err := run(t, fake, "report", "--correct", "--task-id", "1001", "--task-id", "1002")
		require.NoError(t, err)

		assert.Equal(t, map[int64]types.Verdict{
			ids[0]: types.VerdictCorrect,
			ids[1]: types.VerdictCorrect,
		}, fake.Reports())
	})

	t.Run("Incorrect", func(t *testing.T) {
		fake := fakeapi.New("key")
		solveJobs(t, fake, 1)

		_, err := run(t, fake, "report", "--incorrect", "--task-id", "1001")
		require.NoError(t, err)
		assert.Equal(t, types.VerdictIncorrect, fake.Reports()[1001])
	})

	t.Run("FailureKeepsOthers", func(t *testing.T) {
		fake := fakeapi.New("key")
		solveJobs(t, fake, 1)
		fake.DelayReports(200 * time.Millisecond)

		// 9999 fails at once while 1001 is still being held by the service
		_, err := run(t, fake, "report", "--correct", "--task-id", "9999", "--task-id", "1001")
		require.Error(t, err)
		assert.NotErrorIs(t, err, context.Canceled)

		var exit exiterrors.ExitError
		require.ErrorAs(t, err, &exit)
		assert.Equal(t, types.ExitRejected, exit.Code)

		assert.Equal(t, map[int64]types.Verdict{1001: types.VerdictCorrect}, fake.Reports())
	})

	t.Run("VerdictRequired", func(t *testing.T) {
		fake := fakeapi.New("key")

		_, err := run(t, fake, "report", "--task-id", "1001")
		require.Error(t, err)
		assert.Empty(t, fake.Reports())
	})
}

func TestBalanceCommand(t *testing.T) {
	fake := fakeapi.New("key")
	fake.SetBalance(12.5)

	out, err := run(t, fake, "balance")
	require.NoError(t, err)
	assert.Equal(t, "12.50000\n", out)
}

func TestKindsCommand(t *testing.T) {
	out, err := run(t, fakeapi.New("key"), "kinds")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, len(tasks.Kinds())+1)
	assert.True(t, strings.HasPrefix(lines[0], "KIND"))

	var datadome string
	for _, l := range lines {
		if strings.HasPrefix(l, "datadome ") {
			datadome = l
		}
	}
	assert.Contains(t, datadome, "required")
	assert.Contains(t, datadome, "captchaUrl")
}

func TestConfigReloaded(t *testing.T) {
	first := fakeapi.New("key")
	first.SetBalance(1)
	_, err := run(t, first, "balance")
	require.NoError(t, err)

	second := fakeapi.New("key")
	second.SetBalance(2)
	out, err := run(t, second, "balance")
	require.NoError(t, err)
	assert.Equal(t, "2.00000\n", out, "second run must talk to its own server")
}
