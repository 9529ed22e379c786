package validator

import (
	"crypto/rand"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func base64String(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return base64.StdEncoding.EncodeToString(b)
}

func TestImageSize(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		assert.True(t, ValidateImageSize(len(base64String((1<<10)*100))), "max size should work")
	})

	t.Run("ValidSmall", func(t *testing.T) {
		assert.True(t, ValidateImageSize(len(base64String(100))), "min size should work")
	})

	t.Run("TooSmall", func(t *testing.T) {
		assert.False(t, ValidateImageSize(len(base64String(10))), "too small")
	})

	t.Run("TooBig", func(t *testing.T) {
		assert.False(t, ValidateImageSize(len(base64String((1<<10)*101))), "too big")
	})
}

func TestAudioSize(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		assert.True(t, ValidateAudioSize(len(base64String(1<<20))), "max size should work")
	})

	t.Run("Invalid", func(t *testing.T) {
		assert.False(t, ValidateAudioSize(len(base64String((1<<20)+100))), "too big")
	})
}

func TestCaptchaImageRule(t *testing.T) {
	v := Create()

	require.NoError(t, v.Var(base64String(1000), "captcha_image"))
	assert.Error(t, v.Var("not base64 at all, but long enough to pass the size check............"+
		"........................................................................", "captcha_image"))
	assert.Error(t, v.Var(base64String(10), "captcha_image"))
}

func TestCaptchaAudioRule(t *testing.T) {
	v := Create()

	require.NoError(t, v.Var(base64String(4096), "captcha_audio"))
	assert.Error(t, v.Var("", "captcha_audio"))
	assert.Error(t, v.Var("%%%%", "captcha_audio"))
	assert.Error(t, v.Var(base64String((1<<20)+100), "captcha_audio"))
}
