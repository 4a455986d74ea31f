package lorebot_test

import (
	"errors"
	"testing"

	"github.com/lorebot/lorebot"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := lorebot.Errorf(lorebot.ENOTFOUND, "source %q not found", "test")

	assert.Equal(t, lorebot.ENOTFOUND, lorebot.ErrorCode(err))
	assert.Equal(t, "source \"test\" not found", lorebot.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, lorebot.ErrorCode(nil))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, lorebot.EINTERNAL, lorebot.ErrorCode(errors.New("boom")))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, lorebot.ErrorMessage(nil))
}

func TestErrorMessage_NonApplicationError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Internal error.", lorebot.ErrorMessage(errors.New("boom")))
}
