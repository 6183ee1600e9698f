package texdex_test

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/fwojciec/texdex"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := texdex.Errorf(texdex.ENOTFOUND, "source %q not found", "test")

	assert.Equal(t, texdex.ENOTFOUND, texdex.ErrorCode(err))
	assert.Equal(t, "source \"test\" not found", texdex.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, texdex.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, texdex.ErrorMessage(nil))
}

func TestErrorCode_PlainError(t *testing.T) {
	t.Parallel()

	err := errors.New("boom")

	assert.Equal(t, texdex.EINTERNAL, texdex.ErrorCode(err))
	assert.Equal(t, "Internal error.", texdex.ErrorMessage(err))
}

func TestWrapError(t *testing.T) {
	t.Parallel()

	t.Run("keeps the cause reachable", func(t *testing.T) {
		t.Parallel()

		err := texdex.WrapError(texdex.EUNAVAILABLE, io.ErrUnexpectedEOF, "cannot read records")

		assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
		assert.Contains(t, err.Error(), "unexpected EOF")
		assert.True(t, texdex.IsUnavailable(err))
	})

	t.Run("code survives fmt wrapping", func(t *testing.T) {
		t.Parallel()

		inner := texdex.WrapError(texdex.EUNAVAILABLE, io.EOF, "cannot count records")
		err := fmt.Errorf("status: %w", inner)

		assert.Equal(t, texdex.EUNAVAILABLE, texdex.ErrorCode(err))
		assert.Equal(t, "cannot count records", texdex.ErrorMessage(err))
	})
}
