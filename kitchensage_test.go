package kitchensage_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/kitchensage"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := kitchensage.Errorf(kitchensage.ENOTFOUND, "recipe %q not found", "abc")

	assert.Equal(t, kitchensage.ENOTFOUND, kitchensage.ErrorCode(err))
	assert.Equal(t, "recipe \"abc\" not found", kitchensage.ErrorMessage(err))
}

func TestErrorCode(t *testing.T) {
	t.Parallel()

	t.Run("returns empty for nil error", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, kitchensage.ErrorCode(nil))
	})

	t.Run("returns EINTERNAL for plain errors", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, kitchensage.EINTERNAL, kitchensage.ErrorCode(errors.New("boom")))
	})

	t.Run("unwraps wrapped application errors", func(t *testing.T) {
		t.Parallel()

		err := fmt.Errorf("parse: %w", kitchensage.Errorf(kitchensage.ENORECIPE, "no recipe found"))

		assert.Equal(t, kitchensage.ENORECIPE, kitchensage.ErrorCode(err))
		assert.Equal(t, "no recipe found", kitchensage.ErrorMessage(err))
	})
}

func TestErrorMessage(t *testing.T) {
	t.Parallel()

	t.Run("returns empty for nil error", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, kitchensage.ErrorMessage(nil))
	})

	t.Run("returns text of plain errors", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "disk full", kitchensage.ErrorMessage(errors.New("disk full")))
	})
}
