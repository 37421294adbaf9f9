package strategy

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResultConstructors(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		result := Success("user-1", map[string]string{"scope": "read"})
		assert.Equal(t, OutcomeSuccess, result.Outcome)
		assert.Equal(t, "user-1", result.User)
		assert.Equal(t, map[string]string{"scope": "read"}, result.Info)
		assert.NoError(t, result.Err)
	})

	t.Run("fail", func(t *testing.T) {
		result := Fail("bad credentials")
		assert.Equal(t, OutcomeFail, result.Outcome)
		assert.Nil(t, result.User)
		assert.Equal(t, "bad credentials", result.Info)
	})

	t.Run("error", func(t *testing.T) {
		cause := errors.New("upstream down")
		result := Error(cause)
		assert.Equal(t, OutcomeError, result.Outcome)
		assert.ErrorIs(t, result.Err, cause)
	})
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "success", OutcomeSuccess.String())
	assert.Equal(t, "fail", OutcomeFail.String())
	assert.Equal(t, "error", OutcomeError.String())
	assert.Equal(t, "unknown", Outcome(42).String())
}
