package middleware

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSafeCallWithResult(t *testing.T) {
	got, err := SafeCallWithResult(func() ([]string, error) {
		return []string{"ok"}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"ok"}, got)

	got, err = SafeCallWithResult(func() ([]string, error) {
		var s []string
		return []string{s[3]}, nil
	})
	assert.Error(t, err)
	assert.Nil(t, got)
}

func TestRecoverWith(t *testing.T) {
	var seen any
	RecoverWith(func() { panic("bad rule") }, func(r any, stack []byte) {
		seen = r
		assert.NotEmpty(t, stack)
	})
	assert.Equal(t, "bad rule", seen)
}
