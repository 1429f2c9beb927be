// Package middleware contains panic containment used around rule code.
package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/luizvbo/ohcrab/internal/logger"
)

// RecoveryFunc receives the recovered value and the stack of a panic.
type RecoveryFunc func(recovered any, stack []byte)

// DefaultRecovery logs the panic at debug level; a misbehaving heuristic is
// expected and must not be noisy.
func DefaultRecovery(recovered any, stack []byte) {
	logger.Debug("panic recovered",
		"error", fmt.Sprintf("%v", recovered),
		"stack", string(stack),
	)
}

// RecoverWith runs fn and hands any panic to recovery.
func RecoverWith(fn func(), recovery RecoveryFunc) {
	defer func() {
		if r := recover(); r != nil {
			recovery(r, debug.Stack())
		}
	}()
	fn()
}

// SafeCallWithResult calls fn, converting a panic into an error and the
// zero result.
func SafeCallWithResult[T any](fn func() (T, error)) (result T, err error) {
	defer func() {
		if r := recover(); r != nil {
			DefaultRecovery(r, debug.Stack())
			var zero T
			result = zero
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return fn()
}
