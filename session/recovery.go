// ©Silverstreams AI, Inc. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package session

import (
	"time"

	"github.com/SilverstreamsAI/NexusFix/coro"
)

// maxReconnectDelay caps the exponential backoff between attempts.
const maxReconnectDelay = 60 * time.Second

// RunWithRecovery runs the session lifecycle and, on error, retries with
// capped exponential backoff until MaxReconnectAttempts is exhausted.
// A graceful return stops the loop; the last error is returned when the
// attempts run out.
func RunWithRecovery(co *coro.Coroutine, s *Session, host string, port uint16) Result {
	attempts := 0
	for attempts < s.cfg.MaxReconnectAttempts {
		result := s.Run(co, host, port)
		if !result.IsLeft() {
			return result
		}

		attempts++
		if attempts >= s.cfg.MaxReconnectAttempts {
			return result
		}

		delay := time.Duration(s.cfg.ReconnectInterval<<attempts) * time.Second
		if delay > maxReconnectDelay {
			delay = maxReconnectDelay
		}
		coro.Sleep(co, delay)
	}
	return fail(ErrDisconnected)
}

// RecoveryTask wraps RunWithRecovery in a lazy task for external driving.
func RecoveryTask(s *Session, host string, port uint16) *coro.Task[Result] {
	return coro.New(func(co *coro.Coroutine) Result {
		return RunWithRecovery(co, s, host, port)
	})
}
