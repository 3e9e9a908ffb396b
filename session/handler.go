// ©Silverstreams AI, Inc. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package session

import "github.com/SilverstreamsAI/NexusFix/fix"

// Handler receives session callbacks. All callbacks run on the session's
// thread of control between suspension points; they must not block.
type Handler interface {
	// OnAppMessage delivers a validated application message.
	OnAppMessage(msg *fix.Message)
	// OnAdminMessage observes every routed admin message before the
	// session's own handling.
	OnAdminMessage(msg *fix.Message)
	// OnStateChange fires on every actual state transition.
	OnStateChange(from, to State)
	// OnSend observes every assembled outbound message immediately
	// before transmission; returning false drops the message without
	// sending it.
	OnSend(msg []byte) bool
	// OnError reports protocol-level problems that do not terminate the
	// session by themselves.
	OnError(err Error)
	// OnLogon fires when the session reaches Active.
	OnLogon()
	// OnLogout fires with the peer's Logout text, and again with
	// "Session ended" when the logout phase concludes.
	OnLogout(text string)
}

// NopHandler implements Handler with no-ops; embed it to implement only
// the callbacks a handler cares about.
type NopHandler struct{}

func (NopHandler) OnAppMessage(*fix.Message)   {}
func (NopHandler) OnAdminMessage(*fix.Message) {}
func (NopHandler) OnStateChange(State, State)  {}
func (NopHandler) OnSend([]byte) bool          { return true }
func (NopHandler) OnError(Error)               {}
func (NopHandler) OnLogon()                    {}
func (NopHandler) OnLogout(string)             {}
