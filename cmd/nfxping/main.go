// ©Silverstreams AI, Inc. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// nfxping is a demo FIX initiator: it connects to a counterparty over
// TCP, maintains the session until interrupted, and logs the lifecycle.
//
// Usage:
//
//	nfxping -config nfxping.toml
package main

import (
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"

	"github.com/SilverstreamsAI/NexusFix/fix"
	"github.com/SilverstreamsAI/NexusFix/session"
	"github.com/SilverstreamsAI/NexusFix/store"
	"github.com/SilverstreamsAI/NexusFix/transport"
)

type fileConfig struct {
	Host string `toml:"host"`
	Port uint16 `toml:"port"`

	SenderCompID string `toml:"sender_comp_id"`
	TargetCompID string `toml:"target_comp_id"`
	BeginString  string `toml:"begin_string"`

	HeartBtInt    int `toml:"heart_bt_int"`
	LogonTimeout  int `toml:"logon_timeout"`
	LogoutTimeout int `toml:"logout_timeout"`

	MaxReconnectAttempts int  `toml:"max_reconnect_attempts"`
	ReconnectInterval    int  `toml:"reconnect_interval"`
	ResetSeqNumOnLogon   bool `toml:"reset_seq_num_on_logon"`
}

type logHandler struct {
	session.NopHandler
	log *slog.Logger
}

func (h *logHandler) OnStateChange(from, to session.State) {
	h.log.Info("state change", "from", from.String(), "to", to.String())
}

func (h *logHandler) OnLogon() {
	h.log.Info("logon complete")
}

func (h *logHandler) OnLogout(text string) {
	h.log.Info("logout", "text", text)
}

func (h *logHandler) OnError(err session.Error) {
	h.log.Warn("session error", "err", err.Error())
}

func (h *logHandler) OnAppMessage(msg *fix.Message) {
	h.log.Info("app message", "msg_type", string(msg.MsgType()),
		"seq_num", msg.MsgSeqNum())
}

func main() {
	configPath := flag.String("config", "nfxping.toml", "path to TOML config")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	var fc fileConfig
	if _, err := toml.DecodeFile(*configPath, &fc); err != nil {
		log.Error("config load failed", "path", *configPath, "err", err)
		os.Exit(1)
	}

	cfg := session.DefaultConfig()
	cfg.SenderCompID = fc.SenderCompID
	cfg.TargetCompID = fc.TargetCompID
	if fc.BeginString != "" {
		cfg.BeginString = fc.BeginString
	}
	if fc.HeartBtInt > 0 {
		cfg.HeartBtInt = fc.HeartBtInt
	}
	if fc.LogonTimeout > 0 {
		cfg.LogonTimeout = fc.LogonTimeout
	}
	if fc.LogoutTimeout > 0 {
		cfg.LogoutTimeout = fc.LogoutTimeout
	}
	if fc.MaxReconnectAttempts > 0 {
		cfg.MaxReconnectAttempts = fc.MaxReconnectAttempts
	}
	if fc.ReconnectInterval > 0 {
		cfg.ReconnectInterval = fc.ReconnectInterval
	}
	cfg.ResetSeqNumOnLogon = fc.ResetSeqNumOnLogon

	sessionID := uuid.NewString()
	log = log.With("session_id", sessionID,
		"sender", cfg.SenderCompID, "target", cfg.TargetCompID)

	sess := session.New(cfg, &logHandler{log: log},
		transport.NewAsync(transport.NewTCP()))
	sess.SetMessageStore(store.NewMemory(sessionID))

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigc
		log.Info("shutdown requested")
		sess.RequestShutdown()
	}()

	log.Info("starting", "host", fc.Host, "port", fc.Port)
	result := session.RecoveryTask(sess, fc.Host, fc.Port).Get()
	if e, isErr := result.GetLeft(); isErr {
		log.Error("session ended with error", "err", e.Error())
		os.Exit(1)
	}
	snap := sess.Stats().Snapshot()
	log.Info("session ended",
		"messages_sent", snap.MessagesSent,
		"messages_received", snap.MessagesReceived,
		"heartbeats_sent", snap.HeartbeatsSent)
}
