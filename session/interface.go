/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

// Package session drives the MCP 2.1 handshake over a transport.Transport,
// tracks the server's package catalog and the client's negotiated subset,
// and exposes Call/Process for the application's own traffic.
//
// Architecture:
//
//	┌─────────────┐
//	│   Session   │ ← Public interface
//	└─────────────┘
//	       ↓
//	┌─────────────┐
//	│   session   │ ← handshake state machine, catalog, reassembly
//	└─────────────┘
//	       ↓            ↓
//	┌───────────┐  ┌───────────┐
//	│   codec   │  │ transport │
//	└───────────┘  └───────────┘
//
// The session is not safe for concurrent use: one goroutine drives one
// session drives one transport drives one socket, matching the polling,
// single-threaded model of spec §5.
package session

import (
	"context"
	"time"

	"github.com/tanabi/gomcp/transport"
	"github.com/tanabi/gomcp/version"
)

// Message is one inbound MCP message, reassembled if it arrived as a
// multi-line body.
type Message struct {
	Message    string
	Parameters map[string][]string
}

// Results groups inbound messages by the negotiated package name they
// resolved to, per spec §3 "package → ordered list of messages".
type Results map[string][]Message

// NegotiateRequest is one entry of a Negotiate call: Lo and Hi must both be
// nil (defer to the catalog's advertised range) or both set.
type NegotiateRequest struct {
	Name string
	Lo   *version.Version
	Hi   *version.Version
}

// Session is the client-side facade: the transport operations (Read,
// ReadLine, Write, Close) plus the MCP-level operations of spec §6.
type Session interface {
	// Read passes through to the underlying transport.
	Read(maxBytes int, timeout time.Duration) (string, transport.ReadStatus, error)
	// ReadLine passes through to the underlying transport, first
	// draining any line Login re-inserted at the head of the queue.
	ReadLine(timeout time.Duration) (string, transport.ReadStatus, error)
	// Write passes through to the underlying transport.
	Write(s string) error
	// Close shuts down the transport. Idempotent.
	Close() error
	// Context returns the session's lifetime context, cancelled on Close.
	Context() context.Context

	// State reports the current handshake state.
	State() State
	// Catalog returns the server-advertised package list.
	Catalog() []CatalogEntry

	// Login writes "connect USER PW\r\n" and reads one line. It returns
	// false iff that line case-insensitively contains "either that
	// player does not exist"; otherwise it returns true and re-inserts
	// the consumed line at the head of the queue so the caller can still
	// observe it (typically the MOTD).
	Login(user, password string) (bool, error)

	// Negotiate selects a subset of the catalog to use for the rest of
	// the session. May only be called once; mcp-negotiate is added
	// implicitly.
	Negotiate(requested []NegotiateRequest) error

	// Call composes and writes one outbound message. If the negotiated
	// set is empty, auto-negotiates [package (lo, hi)] first.
	Call(pkg, message string, args []CallArg, lo, hi *version.Version) error

	// Process drains currently buffered inbound material without
	// blocking long, reassembling multi-line bodies as they complete.
	Process() (Results, []string, error)

	// Quit writes "QUIT\r\n" then closes the session.
	Quit() error
}
