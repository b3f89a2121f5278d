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

// Package transport implements the line-buffered TCP/TLS text transport
// that carries an MCP session: one socket, timed Read/ReadLine, Write, and
// an idempotent Close.
//
// Architecture:
//
//	┌─────────────┐
//	│  Transport  │ ← Public interface
//	└─────────────┘
//	       ↓
//	┌─────────────┐
//	│  transport  │ ← residual buffer + line queue
//	│  (atomic)   │
//	└─────────────┘
//	       ↓
//	┌─────────────┐
//	│  net.Conn   │ ← TCP, optionally wrapped in crypto/tls
//	└─────────────┘
//
// Basic usage:
//
//	cfg := &transport.Config{Host: "mud.example.com", Port: 4201}
//	t, err := transport.Open(cfg)
//	if err != nil {
//	    panic(err)
//	}
//	defer t.Close()
//
//	line, status, err := t.ReadLine(10 * time.Second)
package transport

import (
	"time"
)

// ReadStatus reports the outcome of a Read or ReadLine call that did not
// return an error.
type ReadStatus uint8

const (
	// StatusOK means the returned string is real data.
	StatusOK ReadStatus = iota
	// StatusEmpty means the timeout elapsed with nothing available.
	StatusEmpty
	// StatusClosed means the peer performed an orderly shutdown.
	StatusClosed
)

// Transport is the line-buffered text transport underneath a Session.
//
// ReadLine and Read must not be interleaved once ReadLine has been called:
// the residual byte buffer that ReadLine maintains is never exposed back to
// a raw Read once line-buffering has begun.
type Transport interface {
	// Read returns up to maxBytes of decoded ASCII. timeout < 0 blocks;
	// timeout >= 0 returns StatusEmpty when nothing arrives within the
	// window.
	Read(maxBytes int, timeout time.Duration) (string, ReadStatus, error)

	// ReadLine returns the next CRLF-terminated line (CRLF stripped).
	// Internally buffered: one receive may surface zero, one, or many
	// lines; later calls drain the buffer before touching the socket
	// again.
	ReadLine(timeout time.Duration) (string, ReadStatus, error)

	// Write sends the entire payload or fails with ErrorWrite.
	Write(s string) error

	// Close performs an orderly shutdown of both directions. Idempotent.
	Close() error
}

// Open establishes the TCP connection described by cfg, optionally wrapped
// in TLS, and returns a ready Transport.
func Open(cfg *Config) (Transport, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return dial(cfg)
}
