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

package transport

import (
	"crypto/tls"
	"fmt"
	"io"
	"net"
	"strings"
	"sync"
	"time"

	libatm "github.com/tanabi/gomcp/atomic"
)

// coalesceWindow is the short grace period used to let a chatty server's
// additional packets arrive before a ReadLine call splits the residual
// buffer into lines. Mirrors base.py's 0.1s select() poll inside readline.
const coalesceWindow = 100 * time.Millisecond

// rawReadSize mirrors base.py's 8194-byte recommended buffer size (8192
// typical MUCK buffer plus room for a trailing CRLF).
const rawReadSize = 8194

type tcp struct {
	cfg *Config

	conn net.Conn

	m       sync.Mutex
	closed  libatm.Value[bool]
	residual string
	queue   []string
}

func dial(cfg *Config) (Transport, error) {
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	d := net.Dialer{Timeout: cfg.DialTimeout}

	conn, err := d.Dial("tcp", addr)
	if err != nil {
		logError(cfg, "dial failed", err)
		return nil, ErrorConnect.Error(err)
	}

	if cfg.Secure {
		tc := tls.Client(conn, &tls.Config{
			ServerName:         cfg.Host,
			InsecureSkipVerify: cfg.AcceptAnyPeerCert, //nolint:gosec
		})

		if err = tc.Handshake(); err != nil {
			_ = conn.Close()
			logError(cfg, "tls handshake failed", err)
			return nil, ErrorConnect.Error(err)
		}

		conn = tc
	}

	t := &tcp{
		cfg:    cfg,
		conn:   conn,
		closed: libatm.NewValue[bool](),
	}

	return t, nil
}

func logDebug(cfg *Config, message string, data interface{}) {
	if cfg != nil && cfg.Logger != nil {
		cfg.Logger.Debug(message, data)
	}
}

func logError(cfg *Config, message string, data interface{}) {
	if cfg != nil && cfg.Logger != nil {
		cfg.Logger.Error(message, data)
	}
}

func (t *tcp) isClosed() bool {
	return t.closed.Load()
}

func (t *tcp) Close() error {
	t.m.Lock()
	defer t.m.Unlock()

	if t.isClosed() {
		return nil
	}

	t.closed.Store(true)

	if c, ok := t.conn.(interface{ CloseWrite() error }); ok {
		_ = c.CloseWrite()
	}

	return t.conn.Close()
}

func (t *tcp) Write(s string) error {
	if t.isClosed() {
		return ErrorClosed.Error(nil)
	}

	b := []byte(s)

	for len(b) > 0 {
		n, err := t.conn.Write(b)
		if err != nil {
			logError(t.cfg, "write failed", err)
			return ErrorWrite.Error(err)
		}
		if n == 0 {
			return ErrorWrite.Error(io.ErrShortWrite)
		}
		b = b[n:]
	}

	return nil
}

// setDeadline applies timeout to the connection's read deadline. A negative
// timeout blocks indefinitely (no deadline); a non-negative timeout is a
// window after which a pending Read returns a timeout error.
func (t *tcp) setDeadline(timeout time.Duration) {
	if timeout < 0 {
		_ = t.conn.SetReadDeadline(time.Time{})
		return
	}

	_ = t.conn.SetReadDeadline(time.Now().Add(timeout))
}

func isTimeout(err error) bool {
	ne, ok := err.(net.Error)
	return ok && ne.Timeout()
}

func (t *tcp) Read(maxBytes int, timeout time.Duration) (string, ReadStatus, error) {
	if t.isClosed() {
		return "", StatusClosed, nil
	}

	t.setDeadline(timeout)

	buf := make([]byte, maxBytes)
	n, err := t.conn.Read(buf)

	if err != nil {
		if isTimeout(err) {
			return "", StatusEmpty, nil
		}
		if err == io.EOF {
			return "", StatusClosed, nil
		}
		logError(t.cfg, "read failed", err)
		return "", StatusClosed, err
	}

	if n == 0 {
		return "", StatusClosed, nil
	}

	return string(buf[:n]), StatusOK, nil
}

// ReadLine implements the residual-buffer algorithm: drain the queue of
// already-split lines first, then poll the socket, coalesce chatty bursts
// with a short grace window, split on CRLF, and recurse with a zero
// timeout now that material is available.
func (t *tcp) ReadLine(timeout time.Duration) (string, ReadStatus, error) {
	tmo := timeout

	for {
		if t.isClosed() {
			return "", StatusClosed, nil
		}

		if line, ok := t.popQueue(); ok {
			return line, StatusOK, nil
		}

		t.setDeadline(tmo)

		buf := make([]byte, rawReadSize)
		n, err := t.conn.Read(buf)

		if err != nil {
			if isTimeout(err) {
				return "", StatusEmpty, nil
			}
			if err == io.EOF {
				return "", StatusClosed, nil
			}
			logError(t.cfg, "readline failed", err)
			return "", StatusClosed, err
		}

		if n == 0 {
			return "", StatusClosed, nil
		}

		t.residual += string(buf[:n])

		for {
			t.setDeadline(coalesceWindow)

			n, err = t.conn.Read(buf)
			if err != nil {
				if isTimeout(err) {
					break
				}
				if err == io.EOF {
					break
				}
				logError(t.cfg, "readline coalesce failed", err)
				break
			}
			if n == 0 {
				break
			}

			t.residual += string(buf[:n])
		}

		t.splitResidual()

		// Step 5: recurse into step 1 with timeout = 0 - we now have
		// material, so further iterations must not block the caller for
		// the original window again.
		tmo = 0
	}
}

func (t *tcp) popQueue() (string, bool) {
	t.m.Lock()
	defer t.m.Unlock()

	for len(t.queue) > 0 {
		line := t.queue[0]
		t.queue = t.queue[1:]

		if line != "" {
			return line, true
		}
	}

	return "", false
}

func (t *tcp) splitResidual() {
	t.m.Lock()
	defer t.m.Unlock()

	if t.residual == "" {
		return
	}

	segments := strings.Split(t.residual, "\r\n")

	if strings.HasSuffix(t.residual, "\r\n") {
		t.residual = ""
	} else {
		t.residual = segments[len(segments)-1]
		segments = segments[:len(segments)-1]
	}

	t.queue = append(t.queue, segments...)

	logDebug(t.cfg, "buffered lines", len(segments))
}
