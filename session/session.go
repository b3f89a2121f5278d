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

package session

import (
	"context"
	"fmt"
	"strings"
	"time"

	libatm "github.com/tanabi/gomcp/atomic"
	libctx "github.com/tanabi/gomcp/context"
	"github.com/tanabi/gomcp/transport"
	"github.com/tanabi/gomcp/version"
)

// reassembly tracks the single in-flight multi-line body, per spec §3's
// invariant that at most one reassembly is active at a time (see
// SPEC_FULL.md §9 on interleaved data tags).
type reassembly struct {
	active       bool
	dataTag      string
	pkg          string
	msg          string
	params       map[string][]string
	placeholders map[string]bool
}

type session struct {
	cfg *Config
	tr  transport.Transport

	auth string

	// ctx follows the component pattern of the teacher's config/components
	// tree (libctx.New[uint8](ctx) embedded as a component's own context
	// holder): it carries the session's lifetime and is cancelled on Close.
	ctx    libctx.Config[uint8]
	cancel context.CancelFunc

	state libatm.Value[State]

	serverMin version.Version
	serverMax version.Version

	catalog          map[string]CatalogEntry
	negotiated       map[string]NegotiatedEntry
	negotiatedClosed bool

	reassemble reassembly

	// queue holds lines consumed from the transport but not yet
	// delivered to the caller - populated only by Login re-inserting the
	// MOTD line it peeked at.
	queue []string
}

// New dials the configured host and drives the handshake through to
// SelectingPackages (spec §4.3 steps 1-4). Negotiate or the first Call
// advances the session to Ready.
func New(cfg *Config) (Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	tr, err := transport.Open(cfg.transportConfig())
	if err != nil {
		return nil, ErrorConnectError.Error(err)
	}

	auth, e := newToken()
	if e != nil {
		_ = tr.Close()
		return nil, ErrorConnectError.Error(e)
	}

	rootCtx, cancel := context.WithCancel(context.Background())

	s := &session{
		cfg:        cfg,
		tr:         tr,
		auth:       auth,
		ctx:        libctx.New[uint8](rootCtx),
		cancel:     cancel,
		state:      libatm.NewValue[State](),
		catalog:    make(map[string]CatalogEntry),
		negotiated: make(map[string]NegotiatedEntry),
	}
	s.state.Store(Dialing)

	if err := s.handshake(); err != nil {
		_ = tr.Close()
		s.state.Store(Closed)
		cancel()
		return nil, err
	}

	return s, nil
}

func (s *session) isClosed() bool {
	return s.state.Load() == Closed
}

// readLine drains the re-inserted queue before touching the transport, so
// a line Login peeked at is still observed by ReadLine/Process.
func (s *session) readLine(timeout time.Duration) (string, transport.ReadStatus, error) {
	if len(s.queue) > 0 {
		line := s.queue[0]
		s.queue = s.queue[1:]
		return line, transport.StatusOK, nil
	}

	return s.tr.ReadLine(timeout)
}

func (s *session) Read(maxBytes int, timeout time.Duration) (string, transport.ReadStatus, error) {
	return s.tr.Read(maxBytes, timeout)
}

func (s *session) ReadLine(timeout time.Duration) (string, transport.ReadStatus, error) {
	return s.readLine(timeout)
}

func (s *session) Write(str string) error {
	if s.isClosed() {
		return ErrorClosed.Error(nil)
	}

	if err := s.tr.Write(str); err != nil {
		s.state.Store(Closed)
		return ErrorWriteError.Error(err)
	}

	return nil
}

func (s *session) Close() error {
	if s.isClosed() {
		return nil
	}

	s.state.Store(Closed)
	s.cancel()
	return s.tr.Close()
}

// Context returns the session's lifetime context: cancelled the moment
// Close runs, so a caller polling Process in a loop can select on Done()
// instead of only checking State().
func (s *session) Context() context.Context {
	return s.ctx.GetContext()
}

func (s *session) Quit() error {
	if s.isClosed() {
		return nil
	}

	_ = s.tr.Write("QUIT\r\n")
	return s.Close()
}

func (s *session) State() State {
	return s.state.Load()
}

func (s *session) Catalog() []CatalogEntry {
	out := make([]CatalogEntry, 0, len(s.catalog))
	for _, e := range s.catalog {
		out = append(out, e)
	}
	return out
}

func (s *session) Login(user, password string) (bool, error) {
	if s.isClosed() {
		return false, ErrorClosed.Error(nil)
	}

	if err := s.tr.Write(fmt.Sprintf("connect %s %s\r\n", user, password)); err != nil {
		s.state.Store(Closed)
		return false, ErrorWriteError.Error(err)
	}

	// The login banner has no documented timeout budget: this is a
	// single synchronous read, so it blocks like the rest of the
	// protocol's one-shot reads.
	line, status, err := s.readLine(-1)
	if err != nil {
		s.state.Store(Closed)
		return false, ErrorClosed.Error(err)
	}
	if status == transport.StatusClosed {
		s.state.Store(Closed)
		return false, ErrorClosed.Error(nil)
	}

	if strings.Contains(strings.ToLower(line), "either that player does not exist") {
		return false, nil
	}

	s.queue = append([]string{line}, s.queue...)
	return true, nil
}

func logDebug(cfg *Config, message string, data interface{}) {
	if cfg != nil && cfg.Logger != nil {
		cfg.Logger.Debug(message, data)
	}
}
