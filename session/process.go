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
	"time"

	"github.com/tanabi/gomcp/codec"
	"github.com/tanabi/gomcp/transport"
)

// drainGrace bounds each read while draining currently buffered material;
// Process returns as soon as one of these reads comes back empty.
const drainGrace = 250 * time.Millisecond

// Process drains whatever has already arrived on the wire, resolving
// completed messages against the negotiated package set and reassembling
// multi-line bodies as their continuations and terminator come in. It does
// not block waiting for new input to start arriving, but if a multi-line
// body is left mid-flight at the end of the drain it waits up to
// cfg.CatalogTimeout for the rest to show up, rather than returning a
// truncated body.
func (s *session) Process() (Results, []string, error) {
	if s.isClosed() {
		return nil, nil, ErrorClosed.Error(nil)
	}

	results := make(Results)
	var malformed []string

	for {
		line, status, err := s.readLine(drainGrace)
		if err != nil {
			return results, malformed, ErrorConnectError.Error(err)
		}
		if status == transport.StatusClosed {
			s.state.Store(Closed)
			return results, malformed, ErrorClosed.Error(nil)
		}
		if status == transport.StatusEmpty {
			break
		}

		s.processLine(line, results, &malformed)
	}

	if s.reassemble.active {
		deadline := time.Now().Add(s.cfg.CatalogTimeout)
		for s.reassemble.active && time.Now().Before(deadline) {
			line, status, err := s.readLine(drainGrace)
			if err != nil {
				return results, malformed, ErrorConnectError.Error(err)
			}
			if status == transport.StatusClosed {
				s.state.Store(Closed)
				return results, malformed, ErrorClosed.Error(nil)
			}
			if status == transport.StatusEmpty {
				continue
			}

			s.processLine(line, results, &malformed)
		}
	}

	return results, malformed, nil
}

func (s *session) processLine(line string, results Results, malformed *[]string) {
	switch l := codec.Tokenize(line).(type) {
	case *codec.Header:
		if l.Auth != s.auth {
			*malformed = append(*malformed, line)
			return
		}
		s.processHeader(l, line, results, malformed)
	case *codec.Continuation:
		s.processContinuation(l, line, malformed)
	case *codec.Terminator:
		s.processTerminator(l, line, results, malformed)
	case *codec.Malformed:
		*malformed = append(*malformed, l.Reason)
	}
}

func (s *session) processHeader(h *codec.Header, line string, results Results, malformed *[]string) {
	pkg, msg, ok := s.resolveTag(h.Tag)
	if !ok {
		*malformed = append(*malformed, line)
		return
	}

	hasMultiline := false
	params := make(map[string][]string, len(h.Args))
	placeholders := make(map[string]bool)

	for _, a := range h.Args {
		if a.Key == "_data-tag" {
			// Already surfaced as h.DataTag; not a message parameter.
			continue
		}
		if a.Multiline {
			hasMultiline = true
			placeholders[a.Key] = false
			continue
		}
		params[a.Key] = []string{a.Value}
	}

	if !hasMultiline {
		results[pkg] = append(results[pkg], Message{Message: msg, Parameters: params})
		return
	}

	s.reassemble = reassembly{
		active:       true,
		dataTag:      h.DataTag,
		pkg:          pkg,
		msg:          msg,
		params:       params,
		placeholders: placeholders,
	}
}

func (s *session) processContinuation(c *codec.Continuation, line string, malformed *[]string) {
	if !s.reassemble.active || !codec.DataTagEquals(s.reassemble.dataTag, c.DataTag) {
		*malformed = append(*malformed, line)
		return
	}
	if _, known := s.reassemble.placeholders[c.Key]; !known {
		*malformed = append(*malformed, line)
		return
	}

	s.reassemble.params[c.Key] = append(s.reassemble.params[c.Key], c.Value)
	s.reassemble.placeholders[c.Key] = true
}

func (s *session) processTerminator(t *codec.Terminator, line string, results Results, malformed *[]string) {
	if !s.reassemble.active || !codec.DataTagEquals(s.reassemble.dataTag, t.DataTag) {
		*malformed = append(*malformed, line)
		return
	}

	results[s.reassemble.pkg] = append(results[s.reassemble.pkg], Message{
		Message:    s.reassemble.msg,
		Parameters: s.reassemble.params,
	})
	s.reassemble = reassembly{}
}
