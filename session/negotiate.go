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
	"github.com/tanabi/gomcp/codec"
	"github.com/tanabi/gomcp/version"
)

// defaultNegotiateMetaRange is used for the implicitly-added mcp-negotiate
// package when the server's catalog carries no entry for it. Grounded on
// the well-known MCP mcp-negotiate package, which is conventionally
// advertised at version 1.0.
var defaultNegotiateMetaRange = version.New(1, 0)

func (s *session) Negotiate(requested []NegotiateRequest) error {
	if s.isClosed() {
		return ErrorClosed.Error(nil)
	}
	if s.negotiatedClosed {
		return ErrorAlreadyNegotiated.Error(nil)
	}

	all := append([]NegotiateRequest{{Name: negotiateMetaPackage}}, requested...)

	resolved := make([]NegotiatedEntry, 0, len(all))

	for _, r := range all {
		entry, err := s.resolveNegotiateRequest(r)
		if err != nil {
			return err
		}
		resolved = append(resolved, entry)
	}

	for _, entry := range resolved {
		if err := s.sendNegotiateCan(entry); err != nil {
			return err
		}
		s.negotiated[entry.Name] = entry
	}

	if err := s.sendNegotiateEnd(); err != nil {
		return err
	}

	s.negotiatedClosed = true
	s.state.Store(Ready)
	return nil
}

func (s *session) resolveNegotiateRequest(r NegotiateRequest) (NegotiatedEntry, error) {
	if (r.Lo == nil) != (r.Hi == nil) {
		return NegotiatedEntry{}, ErrorInvalidArguments.Error(nil)
	}

	if r.Lo != nil && r.Hi != nil {
		if r.Name != negotiateMetaPackage {
			if _, ok := s.catalog[r.Name]; !ok {
				return NegotiatedEntry{}, ErrorUnknownPackage.Error(nil)
			}
		}
		return NegotiatedEntry{Name: r.Name, Min: *r.Lo, Max: *r.Hi}, nil
	}

	if cat, ok := s.catalog[r.Name]; ok {
		return NegotiatedEntry{Name: r.Name, Min: cat.Min, Max: cat.Max}, nil
	}

	if r.Name == negotiateMetaPackage {
		return NegotiatedEntry{Name: r.Name, Min: defaultNegotiateMetaRange, Max: defaultNegotiateMetaRange}, nil
	}

	return NegotiatedEntry{}, ErrorUnknownPackage.Error(nil)
}

func (s *session) sendNegotiateCan(entry NegotiatedEntry) error {
	lines, cErr := codec.Compose(codec.Outbound{
		Package: "mcp-negotiate-can",
		Auth:    s.auth,
		Args: []codec.OutArg{
			{Key: "package", Value: entry.Name},
			{Key: "min-version", Value: entry.Min.String()},
			{Key: "max-version", Value: entry.Max.String()},
		},
	})
	if cErr != nil {
		return ErrorInvalidArguments.Error(cErr)
	}

	return s.writeLines(lines)
}

func (s *session) sendNegotiateEnd() error {
	lines, cErr := codec.Compose(codec.Outbound{Package: "mcp-negotiate-end", Auth: s.auth})
	if cErr != nil {
		return ErrorInvalidArguments.Error(cErr)
	}

	return s.writeLines(lines)
}

func (s *session) writeLines(lines []string) error {
	for _, line := range lines {
		if err := s.tr.Write(line); err != nil {
			s.state.Store(Closed)
			return ErrorWriteError.Error(err)
		}
	}
	return nil
}
