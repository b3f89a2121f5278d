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
	"strings"

	"github.com/tanabi/gomcp/codec"
	"github.com/tanabi/gomcp/version"
)

// CallArg is one argument of an outbound Call. A single-valued argument
// sets Value; a multi-line argument (the spec's trailing "*" convention)
// sets List instead and leaves Value empty.
type CallArg struct {
	Key   string
	Value string
	List  []string
}

// Call composes and writes one outbound message for pkg.message. If the
// session has never negotiated, it auto-negotiates [pkg (lo, hi)] first,
// matching spec §4.3's "first Call triggers negotiation" shortcut.
func (s *session) Call(pkg, message string, args []CallArg, lo, hi *version.Version) error {
	if s.isClosed() {
		return ErrorClosed.Error(nil)
	}

	if !s.negotiatedClosed {
		req := NegotiateRequest{Name: pkg, Lo: lo, Hi: hi}
		if err := s.Negotiate([]NegotiateRequest{req}); err != nil {
			return err
		}
	}

	if _, ok := s.negotiated[pkg]; !ok {
		return ErrorPackageNotNegotiated.Error(nil)
	}

	out := codec.Outbound{
		Package: pkg,
		Message: message,
		Auth:    s.auth,
	}

	hasList := false
	for _, a := range args {
		if a.List != nil {
			hasList = true
		}
	}

	if hasList {
		tag, err := newToken()
		if err != nil {
			return ErrorInvalidArguments.Error(err)
		}
		out.DataTag = tag
	}

	for _, a := range args {
		out.Args = append(out.Args, codec.OutArg{Key: a.Key, Value: a.Value, List: a.List})
	}

	lines, cErr := codec.Compose(out)
	if cErr != nil {
		return ErrorInvalidArguments.Error(cErr)
	}

	return s.writeLines(lines)
}

// resolveTag splits an inbound tag into the negotiated package that owns
// it and the message suffix, preferring the longest matching package name
// (packages themselves may contain hyphens, e.g. "mcp-negotiate").
func (s *session) resolveTag(tag string) (pkg, message string, ok bool) {
	if _, exists := s.negotiated[tag]; exists {
		return tag, "", true
	}

	best := ""
	for name := range s.negotiated {
		prefix := name + "-"
		if strings.HasPrefix(tag, prefix) && len(name) > len(best) {
			best = name
		}
	}
	if best == "" {
		return "", "", false
	}

	return best, strings.TrimPrefix(tag, best+"-"), true
}
