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
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/tanabi/gomcp/codec"
	"github.com/tanabi/gomcp/transport"
	"github.com/tanabi/gomcp/version"
)

// bannerRe matches the server's version banner. Like the client's
// authentication-key line, this does not fit the standard tag+auth+args
// header grammar - there is no auth token between "mcp" and "version:" -
// so it is matched directly rather than through codec.Tokenize. Grounded
// on original_source/pyfuzzball/mcp.py line 45's own regex,
// `#\$#mcp version: "([\d.]+)" to: "([\d.]+)"`.
var bannerRe = regexp.MustCompile(`^#\$#mcp version: "([^"]*)" to: "([^"]*)"$`)

// handshake drives Dialing through CollectingCatalog (spec §4.3 steps
// 1-4), leaving the session in SelectingPackages. Negotiate or the first
// Call advances it to Ready.
func (s *session) handshake() error {
	s.state.Store(AwaitingServerHeader)

	if err := s.awaitServerHeader(); err != nil {
		return err
	}

	if !protocolVersion.Between(s.serverMin, s.serverMax) {
		return ErrorUnsupportedProtocol.Error(nil)
	}

	s.state.Store(SendingClientKey)
	if err := s.sendClientKey(); err != nil {
		return err
	}

	s.state.Store(CollectingCatalog)
	if err := s.collectCatalog(); err != nil {
		return err
	}

	s.state.Store(SelectingPackages)
	return nil
}

// awaitServerHeader reads up to cfg.BannerAttempts lines of
// cfg.BannerTimeout each, discarding anything that is not the server's
// "#$#mcp version: ... to: ..." advertisement (a welcome banner may
// precede it).
func (s *session) awaitServerHeader() error {
	for attempt := 0; attempt < s.cfg.BannerAttempts; attempt++ {
		line, status, err := s.readLine(s.cfg.BannerTimeout)
		if err != nil {
			return ErrorConnectError.Error(err)
		}
		if status == transport.StatusClosed {
			return ErrorConnectError.Error(nil)
		}
		if status == transport.StatusEmpty {
			continue
		}

		m := bannerRe.FindStringSubmatch(line)
		if m == nil {
			if strings.HasPrefix(line, "#$#mcp ") {
				return ErrorMalformedHeader.Error(nil)
			}
			logDebug(s.cfg, "discarding pre-banner line", line)
			continue
		}

		smin, e1 := version.Parse(m[1])
		smax, e2 := version.Parse(m[2])
		if e1 != nil || e2 != nil {
			return ErrorMalformedHeader.Error(nil)
		}

		s.serverMin, s.serverMax = smin, smax
		return nil
	}

	return ErrorHandshakeTimeout.Error(nil)
}

// sendClientKey writes the client authentication-key line. Unlike every
// other outbound line in this protocol, this one does not carry the
// session auth key as the header's auth token - the auth key is itself
// the value of the "authentication-key" argument - so it is hand-composed
// rather than built through codec.Compose.
func (s *session) sendClientKey() error {
	line := fmt.Sprintf("#$#mcp authentication-key: %q version: %q to: %q\r\n",
		s.auth, protocolVersion.String(), protocolVersion.String())

	if err := s.tr.Write(line); err != nil {
		return ErrorWriteError.Error(err)
	}
	return nil
}

// collectCatalog reads mcp-negotiate-can lines into the catalog until
// mcp-negotiate-end arrives, within an overall cfg.CatalogTimeout budget.
func (s *session) collectCatalog() error {
	deadline := time.Now().Add(s.cfg.CatalogTimeout)

	for {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return ErrorHandshakeTimeout.Error(nil)
		}

		line, status, err := s.readLine(remaining)
		if err != nil {
			return ErrorConnectError.Error(err)
		}
		if status == transport.StatusClosed {
			return ErrorConnectError.Error(nil)
		}
		if status == transport.StatusEmpty {
			continue
		}

		h, ok := codec.Tokenize(line).(*codec.Header)
		if !ok || h.Auth != s.auth {
			continue
		}

		switch h.Tag {
		case "mcp-negotiate-can":
			if entry, ok := catalogEntry(h.Args); ok {
				s.catalog[entry.Name] = entry
			}
		case "mcp-negotiate-end":
			return nil
		}
	}
}

func catalogEntry(args []codec.Argument) (CatalogEntry, bool) {
	var name, lo, hi string
	var haveName, haveLo, haveHi bool

	for _, a := range args {
		switch a.Key {
		case "package":
			name, haveName = a.Value, true
		case "min-version":
			lo, haveLo = a.Value, true
		case "max-version":
			hi, haveHi = a.Value, true
		}
	}

	if !haveName || !haveLo || !haveHi {
		return CatalogEntry{}, false
	}

	minV, e1 := version.Parse(lo)
	maxV, e2 := version.Parse(hi)
	if e1 != nil || e2 != nil {
		return CatalogEntry{}, false
	}

	return CatalogEntry{Name: name, Min: minV, Max: maxV}, true
}
