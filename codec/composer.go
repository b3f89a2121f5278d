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

package codec

import (
	"strings"

	liberr "github.com/tanabi/gomcp/errors"
)

// OutArg is one argument of an Outbound call. Exactly one of Value or List
// must be meaningful: a non-nil List marks the argument multi-line.
type OutArg struct {
	Key   string
	Value string
	List  []string
}

// Outbound is the structured form of a call to compose, in the shape the
// session layer builds from a caller's package/message/arguments. DataTag
// is only consulted when at least one argument is list-valued; the session
// is responsible for generating it (see the session package's use of
// github.com/hashicorp/go-uuid) since the codec itself is stateless and
// never generates randomness.
type Outbound struct {
	Package string
	Message string
	Auth    string
	Args    []OutArg
	DataTag string
}

// Compose renders o as one or more CRLF-terminated MCP lines: a single
// Header line for a call with only string arguments, or a Header followed
// by one Continuation per list element and a closing Terminator when any
// argument is list-valued.
func Compose(o Outbound) ([]string, liberr.Error) {
	hasList := false
	for _, a := range o.Args {
		if a.List != nil {
			hasList = true
			break
		}
	}

	if hasList && o.DataTag == "" {
		return nil, ErrorMissingDataTag.Error(nil)
	}

	tag := o.Package
	if o.Message != "" {
		tag += "-" + o.Message
	}

	var b strings.Builder
	b.WriteString("#$#")
	b.WriteString(tag)
	b.WriteByte(' ')
	b.WriteString(o.Auth)

	for _, a := range o.Args {
		b.WriteByte(' ')
		if a.List != nil {
			b.WriteString(a.Key)
			b.WriteString(`*: ""`)
		} else {
			b.WriteString(a.Key)
			b.WriteString(`: "`)
			b.WriteString(Escape(a.Value))
			b.WriteByte('"')
		}
	}

	if hasList {
		b.WriteString(` _data-tag: "`)
		b.WriteString(Escape(o.DataTag))
		b.WriteByte('"')
	}

	lines := []string{b.String() + "\r\n"}

	if hasList {
		for _, a := range o.Args {
			if a.List == nil {
				continue
			}
			for _, v := range a.List {
				var c strings.Builder
				c.WriteString("#$#* ")
				c.WriteString(o.DataTag)
				c.WriteByte(' ')
				c.WriteString(a.Key)
				c.WriteString(": ")
				c.WriteString(v)
				c.WriteString("\r\n")
				lines = append(lines, c.String())
			}
		}

		lines = append(lines, "#$#: "+o.DataTag+"\r\n")
	}

	return lines, nil
}
