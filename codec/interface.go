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

// Package codec implements the MCP 2.1 line grammar: a tokenizer that turns
// one already-CRLF-stripped "#$#..." line into a Header, Continuation,
// Terminator, or Malformed result, and a composer that serializes an
// outbound call back into the same grammar.
//
// The codec is stateless: Tokenize and Compose are pure functions over
// their input, holding no reference to a transport or a session. Resolving
// a Header's tag against a negotiated package set, and reassembling a
// Continuation/Terminator run into a multi-line value, are session
// responsibilities (see the session package).
package codec

// Line is the result of tokenizing one MCP line. It is implemented by
// *Header, *Continuation, *Terminator, and *Malformed.
type Line interface {
	isLine()
}

// Argument is one key/value pair of a Header line, in wire order.
type Argument struct {
	Key   string
	Value string

	// Multiline marks a key written with a trailing "*" in the header
	// (e.g. "text*: \"\""): the real value arrives later as a run of
	// Continuation lines sharing the header's data tag.
	Multiline bool
}

// Header is the first line of an MCP message: "#$#tag auth (arg)*".
type Header struct {
	Tag  string
	Auth string
	Args []Argument

	// DataTag is the value of the "_data-tag" argument, if present, or
	// "" otherwise. Convenience extraction over Args.
	DataTag string
}

func (*Header) isLine() {}

// Continuation is one line of a multi-line body: "#$#* data-tag key: value".
// Value is raw: it is never quoted or escaped on the wire.
type Continuation struct {
	DataTag string
	Key     string
	Value   string
}

func (*Continuation) isLine() {}

// Terminator closes a multi-line body: "#$#: data-tag".
type Terminator struct {
	DataTag string
}

func (*Terminator) isLine() {}

// Malformed is returned for any line that does not fit the grammar. Tokenize
// never panics or drops a line silently; every unparseable input reaches
// this single terminal.
type Malformed struct {
	Reason string
	Raw    string
}

func (*Malformed) isLine() {}

func malformed(reason, raw string) Line {
	return &Malformed{Reason: reason, Raw: raw}
}
