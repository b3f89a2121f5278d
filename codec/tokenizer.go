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

import "strings"

// argState is the tokenizer's state while walking the argument list of a
// Header line, one rune at a time. ExpectTagAuth and ExpectColon are
// folded into their neighbors below (the tag/auth split is a single cut on
// the first two spaces; the colon-then-one-space rule is a single
// transition inside ExpectKey) but are named here to keep the state list
// traceable against the grammar.
type argState uint8

const (
	stateExpectTagAuth argState = iota
	stateExpectKey
	stateExpectColon
	stateExpectValueStart
	stateInQuotedValue
	stateInEscape
	stateInBareValue
	stateDone
)

const dataTagKey = "_data-tag"

// Tokenize parses one MCP line. line must already have its CRLF stripped;
// the caller is expected to have confirmed the "#$#" prefix (Tokenize
// re-checks it and returns Malformed if absent, since a defensive caller
// should never need to special-case this function's contract).
func Tokenize(line string) Line {
	if !strings.HasPrefix(line, "#$#") {
		return malformed("line does not start with #$#", line)
	}

	rest := line[3:]

	switch {
	case strings.HasPrefix(rest, "*"):
		return parseContinuation(rest[1:], line)
	case strings.HasPrefix(rest, ":"):
		return parseTerminator(rest[1:], line)
	default:
		return parseHeader(rest, line)
	}
}

// cutSpace splits s at its first space, returning ok=false if s has none.
func cutSpace(s string) (before, after string, ok bool) {
	i := strings.IndexByte(s, ' ')
	if i < 0 {
		return s, "", false
	}
	return s[:i], s[i+1:], true
}

func parseHeader(rest, raw string) Line {
	tag, afterTag, ok := cutSpace(rest)
	if !ok || tag == "" {
		return malformed("header: missing auth", raw)
	}

	auth, argsPart, ok := cutSpace(afterTag)
	if !ok {
		auth = afterTag
		argsPart = ""
	}
	if auth == "" {
		return malformed("header: empty auth", raw)
	}

	args, reason := parseArgs(argsPart)
	if reason != "" {
		return malformed(reason, raw)
	}

	dataTag := ""
	for _, a := range args {
		if a.Key == dataTagKey {
			dataTag = a.Value
			break
		}
	}

	return &Header{Tag: tag, Auth: auth, Args: args, DataTag: dataTag}
}

// parseArgs implements the explicit state machine of the codec contract:
// ExpectKey accumulates a key until ':', consumes exactly one following
// space, then ExpectValueStart dispatches into InQuotedValue or (for
// _data-tag only) InBareValue. InQuotedValue/InEscape handle backslash
// escaping; a trailing '*' on the key marks the argument Multiline, whose
// quoted value must be empty. Any state other than ExpectKey once input is
// exhausted is Malformed.
func parseArgs(s string) ([]Argument, string) {
	var (
		args      []Argument
		state     = stateExpectKey
		key       strings.Builder
		value     strings.Builder
		multiline bool
	)

	runes := []rune(s)
	i := 0

	for i < len(runes) {
		r := runes[i]

		switch state {
		case stateExpectKey:
			switch {
			case r == ' ':
				i++
			case r == ':':
				if key.Len() == 0 {
					return nil, "argument: empty key"
				}
				k := key.String()
				multiline = strings.HasSuffix(k, "*")
				if multiline {
					k = strings.TrimSuffix(k, "*")
				}
				key.Reset()
				key.WriteString(k)

				state = stateExpectColon
				i++
			default:
				key.WriteRune(r)
				i++
			}

		case stateExpectColon:
			// Exactly one space must follow ':' before the value starts.
			if r != ' ' {
				return nil, "argument: missing space after colon"
			}
			state = stateExpectValueStart
			i++

		case stateExpectValueStart:
			switch {
			case r == ' ':
				// Extra spaces between "key:" and the value are
				// tolerated beyond the one already consumed.
				i++
			case r == '"':
				state = stateInQuotedValue
				i++
			case key.String() == dataTagKey:
				state = stateInBareValue
				value.WriteRune(r)
				i++
			default:
				return nil, "argument: value is not quoted"
			}

		case stateInQuotedValue:
			switch r {
			case '\\':
				state = stateInEscape
				i++
			case '"':
				if multiline && value.Len() != 0 {
					return nil, "argument: multiline placeholder value must be empty"
				}
				args = append(args, commitArg(key.String(), value.String(), multiline))
				key.Reset()
				value.Reset()
				multiline = false
				state = stateExpectKey
				i++
			default:
				value.WriteRune(r)
				i++
			}

		case stateInEscape:
			value.WriteRune(r)
			state = stateInQuotedValue
			i++

		case stateInBareValue:
			if r == ' ' {
				args = append(args, commitArg(key.String(), value.String(), false))
				key.Reset()
				value.Reset()
				state = stateExpectKey
				i++
			} else {
				value.WriteRune(r)
				i++
			}
		}
	}

	switch state {
	case stateExpectKey:
		// clean end of input between arguments.
	case stateInBareValue:
		// unterminated bare value (e.g. trailing _data-tag with no
		// following whitespace) is accepted at end of line.
		args = append(args, commitArg(key.String(), value.String(), false))
	default:
		return nil, "argument: unterminated value"
	}

	return args, ""
}

func commitArg(key, value string, multiline bool) Argument {
	return Argument{Key: key, Value: value, Multiline: multiline}
}

func parseContinuation(rest, raw string) Line {
	rest = strings.TrimPrefix(rest, " ")

	dataTag, afterTag, ok := cutSpace(rest)
	if !ok || dataTag == "" {
		return malformed("continuation: missing key", raw)
	}

	idx := strings.IndexByte(afterTag, ':')
	if idx < 0 {
		return malformed("continuation: missing colon", raw)
	}

	key := afterTag[:idx]
	valuePart := afterTag[idx+1:]
	if !strings.HasPrefix(valuePart, " ") {
		return malformed("continuation: missing space after colon", raw)
	}

	return &Continuation{DataTag: dataTag, Key: key, Value: valuePart[1:]}
}

func parseTerminator(rest, raw string) Line {
	dataTag := strings.TrimPrefix(rest, " ")
	if dataTag == "" {
		return malformed("terminator: missing data tag", raw)
	}

	return &Terminator{DataTag: dataTag}
}
