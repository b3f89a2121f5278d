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

	uuid "github.com/hashicorp/go-uuid"
)

// tokenAlphabet and tokenLength produce an opaque, printable, fixed-length
// token suitable for both the session auth key (spec §3 "the client treats
// it as a fixed-length identifier string") and a per-call data tag.
const (
	tokenAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	tokenLength   = 10
)

// newToken folds cryptographically random bytes from hashicorp/go-uuid
// through tokenAlphabet rather than emitting a raw UUID, since MCP tokens
// are conventionally short alphanumeric strings on the wire.
func newToken() (string, error) {
	raw, err := uuid.GenerateRandomBytes(tokenLength)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.Grow(tokenLength)

	for _, c := range raw {
		b.WriteByte(tokenAlphabet[int(c)%len(tokenAlphabet)])
	}

	return b.String(), nil
}
