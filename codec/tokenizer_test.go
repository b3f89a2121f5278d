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

package codec_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/tanabi/gomcp/codec"
)

var _ = Describe("Tokenize", func() {
	Context("header lines", func() {
		It("parses a header with no arguments", func() {
			line := codec.Tokenize(`#$#mcp-negotiate-end A`)
			h, ok := line.(*codec.Header)
			Expect(ok).To(BeTrue())
			Expect(h.Tag).To(Equal("mcp-negotiate-end"))
			Expect(h.Auth).To(Equal("A"))
			Expect(h.Args).To(BeEmpty())
		})

		It("parses a header with quoted arguments", func() {
			line := codec.Tokenize(`#$#org-example-ping 12345 topic: "dbref"`)
			h, ok := line.(*codec.Header)
			Expect(ok).To(BeTrue())
			Expect(h.Tag).To(Equal("org-example-ping"))
			Expect(h.Auth).To(Equal("12345"))
			Expect(h.Args).To(Equal([]codec.Argument{{Key: "topic", Value: "dbref"}}))
		})

		It("parses the server version banner", func() {
			line := codec.Tokenize(`#$#mcp version: "2.1" to: "2.1"`)
			h, ok := line.(*codec.Header)
			Expect(ok).To(BeTrue())
			Expect(h.Tag).To(Equal("mcp"))
			Expect(h.Args).To(HaveLen(2))
			Expect(h.Args[0]).To(Equal(codec.Argument{Key: "version", Value: "2.1"}))
			Expect(h.Args[1]).To(Equal(codec.Argument{Key: "to", Value: "2.1"}))
		})

		It("unescapes a quoted value containing both a quote and a backslash", func() {
			line := codec.Tokenize(`#$#x A v: "a \"b\" c \\ d"`)
			h, ok := line.(*codec.Header)
			Expect(ok).To(BeTrue())
			Expect(h.Args[0].Value).To(Equal(`a "b" c \ d`))
		})

		It("accepts extra spaces between the colon and the quoted value", func() {
			line := codec.Tokenize(`#$#x A v:   "hi"`)
			h, ok := line.(*codec.Header)
			Expect(ok).To(BeTrue())
			Expect(h.Args[0].Value).To(Equal("hi"))
		})

		It("registers a trailing '*' key as Multiline with an empty value", func() {
			line := codec.Tokenize(`#$#org-fuzzball-help-entry A text*: "" _data-tag: "0T1"`)
			h, ok := line.(*codec.Header)
			Expect(ok).To(BeTrue())
			Expect(h.Args[0]).To(Equal(codec.Argument{Key: "text", Value: "", Multiline: true}))
			Expect(h.DataTag).To(Equal("0T1"))
		})

		It("accepts an unquoted _data-tag terminated by whitespace", func() {
			line := codec.Tokenize(`#$#x A _data-tag: T1 other: "v"`)
			h, ok := line.(*codec.Header)
			Expect(ok).To(BeTrue())
			Expect(h.DataTag).To(Equal("T1"))
			Expect(h.Args[1]).To(Equal(codec.Argument{Key: "other", Value: "v"}))
		})

		It("accepts an unquoted _data-tag terminated by end of line", func() {
			line := codec.Tokenize(`#$#x A _data-tag: T1`)
			h, ok := line.(*codec.Header)
			Expect(ok).To(BeTrue())
			Expect(h.DataTag).To(Equal("T1"))
		})

		It("is Malformed when the colon is missing", func() {
			line := codec.Tokenize(`#$#x A topic "dbref"`)
			_, ok := line.(*codec.Malformed)
			Expect(ok).To(BeTrue())
		})

		It("is Malformed when a non-data-tag value is not quoted", func() {
			line := codec.Tokenize(`#$#x A topic: dbref`)
			_, ok := line.(*codec.Malformed)
			Expect(ok).To(BeTrue())
		})

		It("is Malformed when a quoted value is left open", func() {
			line := codec.Tokenize(`#$#x A topic: "dbref`)
			_, ok := line.(*codec.Malformed)
			Expect(ok).To(BeTrue())
		})

		It("is Malformed when the auth field is missing", func() {
			line := codec.Tokenize(`#$#x`)
			_, ok := line.(*codec.Malformed)
			Expect(ok).To(BeTrue())
		})
	})

	Context("continuation lines", func() {
		It("parses a continuation with its raw, unescaped value", func() {
			line := codec.Tokenize(`#$#* T1 text: line one`)
			c, ok := line.(*codec.Continuation)
			Expect(ok).To(BeTrue())
			Expect(c.DataTag).To(Equal("T1"))
			Expect(c.Key).To(Equal("text"))
			Expect(c.Value).To(Equal("line one"))
		})

		It("preserves a literal quote and backslash in the continuation value", func() {
			line := codec.Tokenize(`#$#* T1 text: has "a quote" and \ a backslash`)
			c, ok := line.(*codec.Continuation)
			Expect(ok).To(BeTrue())
			Expect(c.Value).To(Equal(`has "a quote" and \ a backslash`))
		})

		It("is Malformed when the colon is missing", func() {
			line := codec.Tokenize(`#$#* T1 text line one`)
			_, ok := line.(*codec.Malformed)
			Expect(ok).To(BeTrue())
		})
	})

	Context("terminator lines", func() {
		It("parses the data tag", func() {
			line := codec.Tokenize(`#$#: T1`)
			t, ok := line.(*codec.Terminator)
			Expect(ok).To(BeTrue())
			Expect(t.DataTag).To(Equal("T1"))
		})
	})

	Context("lines outside the grammar", func() {
		It("is Malformed when the #$# prefix is absent", func() {
			line := codec.Tokenize(`just some text`)
			_, ok := line.(*codec.Malformed)
			Expect(ok).To(BeTrue())
		})
	})
})

var _ = Describe("DataTagEquals", func() {
	It("matches an echo with one leading zero prepended", func() {
		Expect(codec.DataTagEquals("BF2547A", "0BF2547A")).To(BeTrue())
	})

	It("matches an echo with several leading zeros prepended", func() {
		Expect(codec.DataTagEquals("T1", "000T1")).To(BeTrue())
	})

	It("matches an exact echo", func() {
		Expect(codec.DataTagEquals("T1", "T1")).To(BeTrue())
	})

	It("rejects an unrelated tag", func() {
		Expect(codec.DataTagEquals("T1", "T2")).To(BeFalse())
	})
})
