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

var _ = Describe("Compose", func() {
	It("emits exactly the documented single-string call", func() {
		lines, err := codec.Compose(codec.Outbound{
			Package: "org-example",
			Message: "ping",
			Auth:    "12345",
			Args:    []codec.OutArg{{Key: "topic", Value: "dbref"}},
		})
		Expect(err).To(BeNil())
		Expect(lines).To(Equal([]string{"#$#org-example-ping 12345 topic: \"dbref\"\r\n"}))
	})

	It("omits the trailing space when there are no arguments", func() {
		lines, err := codec.Compose(codec.Outbound{Package: "mcp-negotiate-end", Auth: "A"})
		Expect(err).To(BeNil())
		Expect(lines).To(Equal([]string{"#$#mcp-negotiate-end A\r\n"}))
	})

	It("escapes a quote and a backslash in a single-string value", func() {
		lines, err := codec.Compose(codec.Outbound{
			Package: "x",
			Auth:    "A",
			Args:    []codec.OutArg{{Key: "v", Value: `This has "both" and \`}},
		})
		Expect(err).To(BeNil())
		Expect(lines).To(Equal([]string{"#$#x A v: \"This has \\\"both\\\" and \\\\\"\r\n"}))
	})

	It("fails with ErrorMissingDataTag when a list argument has no data tag", func() {
		_, err := codec.Compose(codec.Outbound{
			Package: "x",
			Auth:    "A",
			Args:    []codec.OutArg{{Key: "text", List: []string{"a", "b"}}},
		})
		Expect(err).To(HaveOccurred())
		Expect(err).To(MatchError(codec.ErrorMissingDataTag))
	})

	It("emits header + continuations + terminator for a list-valued call", func() {
		lines, err := codec.Compose(codec.Outbound{
			Package: "org-fuzzball-help",
			Message: "entry",
			Auth:    "A",
			Args:    []codec.OutArg{{Key: "text", List: []string{"line one", "line two", "line three"}}},
			DataTag: "T1",
		})
		Expect(err).To(BeNil())
		Expect(lines).To(Equal([]string{
			"#$#org-fuzzball-help-entry A text*: \"\" _data-tag: \"T1\"\r\n",
			"#$#* T1 text: line one\r\n",
			"#$#* T1 text: line two\r\n",
			"#$#* T1 text: line three\r\n",
			"#$#: T1\r\n",
		}))
	})

	Describe("composer/tokenizer duality", func() {
		It("round-trips a single-string call through Tokenize", func() {
			lines, err := codec.Compose(codec.Outbound{
				Package: "org-example",
				Message: "ping",
				Auth:    "12345",
				Args:    []codec.OutArg{{Key: "topic", Value: `say "hi"`}},
			})
			Expect(err).To(BeNil())
			Expect(lines).To(HaveLen(1))

			line := codec.Tokenize(lines[0][:len(lines[0])-2]) // strip CRLF
			h, ok := line.(*codec.Header)
			Expect(ok).To(BeTrue())
			Expect(h.Tag).To(Equal("org-example-ping"))
			Expect(h.Auth).To(Equal("12345"))
			Expect(h.Args).To(Equal([]codec.Argument{{Key: "topic", Value: `say "hi"`}}))
		})

		It("reassembles a list-valued call from the full emitted sequence", func() {
			lines, err := codec.Compose(codec.Outbound{
				Package: "org-fuzzball-help",
				Message: "entry",
				Auth:    "A",
				Args:    []codec.OutArg{{Key: "text", List: []string{"line one", "line two"}}},
				DataTag: "T1",
			})
			Expect(err).To(BeNil())
			Expect(lines).To(HaveLen(4))

			header, ok := codec.Tokenize(trimCRLF(lines[0])).(*codec.Header)
			Expect(ok).To(BeTrue())
			Expect(header.DataTag).To(Equal("T1"))
			Expect(header.Args[0].Multiline).To(BeTrue())

			var reassembled []string
			for _, raw := range lines[1 : len(lines)-1] {
				c, ok := codec.Tokenize(trimCRLF(raw)).(*codec.Continuation)
				Expect(ok).To(BeTrue())
				Expect(codec.DataTagEquals(header.DataTag, c.DataTag)).To(BeTrue())
				reassembled = append(reassembled, c.Value)
			}
			Expect(reassembled).To(Equal([]string{"line one", "line two"}))

			term, ok := codec.Tokenize(trimCRLF(lines[len(lines)-1])).(*codec.Terminator)
			Expect(ok).To(BeTrue())
			Expect(codec.DataTagEquals(header.DataTag, term.DataTag)).To(BeTrue())
		})
	})
})

func trimCRLF(s string) string {
	return s[:len(s)-2]
}
