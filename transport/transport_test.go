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

package transport_test

import (
	"net"
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/tanabi/gomcp/transport"
)

// listen starts a local TCP listener and returns its host/port split so
// tests can build a transport.Config without hardcoding a port.
func listen() (net.Listener, string, int) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	Expect(err).ToNot(HaveOccurred())

	addr := ln.Addr().(*net.TCPAddr)
	return ln, "127.0.0.1", addr.Port
}

var _ = Describe("transport", func() {
	Describe("Open", func() {
		It("fails validation on an empty config", func() {
			tr, err := transport.Open(&transport.Config{})
			Expect(err).To(HaveOccurred())
			Expect(tr).To(BeNil())
		})

		It("fails to connect when nothing listens on the port", func() {
			tr, err := transport.Open(&transport.Config{Host: "127.0.0.1", Port: 1})
			Expect(err).To(HaveOccurred())
			Expect(tr).To(BeNil())
		})

		It("connects to a listening TCP peer", func() {
			ln, host, port := listen()
			defer ln.Close()

			go func() {
				conn, _ := ln.Accept()
				if conn != nil {
					defer conn.Close()
				}
			}()

			tr, err := transport.Open(&transport.Config{Host: host, Port: port})
			Expect(err).ToNot(HaveOccurred())
			Expect(tr).ToNot(BeNil())
			defer tr.Close()
		})
	})

	Describe("ReadLine", func() {
		var (
			ln   net.Listener
			srv  net.Conn
			cli  transport.Transport
			host string
			port int
		)

		BeforeEach(func() {
			ln, host, port = listen()

			accepted := make(chan net.Conn, 1)
			go func() {
				c, _ := ln.Accept()
				accepted <- c
			}()

			var err error
			cli, err = transport.Open(&transport.Config{Host: host, Port: port})
			Expect(err).ToNot(HaveOccurred())

			srv = <-accepted
			Expect(srv).ToNot(BeNil())
		})

		AfterEach(func() {
			_ = cli.Close()
			_ = srv.Close()
			_ = ln.Close()
		})

		It("returns StatusEmpty when nothing arrives before the timeout", func() {
			line, status, err := cli.ReadLine(50 * time.Millisecond)
			Expect(err).ToNot(HaveOccurred())
			Expect(status).To(Equal(transport.StatusEmpty))
			Expect(line).To(Equal(""))
		})

		It("returns a single CRLF-terminated line with the terminator stripped", func() {
			_, err := srv.Write([]byte("hello world\r\n"))
			Expect(err).ToNot(HaveOccurred())

			line, status, err := cli.ReadLine(time.Second)
			Expect(err).ToNot(HaveOccurred())
			Expect(status).To(Equal(transport.StatusOK))
			Expect(line).To(Equal("hello world"))
		})

		It("splits multiple lines delivered in one packet across repeated calls", func() {
			_, err := srv.Write([]byte("first\r\nsecond\r\nthird\r\n"))
			Expect(err).ToNot(HaveOccurred())

			var got []string
			for i := 0; i < 3; i++ {
				line, status, err := cli.ReadLine(time.Second)
				Expect(err).ToNot(HaveOccurred())
				Expect(status).To(Equal(transport.StatusOK))
				got = append(got, line)
			}

			Expect(got).To(Equal([]string{"first", "second", "third"}))
		})

		It("suppresses blank lines produced by stray CRLF sequences", func() {
			_, err := srv.Write([]byte("\r\nreal line\r\n"))
			Expect(err).ToNot(HaveOccurred())

			line, status, err := cli.ReadLine(time.Second)
			Expect(err).ToNot(HaveOccurred())
			Expect(status).To(Equal(transport.StatusOK))
			Expect(line).To(Equal("real line"))
		})

		It("coalesces a line split across two writes within the grace window", func() {
			_, err := srv.Write([]byte("par"))
			Expect(err).ToNot(HaveOccurred())

			time.Sleep(10 * time.Millisecond)

			_, err = srv.Write([]byte("tial\r\n"))
			Expect(err).ToNot(HaveOccurred())

			line, status, err := cli.ReadLine(time.Second)
			Expect(err).ToNot(HaveOccurred())
			Expect(status).To(Equal(transport.StatusOK))
			Expect(line).To(Equal("partial"))
		})

		It("reports StatusClosed once the peer shuts down and no data remains", func() {
			Expect(srv.Close()).ToNot(HaveOccurred())

			line, status, err := cli.ReadLine(time.Second)
			Expect(err).ToNot(HaveOccurred())
			Expect(status).To(Equal(transport.StatusClosed))
			Expect(line).To(Equal(""))
		})
	})

	Describe("Write", func() {
		var (
			ln   net.Listener
			srv  net.Conn
			cli  transport.Transport
			host string
			port int
		)

		BeforeEach(func() {
			ln, host, port = listen()

			accepted := make(chan net.Conn, 1)
			go func() {
				c, _ := ln.Accept()
				accepted <- c
			}()

			var err error
			cli, err = transport.Open(&transport.Config{Host: host, Port: port})
			Expect(err).ToNot(HaveOccurred())

			srv = <-accepted
		})

		AfterEach(func() {
			_ = cli.Close()
			_ = srv.Close()
			_ = ln.Close()
		})

		It("delivers the full payload to the peer", func() {
			Expect(cli.Write("#$#quit auth\r\n")).ToNot(HaveOccurred())

			buf := make([]byte, 64)
			_ = srv.SetReadDeadline(time.Now().Add(time.Second))
			n, err := srv.Read(buf)
			Expect(err).ToNot(HaveOccurred())
			Expect(strings.TrimSpace(string(buf[:n]))).To(Equal("#$#quit auth"))
		})

		It("fails with ErrorClosed once Close has been called", func() {
			Expect(cli.Close()).ToNot(HaveOccurred())

			err := cli.Write("anything\r\n")
			Expect(err).To(HaveOccurred())
			Expect(err).To(MatchError(transport.ErrorClosed))
		})
	})

	Describe("Close", func() {
		It("is idempotent", func() {
			ln, host, port := listen()
			defer ln.Close()

			go func() {
				conn, _ := ln.Accept()
				if conn != nil {
					defer conn.Close()
				}
			}()

			cli, err := transport.Open(&transport.Config{Host: host, Port: port})
			Expect(err).ToNot(HaveOccurred())

			Expect(cli.Close()).ToNot(HaveOccurred())
			Expect(cli.Close()).ToNot(HaveOccurred())
		})
	})

	Describe("Config.Validate", func() {
		It("rejects an out-of-range port", func() {
			cfg := &transport.Config{Host: "localhost", Port: 70000}
			Expect(cfg.Validate()).To(HaveOccurred())
		})

		It("defaults DialTimeout when unset", func() {
			cfg := &transport.Config{Host: "localhost", Port: 1}
			_ = cfg.Validate()
			Expect(cfg.DialTimeout).To(BeNumerically(">", 0))
		})
	})
})
