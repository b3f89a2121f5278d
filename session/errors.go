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

	liberr "github.com/tanabi/gomcp/errors"
)

const (
	// ErrorConnectError mirrors a transport-level failure surfaced during
	// the constructor's dial step.
	ErrorConnectError liberr.CodeError = iota + liberr.MinPkgSession
	// ErrorHandshakeTimeout is raised when the banner or the catalog does
	// not complete within its budget.
	ErrorHandshakeTimeout
	// ErrorUnsupportedProtocol is raised when the server's advertised
	// range does not include this library's supported version.
	ErrorUnsupportedProtocol
	// ErrorMalformedHeader is raised when the server banner itself does
	// not match the expected grammar.
	ErrorMalformedHeader
	// ErrorAlreadyNegotiated is raised when Negotiate is called after the
	// negotiated set has already been closed.
	ErrorAlreadyNegotiated
	// ErrorUnknownPackage is raised when Negotiate references a package
	// absent from the catalog.
	ErrorUnknownPackage
	// ErrorPackageNotNegotiated is raised when Call targets a package
	// outside the negotiated set.
	ErrorPackageNotNegotiated
	// ErrorInvalidArguments is raised on asymmetric lo/hi bounds, or a
	// list element where a plain string is required.
	ErrorInvalidArguments
	// ErrorWriteError mirrors a transport-level write failure.
	ErrorWriteError
	// ErrorClosed is raised by any operation attempted after the session
	// has transitioned to Closed.
	ErrorClosed
)

func init() {
	if liberr.ExistInMapMessage(ErrorConnectError) {
		panic(fmt.Errorf("error code collision with package gomcp/session"))
	}
	liberr.RegisterIdFctMessage(ErrorConnectError, getMessage)
}

func getMessage(code liberr.CodeError) (message string) {
	switch code {
	case ErrorConnectError:
		return "session: cannot establish connection"
	case ErrorHandshakeTimeout:
		return "session: handshake did not complete within budget"
	case ErrorUnsupportedProtocol:
		return "session: server does not support the required protocol version"
	case ErrorMalformedHeader:
		return "session: server banner does not match the expected grammar"
	case ErrorAlreadyNegotiated:
		return "session: negotiate called after negotiation already closed"
	case ErrorUnknownPackage:
		return "session: requested package is not in the catalog"
	case ErrorPackageNotNegotiated:
		return "session: call targets a package outside the negotiated set"
	case ErrorInvalidArguments:
		return "session: invalid arguments"
	case ErrorWriteError:
		return "session: write failed"
	case ErrorClosed:
		return "session: session is closed"
	}

	return ""
}
