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

// State is a position in the handshake state machine of spec §4.3.
type State uint8

const (
	Dialing State = iota
	AwaitingServerHeader
	SendingClientKey
	CollectingCatalog
	SelectingPackages
	Ready
	Closed
)

func (s State) String() string {
	switch s {
	case Dialing:
		return "Dialing"
	case AwaitingServerHeader:
		return "AwaitingServerHeader"
	case SendingClientKey:
		return "SendingClientKey"
	case CollectingCatalog:
		return "CollectingCatalog"
	case SelectingPackages:
		return "SelectingPackages"
	case Ready:
		return "Ready"
	case Closed:
		return "Closed"
	}

	return "Unknown"
}
