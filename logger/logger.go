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

// Package logger provides the structured logging used by the transport,
// codec, and session components: a Logger interface backed by logrus, with
// Level/Fields/Entry types shaped after the teacher's own logging package
// but scoped to what an MCP client needs (no syslog, file-rotation, gorm, or
// web-framework hooks - those concerns have no component in this module).
package logger

import (
	"os"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Logger is the logging surface injected into transport.Config and
// session.Config. Debug is used for discarded/malformed traffic, Error for
// session-fatal conditions.
type Logger interface {
	SetLevel(lvl Level)
	GetLevel() Level

	SetFields(f Fields)
	GetFields() Fields

	Debug(message string, data interface{})
	Info(message string, data interface{})
	Warning(message string, data interface{})
	Error(message string, data interface{})

	// Entry returns a fresh Entry pre-populated with the logger's current
	// level, fields, and timestamp, for callers that need to attach errors
	// or extra data before calling Log.
	Entry(lvl Level, message string) *Entry
}

type lgr struct {
	m sync.RWMutex
	l *logrus.Logger
	v Level
	f Fields
}

// New returns a Logger writing to stdout at InfoLevel, in the teacher's
// logrus-backed style (New(ctx) in the original; this library's components
// are not context-parameterized at the logging layer, so New takes none).
func New() Logger {
	l := logrus.New()
	l.SetOutput(os.Stdout)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	g := &lgr{
		l: l,
		f: NewFields(),
	}
	g.SetLevel(InfoLevel)

	return g
}

func (g *lgr) SetLevel(lvl Level) {
	g.m.Lock()
	defer g.m.Unlock()

	g.v = lvl
	g.l.SetLevel(lvl.Logrus())
}

func (g *lgr) GetLevel() Level {
	g.m.RLock()
	defer g.m.RUnlock()

	return g.v
}

func (g *lgr) SetFields(f Fields) {
	g.m.Lock()
	defer g.m.Unlock()

	g.f = f
}

func (g *lgr) GetFields() Fields {
	g.m.RLock()
	defer g.m.RUnlock()

	return g.f
}

func (g *lgr) Entry(lvl Level, message string) *Entry {
	g.m.RLock()
	defer g.m.RUnlock()

	return &Entry{
		log:     func() *logrus.Logger { return g.l },
		Time:    time.Now(),
		Level:   lvl,
		Message: message,
		Fields:  g.f,
	}
}

func (g *lgr) Debug(message string, data interface{}) {
	g.Entry(DebugLevel, message).DataSet(data).Log()
}

func (g *lgr) Info(message string, data interface{}) {
	g.Entry(InfoLevel, message).DataSet(data).Log()
}

func (g *lgr) Warning(message string, data interface{}) {
	g.Entry(WarnLevel, message).DataSet(data).Log()
}

func (g *lgr) Error(message string, data interface{}) {
	g.Entry(ErrorLevel, message).DataSet(data).Log()
}
