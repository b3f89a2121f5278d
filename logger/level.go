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

package logger

import (
	"math"
	"strings"

	"github.com/sirupsen/logrus"
)

// Level is a uint8 severity, ordered from most (Panic) to least (Debug)
// severe, plus a sentinel NilLevel that disables logging entirely.
type Level uint8

const (
	// PanicLevel logs then panics.
	PanicLevel Level = iota
	// FatalLevel logs then terminates the process.
	FatalLevel
	// ErrorLevel reports a failure that stops the current operation.
	ErrorLevel
	// WarnLevel reports a condition the caller can continue past.
	WarnLevel
	// InfoLevel reports a notable event with no impact on correctness.
	InfoLevel
	// DebugLevel reports detail only useful while diagnosing a problem.
	DebugLevel
	// NilLevel discards every entry.
	NilLevel
)

// GetLevelListString returns every known level as its lowercase string form.
func GetLevelListString() []string {
	return []string{
		strings.ToLower(PanicLevel.String()),
		strings.ToLower(FatalLevel.String()),
		strings.ToLower(ErrorLevel.String()),
		strings.ToLower(WarnLevel.String()),
		strings.ToLower(InfoLevel.String()),
		strings.ToLower(DebugLevel.String()),
	}
}

// GetLevelString maps a string to the Level whose name contains it
// (case-insensitive). Falls back to InfoLevel when nothing matches.
func GetLevelString(l string) Level {
	l = strings.ToLower(l)

	switch {
	case strings.Contains(strings.ToLower(PanicLevel.String()), l):
		return PanicLevel
	case strings.Contains(strings.ToLower(FatalLevel.String()), l):
		return FatalLevel
	case strings.Contains(strings.ToLower(ErrorLevel.String()), l):
		return ErrorLevel
	case strings.Contains(strings.ToLower(WarnLevel.String()), l):
		return WarnLevel
	case strings.Contains(strings.ToLower(InfoLevel.String()), l):
		return InfoLevel
	case strings.Contains(strings.ToLower(DebugLevel.String()), l):
		return DebugLevel
	}

	return InfoLevel
}

// Uint8 returns the level's numeric value.
func (l Level) Uint8() uint8 {
	return uint8(l)
}

// String returns the human-readable level name.
func (l Level) String() string {
	switch l {
	case DebugLevel:
		return "Debug"
	case InfoLevel:
		return "Info"
	case WarnLevel:
		return "Warning"
	case ErrorLevel:
		return "Error"
	case FatalLevel:
		return "Fatal Error"
	case PanicLevel:
		return "Critical Error"
	case NilLevel:
		return ""
	}

	return "unknown"
}

// Logrus maps the level to its logrus equivalent. NilLevel maps to a value
// above logrus' own range so nothing is ever emitted at that level.
func (l Level) Logrus() logrus.Level {
	switch l {
	case DebugLevel:
		return logrus.DebugLevel
	case InfoLevel:
		return logrus.InfoLevel
	case WarnLevel:
		return logrus.WarnLevel
	case ErrorLevel:
		return logrus.ErrorLevel
	case FatalLevel:
		return logrus.FatalLevel
	case PanicLevel:
		return logrus.PanicLevel
	default:
		return math.MaxInt32
	}
}
