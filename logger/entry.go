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
	"os"
	"strings"
	"time"

	liberr "github.com/tanabi/gomcp/errors"
	"github.com/sirupsen/logrus"
)

const (
	FieldTime    = "time"
	FieldLevel   = "level"
	FieldCaller  = "caller"
	FieldMessage = "message"
	FieldError   = "error"
	FieldData    = "data"
)

// Entry is one log record in progress. It is built up with the field/data
// setters and emitted with Log.
type Entry struct {
	log func() *logrus.Logger

	// Time is the time of the event (zero if timestamps are disabled).
	Time time.Time `json:"time"`

	// Level is the severity of the entry.
	Level Level `json:"level"`

	// Caller names the function that produced the entry, when known.
	Caller string `json:"caller"`

	// Message is the main human-readable message (can be empty).
	Message string `json:"message"`

	// Error holds zero or more errors attached to the entry.
	Error []error `json:"error"`

	// Data is arbitrary structured payload attached to the entry.
	Data interface{} `json:"data"`

	// Fields are custom key/value pairs merged into the logrus entry.
	Fields Fields `json:"fields"`
}

// FieldAdd adds one key/value pair to the entry's custom fields.
func (e *Entry) FieldAdd(key string, val interface{}) *Entry {
	e.Fields = e.Fields.Add(key, val)
	return e
}

// FieldMerge merges the given Fields into the entry's custom fields.
func (e *Entry) FieldMerge(fields Fields) *Entry {
	e.Fields = e.Fields.Merge(fields)
	return e
}

// DataSet attaches arbitrary data to the entry.
func (e *Entry) DataSet(data interface{}) *Entry {
	e.Data = data
	return e
}

// ErrorAdd appends errors to the entry, skipping nils when cleanNil is set.
func (e *Entry) ErrorAdd(cleanNil bool, err ...error) *Entry {
	for _, er := range err {
		if cleanNil && er == nil {
			continue
		}
		e.Error = append(e.Error, er)
	}
	return e
}

// ErrorAddLib flattens one or more liberr.Error hierarchies into the entry.
func (e *Entry) ErrorAddLib(cleanNil bool, err ...liberr.Error) *Entry {
	for _, er := range err {
		if er == nil {
			continue
		}
		e.ErrorAdd(cleanNil, er.GetErrorSlice()...)
	}
	return e
}

// Log emits the entry to the backing logrus logger, if any. PanicLevel and
// FatalLevel terminate the process after logging, matching logrus' own
// behavior for those levels. NilLevel emits nothing.
func (e *Entry) Log() {
	if e.Level == NilLevel || e.log == nil {
		return
	}

	log := e.log()
	if log == nil {
		return
	}

	tag := NewFields().Add(FieldLevel, e.Level.String())

	if !e.Time.IsZero() {
		tag = tag.Add(FieldTime, e.Time.Format(time.RFC3339Nano))
	}

	if e.Caller != "" {
		tag = tag.Add(FieldCaller, e.Caller)
	}

	if e.Message != "" {
		tag = tag.Add(FieldMessage, e.Message)
	}

	if len(e.Error) > 0 {
		msg := make([]string, 0, len(e.Error))
		for _, er := range e.Error {
			if er == nil {
				continue
			}
			msg = append(msg, er.Error())
		}
		if len(msg) > 0 {
			tag = tag.Add(FieldError, strings.Join(msg, ", "))
		}
	}

	if e.Data != nil {
		tag = tag.Add(FieldData, e.Data)
	}

	tag = tag.Merge(e.Fields)

	log.WithFields(tag.Logrus()).Log(e.Level.Logrus())

	if e.Level <= FatalLevel {
		os.Exit(1)
	}
}
