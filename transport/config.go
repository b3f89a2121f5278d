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

package transport

import (
	"fmt"
	"time"

	libval "github.com/go-playground/validator/v10"

	liberr "github.com/tanabi/gomcp/errors"
	"github.com/tanabi/gomcp/logger"
)

// Config describes the operational configuration of a Transport, per the
// enumerated fields of the MCP client's external interface: host, port, and
// the boolean encryption toggle. Certificate-store configuration beyond
// AcceptAnyPeerCert is deliberately out of scope.
type Config struct {
	Host string `mapstructure:"host" json:"host" yaml:"host" validate:"required"`
	Port int    `mapstructure:"port" json:"port" yaml:"port" validate:"required,min=1,max=65535"`

	// Secure wraps the connection in TLS when true.
	Secure bool `mapstructure:"secure" json:"secure" yaml:"secure"`

	// AcceptAnyPeerCert skips peer certificate validation. Only consulted
	// when Secure is true.
	AcceptAnyPeerCert bool `mapstructure:"acceptAnyPeerCert" json:"acceptAnyPeerCert" yaml:"acceptAnyPeerCert"`

	// DialTimeout bounds the initial TCP/TLS handshake. Zero means the
	// net package default (no explicit deadline).
	DialTimeout time.Duration `mapstructure:"dialTimeout" json:"dialTimeout" yaml:"dialTimeout" validate:"min=0"`

	// Logger receives Debug/Error entries for connect/read/write activity.
	// May be left nil, in which case logging is skipped.
	Logger logger.Logger `validate:"-"`
}

// Validate checks the configuration against its struct tags and defaults
// DialTimeout to a sane value when unset.
func (c *Config) Validate() liberr.Error {
	if c == nil {
		return ErrorParamsEmpty.Error(nil)
	}

	err := ErrorValidatorError.Error(nil)

	if er := libval.New().Struct(c); er != nil {
		if e, ok := er.(*libval.InvalidValidationError); ok {
			err.Add(e)
		}

		for _, e := range er.(libval.ValidationErrors) {
			//nolint goerr113
			err.Add(fmt.Errorf("config field '%s' is not validated by constraint '%s'", e.StructNamespace(), e.ActualTag()))
		}
	}

	if err.HasParent() {
		return err
	}

	if c.DialTimeout <= 0 {
		c.DialTimeout = 30 * time.Second
	}

	return nil
}

// Clone returns a shallow copy of the configuration, safe to mutate without
// affecting the original (Logger is shared by reference, matching the
// teacher's convention of not deep-copying injected collaborators).
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}

	n := *c
	return &n
}
