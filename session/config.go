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
	"time"

	libval "github.com/go-playground/validator/v10"

	liberr "github.com/tanabi/gomcp/errors"
	"github.com/tanabi/gomcp/logger"
	"github.com/tanabi/gomcp/transport"
	"github.com/tanabi/gomcp/version"
)

// Config describes one MCP session: the operational transport
// configuration plus the handshake budgets from spec §4.3/§5.
type Config struct {
	Host              string `mapstructure:"host" json:"host" yaml:"host" validate:"required"`
	Port              int    `mapstructure:"port" json:"port" yaml:"port" validate:"required,min=1,max=65535"`
	Secure            bool   `mapstructure:"secure" json:"secure" yaml:"secure"`
	AcceptAnyPeerCert bool   `mapstructure:"acceptAnyPeerCert" json:"acceptAnyPeerCert" yaml:"acceptAnyPeerCert"`

	// DialTimeout bounds the initial TCP/TLS handshake. Zero defaults to
	// 30s (see transport.Config).
	DialTimeout time.Duration `mapstructure:"dialTimeout" json:"dialTimeout" yaml:"dialTimeout" validate:"min=0"`

	// BannerTimeout bounds each of the (up to three) attempts to read the
	// server's version banner. Zero defaults to 10s.
	BannerTimeout time.Duration `mapstructure:"bannerTimeout" json:"bannerTimeout" yaml:"bannerTimeout" validate:"min=0"`

	// BannerAttempts is the retry budget for the banner read, since a
	// welcome message may precede it. Zero defaults to 3.
	BannerAttempts int `mapstructure:"bannerAttempts" json:"bannerAttempts" yaml:"bannerAttempts" validate:"min=0"`

	// CatalogTimeout bounds the whole catalog-collection phase. Zero
	// defaults to 5s.
	CatalogTimeout time.Duration `mapstructure:"catalogTimeout" json:"catalogTimeout" yaml:"catalogTimeout" validate:"min=0"`

	// Logger receives handshake/call/process activity. May be left nil.
	Logger logger.Logger `validate:"-"`
}

// protocolVersion is the single MCP version this client speaks, per spec
// §1 "MUD Client Protocol (MCP), version 2.1".
var protocolVersion = version.New(2, 1)

// Validate checks the configuration and fills in the documented defaults.
func (c *Config) Validate() liberr.Error {
	if c == nil {
		return ErrorInvalidArguments.Error(nil)
	}

	err := ErrorInvalidArguments.Error(nil)

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
	if c.BannerTimeout <= 0 {
		c.BannerTimeout = 10 * time.Second
	}
	if c.BannerAttempts <= 0 {
		c.BannerAttempts = 3
	}
	if c.CatalogTimeout <= 0 {
		c.CatalogTimeout = 5 * time.Second
	}

	return nil
}

func (c *Config) transportConfig() *transport.Config {
	return &transport.Config{
		Host:              c.Host,
		Port:              c.Port,
		Secure:            c.Secure,
		AcceptAnyPeerCert: c.AcceptAnyPeerCert,
		DialTimeout:       c.DialTimeout,
		Logger:            c.Logger,
	}
}
