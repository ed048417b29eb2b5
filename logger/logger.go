/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
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

// Package logger provides the structured logging surface used internally by
// the race and listener accept loop to record per-attempt failures (spec §7:
// "per-attempt failures are swallowed by the race and logged").
//
// Unlike the teacher's logger package, which wraps hclog behind a large
// framework-integration surface (syslog hooks, gorm, spf13 bridges), gotaps
// has exactly one ambient logging need - structured leveled diagnostics - so
// it depends on hashicorp/go-hclog directly rather than re-wrapping it.
package logger

import "github.com/hashicorp/go-hclog"

// Logger is the structured logging surface used internally by gotaps.
type Logger interface {
	Debug(msg string, kv ...interface{})
	Info(msg string, kv ...interface{})
	Warn(msg string, kv ...interface{})
	Error(msg string, kv ...interface{})

	// Named returns a Logger that prefixes its name to every message, the
	// same sub-logger convention hclog.Logger exposes.
	Named(name string) Logger
}

type hcLogger struct {
	l hclog.Logger
}

// New wraps an hclog.Logger as a gotaps Logger. Passing nil yields a
// discard logger, mirroring the teacher's safe-default convention
// (logger/model.go) of never requiring a caller to construct a logger just
// to suppress it.
func New(l hclog.Logger) Logger {
	if l == nil {
		l = hclog.NewNullLogger()
	}
	return &hcLogger{l: l}
}

// Discard returns a Logger that drops every message.
func Discard() Logger {
	return New(nil)
}

func (h *hcLogger) Debug(msg string, kv ...interface{}) { h.l.Debug(msg, kv...) }
func (h *hcLogger) Info(msg string, kv ...interface{})  { h.l.Info(msg, kv...) }
func (h *hcLogger) Warn(msg string, kv ...interface{})  { h.l.Warn(msg, kv...) }
func (h *hcLogger) Error(msg string, kv ...interface{}) { h.l.Error(msg, kv...) }

func (h *hcLogger) Named(name string) Logger {
	return &hcLogger{l: h.l.Named(name)}
}
