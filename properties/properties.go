/*
 * MIT License
 *
 * Copyright (c) 2024 Nicolas JUHEL
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

// Package properties implements TransportProperties (spec §4.2): the
// caller-supplied map from SelectionProperty to PreferenceLevel that drives
// protocol ranking and filtering in the Preconnection engine.
//
// The Require/Prefer/... builder chain is grounded on the Remote and
// Local specifier builders in the postsocket TAPS interface
// (mami-project-postsocket/api.go), which use the same
// "returns a new object with one more constraint added" shape for
// TransportParameters.Require/Prefer/Ignore/Avoid/Prohibit.
package properties

import (
	"strings"

	"github.com/nabbar/gotaps/proto"
)

// PreferenceLevel is how strongly the caller wants a SelectionProperty
// (spec §3).
type PreferenceLevel uint8

const (
	Ignore PreferenceLevel = iota
	Prefer
	Avoid
	Require
	Prohibit
)

var preferenceLevelNames = map[PreferenceLevel]string{
	Ignore:   "ignore",
	Prefer:   "prefer",
	Avoid:    "avoid",
	Require:  "require",
	Prohibit: "prohibit",
}

// String returns the PreferenceLevel's canonical lowercase name.
func (l PreferenceLevel) String() string {
	return preferenceLevelNames[l]
}

// ParsePreferenceLevel resolves a canonical name (as produced by String,
// case-insensitively) to a PreferenceLevel, used by profile.Load to decode
// config-file values such as "require"/"prefer"/"ignore"/"avoid"/"prohibit".
func ParsePreferenceLevel(name string) (PreferenceLevel, bool) {
	for l, n := range preferenceLevelNames {
		if strings.EqualFold(n, name) {
			return l, true
		}
	}
	return 0, false
}

// TransportProperties is a total mapping SelectionProperty -> PreferenceLevel.
// Copy-value semantics: every mutator returns a new, independent value,
// matching spec §3's invariant and the postsocket builder convention.
type TransportProperties struct {
	levels map[proto.SelectionProperty]PreferenceLevel
}

// New returns an empty TransportProperties with every property defaulted
// to Ignore, satisfying the "every property has an entry" invariant.
func New() TransportProperties {
	t := TransportProperties{levels: make(map[proto.SelectionProperty]PreferenceLevel, len(proto.Properties()))}
	for _, p := range proto.Properties() {
		t.levels[p] = Ignore
	}
	return t
}

func (t TransportProperties) clone() TransportProperties {
	n := TransportProperties{levels: make(map[proto.SelectionProperty]PreferenceLevel, len(t.levels))}
	for k, v := range t.levels {
		n.levels[k] = v
	}
	return n
}

// Add returns a new TransportProperties with p set to level.
func (t TransportProperties) Add(p proto.SelectionProperty, level PreferenceLevel) TransportProperties {
	n := t.clone()
	n.levels[p] = level
	return n
}

// Require is shorthand for Add(p, Require).
func (t TransportProperties) Require(p proto.SelectionProperty) TransportProperties {
	return t.Add(p, Require)
}

// Prefer is shorthand for Add(p, Prefer).
func (t TransportProperties) Prefer(p proto.SelectionProperty) TransportProperties {
	return t.Add(p, Prefer)
}

// IgnoreProperty is shorthand for Add(p, Ignore). Named to avoid colliding
// with the Ignore constant.
func (t TransportProperties) IgnoreProperty(p proto.SelectionProperty) TransportProperties {
	return t.Add(p, Ignore)
}

// Avoid is shorthand for Add(p, Avoid).
func (t TransportProperties) Avoid(p proto.SelectionProperty) TransportProperties {
	return t.Add(p, Avoid)
}

// Prohibit is shorthand for Add(p, Prohibit).
func (t TransportProperties) Prohibit(p proto.SelectionProperty) TransportProperties {
	return t.Add(p, Prohibit)
}

// Get returns the PreferenceLevel for p, defaulting to Ignore for a
// property never set (preserves the total-mapping invariant for values
// constructed outside of New, e.g. the zero value TransportProperties{}).
func (t TransportProperties) Get(p proto.SelectionProperty) PreferenceLevel {
	if t.levels == nil {
		return Ignore
	}
	if lvl, ok := t.levels[p]; ok {
		return lvl
	}
	return Ignore
}

// Default returns the default TransportProperties profile (spec §6):
// require Reliability, PreserveOrder, CongestionControl; prefer
// PreserveMsgBoundaries, ZeroRttMsg, Multistreaming, Multipath; ignore the
// rest. A fresh value is returned on every call (original_source's
// transport_properties.rs default() builder returns a new value rather
// than a shared mutable default).
func Default() TransportProperties {
	return New().
		Require(proto.Reliability).
		Require(proto.PreserveOrder).
		Require(proto.CongestionControl).
		Prefer(proto.PreserveMsgBoundaries).
		Prefer(proto.ZeroRttMsg).
		Prefer(proto.Multistreaming).
		Prefer(proto.Multipath)
}
