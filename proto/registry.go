/*
 * MIT License
 *
 * Copyright (c) 2022 Nicolas JUHEL
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

package proto

// SelectionProperty is a capability a transport stack may expose (spec §3).
type SelectionProperty uint8

const (
	Reliability SelectionProperty = iota
	PreserveMsgBoundaries
	PerMsgReliability
	PreserveOrder
	ZeroRttMsg
	Multistreaming
	PerMsgChecksumLenSend
	PerMsgChecksumLenRecv
	CongestionControl
	Multipath
	Direction
	RetransmitNotify
	SoftErrorNotify
)

// properties lists every SelectionProperty, used to build total mappings
// (spec invariant: every property has an entry).
var properties = []SelectionProperty{
	Reliability, PreserveMsgBoundaries, PerMsgReliability, PreserveOrder,
	ZeroRttMsg, Multistreaming, PerMsgChecksumLenSend, PerMsgChecksumLenRecv,
	CongestionControl, Multipath, Direction, RetransmitNotify, SoftErrorNotify,
}

// Properties returns every SelectionProperty, in a stable order.
func Properties() []SelectionProperty {
	out := make([]SelectionProperty, len(properties))
	copy(out, properties)
	return out
}

var propertyNames = map[SelectionProperty]string{
	Reliability:           "reliability",
	PreserveMsgBoundaries: "preserve-msg-boundaries",
	PerMsgReliability:     "per-msg-reliability",
	PreserveOrder:         "preserve-order",
	ZeroRttMsg:            "zero-rtt-msg",
	Multistreaming:        "multistreaming",
	PerMsgChecksumLenSend: "per-msg-checksum-len-send",
	PerMsgChecksumLenRecv: "per-msg-checksum-len-recv",
	CongestionControl:     "congestion-control",
	Multipath:             "multipath",
	Direction:             "direction",
	RetransmitNotify:      "retransmit-notify",
	SoftErrorNotify:       "soft-error-notify",
}

// String returns the SelectionProperty's canonical kebab-case name, used by
// the profile package to parse config-file keys.
func (p SelectionProperty) String() string {
	return propertyNames[p]
}

// ParseSelectionProperty resolves a canonical name (as produced by String)
// back to a SelectionProperty.
func ParseSelectionProperty(name string) (SelectionProperty, bool) {
	for p, n := range propertyNames {
		if n == name {
			return p, true
		}
	}
	return 0, false
}

// ServiceLevel describes how well a protocol supports a SelectionProperty.
type ServiceLevel uint8

const (
	NotProvided ServiceLevel = iota
	Optional
	Provided
)

// Capabilities is a total mapping SelectionProperty -> ServiceLevel for one
// protocol stack. Cells absent from the literal table default to
// NotProvided via Get, preserving the "every property has an entry"
// invariant without requiring every constructor to spell out every key.
type Capabilities map[SelectionProperty]ServiceLevel

// Get returns the ServiceLevel for p, defaulting to NotProvided.
func (c Capabilities) Get(p SelectionProperty) ServiceLevel {
	if lvl, ok := c[p]; ok {
		return lvl
	}
	return NotProvided
}

// registry is the Selection Properties Registry (spec §4.1 table):
// process-wide, immutable once initialized, safe for concurrent reads from
// many goroutines (spec §5 "Shared-resource policy").
var registry = map[ID]Capabilities{
	TCP: {
		Reliability:       Provided,
		PreserveOrder:     Provided,
		ZeroRttMsg:        Optional,
		CongestionControl: Provided,
		Multipath:         Optional,
		Direction:         Provided,
		RetransmitNotify:  Provided,
		SoftErrorNotify:   Provided,
	},
	UDP: {
		PreserveMsgBoundaries: Provided,
		ZeroRttMsg:            Provided,
		Direction:             Provided,
		SoftErrorNotify:       Provided,
	},
	QUIC: {
		Reliability:       Provided,
		PreserveOrder:     Provided,
		ZeroRttMsg:        Optional,
		Multistreaming:    Optional,
		CongestionControl: Provided,
		Direction:         Provided,
		SoftErrorNotify:   Provided,
	},
}

// CapabilitiesFor returns the ServiceLevel table for a registered protocol and
// true, or a nil map and false if id is not registered.
func CapabilitiesFor(id ID) (Capabilities, bool) {
	c, ok := registry[id]
	return c, ok
}

// Registered returns the protocol identifiers currently in the registry, in
// the stable order returned by All.
func Registered() []ID {
	out := make([]ID, 0, len(registry))
	for _, id := range All() {
		if _, ok := registry[id]; ok {
			out = append(out, id)
		}
	}
	return out
}
