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

// Package candidate implements address gathering, de-duplication, and the
// Happy-Eyeballs-shaped candidate list construction of spec §4.4.3-§4.4.4.
// original_source/src/preconnection.rs de-duplicates remote addresses by
// socket pair before interleaving; that step is kept here as an
// independently testable function (DedupeRemotes) rather than inlined into
// the list builder, per SPEC_FULL.md's "supplemented features" section.
package candidate

import (
	"net/netip"

	"github.com/nabbar/gotaps/proto"
)

// Candidate is one (remote, local?, protocol) tuple to attempt (spec §3).
type Candidate struct {
	Remote   netip.AddrPort
	Local    *netip.AddrPort
	Protocol proto.ID
}

// DedupeRemotes removes duplicate (ip, port) pairs, keeping the first
// occurrence's order (spec §4.4.3).
func DedupeRemotes(addrs []netip.AddrPort) []netip.AddrPort {
	seen := make(map[netip.AddrPort]struct{}, len(addrs))
	out := make([]netip.AddrPort, 0, len(addrs))
	for _, a := range addrs {
		if _, ok := seen[a]; ok {
			continue
		}
		seen[a] = struct{}{}
		out = append(out, a)
	}
	return out
}

// Partition splits addrs into IPv6 and IPv4 lists, preserving relative
// order within each (spec §4.4.4).
func Partition(addrs []netip.AddrPort) (v6, v4 []netip.AddrPort) {
	for _, a := range addrs {
		if a.Addr().Is4() || a.Addr().Is4In6() {
			v4 = append(v4, a)
		} else {
			v6 = append(v6, a)
		}
	}
	return v6, v4
}

// pair is a (remote, local?) combination, local being nil when no local
// endpoint was supplied.
type pair struct {
	remote netip.AddrPort
	local  *netip.AddrPort
}

func pairAll(remotes []netip.AddrPort, locals []*netip.AddrPort) []pair {
	if len(locals) == 0 {
		locals = []*netip.AddrPort{nil}
	}
	out := make([]pair, 0, len(remotes)*len(locals))
	for _, r := range remotes {
		for _, l := range locals {
			out = append(out, pair{remote: r, local: l})
		}
	}
	return out
}

// interleave round-robins a and b, a taking the first slot, until both are
// exhausted (spec §4.4.4: "IPv6 taking the first slot ... both make
// progress").
func interleave(a, b []pair) []pair {
	out := make([]pair, 0, len(a)+len(b))
	for i := 0; i < len(a) || i < len(b); i++ {
		if i < len(a) {
			out = append(out, a[i])
		}
		if i < len(b) {
			out = append(out, b[i])
		}
	}
	return out
}

// Build constructs the final candidate vector (spec §4.4.4): protocols in
// descending-rank order (as already sorted by properties.Rank); within
// each protocol, de-duped remotes partitioned by family, paired with every
// local address (or a single nil), and interleaved IPv6-first.
func Build(protocolsByRank []proto.ID, remotes []netip.AddrPort, locals []*netip.AddrPort) []Candidate {
	deduped := DedupeRemotes(remotes)
	v6, v4 := Partition(deduped)
	v6Paired := pairAll(v6, locals)
	v4Paired := pairAll(v4, locals)
	merged := interleave(v6Paired, v4Paired)

	out := make([]Candidate, 0, len(merged)*len(protocolsByRank))
	for _, id := range protocolsByRank {
		for _, p := range merged {
			out = append(out, Candidate{Remote: p.remote, Local: p.local, Protocol: id})
		}
	}
	return out
}
