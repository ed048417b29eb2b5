/***********************************************************************************************************************
 *
 *   MIT License
 *
 *   Copyright (c) 2022 Nicolas JUHEL
 *
 *   Permission is hereby granted, free of charge, to any person obtaining a copy
 *   of this software and associated documentation files (the "Software"), to deal
 *   in the Software without restriction, including without limitation the rights
 *   to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 *   copies of the Software, and to permit persons to whom the Software is
 *   furnished to do so, subject to the following conditions:
 *
 *   The above copyright notice and this permission notice shall be included in all
 *   copies or substantial portions of the Software.
 *
 *   THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 *   IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 *   FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 *   AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 *   LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 *   OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 *   SOFTWARE.
 *
 *
 **********************************************************************************************************************/

package proto_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	. "github.com/nabbar/gotaps/proto"
)

func TestProto(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "proto Suite")
}

var _ = Describe("Protocol identifiers", func() {
	Describe("String() and Code()", func() {
		It("returns 'tcp' for TCP", func() {
			Expect(TCP.String()).To(Equal("tcp"))
			Expect(TCP.Code()).To(Equal("tcp"))
		})

		It("returns 'udp' for UDP", func() {
			Expect(UDP.String()).To(Equal("udp"))
		})

		It("returns 'quic' for QUIC", func() {
			Expect(QUIC.String()).To(Equal("quic"))
		})

		It("returns empty string for an undefined value", func() {
			Expect(ID(99).String()).To(Equal(""))
		})
	})

	Describe("Selection Properties Registry", func() {
		It("registers exactly tcp, udp, quic", func() {
			Expect(Registered()).To(ConsistOf(TCP, UDP, QUIC))
		})

		It("matches the spec capability table for tcp", func() {
			caps, ok := CapabilitiesFor(TCP)
			Expect(ok).To(BeTrue())
			Expect(caps.Get(Reliability)).To(Equal(Provided))
			Expect(caps.Get(PreserveMsgBoundaries)).To(Equal(NotProvided))
			Expect(caps.Get(Multistreaming)).To(Equal(NotProvided))
			Expect(caps.Get(Multipath)).To(Equal(Optional))
		})

		It("matches the spec capability table for udp", func() {
			caps, _ := CapabilitiesFor(UDP)
			Expect(caps.Get(Reliability)).To(Equal(NotProvided))
			Expect(caps.Get(PreserveMsgBoundaries)).To(Equal(Provided))
			Expect(caps.Get(ZeroRttMsg)).To(Equal(Provided))
		})

		It("matches the spec capability table for quic", func() {
			caps, _ := CapabilitiesFor(QUIC)
			Expect(caps.Get(Reliability)).To(Equal(Provided))
			Expect(caps.Get(Multistreaming)).To(Equal(Optional))
			Expect(caps.Get(Multipath)).To(Equal(NotProvided))
		})

		It("defaults unregistered protocols to not-ok", func() {
			_, ok := CapabilitiesFor(Unknown)
			Expect(ok).To(BeFalse())
		})

		It("every property has a total entry defaulting to NotProvided", func() {
			caps, _ := CapabilitiesFor(TCP)
			for _, p := range Properties() {
				_ = caps.Get(p) // must not panic for any property, spec invariant
			}
			Expect(caps.Get(PerMsgReliability)).To(Equal(NotProvided))
		})
	})
})
