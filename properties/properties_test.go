/***********************************************************************************************************************
 *
 *   MIT License
 *
 *   Copyright (c) 2024 Nicolas JUHEL
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

package properties_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	. "github.com/nabbar/gotaps/properties"
	"github.com/nabbar/gotaps/proto"
)

func TestProperties(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "properties Suite")
}

var _ = Describe("TransportProperties", func() {
	Describe("Default profile", func() {
		d := Default()

		It("requires Reliability, PreserveOrder, CongestionControl", func() {
			Expect(d.Get(proto.Reliability)).To(Equal(Require))
			Expect(d.Get(proto.PreserveOrder)).To(Equal(Require))
			Expect(d.Get(proto.CongestionControl)).To(Equal(Require))
		})

		It("prefers PreserveMsgBoundaries, ZeroRttMsg, Multistreaming, Multipath", func() {
			Expect(d.Get(proto.PreserveMsgBoundaries)).To(Equal(Prefer))
			Expect(d.Get(proto.ZeroRttMsg)).To(Equal(Prefer))
			Expect(d.Get(proto.Multistreaming)).To(Equal(Prefer))
			Expect(d.Get(proto.Multipath)).To(Equal(Prefer))
		})

		It("ignores everything else", func() {
			Expect(d.Get(proto.Direction)).To(Equal(Ignore))
			Expect(d.Get(proto.RetransmitNotify)).To(Equal(Ignore))
		})

		It("returns a fresh value each call", func() {
			a := Default().Require(proto.Multipath)
			b := Default()
			Expect(a.Get(proto.Multipath)).To(Equal(Require))
			Expect(b.Get(proto.Multipath)).To(Equal(Prefer))
		})
	})

	Describe("copy-value semantics", func() {
		It("does not mutate the receiver on Add", func() {
			base := New()
			derived := base.Require(proto.Reliability)

			Expect(base.Get(proto.Reliability)).To(Equal(Ignore))
			Expect(derived.Get(proto.Reliability)).To(Equal(Require))
		})
	})

	Describe("Rank", func() {
		It("eliminates udp when Reliability is required (scenario 4)", func() {
			tp := New().Require(proto.Reliability)
			ranked := Rank(tp)

			ids := make([]proto.ID, 0, len(ranked))
			for _, r := range ranked {
				ids = append(ids, r.ID)
			}
			Expect(ids).To(ConsistOf(proto.TCP, proto.QUIC))
		})

		It("eliminates every protocol when an unsatisfiable Prohibit is set", func() {
			tp := New().Prohibit(proto.Direction)
			Expect(Rank(tp)).To(BeEmpty())
		})

		It("never decreases rank when preferring a provided property (monotonicity)", func() {
			before := rankOf(Rank(New()), proto.TCP)
			after := rankOf(Rank(New().Prefer(proto.Reliability)), proto.TCP)
			Expect(after).To(BeNumerically(">=", before))
		})

		It("never increases rank when avoiding a provided property (monotonicity)", func() {
			before := rankOf(Rank(New()), proto.TCP)
			after := rankOf(Rank(New().Avoid(proto.Reliability)), proto.TCP)
			Expect(after).To(BeNumerically("<=", before))
		})

		It("sorts survivors by descending rank", func() {
			tp := New().Prefer(proto.Multistreaming) // only quic provides/optionals this
			ranked := Rank(tp)
			for i := 1; i < len(ranked); i++ {
				Expect(ranked[i-1].Rank).To(BeNumerically(">=", ranked[i].Rank))
			}
		})
	})
})

func rankOf(ranked []Ranked, id proto.ID) int {
	for _, r := range ranked {
		if r.ID == id {
			return r.Rank
		}
	}
	return -1
}
