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

package properties

import (
	"sort"

	"github.com/nabbar/gotaps/proto"
)

// Ranked is a protocol that survived filtering, together with its rank.
type Ranked struct {
	ID   proto.ID
	Rank int
}

// Rank implements the protocol ranking algorithm of spec §4.4.2: for every
// registered protocol, walk the caller's property preferences and either
// eliminate the protocol (Require vs NotProvided, Prohibit vs not
// NotProvided) or accumulate rank (Prefer/Avoid matches). The survivors are
// returned sorted by descending rank; ties keep registry order
// (proto.Registered()), which is stable across calls within one process -
// satisfying spec §4.4.2's "tie-break is implementation-defined but MUST be
// stable within a single call".
func Rank(tp TransportProperties) []Ranked {
	candidates := proto.Registered()
	out := make([]Ranked, 0, len(candidates))

	for _, id := range candidates {
		caps, ok := proto.CapabilitiesFor(id)
		if !ok {
			continue
		}

		eliminated := false
		rank := 0

		for _, p := range proto.Properties() {
			level := tp.Get(p)
			svc := caps.Get(p)

			switch level {
			case Require:
				if svc == proto.NotProvided {
					eliminated = true
				}
			case Prohibit:
				if svc != proto.NotProvided {
					eliminated = true
				}
			case Prefer:
				if svc == proto.Provided || svc == proto.Optional {
					rank++
				}
			case Avoid:
				if svc == proto.NotProvided {
					rank++
				}
			case Ignore:
				// no effect
			}

			if eliminated {
				break
			}
		}

		if !eliminated {
			out = append(out, Ranked{ID: id, Rank: rank})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Rank > out[j].Rank
	})

	return out
}
