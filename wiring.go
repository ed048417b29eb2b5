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

package gotaps

import (
	"context"
	"crypto/tls"

	"github.com/nabbar/gotaps/internal/candidate"
	"github.com/nabbar/gotaps/internal/race"
	"github.com/nabbar/gotaps/internal/transportinstance"
	"github.com/nabbar/gotaps/proto"
)

// defaultDialers builds the race.Dialers table from
// internal/transportinstance's per-protocol Dial functions (spec §4.4.5).
// tlsConf is threaded through to the QUIC variant only; a nil value falls
// back to DialQUIC's own insecure default (spec §1: TLS is an external
// collaborator, out of scope for the core).
func defaultDialers(tlsConf *tls.Config) race.Dialers {
	return race.Dialers{
		proto.TCP: func(ctx context.Context, c candidate.Candidate) (*transportinstance.Instance, error) {
			return transportinstance.DialTCP(ctx, c.Remote, c.Local)
		},
		proto.UDP: func(ctx context.Context, c candidate.Candidate) (*transportinstance.Instance, error) {
			return transportinstance.DialUDP(ctx, c.Remote, c.Local)
		},
		proto.QUIC: func(ctx context.Context, c candidate.Candidate) (*transportinstance.Instance, error) {
			return transportinstance.DialQUIC(ctx, c.Remote, c.Local, tlsConf)
		},
	}
}
