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

// Package race implements the delayed concurrent candidate racing of spec
// §4.4.5: one attempt task per candidate, staggered by a k*250ms start
// delay, first success wins and cancels the rest. Modelled on the teacher's
// use of golang.org/x/sync/errgroup for bounded concurrent fan-out
// (nabbar/golib/ioutils and nabbar/golib/context use the same package for
// cooperative cancellation of sibling goroutines).
package race

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nabbar/gotaps/errors"
	"github.com/nabbar/gotaps/internal/candidate"
	"github.com/nabbar/gotaps/internal/transportinstance"
	"github.com/nabbar/gotaps/logger"
	"github.com/nabbar/gotaps/proto"
)

// StartDelay is the per-candidate staggering interval (spec §4.4.5: "k x
// 250ms").
const StartDelay = 250 * time.Millisecond

// Dialers maps each supported protocol to its attempt function. The root
// package binds these to transportinstance.DialTCP/DialUDP/DialQUIC.
type Dialers map[proto.ID]func(ctx context.Context, c candidate.Candidate) (*transportinstance.Instance, error)

// Run races every candidate per spec §4.4.5 and returns the first
// established Instance. All losing attempts are cancelled and their
// sockets closed (best-effort); individual failures are logged, not
// propagated, and only total exhaustion surfaces as NoCandidateSucceeded.
func Run(ctx context.Context, log logger.Logger, dialers Dialers, candidates []candidate.Candidate) (*transportinstance.Instance, proto.ID, error) {
	if log == nil {
		log = logger.Discard()
	}
	if len(candidates) == 0 {
		return nil, proto.Unknown, errors.New(errors.NoCandidateSucceeded, "race.Run")
	}

	raceCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	type result struct {
		instance *transportinstance.Instance
		protocol proto.ID
	}
	winner := make(chan result, 1)

	g, gctx := errgroup.WithContext(raceCtx)

	for k, c := range candidates {
		k, c := k, c
		dial, ok := dialers[c.Protocol]
		if !ok {
			continue
		}

		g.Go(func() error {
			delay := time.Duration(k) * StartDelay
			t := time.NewTimer(delay)
			defer t.Stop()

			select {
			case <-gctx.Done():
				return nil
			case <-t.C:
			}

			inst, err := dial(gctx, c)
			if err != nil {
				log.Debug("candidate attempt failed", "protocol", c.Protocol.String(), "remote", c.Remote.String(), "error", err)
				return nil
			}

			select {
			case winner <- result{instance: inst, protocol: c.Protocol}:
				cancel()
			default:
				// a winner was already delivered; this attempt lost the race.
				_ = inst.Close()
			}
			return nil
		})
	}

	waitDone := make(chan struct{})
	go func() {
		_ = g.Wait()
		close(waitDone)
	}()

	select {
	case r := <-winner:
		<-waitDone
		return r.instance, r.protocol, nil
	case <-waitDone:
		select {
		case r := <-winner:
			return r.instance, r.protocol, nil
		default:
			return nil, proto.Unknown, errors.New(errors.NoCandidateSucceeded, "race.Run")
		}
	}
}
