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

	"github.com/nabbar/gotaps/errors"
	"github.com/nabbar/gotaps/framer"
	"github.com/nabbar/gotaps/internal/transportinstance"
	"github.com/nabbar/gotaps/proto"
)

// receiveBufferSize is the fixed receive buffer size noted as a candidate
// configuration knob in spec §9 ("Receive buffer size is fixed at 1024
// bytes in the source ... implementations MAY grow dynamically").
const receiveBufferSize = 1024

// Connection owns one established TransportInstance plus a reference to
// the Framer that encodes/decodes its messages (spec §3, §4.5). It is
// created either by Preconnection.Initiate or by a Listener accepting an
// incoming peer.
type Connection[T any, U any] struct {
	instance *transportinstance.Instance
	protocol proto.ID
	framer   framer.Framer[T, U]
}

// Protocol reports which protocol stack this Connection's TransportInstance
// is using, i.e. which candidate won the race (or which protocol a
// Listener bound it from).
func (c *Connection[T, U]) Protocol() proto.ID {
	return c.protocol
}

// Send encodes msg via the Framer and writes it to the active
// TransportInstance (spec §4.5).
func (c *Connection[T, U]) Send(ctx context.Context, msg framer.Message[T]) error {
	data, err := c.framer.NewSentMessage(msg)
	if err != nil {
		return errors.Wrap(errors.MessageSendFailed, "Connection.Send", err)
	}
	if err := c.instance.Write(ctx, data); err != nil {
		return errors.Wrap(errors.MessageSendFailed, "Connection.Send", err)
	}
	return nil
}

// Receive reads the next chunk of bytes from the TransportInstance and
// decodes it via the Framer (spec §4.5).
func (c *Connection[T, U]) Receive(ctx context.Context) (framer.Message[U], error) {
	buf := make([]byte, receiveBufferSize)
	n, err := c.instance.Read(ctx, buf)
	if err != nil {
		return framer.Message[U]{}, errors.Wrap(errors.MessageReceiveFailed, "Connection.Receive", err)
	}

	payload, err := c.framer.HandleReceivedData(buf[:n])
	if err != nil {
		return framer.Message[U]{}, errors.Wrap(errors.MessageReceiveFailed, "Connection.Receive", err)
	}
	return framer.NewMessage(payload), nil
}

// Close gracefully terminates the underlying transport, waiting for
// in-flight sends to drain (spec §4.5, §5).
func (c *Connection[T, U]) Close() error {
	if err := c.instance.Close(); err != nil {
		return errors.Wrap(errors.Io, "Connection.Close", err)
	}
	return nil
}

// Abort is immediate, no-wait teardown: it releases the underlying
// transport's resources without attempting a graceful shutdown (spec §4.5,
// §5: "abort does not [suspend]").
func (c *Connection[T, U]) Abort() {
	c.instance.Abort()
}
