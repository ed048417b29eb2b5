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
	"errors"
	"net"
	"sync"
	"time"
)

// udpPeerConn adapts one demultiplexed peer of a shared, listening UDP
// socket to the net.Conn shape transportinstance.NewUDP expects: Write
// sends to this peer alone via WriteToUDP on the shared socket; Read pulls
// datagrams the Listener's single reader goroutine has already classified
// as belonging to this peer. Closing a udpPeerConn only detaches it from
// reads; it never closes the shared listening socket, which outlives any
// one peer.
type udpPeerConn struct {
	shared *net.UDPConn
	raddr  *net.UDPAddr

	mu     sync.Mutex
	queue  chan []byte
	closed chan struct{}
}

func newUDPPeerConn(shared *net.UDPConn, raddr *net.UDPAddr) *udpPeerConn {
	return &udpPeerConn{
		shared: shared,
		raddr:  raddr,
		queue:  make(chan []byte, 32),
		closed: make(chan struct{}),
	}
}

// deliver hands the Listener's reader goroutine's next datagram for this
// peer to a pending or future Read. Never blocks past a full queue; a
// slow reader drops the oldest rather than stalling the shared socket's
// single reader goroutine.
func (u *udpPeerConn) deliver(data []byte) {
	select {
	case u.queue <- data:
	default:
		select {
		case <-u.queue:
		default:
		}
		select {
		case u.queue <- data:
		default:
		}
	}
}

func (u *udpPeerConn) Read(b []byte) (int, error) {
	select {
	case data := <-u.queue:
		n := copy(b, data)
		return n, nil
	case <-u.closed:
		return 0, net.ErrClosed
	}
}

func (u *udpPeerConn) Write(b []byte) (int, error) {
	return u.shared.WriteToUDP(b, u.raddr)
}

func (u *udpPeerConn) Close() error {
	u.mu.Lock()
	defer u.mu.Unlock()
	select {
	case <-u.closed:
	default:
		close(u.closed)
	}
	return nil
}

func (u *udpPeerConn) LocalAddr() net.Addr  { return u.shared.LocalAddr() }
func (u *udpPeerConn) RemoteAddr() net.Addr { return u.raddr }

func (u *udpPeerConn) SetDeadline(t time.Time) error      { return errUDPPeerNoDeadline }
func (u *udpPeerConn) SetReadDeadline(t time.Time) error  { return errUDPPeerNoDeadline }
func (u *udpPeerConn) SetWriteDeadline(t time.Time) error { return errUDPPeerNoDeadline }

var errUDPPeerNoDeadline = errors.New("gotaps: per-peer udp deadlines are not supported")
