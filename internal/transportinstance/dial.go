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

package transportinstance

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/netip"

	uuid "github.com/hashicorp/go-uuid"
	"github.com/quic-go/quic-go"
)

// DialTCP establishes a TCP stream to remote, optionally from local (spec
// §4.4.5: "success = handshake complete").
func DialTCP(ctx context.Context, remote netip.AddrPort, local *netip.AddrPort) (*Instance, error) {
	d := &net.Dialer{}
	if local != nil {
		d.LocalAddr = net.TCPAddrFromAddrPort(*local)
	}
	conn, err := d.DialContext(ctx, "tcp", remote.String())
	if err != nil {
		return nil, err
	}
	return NewTCP(conn), nil
}

// DialUDP binds a local address and connects a datagram socket to remote
// (spec §4.4.5). Per the open question in spec §9, a UDP attempt with no
// local endpoint supplied implicitly binds to the unspecified address
// matching remote's family, mirroring QUIC's own implicit-bind behaviour,
// rather than failing outright.
func DialUDP(ctx context.Context, remote netip.AddrPort, local *netip.AddrPort) (*Instance, error) {
	laddr := unspecifiedFor(remote, local)

	d := &net.Dialer{LocalAddr: net.UDPAddrFromAddrPort(laddr)}
	conn, err := d.DialContext(ctx, "udp", remote.String())
	if err != nil {
		return nil, err
	}
	return NewUDP(conn), nil
}

// DialQUIC creates a UDP socket (bound like DialUDP's implicit-bind
// behaviour unless local is given), then drives the QUIC handshake with a
// random source connection ID of the library's maximum length (spec
// §4.4.5). quic-go performs the "poll -> recv -> feed -> send" loop the
// spec describes (modelled on the original Rust source's use of quiche)
// internally inside Transport.Dial; gotaps still owns the UDP PacketConn
// explicitly so the Quic TransportInstance variant can bundle conn+socket
// as spec §3 requires.
func DialQUIC(ctx context.Context, remote netip.AddrPort, local *netip.AddrPort, tlsConf *tls.Config) (*Instance, error) {
	laddr := unspecifiedFor(remote, local)

	pconn, err := net.ListenUDP("udp", net.UDPAddrFromAddrPort(laddr))
	if err != nil {
		return nil, err
	}

	transport := &quic.Transport{
		Conn:                  pconn,
		ConnectionIDGenerator: randomConnIDGenerator{},
	}

	if tlsConf == nil {
		// certificate verification is an out-of-scope collaborator (spec §1);
		// a caller that cares about authenticity supplies its own tls.Config.
		tlsConf = &tls.Config{InsecureSkipVerify: true}
	}
	if len(tlsConf.NextProtos) == 0 {
		tlsConf = tlsConf.Clone()
		tlsConf.NextProtos = []string{"gotaps"}
	}

	conn, err := transport.Dial(ctx, net.UDPAddrFromAddrPort(remote), tlsConf, &quic.Config{})
	if err != nil {
		_ = pconn.Close()
		return nil, err
	}

	return NewQUIC(conn, pconn), nil
}

// unspecifiedFor returns local if given, or else the unspecified address
// (0.0.0.0:0 / [::]:0) matching remote's address family.
func unspecifiedFor(remote netip.AddrPort, local *netip.AddrPort) netip.AddrPort {
	if local != nil {
		return *local
	}
	if remote.Addr().Is4() {
		return netip.AddrPortFrom(netip.IPv4Unspecified(), 0)
	}
	return netip.AddrPortFrom(netip.IPv6Unspecified(), 0)
}

// randomConnIDGenerator generates a random source connection ID of
// quic-go's maximum connection ID length on every call, using
// hashicorp/go-uuid's CSPRNG-backed byte generator (the same dependency
// the teacher's go.mod already carries for ID generation elsewhere).
type randomConnIDGenerator struct{}

func (randomConnIDGenerator) GenerateConnectionID() (quic.ConnectionID, error) {
	b, err := uuid.GenerateRandomBytes(quic.MaxConnIDLen)
	if err != nil {
		return quic.ConnectionID{}, fmt.Errorf("transportinstance: generating connection id: %w", err)
	}
	return quic.ConnectionIDFromBytes(b), nil
}

func (randomConnIDGenerator) ConnectionIDLen() int {
	return quic.MaxConnIDLen
}
