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

// Package resolver defines the host-name resolution collaborator contract
// (spec §4.3: "Resolution to socket addresses is performed by the
// Preconnection using the external resolver collaborator") and a default
// implementation backed by net.DefaultResolver. DNS resolution itself is
// explicitly out of scope for the core (spec §1); this package only
// specifies and satisfies that external contract.
package resolver

import (
	"context"
	"net"
	"net/netip"
)

// Resolver expands a host name into an ordered list of IPv4 and IPv6
// addresses. It takes no port: the Preconnection pairs each returned address
// with the remote endpoint's port.
type Resolver interface {
	Resolve(ctx context.Context, hostName string) ([]netip.Addr, error)
}

// Default returns a Resolver backed by net.DefaultResolver.
func Default() Resolver {
	return netResolver{r: net.DefaultResolver}
}

type netResolver struct {
	r *net.Resolver
}

func (n netResolver) Resolve(ctx context.Context, hostName string) ([]netip.Addr, error) {
	ips, err := n.r.LookupIP(ctx, "ip", hostName)
	if err != nil {
		return nil, err
	}

	out := make([]netip.Addr, 0, len(ips))
	for _, ip := range ips {
		addr, ok := netip.AddrFromSlice(ip)
		if !ok {
			continue
		}
		out = append(out, addr.Unmap())
	}
	return out, nil
}
