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
	"net/netip"

	"github.com/spf13/viper"

	"github.com/nabbar/gotaps/endpoint"
	"github.com/nabbar/gotaps/errors"
	"github.com/nabbar/gotaps/framer"
	"github.com/nabbar/gotaps/internal/candidate"
	"github.com/nabbar/gotaps/internal/race"
	"github.com/nabbar/gotaps/logger"
	"github.com/nabbar/gotaps/profile"
	"github.com/nabbar/gotaps/properties"
	"github.com/nabbar/gotaps/proto"
	"github.com/nabbar/gotaps/resolver"
)

// Preconnection is the immutable bundle of (local?, remote?,
// TransportProperties, framer reference) from which both Initiate and
// Listen are derived (spec §3). It is copy-value: every With* method
// returns an independent Preconnection sharing no mutable state with the
// receiver (spec §5 "Shared-resource policy").
type Preconnection[T any, U any] struct {
	local    *endpoint.LocalEndpoint
	remote   *endpoint.RemoteEndpoint
	props    *properties.TransportProperties
	framer   framer.Framer[T, U]
	resolver resolver.Resolver
	logger   logger.Logger
	tlsConf  *tls.Config
}

// New builds a Preconnection. local, remote and props may be nil; an
// absent props is substituted with properties.Default() at Initiate/Listen
// time (spec §4.4.1).
func New[T any, U any](local *endpoint.LocalEndpoint, remote *endpoint.RemoteEndpoint, props *properties.TransportProperties, fr framer.Framer[T, U]) Preconnection[T, U] {
	return Preconnection[T, U]{
		local:    local,
		remote:   remote,
		props:    props,
		framer:   fr,
		resolver: resolver.Default(),
		logger:   logger.Discard(),
	}
}

// NewFromProfile builds a Preconnection the same way New does, except props
// comes from a named profile in a viper-backed config tree (package
// profile) instead of being assembled by the caller property-by-property.
// This is the Configuration-layer entry point SPEC_FULL.md's named-profile
// requirement describes: a deployment ships profiles under a "profiles" key
// (viper config file, env, flags, ...) and selects one by name at startup.
func NewFromProfile[T any, U any](local *endpoint.LocalEndpoint, remote *endpoint.RemoteEndpoint, v *viper.Viper, profileName string, fr framer.Framer[T, U]) (Preconnection[T, U], error) {
	props, err := profile.Load(v, profileName)
	if err != nil {
		return Preconnection[T, U]{}, errors.Wrap(errors.Unknown, "NewFromProfile", err)
	}
	return New(local, remote, &props, fr), nil
}

// WithResolver returns a copy of p using r to expand host names instead of
// resolver.Default().
func (p Preconnection[T, U]) WithResolver(r resolver.Resolver) Preconnection[T, U] {
	p.resolver = r
	return p
}

// WithLogger returns a copy of p logging per-attempt diagnostics to l.
func (p Preconnection[T, U]) WithLogger(l logger.Logger) Preconnection[T, U] {
	p.logger = l
	return p
}

// WithTLSConfig returns a copy of p using conf for the QUIC variant's
// handshake. Without it, a Listener generates a self-signed certificate and
// Initiate dials QUIC without verifying the peer's certificate. The
// TLS/certificate layer is an out-of-scope external collaborator (spec
// §1); this is its contract point.
func (p Preconnection[T, U]) WithTLSConfig(conf *tls.Config) Preconnection[T, U] {
	p.tlsConf = conf
	return p
}

func (p Preconnection[T, U]) properties() properties.TransportProperties {
	if p.props == nil {
		return properties.Default()
	}
	return *p.props
}

// validateInitiate implements spec §4.4.1's input validation for initiate.
func (p Preconnection[T, U]) validateInitiate() error {
	if p.remote == nil {
		return errors.New(errors.RemoteEndpointNotProvided, "Preconnection.Initiate")
	}
	if _, ok := p.remote.Port(); !ok {
		return errors.New(errors.RemoteEndpointPortNotProvided, "Preconnection.Initiate")
	}
	_, hasAddr := p.remote.Address()
	_, hasHost := p.remote.HostName()
	if !hasAddr && !hasHost {
		return errors.New(errors.RemoteEndpointAddressAndHostNameBothNotProvided, "Preconnection.Initiate")
	}
	return nil
}

// gatherRemoteAddresses implements spec §4.4.3's remote address gathering:
// the union of the literal address (if any) and the resolver's expansion
// of the host name (if any), deduplicated by (ip, port).
func (p Preconnection[T, U]) gatherRemoteAddresses(ctx context.Context) ([]netip.AddrPort, error) {
	port, _ := p.remote.Port()

	var out []netip.AddrPort

	if addr, ok := p.remote.Address(); ok {
		if ip, err := netip.ParseAddr(addr); err == nil {
			out = append(out, netip.AddrPortFrom(ip, port))
		}
	}

	if host, ok := p.remote.HostName(); ok {
		addrs, err := p.resolver.Resolve(ctx, host)
		if err != nil {
			return nil, errors.Wrap(errors.Io, "Preconnection.Initiate", err)
		}
		for _, a := range addrs {
			out = append(out, netip.AddrPortFrom(a, port))
		}
	}

	return candidate.DedupeRemotes(out), nil
}

// gatherLocalAddresses implements spec §4.4.3's local address gathering:
// a single resolved socket address if a literal address and port are both
// supplied, otherwise none.
func (p Preconnection[T, U]) gatherLocalAddresses() []*netip.AddrPort {
	if p.local == nil {
		return nil
	}
	addr, hasAddr := p.local.Address()
	port, hasPort := p.local.Port()
	if !hasAddr || !hasPort {
		return nil
	}
	ip, err := netip.ParseAddr(addr)
	if err != nil {
		return nil
	}
	ap := netip.AddrPortFrom(ip, port)
	return []*netip.AddrPort{&ap}
}

// rankedProtocolIDs implements spec §4.4.2: rank every registered protocol
// against props, eliminate non-survivors, sort descending by rank.
func rankedProtocolIDs(props properties.TransportProperties) ([]proto.ID, error) {
	ranked := properties.Rank(props)
	if len(ranked) == 0 {
		return nil, errors.New(errors.NoCompatibleProtocolStacks, "Preconnection.Initiate")
	}
	ids := make([]proto.ID, len(ranked))
	for i, r := range ranked {
		ids[i] = r.ID
	}
	return ids, nil
}

// Initiate performs candidate gathering and racing (spec §4.4.1-§4.4.5),
// returning the Connection wrapping the first TransportInstance to
// establish.
func (p Preconnection[T, U]) Initiate(ctx context.Context) (*Connection[T, U], error) {
	if err := p.validateInitiate(); err != nil {
		return nil, err
	}

	props := p.properties()
	ids, err := rankedProtocolIDs(props)
	if err != nil {
		return nil, err
	}

	remotes, err := p.gatherRemoteAddresses(ctx)
	if err != nil {
		return nil, err
	}
	locals := p.gatherLocalAddresses()

	candidates := candidate.Build(ids, remotes, locals)

	inst, winner, err := race.Run(ctx, p.logger, defaultDialers(p.tlsConf), candidates)
	if err != nil {
		return nil, err
	}

	return &Connection[T, U]{instance: inst, protocol: winner, framer: p.framer}, nil
}

// Listen prepares a Listener bound to the Preconnection's local endpoint
// (spec §4.4.6). It fails with LocalEndpointNotProvided if no local
// endpoint was supplied.
func (p Preconnection[T, U]) Listen(ctx context.Context) (*Listener[T, U], error) {
	if p.local == nil {
		return nil, errors.New(errors.LocalEndpointNotProvided, "Preconnection.Listen")
	}

	addr, hasAddr := p.local.Address()
	if !hasAddr {
		addr = "0.0.0.0"
	}
	port, _ := p.local.Port()

	ip, err := netip.ParseAddr(addr)
	if err != nil {
		return nil, errors.Wrap(errors.LocalEndpointNotProvided, "Preconnection.Listen", err)
	}
	localAddr := netip.AddrPortFrom(ip, port)

	props := p.properties()
	ids, err := rankedProtocolIDs(props)
	if err != nil {
		return nil, err
	}

	var allowed []netip.Addr
	if p.remote != nil {
		remotes, err := p.gatherRemoteAddresses(ctx)
		if err != nil {
			return nil, err
		}
		for _, r := range remotes {
			allowed = append(allowed, r.Addr())
		}
	}

	return &Listener[T, U]{
		local:     localAddr,
		protocols: ids,
		allowed:   allowed,
		framer:    p.framer,
		logger:    p.logger,
		tlsConf:   p.tlsConf,
	}, nil
}
