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

// Package endpoint provides the LocalEndpoint and RemoteEndpoint value types
// (spec §3), plain chainable builders with no validation beyond value
// ranges. The With* chain is grounded on the Remote/Local specifier
// builders in the postsocket TAPS interface (mami-project-postsocket/api.go),
// which expose the identical WithHostname/WithAddress/WithPort/WithServiceName/
// WithInterface shape over an immutable specifier.
package endpoint

// RemoteEndpoint describes a remote transport endpoint by any combination
// of address, host name, port, and service label (spec §3).
type RemoteEndpoint struct {
	port     *uint16
	address  string
	hostName string
	service  string
}

// NewRemote returns an empty RemoteEndpoint.
func NewRemote() RemoteEndpoint {
	return RemoteEndpoint{}
}

// WithPort returns a copy of r with port set.
func (r RemoteEndpoint) WithPort(port uint16) RemoteEndpoint {
	r.port = &port
	return r
}

// WithAddress returns a copy of r with a literal textual address set.
func (r RemoteEndpoint) WithAddress(address string) RemoteEndpoint {
	r.address = address
	return r
}

// WithHostName returns a copy of r with a resolvable host name set.
func (r RemoteEndpoint) WithHostName(hostName string) RemoteEndpoint {
	r.hostName = hostName
	return r
}

// WithService returns a copy of r with a service label set.
func (r RemoteEndpoint) WithService(service string) RemoteEndpoint {
	r.service = service
	return r
}

// Port returns the configured port and whether one was set.
func (r RemoteEndpoint) Port() (uint16, bool) {
	if r.port == nil {
		return 0, false
	}
	return *r.port, true
}

// Address returns the literal address and whether one was set.
func (r RemoteEndpoint) Address() (string, bool) {
	return r.address, r.address != ""
}

// HostName returns the host name and whether one was set.
func (r RemoteEndpoint) HostName() (string, bool) {
	return r.hostName, r.hostName != ""
}

// Service returns the service label and whether one was set.
func (r RemoteEndpoint) Service() (string, bool) {
	return r.service, r.service != ""
}

// LocalEndpoint describes a local transport endpoint by any combination of
// port, address, and interface name (spec §3). All fields absent means
// "any".
type LocalEndpoint struct {
	port      *uint16
	address   string
	iface     string
}

// NewLocal returns an empty LocalEndpoint ("any").
func NewLocal() LocalEndpoint {
	return LocalEndpoint{}
}

// WithPort returns a copy of l with port set.
func (l LocalEndpoint) WithPort(port uint16) LocalEndpoint {
	l.port = &port
	return l
}

// WithAddress returns a copy of l with a literal textual address set.
func (l LocalEndpoint) WithAddress(address string) LocalEndpoint {
	l.address = address
	return l
}

// WithInterface returns a copy of l with a local interface name set.
func (l LocalEndpoint) WithInterface(iface string) LocalEndpoint {
	l.iface = iface
	return l
}

// Port returns the configured port and whether one was set.
func (l LocalEndpoint) Port() (uint16, bool) {
	if l.port == nil {
		return 0, false
	}
	return *l.port, true
}

// Address returns the literal address and whether one was set.
func (l LocalEndpoint) Address() (string, bool) {
	return l.address, l.address != ""
}

// Interface returns the interface name and whether one was set.
func (l LocalEndpoint) Interface() (string, bool) {
	return l.iface, l.iface != ""
}
