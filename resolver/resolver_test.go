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

package resolver_test

import (
	"context"
	"net/netip"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nabbar/gotaps/resolver"
)

// stubResolver is a plain struct implementation of the Resolver contract;
// this test exercises the contract shape itself.
type stubResolver struct {
	addrs []netip.Addr
	err   error
}

func (s stubResolver) Resolve(ctx context.Context, hostName string) ([]netip.Addr, error) {
	return s.addrs, s.err
}

func TestStubResolverSatisfiesInterface(t *testing.T) {
	var _ resolver.Resolver = stubResolver{}
}

func TestDefaultResolverResolvesLoopback(t *testing.T) {
	r := resolver.Default()
	addrs, err := r.Resolve(context.Background(), "localhost")
	require.NoError(t, err)
	require.NotEmpty(t, addrs)
}
