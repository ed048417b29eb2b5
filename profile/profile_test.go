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

package profile_test

import (
	"bytes"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/nabbar/gotaps/profile"
	"github.com/nabbar/gotaps/properties"
	"github.com/nabbar/gotaps/proto"
)

const yamlConfig = `
profiles:
  low-latency:
    reliability: require
    preserve-order: require
    zero-rtt-msg: prefer
    multistreaming: avoid
  bulk:
    reliability: require
    congestion-control: require
`

func loadedViper(t *testing.T) *viper.Viper {
	t.Helper()
	v := viper.New()
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(bytes.NewBufferString(yamlConfig)))
	return v
}

func TestLoadParsesPropertiesAndLevels(t *testing.T) {
	v := loadedViper(t)

	tp, err := profile.Load(v, "low-latency")
	require.NoError(t, err)
	require.Equal(t, properties.Require, tp.Get(proto.Reliability))
	require.Equal(t, properties.Require, tp.Get(proto.PreserveOrder))
	require.Equal(t, properties.Prefer, tp.Get(proto.ZeroRttMsg))
	require.Equal(t, properties.Avoid, tp.Get(proto.Multistreaming))
	// everything else defaults to Ignore
	require.Equal(t, properties.Ignore, tp.Get(proto.Multipath))
}

func TestLoadUnknownProfileErrors(t *testing.T) {
	v := loadedViper(t)
	_, err := profile.Load(v, "does-not-exist")
	require.Error(t, err)
}

func TestLoadUnknownPropertyNameErrors(t *testing.T) {
	v := viper.New()
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(bytes.NewBufferString(`
profiles:
  broken:
    not-a-real-property: require
`)))

	_, err := profile.Load(v, "broken")
	require.Error(t, err)
}

func TestLoadUnknownPreferenceLevelErrors(t *testing.T) {
	v := viper.New()
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(bytes.NewBufferString(`
profiles:
  broken:
    reliability: maybe
`)))

	_, err := profile.Load(v, "broken")
	require.Error(t, err)
}

func TestNamesListsDeclaredProfiles(t *testing.T) {
	v := loadedViper(t)
	names := profile.Names(v)
	require.ElementsMatch(t, []string{"low-latency", "bulk"}, names)
}
