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

// Package profile loads a named TransportProperties profile from a
// viper-backed config tree, the same niche the teacher's socket/config
// package fills for raw socket construction (Network/Address/Timeout
// unmarshalled via viper, validated, then handed to the dialer). Here the
// config shape is a map of property name to preference level name, e.g.:
//
//	profiles:
//	  low-latency:
//	    reliability: require
//	    preserve-order: require
//	    zero-rtt-msg: prefer
//	    multistreaming: avoid
package profile

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/nabbar/gotaps/properties"
	"github.com/nabbar/gotaps/proto"
)

// Key is the top-level viper key this package reads profiles from.
const Key = "profiles"

// Load reads the named profile from v (rooted at "profiles.<name>") and
// returns the equivalent TransportProperties, starting from
// properties.New() so every property not mentioned in the config defaults
// to Ignore, exactly as a caller building one programmatically would get.
func Load(v *viper.Viper, name string) (properties.TransportProperties, error) {
	if v == nil {
		v = viper.New()
	}

	raw := v.GetStringMapString(fmt.Sprintf("%s.%s", Key, name))
	if len(raw) == 0 {
		return properties.TransportProperties{}, fmt.Errorf("profile: profile %q not found under %q", name, Key)
	}

	tp := properties.New()
	for propName, levelName := range raw {
		prop, ok := proto.ParseSelectionProperty(propName)
		if !ok {
			return properties.TransportProperties{}, fmt.Errorf("profile: unknown selection property %q in profile %q", propName, name)
		}
		level, ok := properties.ParsePreferenceLevel(levelName)
		if !ok {
			return properties.TransportProperties{}, fmt.Errorf("profile: unknown preference level %q for property %q in profile %q", levelName, propName, name)
		}
		tp = tp.Add(prop, level)
	}
	return tp, nil
}

// Names returns every profile name declared under the profiles key, in the
// order viper's underlying map yields them (unordered).
func Names(v *viper.Viper) []string {
	if v == nil {
		return nil
	}
	sub := v.GetStringMap(Key)
	out := make([]string, 0, len(sub))
	for name := range sub {
		out = append(out, name)
	}
	return out
}
