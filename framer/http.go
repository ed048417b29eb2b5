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

package framer

import (
	"fmt"
	"strconv"
	"strings"
)

// Request is the send type for HttpClientFramer (spec §4.6).
type Request struct {
	Method string
	URI    string
	Host   string
}

// Response is the receive type for HttpClientFramer (spec §4.6).
type Response struct {
	Version string
	Status  int
	Reason  string
	Headers map[string]string
}

// HttpClientFramer is the reference Framer from spec §4.6: it encodes an
// HTTP/1.1 request line plus a single Host header, and decodes a response
// status line followed by headers until a blank line.
type HttpClientFramer struct{}

// NewSentMessage encodes a Request as:
// "<METHOD> <URI> HTTP/1.1\r\n\r\nHost: <Host>\r\n\r\n"
// matching the literal wire format fixed by spec §4.6 / scenario 6.
func (HttpClientFramer) NewSentMessage(msg Message[Request]) ([]byte, error) {
	r := msg.Payload
	uri := r.URI
	if uri == "" {
		uri = "/"
	}
	out := fmt.Sprintf("%s %s HTTP/1.1\r\n\r\nHost: %s\r\n\r\n", r.Method, uri, r.Host)
	return []byte(out), nil
}

// HandleReceivedData decodes an HTTP/1.1 response: a status line
// ("HTTP/x.y <status> <reason>"), then header lines until a blank line.
func (HttpClientFramer) HandleReceivedData(data []byte) (Response, error) {
	lines := strings.Split(string(data), "\r\n")
	if len(lines) == 0 || lines[0] == "" {
		return Response{}, fmt.Errorf("framer: empty response")
	}

	statusLine := strings.SplitN(lines[0], " ", 3)
	if len(statusLine) < 2 {
		return Response{}, fmt.Errorf("framer: malformed status line %q", lines[0])
	}

	status, err := strconv.Atoi(statusLine[1])
	if err != nil {
		return Response{}, fmt.Errorf("framer: malformed status code %q: %w", statusLine[1], err)
	}

	reason := ""
	if len(statusLine) == 3 {
		reason = statusLine[2]
	}

	resp := Response{
		Version: statusLine[0],
		Status:  status,
		Reason:  reason,
		Headers: make(map[string]string),
	}

	for _, line := range lines[1:] {
		if line == "" {
			break
		}
		kv := strings.SplitN(line, ":", 2)
		if len(kv) != 2 {
			continue
		}
		resp.Headers[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
	}

	return resp, nil
}
