/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
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

// Package version provides the MCP protocol version type.
//
// An MCP version is a pair (major, minor) where minor is itself a dotted
// numeric tail ("1", "1.2", "1.2.3", ...) compared lexicographically,
// component by component. Only major and a single minor component are
// required; trailing components are optional and never cause a comparison
// to fail - a missing trailing component compares as zero.
//
// Example:
//
//	lo := version.Parse(`2.1`)
//	hi := version.Parse(`2.1`)
//	want := version.New(2, 1)
//
//	if want.Between(lo, hi) {
//	    // server advertises a range that covers the client's version
//	}
package version

import (
	"strconv"
	"strings"
)

// Version is an MCP protocol version: a required major component and a
// dotted tail of minor components, ordered lexicographically.
type Version struct {
	Major int
	Minor []int
}

// New builds a Version from its integer components.
func New(major int, minor ...int) Version {
	return Version{Major: major, Minor: append([]int(nil), minor...)}
}

// Parse reads a dotted version string such as "2.1" or "2.1.3".
//
// The first dot-separated component becomes Major, the rest become Minor.
// Leading/trailing whitespace and surrounding quotes are tolerated, matching
// how the MCP wire grammar quotes version strings in its header lines.
func Parse(s string) (Version, error) {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, `"'`)

	if s == "" {
		return Version{}, ErrorEmpty.Error(nil)
	}

	parts := strings.Split(s, ".")
	nums := make([]int, 0, len(parts))

	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			return Version{}, ErrorParse.Error(nil)
		}

		n, err := strconv.Atoi(p)
		if err != nil {
			return Version{}, ErrorParse.Error(err)
		}

		nums = append(nums, n)
	}

	return Version{Major: nums[0], Minor: nums[1:]}, nil
}

// MustParse is like Parse but panics on error; useful for package-level
// constants such as the protocol version this library speaks.
func MustParse(s string) Version {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}
