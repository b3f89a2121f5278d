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

package version

import (
	"strconv"
	"strings"
)

// String renders the version in dotted form, e.g. "2.1" or "2.1.3".
func (v Version) String() string {
	b := strings.Builder{}
	b.WriteString(strconv.Itoa(v.Major))

	for _, m := range v.Minor {
		b.WriteByte('.')
		b.WriteString(strconv.Itoa(m))
	}

	return b.String()
}

// Compare returns -1, 0, or 1 as v is less than, equal to, or greater than
// o. Major is compared first; ties fall through to a component-by-component
// comparison of Minor, where a missing trailing component compares as zero.
// The result is a total order: reflexive, antisymmetric, transitive, and
// trichotomous.
func (v Version) Compare(o Version) int {
	if v.Major != o.Major {
		if v.Major < o.Major {
			return -1
		}
		return 1
	}

	n := len(v.Minor)
	if len(o.Minor) > n {
		n = len(o.Minor)
	}

	for i := 0; i < n; i++ {
		a, b := 0, 0
		if i < len(v.Minor) {
			a = v.Minor[i]
		}
		if i < len(o.Minor) {
			b = o.Minor[i]
		}
		if a != b {
			if a < b {
				return -1
			}
			return 1
		}
	}

	return 0
}

// Equal reports whether v and o compare as structurally equal.
func (v Version) Equal(o Version) bool {
	return v.Compare(o) == 0
}

// Less reports whether v orders strictly before o.
func (v Version) Less(o Version) bool {
	return v.Compare(o) < 0
}

// Between reports whether lo <= v <= hi.
func (v Version) Between(lo, hi Version) bool {
	return lo.Compare(v) <= 0 && v.Compare(hi) <= 0
}
