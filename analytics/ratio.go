// Copyright 2025-2026
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package analytics

import (
	"math"

	"github.com/goccy/go-json"
)

// Ratio is a risk-adjusted metric that may have no defined value. A ratio is
// undefined when its denominator (volatility, downside deviation, tracking
// error, or benchmark variance) is exactly zero — "no signal" rather than a
// zero value. An undefined Ratio marshals to JSON null and never leaks NaN
// into further arithmetic.
type Ratio struct {
	value   float64
	defined bool
}

// Defined wraps a computed ratio value.
func Defined(v float64) Ratio {
	return Ratio{value: v, defined: true}
}

// Undefined marks a ratio whose denominator was zero.
func Undefined() Ratio {
	return Ratio{}
}

// IsDefined reports whether the ratio has a value.
func (r Ratio) IsDefined() bool {
	return r.defined
}

// Value returns the ratio value and whether it is defined.
func (r Ratio) Value() (float64, bool) {
	return r.value, r.defined
}

// Float64 returns the value, or NaN when undefined. Intended for display
// code only; computation should branch on IsDefined.
func (r Ratio) Float64() float64 {
	if !r.defined {
		return math.NaN()
	}
	return r.value
}

func (r Ratio) MarshalJSON() ([]byte, error) {
	if !r.defined {
		return []byte("null"), nil
	}
	return json.Marshal(r.value)
}

func (r *Ratio) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*r = Undefined()
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*r = Defined(v)
	return nil
}
