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

package feesim

import "math"

// waterfallFee apportions a dollar gain into tiered manager-share slices and
// returns the manager's total take in dollars.
//
// The gain is first converted to a proportion of starting AUM so tier
// thresholds (fractions of AUM) apply directly. Tiers are walked in ascending
// order; each consumes min(width, remaining) of the gain at its manager
// share. The result is continuous across tier boundaries, monotonic
// non-decreasing in gainExcess, and exactly zero at zero gain.
func waterfallFee(gainExcess float64, aumStart float64, tiers []Tier) float64 {
	remaining := gainExcess / aumStart
	feeProp := 0.0
	lower := 0.0

	for _, tier := range tiers {
		upper := math.Inf(1)
		if tier.Threshold != nil {
			upper = *tier.Threshold
		}
		slice := math.Min(upper-lower, remaining)
		if slice <= 0 {
			break
		}
		feeProp += slice * tier.ManagerShare
		remaining -= slice
		lower = upper
	}

	return feeProp * aumStart
}
