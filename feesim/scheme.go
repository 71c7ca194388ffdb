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

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrInvalidConfiguration = errors.New("invalid fee scheme configuration")
	ErrInitialAUM           = errors.New("initial AUM must be a positive finite number")
	ErrNoObservations       = errors.New("return series must contain at least one observation")
)

// monthsPerYear converts annual rates to the monthly accounting period.
const monthsPerYear = 12.0

// Tier is one band of a tiered profit-sharing waterfall. Threshold is the
// band's upper bound expressed as a fraction of starting AUM; the final tier
// leaves it nil, meaning unbounded. ManagerShare is the manager's share of
// gains falling inside the band, in [0, 1].
type Tier struct {
	Threshold    *float64 `json:"threshold" toml:"threshold"`
	ManagerShare float64  `json:"managerShare" toml:"manager_share"`
}

// FeeScheme is the tagged fee-schedule variant applied by the engine. A
// scheme is either flat (management fee plus optional hurdle/high-water-mark
// performance fee) or a tiered waterfall; the two never mix inert fields.
type FeeScheme interface {
	Name() string
	UsesHighWaterMark() bool

	// Validate reports a wrapped ErrInvalidConfiguration when the scheme's
	// parameters cannot produce meaningful results.
	Validate() error

	// managementFee is the fee deducted at the start of the period,
	// before the gross return is applied.
	managementFee(aumStart float64) float64

	// performanceFee is the fee on the period's gain. gainExcess is the
	// dollar gain above the period baseline (high-water mark or starting
	// AUM) and gates whether any fee accrues at all.
	performanceFee(grossReturn float64, gainExcess float64, aumStart float64) float64
}

// FlatScheme charges a prorated annual management fee each month and a
// performance fee on months whose value ends above the baseline. The
// performance fee is gated by the baseline excess but computed from the raw
// monthly gross return over the prorated hurdle; this mirrors the schedule as
// fund administrators quote it, not a fee on the excess itself.
type FlatScheme struct {
	SchemeName    string  `json:"name"`
	HighWaterMark bool    `json:"highWaterMark"`
	MgmtRate      float64 `json:"mgmtRate"`   // annual fraction, e.g. 0.02
	PerfRate      float64 `json:"perfRate"`   // fraction of gain, e.g. 0.20
	HurdleRate    float64 `json:"hurdleRate"` // annual fraction
}

func (s *FlatScheme) Name() string {
	return s.SchemeName
}

func (s *FlatScheme) UsesHighWaterMark() bool {
	return s.HighWaterMark
}

func (s *FlatScheme) Validate() error {
	if s.MgmtRate < 0 || !isFinite(s.MgmtRate) {
		return fmt.Errorf("%w: management rate %f must be a non-negative fraction", ErrInvalidConfiguration, s.MgmtRate)
	}
	if s.PerfRate < 0 || s.PerfRate > 1 || !isFinite(s.PerfRate) {
		return fmt.Errorf("%w: performance rate %f must be in [0, 1]", ErrInvalidConfiguration, s.PerfRate)
	}
	if s.HurdleRate < 0 || !isFinite(s.HurdleRate) {
		return fmt.Errorf("%w: hurdle rate %f must be a non-negative fraction", ErrInvalidConfiguration, s.HurdleRate)
	}
	return nil
}

func (s *FlatScheme) managementFee(aumStart float64) float64 {
	return s.MgmtRate / monthsPerYear * aumStart
}

func (s *FlatScheme) performanceFee(grossReturn float64, gainExcess float64, aumStart float64) float64 {
	if gainExcess <= 0 {
		return 0
	}
	monthlyHurdle := s.HurdleRate / monthsPerYear
	return s.PerfRate * math.Max(0, grossReturn-monthlyHurdle) * aumStart
}

// TieredScheme apportions each period's gain above the baseline into
// successive bands, each with its own manager share. No management fee is
// charged; compensation comes entirely out of the waterfall.
type TieredScheme struct {
	SchemeName    string `json:"name"`
	HighWaterMark bool   `json:"highWaterMark"`
	Tiers         []Tier `json:"tiers"`
}

func (s *TieredScheme) Name() string {
	return s.SchemeName
}

func (s *TieredScheme) UsesHighWaterMark() bool {
	return s.HighWaterMark
}

func (s *TieredScheme) Validate() error {
	if len(s.Tiers) == 0 {
		return fmt.Errorf("%w: tiered scheme requires at least one tier", ErrInvalidConfiguration)
	}

	lower := 0.0
	for ii, tier := range s.Tiers {
		last := ii == len(s.Tiers)-1
		if tier.ManagerShare < 0 || tier.ManagerShare > 1 || !isFinite(tier.ManagerShare) {
			return fmt.Errorf("%w: tier %d manager share %f must be in [0, 1]", ErrInvalidConfiguration, ii+1, tier.ManagerShare)
		}
		if tier.Threshold == nil {
			if !last {
				return fmt.Errorf("%w: tier %d has no upper threshold but is not the final tier", ErrInvalidConfiguration, ii+1)
			}
			continue
		}
		if !isFinite(*tier.Threshold) {
			return fmt.Errorf("%w: tier %d threshold must be finite", ErrInvalidConfiguration, ii+1)
		}
		if *tier.Threshold <= lower {
			return fmt.Errorf("%w: tier %d threshold %f does not increase from %f", ErrInvalidConfiguration, ii+1, *tier.Threshold, lower)
		}
		if last {
			return fmt.Errorf("%w: final tier must be unbounded", ErrInvalidConfiguration)
		}
		lower = *tier.Threshold
	}

	return nil
}

func (s *TieredScheme) managementFee(_ float64) float64 {
	return 0
}

func (s *TieredScheme) performanceFee(_ float64, gainExcess float64, aumStart float64) float64 {
	if gainExcess <= 0 {
		return 0
	}
	return waterfallFee(gainExcess, aumStart, s.Tiers)
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
