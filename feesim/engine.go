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
	"math"
	"sync"

	"github.com/rs/zerolog/log"
)

// simulationState carries the engine's per-run state between periods. The
// high-water mark is non-decreasing whenever the scheme uses one; without a
// high-water mark the baseline degrades to the period's starting AUM.
type simulationState struct {
	aum           float64
	highWaterMark float64
}

// Simulate folds a chronologically sorted gross-return series and a fee
// scheme into one PeriodResult per observation plus annual fee-revenue
// aggregates keyed by calendar year.
//
// The per-period recurrence:
//  1. deduct the prorated management fee from starting AUM
//  2. apply the gross return
//  3. measure the gain above the baseline (high-water mark or starting AUM)
//  4. charge the scheme's performance fee when the gain is positive
//  5. ratchet the high-water mark on the post-fee value
//
// Nothing prevents AUM from going non-positive under large losses; the
// recurrence continues with whatever sign aum has.
func Simulate(observations []ReturnObservation, scheme FeeScheme, initialAUM float64) (*SimulationResult, error) {
	if initialAUM <= 0 || math.IsNaN(initialAUM) || math.IsInf(initialAUM, 0) {
		return nil, ErrInitialAUM
	}
	if len(observations) == 0 {
		return nil, ErrNoObservations
	}
	if err := scheme.Validate(); err != nil {
		return nil, err
	}

	state := simulationState{
		aum:           initialAUM,
		highWaterMark: initialAUM,
	}

	periods := make([]*PeriodResult, 0, len(observations))
	annual := make(map[int]*AnnualAggregate)

	for _, obs := range observations {
		aumStart := state.aum

		mgmtFee := scheme.managementFee(aumStart)
		aumAfterGross := aumStart * (1 + obs.GrossReturn)

		baseline := aumStart
		if scheme.UsesHighWaterMark() {
			baseline = state.highWaterMark
		}
		gainExcess := math.Max(0, aumAfterGross-baseline)

		perfFee := scheme.performanceFee(obs.GrossReturn, gainExcess, aumStart)

		aumEnd := aumAfterGross - mgmtFee - perfFee
		if scheme.UsesHighWaterMark() {
			state.highWaterMark = math.Max(state.highWaterMark, aumEnd)
		}

		periods = append(periods, &PeriodResult{
			Date:           obs.Date,
			GrossReturn:    obs.GrossReturn,
			NetReturn:      aumEnd/aumStart - 1,
			MgmtFeeRevenue: mgmtFee,
			PerfFeeRevenue: perfFee,
			AUMEnd:         aumEnd,
		})

		year := obs.Date.Year()
		agg, ok := annual[year]
		if !ok {
			agg = &AnnualAggregate{Year: year}
			annual[year] = agg
		}
		agg.AnnualMgmtRevenue += mgmtFee
		agg.AnnualPerfRevenue += perfFee
		agg.TotalFeeRevenue += mgmtFee + perfFee

		state.aum = aumEnd
	}

	return &SimulationResult{
		SchemeName: scheme.Name(),
		Periods:    periods,
		Annual:     annual,
	}, nil
}

// SimulateAll evaluates every scheme against the same observation series and
// initial AUM. Each scheme owns an independent simulation state, so schemes
// run concurrently; a scheme that fails validation is logged and skipped
// without aborting the rest. Results are returned in scheme order.
func SimulateAll(observations []ReturnObservation, schemes []FeeScheme, initialAUM float64) []*SimulationResult {
	results := make([]*SimulationResult, len(schemes))

	var wg sync.WaitGroup
	for ii, scheme := range schemes {
		wg.Add(1)
		go func(idx int, s FeeScheme) {
			defer wg.Done()
			res, err := Simulate(observations, s, initialAUM)
			if err != nil {
				log.Error().Err(err).Str("Scheme", s.Name()).Msg("scheme simulation failed")
				return
			}
			results[idx] = res
		}(ii, scheme)
	}
	wg.Wait()

	// compact away failed schemes
	out := results[:0]
	for _, res := range results {
		if res != nil {
			out = append(out, res)
		}
	}
	return out
}
