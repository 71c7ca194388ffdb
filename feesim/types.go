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
	"sort"
	"time"
)

// ReturnObservation is a single accounting period (one month) of the fund's
// gross return, expressed as a decimal fraction (e.g. 0.015 for +1.5%).
// Sequences of observations are expected to be chronologically sorted with
// one observation per month; ordering is the loader's responsibility.
type ReturnObservation struct {
	Date        time.Time `json:"date"`
	GrossReturn float64   `json:"grossReturn"`
}

// PeriodResult records the outcome of applying a fee scheme to a single
// accounting period. Values are immutable once emitted by the engine.
type PeriodResult struct {
	Date           time.Time `json:"date"`
	GrossReturn    float64   `json:"grossReturn"`
	NetReturn      float64   `json:"netReturn"`
	MgmtFeeRevenue float64   `json:"mgmtFeeRevenue"`
	PerfFeeRevenue float64   `json:"perfFeeRevenue"`
	AUMEnd         float64   `json:"aumEnd"`
}

// AnnualAggregate sums fee revenue for all periods falling in a calendar year.
type AnnualAggregate struct {
	Year              int     `json:"year"`
	AnnualMgmtRevenue float64 `json:"annualMgmtRevenue"`
	AnnualPerfRevenue float64 `json:"annualPerfRevenue"`
	TotalFeeRevenue   float64 `json:"totalFeeRevenue"`
}

// SimulationResult bundles one scheme's simulation output.
type SimulationResult struct {
	SchemeName string                   `json:"schemeName"`
	Periods    []*PeriodResult          `json:"periods"`
	Annual     map[int]*AnnualAggregate `json:"annual"`
}

// Years returns the calendar years present in the result, in ascending order.
func (res *SimulationResult) Years() []int {
	years := make([]int, 0, len(res.Annual))
	for year := range res.Annual {
		years = append(years, year)
	}
	sort.Ints(years)
	return years
}

// NetReturns extracts the net-of-fee return series from the period trace.
func (res *SimulationResult) NetReturns() []float64 {
	rets := make([]float64, len(res.Periods))
	for ii, period := range res.Periods {
		rets[ii] = period.NetReturn
	}
	return rets
}

// Dates extracts the period dates from the trace.
func (res *SimulationResult) Dates() []time.Time {
	dates := make([]time.Time, len(res.Periods))
	for ii, period := range res.Periods {
		dates[ii] = period.Date
	}
	return dates
}
