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
	"errors"
	"math"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"
)

// ErrInputMismatch means the strategy and benchmark series are not the same
// length. Alignment is the data layer's contract; computing relative metrics
// over misaligned series would be silently wrong, so it is rejected here.
var ErrInputMismatch = errors.New("strategy and benchmark series must have equal length")

// YearlyReturn is one calendar year's compounded return.
type YearlyReturn struct {
	Year   int     `json:"year"`
	Return float64 `json:"return"`
}

// AnnualizeReturn converts a series of N monthly fractional returns to an
// annualized return: (Π(1+r))^(12/N) − 1. Usable standalone on any fraction
// series, fund or benchmark. Returns 0 for an empty series.
func AnnualizeReturn(monthlyReturns []float64) float64 {
	n := len(monthlyReturns)
	if n == 0 {
		return 0
	}
	growth := 1.0
	for _, r := range monthlyReturns {
		growth *= 1 + r
	}
	return math.Pow(growth, 12/float64(n)) - 1
}

// TrackingError is the annualized population standard deviation of the
// difference between strategy and benchmark monthly returns.
func TrackingError(strategy []float64, benchmark []float64) (float64, error) {
	if len(strategy) != len(benchmark) {
		return 0, ErrInputMismatch
	}

	diff := make([]float64, len(strategy))
	for ii := range strategy {
		diff[ii] = strategy[ii] - benchmark[ii]
	}
	return stat.PopStdDev(diff, nil) * math.Sqrt(12), nil
}

// InformationRatio is the annualized excess return over the benchmark per
// unit of tracking error. Undefined when the tracking error is zero (the two
// series are identical up to a constant shift).
func InformationRatio(strategy []float64, benchmark []float64) (Ratio, error) {
	te, err := TrackingError(strategy, benchmark)
	if err != nil {
		return Undefined(), err
	}
	if te == 0 {
		return Undefined(), nil
	}
	return Defined((AnnualizeReturn(strategy) - AnnualizeReturn(benchmark)) / te), nil
}

// Beta is the sample covariance of strategy and benchmark returns over the
// sample variance of the benchmark (both ddof=1). Undefined when the
// benchmark never moves.
func Beta(strategy []float64, benchmark []float64) (Ratio, error) {
	if len(strategy) != len(benchmark) {
		return Undefined(), ErrInputMismatch
	}

	varBench := stat.Variance(benchmark, nil)
	if varBench == 0 {
		return Undefined(), nil
	}
	return Defined(stat.Covariance(strategy, benchmark, nil) / varBench), nil
}

// YearlyReturns groups monthly returns by the calendar year of their dates
// and compounds within each year: Π(1+r) − 1. One entry per year present,
// ordered by year.
func YearlyReturns(dates []time.Time, monthlyReturns []float64) ([]YearlyReturn, error) {
	if len(dates) != len(monthlyReturns) {
		return nil, ErrInputMismatch
	}

	growth := make(map[int]float64)
	for ii, dt := range dates {
		year := dt.Year()
		g, ok := growth[year]
		if !ok {
			g = 1.0
		}
		growth[year] = g * (1 + monthlyReturns[ii])
	}

	years := make([]int, 0, len(growth))
	for year := range growth {
		years = append(years, year)
	}
	sort.Ints(years)

	yearly := make([]YearlyReturn, 0, len(years))
	for _, year := range years {
		yearly = append(yearly, YearlyReturn{Year: year, Return: growth[year] - 1})
	}
	return yearly, nil
}

// Compare computes the full per-scheme metrics record: the single-series
// summary plus benchmark-relative statistics. A nil or empty benchmark
// leaves the relative fields undefined.
func Compare(netReturns []float64, benchmark []float64, riskFreeRate float64) (*Metrics, error) {
	summary, err := Analyze(netReturns, riskFreeRate)
	if err != nil {
		return nil, err
	}

	metrics := &Metrics{
		Summary:          *summary,
		Beta:             Undefined(),
		InformationRatio: Undefined(),
	}
	if len(benchmark) == 0 {
		return metrics, nil
	}

	te, err := TrackingError(netReturns, benchmark)
	if err != nil {
		return nil, err
	}
	metrics.TrackingError = te

	if te != 0 {
		metrics.InformationRatio = Defined((summary.AnnualizedReturn - AnnualizeReturn(benchmark)) / te)
	}

	beta, err := Beta(netReturns, benchmark)
	if err != nil {
		return nil, err
	}
	metrics.Beta = beta

	return metrics, nil
}
