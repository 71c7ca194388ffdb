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

	"gonum.org/v1/gonum/stat"
)

var ErrEmptySeries = errors.New("return series must not be empty")

// Summary holds the single-series risk/return statistics for one scheme's
// net return series. All values are annualized from monthly observations.
type Summary struct {
	AnnualizedReturn     float64 `json:"annualizedReturn"`
	AnnualizedVolatility float64 `json:"annualizedVolatility"`
	SharpeRatio          Ratio   `json:"sharpeRatio"`
	SortinoRatio         Ratio   `json:"sortinoRatio"`
}

// Metrics is the full per-scheme record consumed by external reporting. The
// benchmark-relative fields are populated only when a benchmark series was
// supplied.
type Metrics struct {
	Summary
	Beta             Ratio   `json:"beta"`
	TrackingError    float64 `json:"trackingError"`
	InformationRatio Ratio   `json:"informationRatio"`
}

// Analyze computes annualized return, annualized volatility, Sharpe, and
// Sortino for a series of monthly net returns. riskFreeRate is an annual
// fraction. Volatility uses the population standard deviation (divide by N);
// downside deviation is computed from negative months only. Sharpe and
// Sortino are undefined, not zero, when their denominators vanish.
func Analyze(netReturns []float64, riskFreeRate float64) (*Summary, error) {
	if len(netReturns) == 0 {
		return nil, ErrEmptySeries
	}

	annRet := AnnualizeReturn(netReturns)
	annVol := stat.PopStdDev(netReturns, nil) * math.Sqrt(12)

	sharpe := Undefined()
	if annVol != 0 {
		sharpe = Defined((annRet - riskFreeRate) / annVol)
	}

	var downsideSq float64
	var downsideN int
	for _, r := range netReturns {
		if r < 0 {
			downsideSq += r * r
			downsideN++
		}
	}
	downsideDev := 0.0
	if downsideN > 0 {
		downsideDev = math.Sqrt(downsideSq/float64(downsideN)) * math.Sqrt(12)
	}

	sortino := Undefined()
	if downsideDev != 0 {
		sortino = Defined((annRet - riskFreeRate) / downsideDev)
	}

	return &Summary{
		AnnualizedReturn:     annRet,
		AnnualizedVolatility: annVol,
		SharpeRatio:          sharpe,
		SortinoRatio:         sortino,
	}, nil
}
