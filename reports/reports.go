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

// Package reports renders simulation output for human consumption: console
// tables and spreadsheet export. The engine and analyzers know nothing about
// these formats.
package reports

import (
	"github.com/fee-vault/fee-api/analytics"
	"github.com/fee-vault/fee-api/feesim"
)

// SchemeReport pairs a scheme's simulation trace with its metrics record.
type SchemeReport struct {
	Result        *feesim.SimulationResult
	Metrics       *analytics.Metrics
	YearlyReturns []analytics.YearlyReturn
}

// BuildReports runs the analyzers over every simulation result.
func BuildReports(results []*feesim.SimulationResult, benchmark []float64, riskFreeRate float64) ([]*SchemeReport, error) {
	reports := make([]*SchemeReport, 0, len(results))
	for _, res := range results {
		netReturns := res.NetReturns()

		metrics, err := analytics.Compare(netReturns, benchmark, riskFreeRate)
		if err != nil {
			return nil, err
		}

		yearly, err := analytics.YearlyReturns(res.Dates(), netReturns)
		if err != nil {
			return nil, err
		}

		reports = append(reports, &SchemeReport{
			Result:        res,
			Metrics:       metrics,
			YearlyReturns: yearly,
		})
	}
	return reports, nil
}
