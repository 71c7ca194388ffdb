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

package reports

import (
	"fmt"
	"io"
	"math"
	"sort"

	"github.com/olekukonko/tablewriter"
	"gonum.org/v1/gonum/stat"
)

// PrintMetricsTable renders the risk-adjusted return statistics for every
// scheme. Undefined ratios print as "n/a" rather than a number.
func PrintMetricsTable(w io.Writer, reports []*SchemeReport) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Scheme", "Ann. Return", "Ann. Volatility", "Beta", "Sharpe", "Sortino", "Info Ratio"})

	for _, report := range reports {
		m := report.Metrics
		table.Append([]string{
			report.Result.SchemeName,
			formatPercent(m.AnnualizedReturn),
			formatPercent(m.AnnualizedVolatility),
			formatRatio(m.Beta.Float64()),
			formatRatio(m.SharpeRatio.Float64()),
			formatRatio(m.SortinoRatio.Float64()),
			formatRatio(m.InformationRatio.Float64()),
		})
	}

	table.Render()
}

// PrintAnnualRevenueTable renders total fee revenue per year for every
// scheme, one scheme per column.
func PrintAnnualRevenueTable(w io.Writer, reports []*SchemeReport) {
	header := []string{"Year"}
	yearSet := make(map[int]bool)
	for _, report := range reports {
		header = append(header, report.Result.SchemeName)
		for _, year := range report.Result.Years() {
			yearSet[year] = true
		}
	}

	years := make([]int, 0, len(yearSet))
	for year := range yearSet {
		years = append(years, year)
	}
	sort.Ints(years)

	table := tablewriter.NewWriter(w)
	table.SetHeader(header)

	for _, year := range years {
		row := []string{fmt.Sprintf("%d", year)}
		for _, report := range reports {
			if agg, ok := report.Result.Annual[year]; ok {
				row = append(row, formatMoney(agg.TotalFeeRevenue))
			} else {
				row = append(row, "")
			}
		}
		table.Append(row)
	}

	table.Render()
}

// PrintRevenueStatsTable renders mean, standard deviation, and coefficient
// of variation of annual total fee revenue per scheme.
func PrintRevenueStatsTable(w io.Writer, reports []*SchemeReport) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Scheme", "Mean Fee Rev", "StdDev Fee Rev", "Coeff Var"})

	for _, report := range reports {
		revenue := make([]float64, 0, len(report.Result.Annual))
		for _, year := range report.Result.Years() {
			revenue = append(revenue, report.Result.Annual[year].TotalFeeRevenue)
		}

		mean := stat.Mean(revenue, nil)
		sd := 0.0
		if len(revenue) > 1 {
			sd = stat.StdDev(revenue, nil)
		}
		coeffVar := math.NaN()
		if mean != 0 {
			coeffVar = sd / mean
		}

		table.Append([]string{
			report.Result.SchemeName,
			formatMoney(mean),
			formatMoney(sd),
			formatRatio(coeffVar),
		})
	}

	table.Render()
}

// PrintYearlyReturnsTable renders each scheme's compounded yearly net return
// next to the benchmark's.
func PrintYearlyReturnsTable(w io.Writer, reports []*SchemeReport, benchmarkYearly map[int]float64) {
	header := []string{"Year"}
	yearSet := make(map[int]bool)
	for _, report := range reports {
		header = append(header, report.Result.SchemeName)
		for _, yr := range report.YearlyReturns {
			yearSet[yr.Year] = true
		}
	}
	if len(benchmarkYearly) > 0 {
		header = append(header, "Benchmark")
		for year := range benchmarkYearly {
			yearSet[year] = true
		}
	}

	years := make([]int, 0, len(yearSet))
	for year := range yearSet {
		years = append(years, year)
	}
	sort.Ints(years)

	table := tablewriter.NewWriter(w)
	table.SetHeader(header)

	for _, year := range years {
		row := []string{fmt.Sprintf("%d", year)}
		for _, report := range reports {
			cell := ""
			for _, yr := range report.YearlyReturns {
				if yr.Year == year {
					cell = formatPercent(yr.Return)
					break
				}
			}
			row = append(row, cell)
		}
		if len(benchmarkYearly) > 0 {
			if ret, ok := benchmarkYearly[year]; ok {
				row = append(row, formatPercent(ret))
			} else {
				row = append(row, "")
			}
		}
		table.Append(row)
	}

	table.Render()
}

func formatPercent(v float64) string {
	if math.IsNaN(v) {
		return "n/a"
	}
	return fmt.Sprintf("%.2f%%", v*100)
}

func formatRatio(v float64) string {
	if math.IsNaN(v) {
		return "n/a"
	}
	return fmt.Sprintf("%.3f", v)
}

func formatMoney(v float64) string {
	if math.IsNaN(v) {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", v)
}
