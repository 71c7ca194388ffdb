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

package reports_test

import (
	"bytes"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/fee-vault/fee-api/feesim"
	"github.com/fee-vault/fee-api/reports"
)

func simulated(name string) *feesim.SimulationResult {
	tz, _ := time.LoadLocation("America/New_York")
	obs := []feesim.ReturnObservation{
		{Date: time.Date(2024, 1, 31, 0, 0, 0, 0, tz), GrossReturn: 0.02},
		{Date: time.Date(2024, 2, 29, 0, 0, 0, 0, tz), GrossReturn: -0.01},
		{Date: time.Date(2024, 3, 31, 0, 0, 0, 0, tz), GrossReturn: 0.03},
	}
	scheme := &feesim.FlatScheme{SchemeName: name, MgmtRate: 0.02, PerfRate: 0.20}
	res, err := feesim.Simulate(obs, scheme, 1_000_000)
	Expect(err).To(BeNil())
	return res
}

var _ = Describe("BuildReports", func() {
	It("should pair every result with metrics and yearly returns", func() {
		results := []*feesim.SimulationResult{simulated("a"), simulated("b")}
		schemeReports, err := reports.BuildReports(results, nil, 0.025)
		Expect(err).To(BeNil())
		Expect(schemeReports).To(HaveLen(2))
		Expect(schemeReports[0].Metrics).ToNot(BeNil())
		Expect(schemeReports[0].YearlyReturns).To(HaveLen(1))
		Expect(schemeReports[0].YearlyReturns[0].Year).To(Equal(2024))
	})

	It("should leave benchmark-relative metrics undefined without a benchmark", func() {
		schemeReports, err := reports.BuildReports([]*feesim.SimulationResult{simulated("a")}, nil, 0.025)
		Expect(err).To(BeNil())
		Expect(schemeReports[0].Metrics.Beta.IsDefined()).To(BeFalse())
	})

	It("should populate benchmark-relative metrics when aligned", func() {
		schemeReports, err := reports.BuildReports([]*feesim.SimulationResult{simulated("a")}, []float64{0.01, -0.02, 0.02}, 0.025)
		Expect(err).To(BeNil())
		Expect(schemeReports[0].Metrics.Beta.IsDefined()).To(BeTrue())
	})
})

var _ = Describe("Console tables", func() {
	var schemeReports []*reports.SchemeReport

	BeforeEach(func() {
		var err error
		schemeReports, err = reports.BuildReports([]*feesim.SimulationResult{simulated("2 and 20")}, nil, 0.025)
		Expect(err).To(BeNil())
	})

	It("should render the metrics table with the scheme name", func() {
		buf := &bytes.Buffer{}
		reports.PrintMetricsTable(buf, schemeReports)
		Expect(buf.String()).To(ContainSubstring("2 and 20"))
		Expect(buf.String()).To(ContainSubstring("SHARPE"))
	})

	It("should render undefined ratios as n/a", func() {
		buf := &bytes.Buffer{}
		reports.PrintMetricsTable(buf, schemeReports)
		// no benchmark, so beta and info ratio are undefined
		Expect(buf.String()).To(ContainSubstring("n/a"))
	})

	It("should render one row per year in the revenue table", func() {
		buf := &bytes.Buffer{}
		reports.PrintAnnualRevenueTable(buf, schemeReports)
		Expect(buf.String()).To(ContainSubstring("2024"))
	})

	It("should render revenue statistics", func() {
		buf := &bytes.Buffer{}
		reports.PrintRevenueStatsTable(buf, schemeReports)
		Expect(buf.String()).To(ContainSubstring("2 and 20"))
	})

	It("should include a benchmark column when yearly benchmark returns exist", func() {
		buf := &bytes.Buffer{}
		reports.PrintYearlyReturnsTable(buf, schemeReports, map[int]float64{2024: 0.08})
		Expect(buf.String()).To(ContainSubstring("BENCHMARK"))
	})
})

var _ = Describe("WriteXLSX", func() {
	It("should write a non-empty workbook with a sheet pair per scheme", func() {
		schemeReports, err := reports.BuildReports([]*feesim.SimulationResult{simulated("2 and 20")}, nil, 0.025)
		Expect(err).To(BeNil())

		buf := &bytes.Buffer{}
		Expect(reports.WriteXLSX(buf, schemeReports)).To(BeNil())
		Expect(buf.Len()).Should(BeNumerically(">", 0))
	})

	It("should truncate long scheme names to a legal sheet name", func() {
		long := simulated("A Scheme With An Extremely Long Descriptive Name")
		schemeReports, err := reports.BuildReports([]*feesim.SimulationResult{long}, nil, 0.025)
		Expect(err).To(BeNil())

		buf := &bytes.Buffer{}
		Expect(reports.WriteXLSX(buf, schemeReports)).To(BeNil())
	})
})
