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

package analytics_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/fee-vault/fee-api/analytics"
)

var _ = Describe("Benchmark comparison", func() {
	var (
		strategy  []float64
		benchmark []float64
	)

	BeforeEach(func() {
		strategy = []float64{0.02, -0.01, 0.03, 0.01}
		benchmark = []float64{0.01, -0.02, 0.02, 0.02}
	})

	Describe("TrackingError", func() {
		It("should be zero when the series are identical", func() {
			te, err := analytics.TrackingError(strategy, strategy)
			Expect(err).To(BeNil())
			Expect(te).To(Equal(0.0))
		})

		It("should be zero when the series differ by a constant", func() {
			shifted := make([]float64, len(strategy))
			for ii, r := range strategy {
				shifted[ii] = r + 0.005
			}
			te, err := analytics.TrackingError(strategy, shifted)
			Expect(err).To(BeNil())
			Expect(te).Should(BeNumerically("~", 0, 1e-15))
		})

		It("should grow with divergence", func() {
			te, err := analytics.TrackingError(strategy, benchmark)
			Expect(err).To(BeNil())
			Expect(te).Should(BeNumerically(">", 0))
		})

		It("should reject mismatched series lengths", func() {
			_, err := analytics.TrackingError(strategy, benchmark[:2])
			Expect(err).To(MatchError(analytics.ErrInputMismatch))
		})
	})

	Describe("InformationRatio", func() {
		It("should be undefined when tracking error is zero", func() {
			ir, err := analytics.InformationRatio(strategy, strategy)
			Expect(err).To(BeNil())
			Expect(ir.IsDefined()).To(BeFalse())
		})

		It("should be positive when the strategy outperforms", func() {
			under := []float64{0.00, -0.02, 0.02, 0.00}
			ir, err := analytics.InformationRatio(strategy, under)
			Expect(err).To(BeNil())
			Expect(ir.IsDefined()).To(BeTrue())
			Expect(ir.Float64()).Should(BeNumerically(">", 0))
		})

		It("should reject mismatched series lengths", func() {
			_, err := analytics.InformationRatio(strategy, benchmark[:1])
			Expect(err).To(MatchError(analytics.ErrInputMismatch))
		})
	})

	Describe("Beta", func() {
		It("should be one against itself", func() {
			beta, err := analytics.Beta(strategy, strategy)
			Expect(err).To(BeNil())
			Expect(beta.IsDefined()).To(BeTrue())
			Expect(beta.Float64()).Should(BeNumerically("~", 1.0, 1e-12))
		})

		It("should scale with leverage", func() {
			levered := make([]float64, len(benchmark))
			for ii, r := range benchmark {
				levered[ii] = 2 * r
			}
			beta, err := analytics.Beta(levered, benchmark)
			Expect(err).To(BeNil())
			Expect(beta.Float64()).Should(BeNumerically("~", 2.0, 1e-12))
		})

		It("should be undefined when the benchmark never moves", func() {
			flat := []float64{0.01, 0.01, 0.01, 0.01}
			beta, err := analytics.Beta(strategy, flat)
			Expect(err).To(BeNil())
			Expect(beta.IsDefined()).To(BeFalse())
		})

		It("should reject mismatched series lengths", func() {
			_, err := analytics.Beta(strategy, benchmark[:3])
			Expect(err).To(MatchError(analytics.ErrInputMismatch))
		})
	})

	Describe("YearlyReturns", func() {
		It("should compound each calendar year separately", func() {
			tz, _ := time.LoadLocation("America/New_York")
			dates := make([]time.Time, 0, 15)
			returns := make([]float64, 0, 15)

			for ii := 0; ii < 12; ii++ {
				monthEnd := time.Date(2024, time.Month(ii)+2, 1, 0, 0, 0, 0, tz).AddDate(0, 0, -1)
				dates = append(dates, monthEnd)
				returns = append(returns, 0.01)
			}
			for ii := 0; ii < 3; ii++ {
				monthEnd := time.Date(2025, time.Month(ii)+2, 1, 0, 0, 0, 0, tz).AddDate(0, 0, -1)
				dates = append(dates, monthEnd)
				returns = append(returns, 0.02)
			}

			yearly, err := analytics.YearlyReturns(dates, returns)
			Expect(err).To(BeNil())
			Expect(yearly).To(HaveLen(2))
			Expect(yearly[0].Year).To(Equal(2024))
			Expect(yearly[0].Return).Should(BeNumerically("~", 0.126825, 1e-6))
			Expect(yearly[1].Year).To(Equal(2025))
			Expect(yearly[1].Return).Should(BeNumerically("~", 0.061208, 1e-6))
		})

		It("should reject mismatched dates and returns", func() {
			tz, _ := time.LoadLocation("America/New_York")
			dates := []time.Time{time.Date(2024, 1, 31, 0, 0, 0, 0, tz)}
			_, err := analytics.YearlyReturns(dates, []float64{0.01, 0.02})
			Expect(err).To(MatchError(analytics.ErrInputMismatch))
		})
	})

	Describe("Compare", func() {
		It("should leave relative metrics undefined without a benchmark", func() {
			metrics, err := analytics.Compare(strategy, nil, 0.025)
			Expect(err).To(BeNil())
			Expect(metrics.Beta.IsDefined()).To(BeFalse())
			Expect(metrics.InformationRatio.IsDefined()).To(BeFalse())
			Expect(metrics.TrackingError).To(Equal(0.0))
		})

		It("should populate relative metrics when a benchmark is supplied", func() {
			metrics, err := analytics.Compare(strategy, benchmark, 0.025)
			Expect(err).To(BeNil())
			Expect(metrics.Beta.IsDefined()).To(BeTrue())
			Expect(metrics.InformationRatio.IsDefined()).To(BeTrue())
			Expect(metrics.TrackingError).Should(BeNumerically(">", 0))
		})

		It("should reject a misaligned benchmark", func() {
			_, err := analytics.Compare(strategy, benchmark[:3], 0.025)
			Expect(err).To(MatchError(analytics.ErrInputMismatch))
		})
	})
})
