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
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/goccy/go-json"

	"github.com/fee-vault/fee-api/analytics"
)

var _ = Describe("Analyze", func() {
	Describe("when computing annualized return", func() {
		It("should compound twelve equal months into one year", func() {
			returns := make([]float64, 12)
			for ii := range returns {
				returns[ii] = 0.01
			}
			summary, err := analytics.Analyze(returns, 0)
			Expect(err).To(BeNil())
			Expect(summary.AnnualizedReturn).Should(BeNumerically("~", math.Pow(1.01, 12)-1, 1e-12))
		})

		It("should annualize a partial year upward", func() {
			// six months of 1%: (1.01^6)^(12/6) - 1 = 1.01^12 - 1
			summary, err := analytics.Analyze([]float64{0.01, 0.01, 0.01, 0.01, 0.01, 0.01}, 0)
			Expect(err).To(BeNil())
			Expect(summary.AnnualizedReturn).Should(BeNumerically("~", math.Pow(1.01, 12)-1, 1e-12))
		})
	})

	Describe("when computing annualized volatility", func() {
		It("should be zero for a constant series", func() {
			summary, err := analytics.Analyze([]float64{0.02, 0.02, 0.02}, 0)
			Expect(err).To(BeNil())
			Expect(summary.AnnualizedVolatility).To(Equal(0.0))
		})

		It("should scale monthly deviation by the square root of twelve", func() {
			// population stddev of {0.01, 0.03} is 0.01
			summary, err := analytics.Analyze([]float64{0.01, 0.03}, 0)
			Expect(err).To(BeNil())
			Expect(summary.AnnualizedVolatility).Should(BeNumerically("~", 0.01*math.Sqrt(12), 1e-12))
		})
	})

	Describe("when computing the Sharpe ratio", func() {
		It("should be undefined for a constant series", func() {
			summary, err := analytics.Analyze([]float64{0.02, 0.02, 0.02}, 0.025)
			Expect(err).To(BeNil())
			Expect(summary.SharpeRatio.IsDefined()).To(BeFalse())
		})

		It("should relate excess return to volatility", func() {
			summary, err := analytics.Analyze([]float64{0.01, 0.03}, 0.025)
			Expect(err).To(BeNil())
			Expect(summary.SharpeRatio.IsDefined()).To(BeTrue())
			expected := (summary.AnnualizedReturn - 0.025) / summary.AnnualizedVolatility
			Expect(summary.SharpeRatio.Float64()).Should(BeNumerically("~", expected, 1e-12))
		})
	})

	Describe("when computing the Sortino ratio", func() {
		It("should be undefined when no month lost money", func() {
			summary, err := analytics.Analyze([]float64{0.01, 0.03, 0.02}, 0.025)
			Expect(err).To(BeNil())
			Expect(summary.SortinoRatio.IsDefined()).To(BeFalse())
		})

		It("should use only losing months in the denominator", func() {
			summary, err := analytics.Analyze([]float64{0.02, -0.01, 0.02, -0.03}, 0)
			Expect(err).To(BeNil())
			Expect(summary.SortinoRatio.IsDefined()).To(BeTrue())

			downside := math.Sqrt((0.01*0.01+0.03*0.03)/2) * math.Sqrt(12)
			expected := summary.AnnualizedReturn / downside
			Expect(summary.SortinoRatio.Float64()).Should(BeNumerically("~", expected, 1e-12))
		})
	})

	It("should reject an empty series", func() {
		_, err := analytics.Analyze(nil, 0.025)
		Expect(err).To(MatchError(analytics.ErrEmptySeries))
	})
})

var _ = Describe("Ratio", func() {
	Describe("when marshaling to JSON", func() {
		It("should render a defined ratio as its number", func() {
			body, err := json.Marshal(analytics.Defined(1.25))
			Expect(err).To(BeNil())
			Expect(string(body)).To(Equal("1.25"))
		})

		It("should render an undefined ratio as null", func() {
			body, err := json.Marshal(analytics.Undefined())
			Expect(err).To(BeNil())
			Expect(string(body)).To(Equal("null"))
		})
	})

	Describe("when unmarshaling from JSON", func() {
		It("should read a number as a defined ratio", func() {
			var r analytics.Ratio
			Expect(json.Unmarshal([]byte("0.5"), &r)).To(BeNil())
			Expect(r.IsDefined()).To(BeTrue())
			Expect(r.Float64()).To(Equal(0.5))
		})

		It("should read null as undefined", func() {
			var r analytics.Ratio
			Expect(json.Unmarshal([]byte("null"), &r)).To(BeNil())
			Expect(r.IsDefined()).To(BeFalse())
		})
	})

	It("should convert an undefined ratio to NaN", func() {
		Expect(math.IsNaN(analytics.Undefined().Float64())).To(BeTrue())
	})
})
