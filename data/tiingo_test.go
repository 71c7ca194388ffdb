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

package data_test

import (
	"context"
	"time"

	"github.com/jarcoal/httpmock"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/fee-vault/fee-api/data"
)

var _ = Describe("Tiingo", func() {
	var (
		ctx      context.Context
		provider *data.Tiingo
		tz       *time.Location
		dates    []time.Time
	)

	BeforeEach(func() {
		ctx = context.Background()
		tz, _ = time.LoadLocation("America/New_York")
		provider = data.NewTiingo("TEST")

		dates = []time.Time{
			time.Date(2024, 1, 31, 0, 0, 0, 0, tz),
			time.Date(2024, 2, 29, 0, 0, 0, 0, tz),
			time.Date(2024, 3, 31, 0, 0, 0, 0, tz),
		}

		httpmock.Activate()
	})

	AfterEach(func() {
		httpmock.DeactivateAndReset()
	})

	Describe("when fetching monthly returns", func() {
		BeforeEach(func() {
			body := `[
				{"date": "2023-12-29T00:00:00.000Z", "close": 100.0, "adjClose": 100.0},
				{"date": "2024-01-31T00:00:00.000Z", "close": 105.0, "adjClose": 105.0},
				{"date": "2024-02-29T00:00:00.000Z", "close": 102.9, "adjClose": 102.9},
				{"date": "2024-03-28T00:00:00.000Z", "close": 110.0, "adjClose": 110.0}
			]`
			httpmock.RegisterResponder("GET", "https://api.tiingo.com/tiingo/daily/SPY/prices?startDate=2023-12-31&endDate=2024-03-31&resampleFreq=monthly&token=TEST",
				httpmock.NewStringResponder(200, body))
		})

		It("should produce one return per fund date", func() {
			returns, err := provider.MonthlyReturns(ctx, "SPY", dates)
			Expect(err).To(BeNil())
			Expect(returns).To(HaveLen(3))
		})

		It("should seed the first return from the price before the series", func() {
			returns, err := provider.MonthlyReturns(ctx, "SPY", dates)
			Expect(err).To(BeNil())
			Expect(returns[0]).Should(BeNumerically("~", 0.05, 1e-9))
		})

		It("should compute month-over-month fractional returns", func() {
			returns, err := provider.MonthlyReturns(ctx, "SPY", dates)
			Expect(err).To(BeNil())
			Expect(returns[1]).Should(BeNumerically("~", 102.9/105.0-1, 1e-9))
			Expect(returns[2]).Should(BeNumerically("~", 110.0/102.9-1, 1e-9))
		})
	})

	Describe("when the provider misbehaves", func() {
		It("should surface HTTP error status codes", func() {
			httpmock.RegisterResponder("GET", "https://api.tiingo.com/tiingo/daily/BAD/prices?startDate=2023-12-31&endDate=2024-03-31&resampleFreq=monthly&token=TEST",
				httpmock.NewStringResponder(404, "not found"))

			_, err := provider.MonthlyReturns(ctx, "BAD", dates)
			Expect(err).To(MatchError(data.ErrInvalidStatus))
		})

		It("should report when no price data comes back", func() {
			httpmock.RegisterResponder("GET", "https://api.tiingo.com/tiingo/daily/EMPTY/prices?startDate=2023-12-31&endDate=2024-03-31&resampleFreq=monthly&token=TEST",
				httpmock.NewStringResponder(200, "[]"))

			_, err := provider.MonthlyReturns(ctx, "EMPTY", dates)
			Expect(err).To(MatchError(data.ErrNoData))
		})

		It("should reject an empty date series without a request", func() {
			_, err := provider.MonthlyReturns(ctx, "SPY", nil)
			Expect(err).To(MatchError(data.ErrNoData))
		})
	})
})

var _ = Describe("AlignToDates", func() {
	var tz *time.Location

	BeforeEach(func() {
		tz, _ = time.LoadLocation("America/New_York")
	})

	It("should carry the most recent earlier price forward", func() {
		prices := []data.PriceObservation{
			{Date: time.Date(2024, 1, 31, 0, 0, 0, 0, tz), Price: 100},
			{Date: time.Date(2024, 3, 28, 0, 0, 0, 0, tz), Price: 110},
		}
		dates := []time.Time{
			time.Date(2024, 1, 31, 0, 0, 0, 0, tz),
			time.Date(2024, 2, 29, 0, 0, 0, 0, tz),
			time.Date(2024, 3, 31, 0, 0, 0, 0, tz),
		}
		aligned := data.AlignToDates(prices, dates)
		Expect(aligned).To(Equal([]float64{100, 100, 110}))
	})

	It("should zero-fill dates before the first price", func() {
		prices := []data.PriceObservation{
			{Date: time.Date(2024, 2, 29, 0, 0, 0, 0, tz), Price: 100},
		}
		dates := []time.Time{
			time.Date(2024, 1, 31, 0, 0, 0, 0, tz),
			time.Date(2024, 2, 29, 0, 0, 0, 0, tz),
		}
		aligned := data.AlignToDates(prices, dates)
		Expect(aligned).To(Equal([]float64{0, 100}))
	})

	It("should compare by calendar day regardless of time of day", func() {
		prices := []data.PriceObservation{
			{Date: time.Date(2024, 1, 31, 16, 0, 0, 0, tz), Price: 100},
		}
		dates := []time.Time{
			time.Date(2024, 1, 31, 0, 0, 0, 0, tz),
		}
		aligned := data.AlignToDates(prices, dates)
		Expect(aligned).To(Equal([]float64{100}))
	})
})

var _ = Describe("ReturnsFromPrices", func() {
	var tz *time.Location

	BeforeEach(func() {
		tz, _ = time.LoadLocation("America/New_York")
	})

	It("should report zero for periods with no prior price", func() {
		prices := []data.PriceObservation{
			{Date: time.Date(2024, 1, 31, 0, 0, 0, 0, tz), Price: 100},
			{Date: time.Date(2024, 2, 29, 0, 0, 0, 0, tz), Price: 104},
		}
		dates := []time.Time{
			time.Date(2024, 1, 31, 0, 0, 0, 0, tz),
			time.Date(2024, 2, 29, 0, 0, 0, 0, tz),
		}
		rets := data.ReturnsFromPrices(prices, dates)
		Expect(rets[0]).To(Equal(0.0))
		Expect(rets[1]).Should(BeNumerically("~", 0.04, 1e-9))
	})

	It("should seed the first return when history reaches back before the series", func() {
		prices := []data.PriceObservation{
			{Date: time.Date(2023, 12, 29, 0, 0, 0, 0, tz), Price: 100},
			{Date: time.Date(2024, 1, 31, 0, 0, 0, 0, tz), Price: 102},
		}
		dates := []time.Time{
			time.Date(2024, 1, 31, 0, 0, 0, 0, tz),
		}
		rets := data.ReturnsFromPrices(prices, dates)
		Expect(rets[0]).Should(BeNumerically("~", 0.02, 1e-9))
	})
})
