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

package handler

import (
	"strings"
	"time"

	"github.com/fee-vault/fee-api/data"
	"github.com/fee-vault/fee-api/observability/opentelemetry"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"go.opentelemetry.io/otel"
)

type BenchmarkResponse struct {
	Symbol string                  `json:"symbol"`
	Prices []data.PriceObservation `json:"prices"`
}

// GetBenchmark returns month-end benchmark prices for a symbol over the
// requested window.
func GetBenchmark(c *fiber.Ctx) error {
	ctx, span := otel.Tracer(opentelemetry.Name).Start(c.Context(), "handler.GetBenchmark")
	defer span.End()
	span.SetAttributes(opentelemetry.SpanAttributesFromFiber(c)...)

	startDateStr := c.Query("startDate", "1990-01-01")
	endDateStr := c.Query("endDate", "now")

	startDate, err := time.Parse("2006-01-02", startDateStr)
	if err != nil {
		log.Warn().Err(err).Str("StartDateStr", startDateStr).Msg("cannot parse start date query parameter")
		return fiber.ErrNotAcceptable
	}

	var endDate time.Time
	if endDateStr == "now" {
		endDate = time.Now()
		year, month, day := endDate.Date()
		endDate = time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	} else {
		endDate, err = time.Parse("2006-01-02", endDateStr)
		if err != nil {
			log.Warn().Err(err).Str("EndDateStr", endDateStr).Msg("cannot parse end date query parameter")
			return fiber.ErrNotAcceptable
		}
	}

	symbol := strings.ToUpper(c.Params("symbol"))
	provider := data.NewTiingo(viper.GetString("tiingo.token"))

	prices, err := provider.MonthlyPrices(ctx, symbol, startDate, endDate)
	if err != nil {
		log.Error().Err(err).Str("Symbol", symbol).Msg("could not load benchmark prices")
		return fiber.ErrBadGateway
	}

	return c.JSON(&BenchmarkResponse{
		Symbol: symbol,
		Prices: prices,
	})
}
