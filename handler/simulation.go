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
	"errors"
	"time"

	"github.com/fee-vault/fee-api/analytics"
	"github.com/fee-vault/fee-api/data"
	"github.com/fee-vault/fee-api/feesim"
	"github.com/fee-vault/fee-api/observability/opentelemetry"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"go.opentelemetry.io/otel"
)

// SimulationRequest is the JSON body of POST /v1/simulate. Benchmark returns
// may be supplied inline (already aligned to the observations) or by ticker;
// the ticker path fetches and aligns monthly prices via the data provider.
type SimulationRequest struct {
	InitialAUM       float64                    `json:"initialAum"`
	RiskFreeRate     *float64                   `json:"riskFreeRate"`
	BenchmarkTicker  string                     `json:"benchmarkTicker"`
	BenchmarkReturns []float64                  `json:"benchmarkReturns"`
	Observations     []feesim.ReturnObservation `json:"observations"`
	Schemes          []feesim.SchemeSpec        `json:"schemes"`
}

// SchemeOutcome is one scheme's simulation trace plus its metrics record.
type SchemeOutcome struct {
	SchemeName    string                          `json:"schemeName"`
	Periods       []*feesim.PeriodResult          `json:"periods"`
	Annual        map[int]*feesim.AnnualAggregate `json:"annual"`
	Metrics       *analytics.Metrics              `json:"metrics"`
	YearlyReturns []analytics.YearlyReturn        `json:"yearlyReturns"`
}

type SimulationResponse struct {
	RunID    string           `json:"runId"`
	Outcomes []*SchemeOutcome `json:"outcomes"`
}

// RunSimulation executes every requested fee scheme against the uploaded
// return series and reports per-period results, annual aggregates, and
// risk-adjusted metrics.
func RunSimulation(c *fiber.Ctx) error {
	ctx, span := otel.Tracer(opentelemetry.Name).Start(c.Context(), "handler.RunSimulation")
	defer span.End()
	span.SetAttributes(opentelemetry.SpanAttributesFromFiber(c)...)

	var req SimulationRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		log.Warn().Err(err).Msg("could not unmarshal simulation request")
		return fiber.ErrBadRequest
	}

	if len(req.Observations) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, feesim.ErrNoObservations.Error())
	}

	schemes := make([]feesim.FeeScheme, 0, len(req.Schemes))
	for ii := range req.Schemes {
		scheme, err := req.Schemes[ii].Scheme()
		if err != nil {
			return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
		}
		schemes = append(schemes, scheme)
	}

	if req.InitialAUM == 0 {
		req.InitialAUM = viper.GetFloat64("simulator.default_aum")
	}

	riskFree := viper.GetFloat64("simulator.risk_free_rate")
	if req.RiskFreeRate != nil {
		riskFree = *req.RiskFreeRate
	}

	benchmark := req.BenchmarkReturns
	if len(benchmark) == 0 && req.BenchmarkTicker != "" {
		provider := data.NewTiingo(viper.GetString("tiingo.token"))
		series, err := provider.MonthlyReturns(ctx, req.BenchmarkTicker, observationDates(req.Observations))
		if err != nil {
			log.Error().Err(err).Str("Ticker", req.BenchmarkTicker).Msg("could not fetch benchmark returns")
			return fiber.ErrBadGateway
		}
		benchmark = series
	}
	if len(benchmark) > 0 && len(benchmark) != len(req.Observations) {
		return fiber.NewError(fiber.StatusBadRequest, analytics.ErrInputMismatch.Error())
	}

	results := feesim.SimulateAll(req.Observations, schemes, req.InitialAUM)
	if len(results) == 0 {
		return fiber.NewError(fiber.StatusUnprocessableEntity, "no scheme produced results")
	}

	outcomes := make([]*SchemeOutcome, 0, len(results))
	for _, res := range results {
		netReturns := res.NetReturns()
		metrics, err := analytics.Compare(netReturns, benchmark, riskFree)
		if err != nil {
			if errors.Is(err, analytics.ErrInputMismatch) {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			return fiber.ErrInternalServerError
		}

		yearly, err := analytics.YearlyReturns(res.Dates(), netReturns)
		if err != nil {
			return fiber.ErrInternalServerError
		}

		outcomes = append(outcomes, &SchemeOutcome{
			SchemeName:    res.SchemeName,
			Periods:       res.Periods,
			Annual:        res.Annual,
			Metrics:       metrics,
			YearlyReturns: yearly,
		})
	}

	return c.JSON(&SimulationResponse{
		RunID:    uuid.New().String(),
		Outcomes: outcomes,
	})
}

func observationDates(observations []feesim.ReturnObservation) []time.Time {
	dates := make([]time.Time, len(observations))
	for ii, obs := range observations {
		dates[ii] = obs.Date
	}
	return dates
}
