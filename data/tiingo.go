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

package data

import (
	"context"
	"fmt"
	"io/ioutil"
	"net/http"
	"strings"
	"time"

	"github.com/fee-vault/fee-api/common"
	"github.com/fee-vault/fee-api/observability/opentelemetry"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tiingoAPI = "https://api.tiingo.com"

// Tiingo fetches monthly benchmark prices from the Tiingo EOD API.
type Tiingo struct {
	apikey string
}

// PriceObservation is an adjusted closing price on a month-end date.
type PriceObservation struct {
	Date  time.Time `json:"date"`
	Price float64   `json:"price"`
}

type tiingoJSONResponse struct {
	Date     string  `json:"date"`
	Close    float64 `json:"close"`
	AdjClose float64 `json:"adjClose"`
}

// NewTiingo creates a new Tiingo benchmark data provider.
func NewTiingo(key string) *Tiingo {
	return &Tiingo{apikey: key}
}

// MonthlyPrices returns month-end adjusted closes for symbol between begin
// and end, ascending by date. Responses are cached so repeated simulations
// over the same window do not re-fetch.
func (t *Tiingo) MonthlyPrices(ctx context.Context, symbol string, begin time.Time, end time.Time) ([]PriceObservation, error) {
	_, span := otel.Tracer(opentelemetry.Name).Start(ctx, "tiingo.MonthlyPrices")
	defer span.End()

	subLog := log.With().Str("Symbol", symbol).Time("Begin", begin).Time("End", end).Logger()

	url := fmt.Sprintf("%s/tiingo/daily/%s/prices?startDate=%s&endDate=%s&resampleFreq=monthly&token=%s",
		tiingoAPI, symbol, begin.Format("2006-01-02"), end.Format("2006-01-02"), t.apikey)

	span.SetAttributes(
		attribute.KeyValue{
			Key:   "Symbol",
			Value: attribute.StringValue(symbol),
		},
	)

	cacheKey := fmt.Sprintf("tiingo:monthly:%s:%s:%s", symbol, begin.Format("2006-01-02"), end.Format("2006-01-02"))
	body, err := common.CacheGet(cacheKey)
	if err != nil {
		resp, err := http.Get(url)
		if err != nil {
			span.RecordError(err)
			msg := "tiingo http request failed"
			span.SetStatus(codes.Error, msg)
			subLog.Error().Err(err).Msg(msg)
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 400 {
			msg := "tiingo returned invalid response code"
			span.SetStatus(codes.Error, msg)
			subLog.Error().Int("HTTPResponseStatusCode", resp.StatusCode).Msg(msg)
			return nil, fmt.Errorf("%w: %d", ErrInvalidStatus, resp.StatusCode)
		}

		body, err = ioutil.ReadAll(resp.Body)
		if err != nil {
			span.RecordError(err)
			msg := "could not read tiingo body"
			span.SetStatus(codes.Error, msg)
			subLog.Error().Err(err).Msg(msg)
			return nil, err
		}

		if err := common.CacheSet(cacheKey, body); err != nil {
			subLog.Warn().Err(err).Msg("could not cache tiingo response")
		}
	}

	jsonResp := []tiingoJSONResponse{}
	if err := json.Unmarshal(body, &jsonResp); err != nil {
		span.RecordError(err)
		msg := "could not unmarshal json"
		span.SetStatus(codes.Error, msg)
		subLog.Error().Err(err).Bytes("Body", body).Msg(msg)
		return nil, err
	}

	if len(jsonResp) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoData, symbol)
	}

	tz := common.GetTimezone()
	prices := make([]PriceObservation, 0, len(jsonResp))
	for _, item := range jsonResp {
		dtParts := strings.Split(item.Date, "T")
		dt, err := time.ParseInLocation("2006-01-02", dtParts[0], tz)
		if err != nil {
			span.RecordError(err)
			msg := "cannot parse date string"
			span.SetStatus(codes.Error, msg)
			subLog.Error().Err(err).Str("DateStr", item.Date).Msg(msg)
			return nil, err
		}
		prices = append(prices, PriceObservation{Date: dt, Price: item.AdjClose})
	}

	return prices, nil
}

// MonthlyReturns fetches benchmark prices covering dates and produces a
// fractional return series aligned one-to-one with the fund's dates.
func (t *Tiingo) MonthlyReturns(ctx context.Context, symbol string, dates []time.Time) ([]float64, error) {
	if len(dates) == 0 {
		return nil, ErrNoData
	}

	// reach back one extra month so the first aligned period has a prior
	// price to measure a return against
	begin := dates[0].AddDate(0, -1, 0)
	prices, err := t.MonthlyPrices(ctx, symbol, begin, dates[len(dates)-1])
	if err != nil {
		return nil, err
	}

	return ReturnsFromPrices(prices, dates), nil
}

// AlignToDates reindexes a price series to the fund's exact dates. Dates with
// no matching price carry the most recent earlier price forward; dates before
// the first price are zero-filled. Comparison is by calendar day.
func AlignToDates(prices []PriceObservation, dates []time.Time) []float64 {
	aligned := make([]float64, len(dates))

	pp := 0
	last := 0.0
	for ii, dt := range dates {
		for pp < len(prices) && !dayOf(prices[pp].Date).After(dayOf(dt)) {
			last = prices[pp].Price
			pp++
		}
		aligned[ii] = last
	}
	return aligned
}

// ReturnsFromPrices aligns prices to the fund's dates and converts them into
// month-over-month fractional returns. Periods with no prior price observe a
// zero return.
func ReturnsFromPrices(prices []PriceObservation, dates []time.Time) []float64 {
	aligned := AlignToDates(prices, dates)

	prev := 0.0
	if len(prices) > 0 && len(dates) > 0 && dayOf(prices[0].Date).Before(dayOf(dates[0])) {
		// price history reaches back before the fund series; seed the
		// first return from the price preceding the first fund date
		for _, price := range prices {
			if !dayOf(price.Date).Before(dayOf(dates[0])) {
				break
			}
			prev = price.Price
		}
	}

	rets := make([]float64, len(aligned))
	for ii, price := range aligned {
		if prev != 0 && price != 0 {
			rets[ii] = price/prev - 1
		}
		if price != 0 {
			prev = price
		}
	}
	return rets
}

func dayOf(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}
