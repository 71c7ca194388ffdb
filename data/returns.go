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
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/fee-vault/fee-api/common"
	"github.com/fee-vault/fee-api/feesim"

	imports "github.com/rocketlaunchr/dataframe-go/imports"
	"github.com/rs/zerolog/log"
)

// Required columns of an uploaded monthly-return CSV.
const (
	DateColumn        = "Date"
	GrossReturnColumn = "GrossReturn"
)

// ReadReturnsCSV loads a Date,GrossReturn CSV into a chronologically sorted
// observation series. Dates must parse as YYYY-MM-DD; the gross return is a
// decimal fraction. Rows arriving out of order are sorted; duplicate dates
// are rejected since each observation is one accounting period.
func ReadReturnsCSV(ctx context.Context, r io.ReadSeeker) ([]feesim.ReturnObservation, error) {
	tz := common.GetTimezone()

	df, err := imports.LoadFromCSV(ctx, r, imports.CSVLoadOptions{
		DictateDataType: map[string]interface{}{
			DateColumn: imports.Converter{
				ConcreteType: time.Time{},
				ConverterFunc: func(in interface{}) (interface{}, error) {
					return time.ParseInLocation("2006-01-02", in.(string), tz)
				},
			},
			GrossReturnColumn: imports.Converter{
				ConcreteType: float64(0),
				ConverterFunc: func(in interface{}) (interface{}, error) {
					return strconv.ParseFloat(in.(string), 64)
				},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("could not read CSV: %w", err)
	}

	dateIdx, err := df.NameToColumn(DateColumn)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, DateColumn)
	}
	retIdx, err := df.NameToColumn(GrossReturnColumn)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, GrossReturnColumn)
	}

	n := df.NRows()
	observations := make([]feesim.ReturnObservation, 0, n)
	for row := 0; row < n; row++ {
		dt, ok := df.Series[dateIdx].Value(row).(time.Time)
		if !ok {
			return nil, fmt.Errorf("%w: %s (row %d does not parse as a date)", ErrMissingColumn, DateColumn, row+1)
		}
		ret, ok := df.Series[retIdx].Value(row).(float64)
		if !ok {
			return nil, fmt.Errorf("%w: %s (row %d does not parse as a number)", ErrMissingColumn, GrossReturnColumn, row+1)
		}
		observations = append(observations, feesim.ReturnObservation{
			Date:        dt,
			GrossReturn: ret,
		})
	}

	sort.Slice(observations, func(i, j int) bool {
		return observations[i].Date.Before(observations[j].Date)
	})

	for ii := 1; ii < len(observations); ii++ {
		if observations[ii].Date.Equal(observations[ii-1].Date) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateDate, observations[ii].Date.Format("2006-01-02"))
		}
	}

	log.Debug().Int("NumObservations", len(observations)).Msg("loaded return series")
	return observations, nil
}

// ParseAUM converts human-entered currency text like "100,000,000.00" into a
// float. Commas, whitespace, and a leading dollar sign are tolerated.
func ParseAUM(aumStr string) (float64, error) {
	cleaned := strings.TrimSpace(aumStr)
	cleaned = strings.TrimPrefix(cleaned, "$")
	cleaned = strings.ReplaceAll(cleaned, ",", "")

	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number like 100,000,000.00", ErrInvalidAUM, aumStr)
	}
	return value, nil
}
