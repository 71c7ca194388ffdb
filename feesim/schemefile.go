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

package feesim

import (
	"fmt"
	"io"
	"os"

	toml "github.com/pelletier/go-toml/v2"
)

// Scheme kind discriminants used by SchemeSpec.
const (
	KindFlat   = "flat"
	KindTiered = "tiered"
)

// SchemeSpec is the serialized form of a fee scheme, shared by the TOML
// scheme files read by the CLI and the JSON bodies accepted by the API. Kind
// selects the variant; fields belonging to the other variant must be absent.
type SchemeSpec struct {
	Name          string  `json:"name" toml:"name"`
	Kind          string  `json:"kind" toml:"kind"`
	HighWaterMark bool    `json:"highWaterMark" toml:"high_water_mark"`
	MgmtRate      float64 `json:"mgmtRate,omitempty" toml:"mgmt_rate,omitempty"`
	PerfRate      float64 `json:"perfRate,omitempty" toml:"perf_rate,omitempty"`
	HurdleRate    float64 `json:"hurdleRate,omitempty" toml:"hurdle_rate,omitempty"`
	Tiers         []Tier  `json:"tiers,omitempty" toml:"tiers,omitempty"`
}

// Scheme builds the tagged variant the engine consumes and validates it.
func (spec *SchemeSpec) Scheme() (FeeScheme, error) {
	var scheme FeeScheme

	switch spec.Kind {
	case KindFlat:
		if len(spec.Tiers) > 0 {
			return nil, fmt.Errorf("%w: flat scheme %q must not define tiers", ErrInvalidConfiguration, spec.Name)
		}
		scheme = &FlatScheme{
			SchemeName:    spec.Name,
			HighWaterMark: spec.HighWaterMark,
			MgmtRate:      spec.MgmtRate,
			PerfRate:      spec.PerfRate,
			HurdleRate:    spec.HurdleRate,
		}
	case KindTiered:
		if spec.MgmtRate != 0 || spec.PerfRate != 0 || spec.HurdleRate != 0 {
			return nil, fmt.Errorf("%w: tiered scheme %q must not define flat-fee rates", ErrInvalidConfiguration, spec.Name)
		}
		scheme = &TieredScheme{
			SchemeName:    spec.Name,
			HighWaterMark: spec.HighWaterMark,
			Tiers:         spec.Tiers,
		}
	default:
		return nil, fmt.Errorf("%w: unknown scheme kind %q", ErrInvalidConfiguration, spec.Kind)
	}

	if err := scheme.Validate(); err != nil {
		return nil, err
	}
	return scheme, nil
}

type schemeFile struct {
	Schemes []SchemeSpec `toml:"schemes"`
}

// ReadSchemes parses a TOML document containing a [[schemes]] array.
func ReadSchemes(r io.Reader) ([]FeeScheme, error) {
	var file schemeFile
	if err := toml.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidConfiguration, err)
	}
	if len(file.Schemes) == 0 {
		return nil, fmt.Errorf("%w: no schemes defined", ErrInvalidConfiguration)
	}

	schemes := make([]FeeScheme, 0, len(file.Schemes))
	for ii := range file.Schemes {
		scheme, err := file.Schemes[ii].Scheme()
		if err != nil {
			return nil, err
		}
		schemes = append(schemes, scheme)
	}
	return schemes, nil
}

// ReadSchemesFile reads fee schemes from a TOML file on disk.
func ReadSchemesFile(path string) ([]FeeScheme, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()
	return ReadSchemes(fh)
}
