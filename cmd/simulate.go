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

package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fee-vault/fee-api/analytics"
	"github.com/fee-vault/fee-api/common"
	"github.com/fee-vault/fee-api/data"
	"github.com/fee-vault/fee-api/feesim"
	"github.com/fee-vault/fee-api/reports"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	initialAUMStr   string
	benchmarkSymbol string
	outputPath      string
)

func init() {
	simulateCmd.Flags().StringVar(&initialAUMStr, "initial-aum", "", "Initial AUM, commas allowed (default from config)")
	simulateCmd.Flags().StringVarP(&benchmarkSymbol, "benchmark", "b", "", "Benchmark ticker, e.g. SPY (requires a tiingo token)")
	simulateCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write results to an xlsx spreadsheet at the given path")

	rootCmd.AddCommand(simulateCmd)
}

var simulateCmd = &cobra.Command{
	Use:        "simulate [flags] ReturnsCSV SchemesTOML",
	Short:      "Run fee-scheme simulations over a monthly return series",
	Args:       cobra.ExactArgs(2),
	ArgAliases: []string{"ReturnsCSV", "SchemesTOML"},
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		common.SetupLogging()
		common.SetupCache()

		fh, err := os.Open(args[0])
		if err != nil {
			log.Fatal().Err(err).Str("File", args[0]).Msg("could not open returns CSV")
		}
		observations, err := data.ReadReturnsCSV(ctx, fh)
		fh.Close()
		if err != nil {
			log.Fatal().Err(err).Str("File", args[0]).Msg("could not load return series")
		}

		schemes, err := feesim.ReadSchemesFile(args[1])
		if err != nil {
			log.Fatal().Err(err).Str("File", args[1]).Msg("could not load fee schemes")
		}

		initialAUM := viper.GetFloat64("simulator.default_aum")
		if initialAUMStr != "" {
			initialAUM, err = data.ParseAUM(initialAUMStr)
			if err != nil {
				log.Fatal().Err(err).Msg("could not parse initial AUM")
			}
		}

		var benchmark []float64
		benchmarkYearly := make(map[int]float64)
		if benchmarkSymbol != "" {
			provider := data.NewTiingo(viper.GetString("tiingo.token"))
			obsDates := make([]time.Time, len(observations))
			for idx, obs := range observations {
				obsDates[idx] = obs.Date
			}
			benchmark, err = provider.MonthlyReturns(ctx, benchmarkSymbol, obsDates)
			if err != nil {
				log.Fatal().Err(err).Str("Symbol", benchmarkSymbol).Msg("could not fetch benchmark returns")
			}

			yearly, err := analytics.YearlyReturns(obsDates, benchmark)
			if err != nil {
				log.Fatal().Err(err).Msg("could not compute benchmark yearly returns")
			}
			for _, yr := range yearly {
				benchmarkYearly[yr.Year] = yr.Return
			}
		}

		results := feesim.SimulateAll(observations, schemes, initialAUM)
		if len(results) == 0 {
			log.Fatal().Msg("no scheme produced results")
		}

		riskFree := viper.GetFloat64("simulator.risk_free_rate")
		schemeReports, err := reports.BuildReports(results, benchmark, riskFree)
		if err != nil {
			log.Fatal().Err(err).Msg("could not compute performance metrics")
		}

		fmt.Println("\nRisk-Adjusted Return Statistics")
		reports.PrintMetricsTable(os.Stdout, schemeReports)

		fmt.Println("\nAnnual Total Fee Revenue")
		reports.PrintAnnualRevenueTable(os.Stdout, schemeReports)

		fmt.Println("\nAnnual Fee Revenue Statistics")
		reports.PrintRevenueStatsTable(os.Stdout, schemeReports)

		fmt.Println("\nYearly Net Returns vs Benchmark")
		reports.PrintYearlyReturnsTable(os.Stdout, schemeReports, benchmarkYearly)

		if outputPath != "" {
			fh, err := os.Create(outputPath)
			if err != nil {
				log.Fatal().Err(err).Str("File", outputPath).Msg("could not create spreadsheet")
			}
			defer fh.Close()
			if err := reports.WriteXLSX(fh, schemeReports); err != nil {
				log.Fatal().Err(err).Str("File", outputPath).Msg("could not write spreadsheet")
			}
			log.Info().Str("File", outputPath).Msg("wrote spreadsheet")
		}
	},
}
