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
	"fmt"
	"os"

	"github.com/fee-vault/fee-api/common"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var Profile bool
var Trace bool

func init() {
	// Tiingo benchmark data
	viper.BindEnv("tiingo.token", "TIINGO_TOKEN")
	rootCmd.PersistentFlags().String("tiingo-token", "", "Tiingo API token used for benchmark data")
	viper.BindPFlag("tiingo.token", rootCmd.PersistentFlags().Lookup("tiingo-token"))

	// Simulator defaults
	viper.BindEnv("simulator.risk_free_rate", "RISK_FREE_RATE")
	rootCmd.PersistentFlags().Float64("risk-free-rate", 0.025, "Annual risk free rate used by Sharpe and Sortino")
	viper.BindPFlag("simulator.risk_free_rate", rootCmd.PersistentFlags().Lookup("risk-free-rate"))

	viper.BindEnv("simulator.default_aum", "DEFAULT_AUM")

	// Cache
	viper.BindEnv("cache.redis_url", "REDIS_URL")
	rootCmd.PersistentFlags().String("redis-url", "", "Redis connection string for the shared benchmark cache")
	viper.BindPFlag("cache.redis_url", rootCmd.PersistentFlags().Lookup("redis-url"))

	// Logging configuration
	viper.BindEnv("log.level", "FEESIM_LOG_LEVEL")
	rootCmd.PersistentFlags().String("log-level", "warning", "Logging level")
	viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))

	viper.BindEnv("log.report_caller", "FEESIM_LOG_REPORT_CALLER")
	rootCmd.PersistentFlags().Bool("log-report-caller", false, "Log function name that called log statement")
	viper.BindPFlag("log.report_caller", rootCmd.PersistentFlags().Lookup("log-report-caller"))

	viper.BindEnv("log.output", "FEESIM_LOG_OUTPUT")
	rootCmd.PersistentFlags().String("log-output", "stdout", "Write logs to specified output one of: file path, `stdout`, or `stderr`")
	viper.BindPFlag("log.output", rootCmd.PersistentFlags().Lookup("log-output"))

	rootCmd.PersistentFlags().BoolVar(&Profile, "cpu-profile", false, "Run pprof and save in profile.out")
	rootCmd.PersistentFlags().BoolVar(&Trace, "trace", false, "Trace program execution and save in trace.out")
}

var rootCmd = &cobra.Command{
	Use:     "feesim",
	Version: common.CurrentVersion.String(),
	Short:   "Fee Vault simulates hedge-fund fee schedules",
	Long:    `Simulate month-by-month AUM evolution under flat or tiered fee schemes and compare net returns against a benchmark with standard risk-adjusted metrics.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
