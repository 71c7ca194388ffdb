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

package reports

import (
	"fmt"
	"io"

	"github.com/tealeg/xlsx/v3"
)

// sheet names are capped at 31 characters by the xlsx format
const maxSheetName = 31

// WriteXLSX exports every scheme's monthly trace and annual fee revenue as a
// spreadsheet with one "<scheme> Monthly" and one "<scheme> Annual" sheet per
// scheme.
func WriteXLSX(w io.Writer, reports []*SchemeReport) error {
	file := xlsx.NewFile()

	for _, report := range reports {
		if err := addMonthlySheet(file, report); err != nil {
			return err
		}
		if err := addAnnualSheet(file, report); err != nil {
			return err
		}
	}

	return file.Write(w)
}

func addMonthlySheet(file *xlsx.File, report *SchemeReport) error {
	sheet, err := file.AddSheet(sheetName(report.Result.SchemeName, "Monthly"))
	if err != nil {
		return err
	}

	header := sheet.AddRow()
	for _, name := range []string{"Date", "GrossReturn", "NetReturn", "MgmtFeeRevenue", "PerfFeeRevenue", "AUM_End"} {
		header.AddCell().SetString(name)
	}

	for _, period := range report.Result.Periods {
		row := sheet.AddRow()
		row.AddCell().SetString(period.Date.Format("2006-01-02"))
		row.AddCell().SetFloat(period.GrossReturn)
		row.AddCell().SetFloat(period.NetReturn)
		row.AddCell().SetFloat(period.MgmtFeeRevenue)
		row.AddCell().SetFloat(period.PerfFeeRevenue)
		row.AddCell().SetFloat(period.AUMEnd)
	}

	return nil
}

func addAnnualSheet(file *xlsx.File, report *SchemeReport) error {
	sheet, err := file.AddSheet(sheetName(report.Result.SchemeName, "Annual"))
	if err != nil {
		return err
	}

	header := sheet.AddRow()
	for _, name := range []string{"Year", "AnnualMgmtRev", "AnnualPerfRev", "TotalFeeRev"} {
		header.AddCell().SetString(name)
	}

	for _, year := range report.Result.Years() {
		agg := report.Result.Annual[year]
		row := sheet.AddRow()
		row.AddCell().SetInt(agg.Year)
		row.AddCell().SetFloat(agg.AnnualMgmtRevenue)
		row.AddCell().SetFloat(agg.AnnualPerfRevenue)
		row.AddCell().SetFloat(agg.TotalFeeRevenue)
	}

	return nil
}

func sheetName(scheme string, suffix string) string {
	name := fmt.Sprintf("%s %s", scheme, suffix)
	if len(name) > maxSheetName {
		keep := maxSheetName - len(suffix) - 1
		name = fmt.Sprintf("%s %s", scheme[:keep], suffix)
	}
	return name
}
