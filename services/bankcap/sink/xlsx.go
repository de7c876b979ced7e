package sink

import (
	"fmt"

	"bankcap-backend/services/bankcap"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Largest banks"

// WriteXLSX writes the enriched table as a single-sheet workbook.
// Numeric cells stay numeric so spreadsheet formulas keep working;
// unavailable values are left blank.
func WriteXLSX(path string, currencies []bankcap.Currency, rows []bankcap.Enriched) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return err
	}
	f.SetActiveSheet(index)
	err = f.DeleteSheet("Sheet1")
	if err != nil {
		return err
	}

	for col, name := range bankcap.Columns(currencies) {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		err = f.SetCellValue(sheetName, cell, name)
		if err != nil {
			return err
		}
	}

	for i, row := range rows {
		values := make([]*float64, 0, len(currencies)+1)
		values = append(values, row.MarketCapUSD)
		values = append(values, row.Derived...)

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		err = f.SetCellValue(sheetName, cell, row.Name)
		if err != nil {
			return err
		}
		for j, v := range values {
			if v == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(j+2, i+2)
			if err != nil {
				return err
			}
			err = f.SetCellValue(sheetName, cell, *v)
			if err != nil {
				return err
			}
		}
	}

	err = f.SaveAs(path)
	if err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}
