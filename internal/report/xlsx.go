package report

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/vadiminshakov/earnwatch/internal/domain"
)

const sheetName = "Flexible"

// ExportXLSX writes the per-row breakdown and the total to an Excel workbook at path.
func ExportXLSX(path string, v domain.Valuation) (err error) {
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.Wrap(cerr, "close workbook")
		}
	}()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return errors.Wrap(err, "rename sheet")
	}

	header := []any{"Asset", "Amount", "Symbol", "Price", "Value " + v.Stablecoin, "Status"}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return errors.Wrap(err, "write header")
	}

	row := 2
	for _, r := range v.Rows {
		if r.Status == domain.RowSkipped {
			continue
		}
		values := []any{r.Asset, r.Amount.String(), r.Symbol, "", "", string(r.Status)}
		if r.Counted() {
			values[3] = r.Price.String()
			values[4] = Money(r.Value)
		}
		if err := f.SetSheetRow(sheetName, fmt.Sprintf("A%d", row), &values); err != nil {
			return errors.Wrapf(err, "write row %d", row)
		}
		row++
	}

	total := []any{"Total", "", "", "", Money(v.Total), ""}
	if err := f.SetSheetRow(sheetName, fmt.Sprintf("A%d", row+1), &total); err != nil {
		return errors.Wrap(err, "write total")
	}

	if err := f.SaveAs(path); err != nil {
		return errors.Wrapf(err, "save workbook %s", path)
	}
	return nil
}
