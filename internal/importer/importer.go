package importer

import (
	"fmt"
	"io"
	"strings"

	fluid "Eletta/internal/calc/fluid"
	orifice "Eletta/internal/calc/orifice"

	"github.com/xuri/excelize/v2"
)

// ReadSizingPoints parses orifice sizing points from the first sheet of an
// .xlsx workbook. The first row is a header; data rows are
// grade, temp_c, flow_lpm and an optional target_dp_mbar. Rows that do not
// parse are skipped.
func ReadSizingPoints(r io.Reader) ([]orifice.Input, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("invalid workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil || len(rows) < 2 {
		return nil, fmt.Errorf("empty sheet")
	}

	var points []orifice.Input
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if len(row) < 3 {
			continue
		}
		point, err := parseSizingRow(row)
		if err != nil {
			continue
		}
		points = append(points, point)
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("no usable rows")
	}
	return points, nil
}

func parseSizingRow(row []string) (orifice.Input, error) {
	grade, err := fluid.ParseGrade(strings.TrimSpace(row[0]))
	if err != nil {
		return orifice.Input{}, err
	}
	temp, err := toFloat(row[1])
	if err != nil {
		return orifice.Input{}, err
	}
	flow, err := toFloat(row[2])
	if err != nil {
		return orifice.Input{}, err
	}
	targetDP := 0.0
	if len(row) > 3 && row[3] != "" {
		targetDP, _ = toFloat(row[3])
	}
	return orifice.Input{
		Grade:        grade,
		TempC:        temp,
		FlowLPM:      flow,
		TargetDPmbar: targetDP,
	}, nil
}

func toFloat(s string) (float64, error) {
	var v float64
	_, err := fmt.Sscanf(strings.TrimSpace(s), "%f", &v)
	return v, err
}
