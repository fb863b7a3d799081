package render

import (
	"fmt"
	"io"
	"poi-distance-service/internal/distance"
	"poi-distance-service/internal/view"

	"github.com/xuri/excelize/v2"
)

const DistanceSheet = "Distances"

// WriteXLSX exports the scene as a workbook with one row per marker.
func WriteXLSX(w io.Writer, sc view.Scene) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(DistanceSheet)
	if err != nil {
		return fmt.Errorf("write xlsx: new sheet: %w", err)
	}

	sw, err := f.NewStreamWriter(DistanceSheet)
	if err != nil {
		return fmt.Errorf("write xlsx: stream writer: %w", err)
	}

	headers := []interface{}{
		"POI", "Label", "Lat", "Lng", "Distance (m)", "Distance (km)",
	}
	if err := sw.SetRow("A1", headers); err != nil {
		return fmt.Errorf("write xlsx: header: %w", err)
	}

	lines := make(map[string]distance.Line, len(sc.Distances))
	for _, l := range sc.Distances {
		lines[l.Key] = l
	}

	rowNum := 2
	for _, m := range sc.Markers {
		row := []interface{}{m.Key, m.Label, m.Position.Lat, m.Position.Lng, "", ""}
		if l, ok := lines[m.Key]; ok {
			row[4] = l.Meters
			row[5] = l.Kilometers
		}

		cell, _ := excelize.CoordinatesToCellName(1, rowNum)
		if err := sw.SetRow(cell, row); err != nil {
			return fmt.Errorf("write xlsx: row %d: %w", rowNum, err)
		}
		rowNum++
	}

	if sc.UserMarker != nil {
		u := sc.UserMarker
		cell, _ := excelize.CoordinatesToCellName(1, rowNum)
		if err := sw.SetRow(cell, []interface{}{u.Key, u.Label, u.Position.Lat, u.Position.Lng}); err != nil {
			return fmt.Errorf("write xlsx: user row: %w", err)
		}
	}

	if err := sw.Flush(); err != nil {
		return fmt.Errorf("write xlsx: flush: %w", err)
	}

	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}
