package uploads

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/stahlwerk/meltplan/pkg/formatting"
)

// ScheduleRecord is one planned cast parsed from the daily charge schedule.
type ScheduleRecord struct {
	Date      time.Time
	StartTime string
	Grade     string
	MouldSize *string
}

// ForecastRecord is one (group, month, heats) cell parsed from the monthly
// forecast workbook.
type ForecastRecord struct {
	ProductGroup string
	Month        time.Time
	Heats        int
}

// HistoryRecord is one (group, grade, month, tons) cell parsed from the
// production history workbook.
type HistoryRecord struct {
	ProductGroup string
	Grade        string
	Month        time.Time
	Tons         decimal.Decimal
}

// Date layouts seen in daily schedule headers, after stripping the weekday
// name (e.g. "Friday 8/30/2024").
var scheduleDateLayouts = []string{
	"1/2/2006",
	"01/02/2006",
	"1/2/06",
	"2006-01-02",
	"01-02-06",
}

var startTimeLayouts = []string{
	"15:04",
	"15:04:05",
	"3:04 PM",
}

type monthColumn struct {
	col   int
	month time.Time
}

// ParseDailySchedule parses the daily charge schedule workbook.
//
// Layout: a title row, a date header row with one dated block per day, a
// column header row (Start time, Grade, Mould size), then data rows. Each
// day occupies three columns. Cells with a missing grade or a "-"
// placeholder carry no scheduled heat and are skipped.
func ParseDailySchedule(data []byte) ([]ScheduleRecord, error) {
	rows, err := workbookRows(data)
	if err != nil {
		return nil, err
	}
	if len(rows) < 4 {
		return nil, fmt.Errorf("%w: expected date, header, and data rows", ErrNoRecords)
	}

	dateRow := rows[1]
	dataRows := rows[3:]

	var records []ScheduleRecord

	for col := 0; col < len(dateRow); col += 3 {
		date, err := parseScheduleDate(dateRow[col])
		if err != nil {
			continue
		}

		for _, row := range dataRows {
			timeCell := cell(row, col)
			grade := cell(row, col+1)

			if timeCell == "" || grade == "" || grade == "-" {
				continue
			}

			startTime, err := parseStartTime(timeCell)
			if err != nil {
				continue
			}

			var mould *string
			if m := cell(row, col+2); m != "" && m != "-" {
				mould = &m
			}

			records = append(records, ScheduleRecord{
				Date:      date,
				StartTime: startTime,
				Grade:     grade,
				MouldSize: mould,
			})
		}
	}

	if len(records) == 0 {
		return nil, ErrNoRecords
	}
	return records, nil
}

// ParseMonthlyForecast parses the monthly product group forecast workbook.
//
// Layout: a title row, a header row ("Quality:" followed by month labels
// such as "Jun 24"), then one row per product group with heat counts under
// each month column.
func ParseMonthlyForecast(data []byte) ([]ForecastRecord, error) {
	rows, err := workbookRows(data)
	if err != nil {
		return nil, err
	}
	if len(rows) < 3 {
		return nil, fmt.Errorf("%w: expected header and data rows", ErrNoRecords)
	}

	months := parseMonthColumns(rows[1], 1)
	if len(months) == 0 {
		return nil, fmt.Errorf("%w: no month columns in header", ErrInvalidWorkbook)
	}

	var records []ForecastRecord

	for _, row := range rows[2:] {
		group := cell(row, 0)
		if group == "" {
			continue
		}

		for _, mc := range months {
			heats, err := parseHeats(cell(row, mc.col))
			if err != nil {
				continue
			}

			records = append(records, ForecastRecord{
				ProductGroup: group,
				Month:        mc.month,
				Heats:        heats,
			})
		}
	}

	if len(records) == 0 {
		return nil, ErrNoRecords
	}
	return records, nil
}

// ParseProductionHistory parses the steel grade production history workbook.
//
// Layout: a title row, a header row ("Quality group", "Grade", then month
// labels), then one row per grade with tons under each month column. The
// quality group column is only populated on the first grade of a group and
// carries forward for subsequent rows.
func ParseProductionHistory(data []byte) ([]HistoryRecord, error) {
	rows, err := workbookRows(data)
	if err != nil {
		return nil, err
	}
	if len(rows) < 3 {
		return nil, fmt.Errorf("%w: expected header and data rows", ErrNoRecords)
	}

	months := parseMonthColumns(rows[1], 2)
	if len(months) == 0 {
		return nil, fmt.Errorf("%w: no month columns in header", ErrInvalidWorkbook)
	}

	var records []HistoryRecord
	var currentGroup string

	for _, row := range rows[2:] {
		if group := cell(row, 0); group != "" {
			currentGroup = group
		}

		grade := cell(row, 1)
		if grade == "" || currentGroup == "" {
			continue
		}

		for _, mc := range months {
			raw := cell(row, mc.col)
			if raw == "" {
				continue
			}

			tons, err := decimal.NewFromString(strings.ReplaceAll(raw, ",", ""))
			if err != nil {
				continue
			}

			records = append(records, HistoryRecord{
				ProductGroup: currentGroup,
				Grade:        grade,
				Month:        mc.month,
				Tons:         tons,
			})
		}
	}

	if len(records) == 0 {
		return nil, ErrNoRecords
	}
	return records, nil
}

// workbookRows opens an xlsx workbook and returns the first sheet as rows of
// formatted cell values.
func workbookRows(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidWorkbook, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook has no sheets", ErrInvalidWorkbook)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidWorkbook, err)
	}

	return rows, nil
}

// parseMonthColumns reads month labels from a header row starting at the
// given column, stopping at the first blank header cell. Columns whose label
// cannot be parsed are skipped without shifting later columns.
func parseMonthColumns(header []string, start int) []monthColumn {
	var months []monthColumn

	for col := start; col < len(header); col++ {
		label := strings.TrimSpace(header[col])
		if label == "" {
			break
		}

		month, err := formatting.ParseMonthLabel(label)
		if err != nil {
			continue
		}

		months = append(months, monthColumn{col: col, month: month})
	}

	return months
}

// parseScheduleDate parses a date header such as "Friday 8/30/2024"; the
// weekday prefix is optional.
func parseScheduleDate(s string) (time.Time, error) {
	fields := strings.Fields(strings.TrimSpace(s))
	if len(fields) == 0 {
		return time.Time{}, fmt.Errorf("empty date header")
	}

	raw := fields[len(fields)-1]
	for _, layout := range scheduleDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("invalid date header: %q", s)
}

func parseStartTime(s string) (string, error) {
	s = strings.TrimSpace(s)
	for _, layout := range startTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("15:04"), nil
		}
	}
	return "", fmt.Errorf("invalid start time: %q", s)
}

// parseHeats accepts integer heat counts, tolerating spreadsheet float
// rendering such as "120.0".
func parseHeats(s string) (int, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return 0, fmt.Errorf("empty heat count")
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}

	return int(f), nil
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
