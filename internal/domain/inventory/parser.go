package inventory

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Sheet is the parsed first sheet of an inventory workbook.
type Sheet struct {
	Boxes   []Box
	Skipped int
}

type setter func(b *Box, v string)

var columns = map[string]setter{
	"序号":        func(b *Box, v string) { b.Number = v },
	"IP":        func(b *Box, v string) { b.IP = v },
	"版本":        func(b *Box, v string) { b.Version = v },
	"MAC":       func(b *Box, v string) { b.MAC = v },
	"CPU数":      func(b *Box, v string) { b.CPUCount = v },
	"CPU ID":    func(b *Box, v string) { b.CPUID = v },
	"内存（M）":     func(b *Box, v string) { b.Memory = v },
	"内存(M)":     func(b *Box, v string) { b.Memory = v },
	"Wi-Fi":     func(b *Box, v string) { b.WiFi = v },
	"蓝牙":        func(b *Box, v string) { b.Bluetooth = v },
	"USB":       func(b *Box, v string) { b.USB = v },
	"操作用户":      func(b *Box, v string) { b.OperateUser = v },
	"其他":        func(b *Box, v string) { b.Other = v },
	"时间":        func(b *Box, v string) { b.Time = v },
	"boxqrcode": func(b *Box, v string) { b.BoxQRCode = v },
	"btid":      func(b *Box, v string) { b.BTID = v },
	"boxUuid":   func(b *Box, v string) { b.BoxUUID = v },
}

// ParseBoxes reads the first sheet of an xlsx workbook. Columns are matched by
// header title, unknown columns are ignored and blank rows are skipped.
func ParseBoxes(r io.Reader) (*Sheet, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidWorkbook, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: no sheets", ErrInvalidWorkbook)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: read sheet %s: %v", ErrInvalidWorkbook, sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: sheet %s is empty", ErrInvalidWorkbook, sheets[0])
	}

	index := make(map[int]setter, len(rows[0]))
	hasMAC := false
	for i, title := range rows[0] {
		title = strings.TrimSpace(title)
		if set, ok := columns[title]; ok {
			index[i] = set
			hasMAC = hasMAC || title == "MAC"
		}
	}
	if !hasMAC {
		return nil, fmt.Errorf("%w: MAC column not found", ErrInvalidWorkbook)
	}

	sheet := &Sheet{}
	for n, row := range rows[1:] {
		b := Box{Row: n + 2}
		for i, cell := range row {
			if set, ok := index[i]; ok {
				set(&b, strings.TrimSpace(cell))
			}
		}
		if b.IsEmpty() {
			sheet.Skipped++
			continue
		}
		sheet.Boxes = append(sheet.Boxes, b)
	}

	return sheet, nil
}
