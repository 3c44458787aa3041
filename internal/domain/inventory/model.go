package inventory

import (
	"errors"
	"time"
)

var (
	ErrInvalidWorkbook = errors.New("invalid workbook")
	ErrInvalidBox      = errors.New("invalid box row")
)

// Box is one row of the factory box inventory sheet.
type Box struct {
	Row         int       `json:"row,omitempty" doc:"Sheet row the box was read from"`
	Number      string    `json:"number"`
	IP          string    `json:"ip"`
	Version     string    `json:"version"`
	MAC         string    `json:"mac"`
	CPUCount    string    `json:"cpu_count"`
	CPUID       string    `json:"cpu_id"`
	Memory      string    `json:"memory"`
	WiFi        string    `json:"wifi"`
	Bluetooth   string    `json:"bluetooth"`
	USB         string    `json:"usb"`
	OperateUser string    `json:"operate_user"`
	Other       string    `json:"other"`
	Time        string    `json:"time"`
	BoxQRCode   string    `json:"box_qrcode,omitempty"`
	BTID        string    `json:"btid,omitempty"`
	BTIDHash    string    `json:"btid_hash,omitempty"`
	BoxUUID     string    `json:"box_uuid,omitempty"`
	UpdatedAt   time.Time `json:"updated_at,omitempty"`
}

// IsEmpty reports whether every spreadsheet column of the row is blank.
func (b *Box) IsEmpty() bool {
	for _, v := range []string{
		b.Number, b.IP, b.Version, b.MAC, b.CPUCount, b.CPUID, b.Memory,
		b.WiFi, b.Bluetooth, b.USB, b.OperateUser, b.Other, b.Time,
		b.BoxQRCode, b.BTID, b.BoxUUID,
	} {
		if v != "" {
			return false
		}
	}
	return true
}

type RowError struct {
	Row   int    `json:"row"`
	Error string `json:"error"`
}

type ImportResult struct {
	Imported int        `json:"imported"`
	Skipped  int        `json:"skipped"`
	Failed   []RowError `json:"failed,omitempty"`
}
