package model

import "time"

// ReportRow is one flattened line in a generated stock report.
type ReportRow struct {
	No        int       `json:"no"`
	Principle string    `json:"principle"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Large     Quantity  `json:"large"`
	Medium    Quantity  `json:"medium"`
	Small     Quantity  `json:"small"`
	Timestamp time.Time `json:"timestamp"`
}

// StockReport is a persisted, brand-grouped stock summary ready for export.
type StockReport struct {
	ID        string      `json:"id"`
	Principle string      `json:"principle"`
	CreatedAt time.Time   `json:"createdAt"`
	CreatedBy string      `json:"createdBy,omitempty"`
	Rows      []ReportRow `json:"rows"`
}
