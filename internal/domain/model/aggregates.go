package model

// DeviceLog is the ordered record listing for one device.
type DeviceLog struct {
	DeviceID string
	Records  []RecordView
}

// DeviceStats is the aggregate view over all of a device's records.
type DeviceStats struct {
	DeviceID     string `json:"device_id"`
	TotalSteps   int    `json:"total_steps"`
	RecordsCount int    `json:"records_count"`
}
