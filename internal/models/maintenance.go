package models

// ServiceType discriminates the two kinds of maintenance events.
type ServiceType string

const (
	TypeReplacement ServiceType = "REPLACEMENT" // a part was swapped
	TypeRevision    ServiceType = "REVISION"    // preventive inspection/service
)

// ParseServiceType maps the literal token REVISION to TypeRevision; every
// other token, including garbage, falls back to TypeReplacement. This matches
// how CSV files exported by older versions are read back.
func ParseServiceType(s string) ServiceType {
	if s == string(TypeRevision) {
		return TypeRevision
	}
	return TypeReplacement
}

// MaintenanceRecord is one logged service event against a car.
// Date is a calendar date formatted YYYY-MM-DD; there is no time-of-day.
type MaintenanceRecord struct {
	ID       string      `json:"id"`
	CarID    string      `json:"carId"`
	UserID   string      `json:"-"`
	PartName string      `json:"partName"`
	Type     ServiceType `json:"type"`
	Date     string      `json:"date"`
	Mileage  int         `json:"mileage"`
	Cost     float64     `json:"cost"`
	Notes    string      `json:"notes,omitempty"`
}
