package types

const (
	StatusPending   = "pendiente"
	StatusConfirmed = "confirmado"
	StatusCancelled = "cancelado"
)

// FuelLevels is the closed domain the intake form offers.
var FuelLevels = []string{"E", "1/4", "1/2", "3/4", "F"}

func IsFuelLevel(v string) bool {
	for _, f := range FuelLevels {
		if f == v {
			return true
		}
	}
	return false
}

func IsServiceStatus(v string) bool {
	switch v {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return true
	}
	return false
}

// Service is a scheduled appointment record. CreatedAt is epoch millis kept
// as a string, exactly as the store holds it. WorkDetails ordering is
// significant and preserved verbatim from user input.
type Service struct {
	ID           string   `json:"id"`
	UserID       string   `json:"userId"`
	VehiclePlaca string   `json:"vehiclePlaca"`
	Date         string   `json:"date"`
	Hour         string   `json:"hour"`
	Fuel         string   `json:"fuel"`
	Mileage      string   `json:"mileage"`
	CompanyName  string   `json:"companyName,omitempty"`
	WorkDetails  []string `json:"workDetails"`
	CreatedAt    string   `json:"createdAt"`
	Status       string   `json:"status"`
}

func ServiceFromDocument(doc Document) *Service {
	return &Service{
		ID:           doc.ID(),
		UserID:       doc.OwnerUserID(),
		VehiclePlaca: doc.Str("vehiclePlaca", ""),
		Date:         doc.Str("date", SentinelUnknown),
		Hour:         doc.Str("hour", SentinelUnknown),
		Fuel:         doc.Str("fuel", SentinelUnknown),
		Mileage:      doc.Str("mileage", SentinelUnknown),
		CompanyName:  doc.Str("companyName", ""),
		WorkDetails:  doc.StrList("workDetails"),
		CreatedAt:    doc.Str("createdAt", "0"),
		Status:       doc.Str("status", StatusPending),
	}
}

func (s *Service) ToFields() map[string]any {
	return map[string]any{
		"vehiclePlaca": s.VehiclePlaca,
		"date":         s.Date,
		"hour":         s.Hour,
		"fuel":         s.Fuel,
		"mileage":      s.Mileage,
		"companyName":  s.CompanyName,
		"workDetails":  s.WorkDetails,
		"createdAt":    s.CreatedAt,
		"status":       s.Status,
	}
}

// AdminServiceView is the denormalized admin read model: a service annotated
// with its owning client and the plate-matched vehicle, assembled at read
// time.
type AdminServiceView struct {
	Service

	ClientName    string `json:"clientName"`
	ClientDniRuc  string `json:"clientDniRuc"`
	ClientAddress string `json:"clientAddress"`
	ClientPhone   string `json:"clientPhone"`
	ClientEmail   string `json:"clientEmail"`
	VehicleBrand  string `json:"vehicleBrand"`
	VehicleModel  string `json:"vehicleModel"`
	VehicleYear   string `json:"vehicleYear"`
	VehicleColor  string `json:"vehicleColor"`
}
