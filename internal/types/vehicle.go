package types

// Vehicle document keys keep the store's original Spanish field names; the
// JSON surface mirrors them so mobile clients keep working unchanged.
type Vehicle struct {
	ID       string `json:"id"`
	UserID   string `json:"userId"`
	Placa    string `json:"placa"`
	Year     string `json:"año"`
	Brand    string `json:"marca"`
	Model    string `json:"modelo"`
	Color    string `json:"color"`
	ImageURL string `json:"imageUrl,omitempty"`
}

func VehicleFromDocument(doc Document) *Vehicle {
	return &Vehicle{
		ID:       doc.ID(),
		UserID:   doc.OwnerUserID(),
		Placa:    doc.Str("placa", ""),
		Year:     doc.Str("año", SentinelUnknown),
		Brand:    doc.Str("marca", SentinelUnknown),
		Model:    doc.Str("modelo", SentinelUnknown),
		Color:    doc.Str("color", SentinelUnknown),
		ImageURL: doc.Str("imageUrl", ""),
	}
}

func (v *Vehicle) ToFields() map[string]any {
	fields := map[string]any{
		"placa":  v.Placa,
		"año":    v.Year,
		"marca":  v.Brand,
		"modelo": v.Model,
		"color":  v.Color,
	}
	if v.ImageURL != "" {
		fields["imageUrl"] = v.ImageURL
	}
	return fields
}
