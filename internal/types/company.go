package types

// Company is an entry of the shared, name-deduplicated global pool.
type Company struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// PersonalCompany is a per-user reference into a (possibly global) company
// name, separately identified so a user can drop it without touching the
// shared pool.
type PersonalCompany struct {
	ID     string `json:"id"`
	UserID string `json:"userId"`
	Name   string `json:"name"`
}

func CompanyFromDocument(doc Document) *Company {
	return &Company{
		ID:   doc.ID(),
		Name: doc.Str("name", ""),
	}
}

func (c *Company) ToFields() map[string]any {
	return map[string]any{"name": c.Name}
}

func PersonalCompanyFromDocument(doc Document) *PersonalCompany {
	return &PersonalCompany{
		ID:     doc.ID(),
		UserID: doc.OwnerUserID(),
		Name:   doc.Str("name", ""),
	}
}

func (c *PersonalCompany) ToFields() map[string]any {
	return map[string]any{"name": c.Name}
}
