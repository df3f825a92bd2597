package types

import (
	"strings"
)

// Sentinels used when a read-model join target is missing a field. The admin
// screens render these verbatim.
const (
	SentinelUnknown       = "Sin información"
	SentinelUnknownClient = "Cliente desconocido"
	SentinelNone          = "ninguno"
)

const (
	RoleClient = "cliente"
	RoleAdmin  = "admin"
)

// Document is a loosely typed record as held by the remote store. Fields are
// string-valued except workDetails, which is an ordered list of strings.
type Document struct {
	Path   string
	Fields map[string]any
}

// ID returns the last path segment.
func (d Document) ID() string {
	segs := strings.Split(d.Path, "/")
	if len(segs) == 0 {
		return ""
	}
	return segs[len(segs)-1]
}

// OwnerUserID resolves the owning user of a document nested under
// users/{uid}/..., i.e. the parent of the parent collection.
func (d Document) OwnerUserID() string {
	segs := strings.Split(d.Path, "/")
	if len(segs) >= 2 && segs[0] == "users" {
		return segs[1]
	}
	return ""
}

// Str returns the string field at key, or fallback when the field is absent,
// blank or not a string.
func (d Document) Str(key, fallback string) string {
	v, ok := d.Fields[key]
	if !ok {
		return fallback
	}
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

// StrList returns the ordered string-list field at key. Values decoded from
// JSON arrive as []any. Order is preserved verbatim.
func (d Document) StrList(key string) []string {
	v, ok := d.Fields[key]
	if !ok {
		return nil
	}
	switch list := v.(type) {
	case []string:
		out := make([]string, len(list))
		copy(out, list)
		return out
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// CollectionOf returns the collection name a document path belongs to, e.g.
// "services" for users/{uid}/services/{id}.
func CollectionOf(path string) string {
	segs := strings.Split(path, "/")
	if len(segs) < 2 {
		return ""
	}
	return segs[len(segs)-2]
}

func UserPath(userID string) string {
	return "users/" + userID
}

func VehiclePath(userID, id string) string {
	return "users/" + userID + "/vehicles/" + id
}

func VehicleCollection(userID string) string {
	return "users/" + userID + "/vehicles"
}

func ServicePath(userID, id string) string {
	return "users/" + userID + "/services/" + id
}

func ServiceCollection(userID string) string {
	return "users/" + userID + "/services"
}

func CompanyPath(id string) string {
	return "companies/" + id
}

func PersonalCompanyPath(userID, id string) string {
	return "users/" + userID + "/personalCompanies/" + id
}

func PersonalCompanyCollection(userID string) string {
	return "users/" + userID + "/personalCompanies"
}
