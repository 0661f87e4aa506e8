// pkg/schema/schema.go
package schema

// Ranked header aliases per semantic role. The first alias present in the
// uploaded header wins; order encodes preference, not likelihood.
var (
	identityAliases = []string{"IC", "ICNumber", "IC Number", "Identification Number"}
	emailAliases    = []string{"Email", "EmailAddress", "E-mail"}
	phoneAliases    = []string{"Mobile", "Phone", "PhoneNumber"}
)

// Columns holds the resolved column name per role. An empty string means the
// role is absent from the uploaded batch.
type Columns struct {
	Identity string
	Email    string
	Phone    string
}

// Empty reports whether no role resolved at all.
func (c Columns) Empty() bool {
	return c.Identity == "" && c.Email == "" && c.Phone == ""
}

// Resolve scans the uploaded header and picks the column fulfilling each
// role. Roles with no matching alias resolve to absent; callers decide
// whether an entirely unresolved schema is fatal.
func Resolve(header []string) Columns {
	return Columns{
		Identity: firstPresent(header, identityAliases),
		Email:    firstPresent(header, emailAliases),
		Phone:    firstPresent(header, phoneAliases),
	}
}

func firstPresent(header, aliases []string) string {
	for _, alias := range aliases {
		for _, col := range header {
			if col == alias {
				return alias
			}
		}
	}
	return ""
}
