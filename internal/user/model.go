package user

// UnknownName is the sentinel used wherever a profile record is absent.
const UnknownName = "Unknown User"

type Profile struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// DisplayName returns the profile's name, falling back to the sentinel
// for nil or unnamed profiles.
func DisplayName(p *Profile) string {
	if p == nil || p.Name == "" {
		return UnknownName
	}
	return p.Name
}
