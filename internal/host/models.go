package host

// Host is a guest record managed by the hosts API.
// Optional fields are nil when the guest did not provide them.
type Host struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	DocumentID  *string `json:"documentId"`
	PhoneNumber *string `json:"phoneNumber"`
	Email       *string `json:"email"`
}

// Clone returns a deep copy so callers never alias stored state.
func (h Host) Clone() Host {
	out := h
	out.DocumentID = cloneString(h.DocumentID)
	out.PhoneNumber = cloneString(h.PhoneNumber)
	out.Email = cloneString(h.Email)
	return out
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

// Demo is the record every fresh store starts with.
func Demo() Host {
	return Host{
		ID:          "demo-1",
		Name:        "Invitado Demo",
		DocumentID:  StringPtr("123"),
		PhoneNumber: StringPtr("3000000000"),
		Email:       StringPtr("demo@correo.com"),
	}
}

// StringPtr returns a pointer to a copy of s.
func StringPtr(s string) *string { return &s }
