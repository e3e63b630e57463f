package host

import "strings"

// Optional distinguishes a field the client sent from one it left out.
type Optional[T any] struct {
	Value T
	Set   bool
}

// Some wraps a supplied value.
func Some[T any](v T) Optional[T] { return Optional[T]{Value: v, Set: true} }

// None is the absent value.
func None[T any]() Optional[T] { return Optional[T]{} }

// Get returns the value and whether it was supplied.
func (o Optional[T]) Get() (T, bool) { return o.Value, o.Set }

// CreateInput carries the fields accepted when registering a host.
type CreateInput struct {
	Name        string
	DocumentID  Optional[string]
	PhoneNumber Optional[string]
	Email       Optional[string]
}

// UpdateInput carries a partial update; unset fields keep their stored value.
type UpdateInput struct {
	Name        Optional[string]
	DocumentID  Optional[string]
	PhoneNumber Optional[string]
	Email       Optional[string]
}

// New builds a record from a create input. Optional values that are empty
// after trimming are stored as nil.
func New(id string, in CreateInput) Host {
	return Host{
		ID:          id,
		Name:        strings.TrimSpace(in.Name),
		DocumentID:  trimmed(in.DocumentID),
		PhoneNumber: trimmed(in.PhoneNumber),
		Email:       trimmed(in.Email),
	}
}

// Apply merges the supplied fields of in over h and returns the result.
// An empty optional string clears the stored value.
func (h Host) Apply(in UpdateInput) Host {
	out := h.Clone()
	if name, ok := in.Name.Get(); ok {
		out.Name = strings.TrimSpace(name)
	}
	if in.DocumentID.Set {
		out.DocumentID = trimmed(in.DocumentID)
	}
	if in.PhoneNumber.Set {
		out.PhoneNumber = trimmed(in.PhoneNumber)
	}
	if in.Email.Set {
		out.Email = trimmed(in.Email)
	}
	return out
}

func trimmed(o Optional[string]) *string {
	v, ok := o.Get()
	if !ok {
		return nil
	}
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}
