package model

import "fmt"

// Representative is a field rep with a current location and the set of
// capability tags they are certified to serve. Location is the only field the
// engine mutates, and only between windows.
type Representative struct {
	Name         string
	Location     string
	Capabilities []string
}

// HasCapability reports whether the representative may serve the given tag.
func (r Representative) HasCapability(tag string) bool {
	for _, c := range r.Capabilities {
		if c == tag {
			return true
		}
	}
	return false
}

// Validate checks that the representative record is well formed.
func (r Representative) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("representative name is required")
	}
	if r.Location == "" {
		return fmt.Errorf("representative %s: location is required", r.Name)
	}
	if len(r.Capabilities) == 0 {
		return fmt.Errorf("representative %s: at least one capability is required", r.Name)
	}
	for _, c := range r.Capabilities {
		if c == "" {
			return fmt.Errorf("representative %s: empty capability tag", r.Name)
		}
	}
	return nil
}

// Roster is an ordered collection of representatives. Order matters: the
// matcher breaks cost ties by keeping the first representative encountered in
// roster order, so iteration order is part of the contract.
type Roster []*Representative

// Find returns the representative with the given name, or nil.
func (ro Roster) Find(name string) *Representative {
	for _, r := range ro {
		if r.Name == name {
			return r
		}
	}
	return nil
}

// Validate checks every entry and rejects duplicate names.
func (ro Roster) Validate() error {
	seen := make(map[string]struct{}, len(ro))
	for _, r := range ro {
		if r == nil {
			return fmt.Errorf("nil representative in roster")
		}
		if err := r.Validate(); err != nil {
			return err
		}
		if _, dup := seen[r.Name]; dup {
			return fmt.Errorf("duplicate representative %s", r.Name)
		}
		seen[r.Name] = struct{}{}
	}
	return nil
}

// Clone returns a deep copy of the roster. Used to hand observers a snapshot
// without exposing the engine's mutable state.
func (ro Roster) Clone() Roster {
	cp := make(Roster, len(ro))
	for i, r := range ro {
		rc := *r
		rc.Capabilities = append([]string(nil), r.Capabilities...)
		cp[i] = &rc
	}
	return cp
}
