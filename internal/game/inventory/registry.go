package inventory

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnknownWeapon is returned when a lookup matches no registered weapon.
var ErrUnknownWeapon = errors.New("inventory: unknown weapon")

// Registry holds weapon definitions indexed by case-insensitive key.
type Registry struct {
	weapons map[string]*Weapon
}

// NewRegistry returns an empty Registry.
//
// Postcondition: the internal map is initialised.
func NewRegistry() *Registry {
	return &Registry{weapons: make(map[string]*Weapon)}
}

// NewRegistryFrom registers every weapon in ws.
//
// Postcondition: returns an error if two weapons share a key.
func NewRegistryFrom(ws []*Weapon) (*Registry, error) {
	r := NewRegistry()
	for _, w := range ws {
		if err := r.RegisterWeapon(w); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// RegisterWeapon adds w to the registry under w.Key(). When w has an ID its
// Name is indexed as well, unless another weapon already owns that name.
//
// Precondition:  w must not be nil.
// Postcondition: Weapon(w.Key()) returns w; returns error if the key is already registered.
func (r *Registry) RegisterWeapon(w *Weapon) error {
	key := w.Key()
	if _, exists := r.weapons[key]; exists {
		return fmt.Errorf("inventory: Registry.RegisterWeapon: weapon %q already registered", key)
	}
	r.weapons[key] = w
	if name := strings.ToLower(w.Name); name != "" && name != key {
		if _, taken := r.weapons[name]; !taken {
			r.weapons[name] = w
		}
	}
	return nil
}

// Weapon returns the weapon registered under name, matched case-insensitively.
//
// Postcondition: err wraps ErrUnknownWeapon iff no weapon matches.
func (r *Registry) Weapon(name string) (*Weapon, error) {
	if w, ok := r.weapons[strings.ToLower(strings.TrimSpace(name))]; ok {
		return w, nil
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownWeapon, name)
}

// AllWeapons returns each distinct registered weapon sorted by key.
//
// Postcondition: no weapon appears twice.
func (r *Registry) AllWeapons() []*Weapon {
	seen := make(map[*Weapon]bool, len(r.weapons))
	out := make([]*Weapon, 0, len(r.weapons))
	for _, w := range r.weapons {
		if seen[w] {
			continue
		}
		seen[w] = true
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key() < out[j].Key() })
	return out
}

// Lookup searches registries in order and returns the first match. Nil
// registries are skipped.
//
// Postcondition: err wraps ErrUnknownWeapon iff no registry matches.
func Lookup(name string, registries ...*Registry) (*Weapon, error) {
	for _, r := range registries {
		if r == nil {
			continue
		}
		if w, err := r.Weapon(name); err == nil {
			return w, nil
		}
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownWeapon, name)
}
