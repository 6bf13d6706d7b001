// Package shapes builds the scene nodes shown in each dimensional panel.
//
// Every builder is a pure function of (Kind, color): it allocates a fresh
// node tree and never touches a scene. Attaching the result is the caller's
// job (see scene.Slot).
package shapes

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownKind = errors.New("unknown shape kind")

// Kind is the user-selected primitive. The set is closed.
type Kind int

const (
	Cube Kind = iota
	Sphere
	Pyramid
)

var kindNames = [...]string{
	Cube:    "cube",
	Sphere:  "sphere",
	Pyramid: "pyramid",
}

// Kinds lists every kind in selector order.
func Kinds() []Kind {
	return []Kind{Cube, Sphere, Pyramid}
}

func (k Kind) Valid() bool {
	return k >= Cube && k <= Pyramid
}

func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// Next cycles through the kinds in selector order.
func (k Kind) Next() Kind {
	if !k.Valid() {
		return Cube
	}
	return (k + 1) % Kind(len(kindNames))
}

func ParseKind(s string) (Kind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for k, n := range kindNames {
		if n == name {
			return Kind(k), nil
		}
	}
	return Cube, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, int(k))
	}
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(b []byte) error {
	v, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = v
	return nil
}
