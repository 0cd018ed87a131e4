package anim

import "fmt"

// Property identifies an animatable element attribute. A closed enum keeps
// property dispatch exhaustive instead of matching on string keys.
type Property int

const (
	X Property = iota
	Y
	Alpha
	Scale
	Rotation
	ColorR
	ColorG
	ColorB
	CornerRadius
	numProperties
)

var propertyNames = [...]string{
	X:            "x",
	Y:            "y",
	Alpha:        "alpha",
	Scale:        "scale",
	Rotation:     "rotation",
	ColorR:       "color_r",
	ColorG:       "color_g",
	ColorB:       "color_b",
	CornerRadius: "corner_radius",
}

func (p Property) String() string {
	if p < 0 || int(p) >= len(propertyNames) {
		return fmt.Sprintf("Property(%d)", int(p))
	}
	return propertyNames[p]
}

// ParseProperty maps a document-level property name to its enum value.
func ParseProperty(name string) (Property, error) {
	for p, n := range propertyNames {
		if n == name {
			return Property(p), nil
		}
	}
	return 0, fmt.Errorf("anim: unknown property %q", name)
}
