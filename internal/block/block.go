// Package block defines the fixed catalog of block kinds a course is built from.
// Kinds are plain values; their behavior lives in a lookup table so every
// consumer (generator, physics, renderer) dispatches the same way.
package block

// Kind identifies one block type in the course grid.
type Kind uint8

const (
	Air    Kind = iota // Empty space
	Solid              // Plain obstruction
	Bounce             // Obstruction that kicks the player away
	Hazard             // Obstruction that kills the player
)

// Effect is what touching a block does to the player beyond blocking it.
type Effect uint8

const (
	EffectNone    Effect = iota
	EffectImpulse        // Fixed velocity impulse away from the block
	EffectLethal         // Ends the current life
)

// String returns a human-readable name for the effect.
func (e Effect) String() string {
	switch e {
	case EffectNone:
		return "none"
	case EffectImpulse:
		return "impulse"
	case EffectLethal:
		return "lethal"
	default:
		return "unknown"
	}
}

type props struct {
	name   string
	solid  bool
	effect Effect
}

var catalog = [...]props{
	Air:    {name: "air", solid: false, effect: EffectNone},
	Solid:  {name: "solid", solid: true, effect: EffectNone},
	Bounce: {name: "bounce", solid: true, effect: EffectImpulse},
	Hazard: {name: "hazard", solid: true, effect: EffectLethal},
}

// lookup returns the properties for k.
// Values outside the catalog behave like Solid.
func lookup(k Kind) props {
	if int(k) >= len(catalog) {
		return catalog[Solid]
	}
	return catalog[k]
}

// IsSolid reports whether the block obstructs movement.
func (k Kind) IsSolid() bool {
	return lookup(k).solid
}

// Effect returns the contact effect of the block.
func (k Kind) Effect() Effect {
	return lookup(k).effect
}

// Valid reports whether k is one of the catalog kinds.
func (k Kind) Valid() bool {
	return int(k) < len(catalog)
}

// String returns the catalog name of the block.
func (k Kind) String() string {
	if !k.Valid() {
		return "unknown"
	}
	return catalog[k].name
}

// Kinds returns every catalog kind in declaration order.
func Kinds() []Kind {
	kinds := make([]Kind, len(catalog))
	for i := range catalog {
		kinds[i] = Kind(i)
	}
	return kinds
}
