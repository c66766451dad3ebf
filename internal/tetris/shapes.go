package tetris

// ShapeSize is the side length of every rotation matrix.
const ShapeSize = 4

// Shape is one rotation of a piece. Being an array, it is copied on assignment,
// so handing one out never exposes the catalog.
type Shape [ShapeSize][ShapeSize]Cell

// Kind identifies a piece variant. Its numeric value doubles as the fill id
// written into the grid.
type Kind uint8

const (
	KindNone Kind = iota
	KindI
	KindJ
	KindL
	KindO
	KindS
	KindT
	KindZ
	KindSlow
)

// Kinds lists every variant, standard pieces first.
var Kinds = [...]Kind{KindI, KindJ, KindL, KindO, KindS, KindT, KindZ, KindSlow}

// StandardKinds lists the seven pieces that make up a bag.
var StandardKinds = [...]Kind{KindI, KindJ, KindL, KindO, KindS, KindT, KindZ}

// String returns the piece letter.
func (k Kind) String() string {
	switch k {
	case KindI:
		return "I"
	case KindJ:
		return "J"
	case KindL:
		return "L"
	case KindO:
		return "O"
	case KindS:
		return "S"
	case KindT:
		return "T"
	case KindZ:
		return "Z"
	case KindSlow:
		return "SLOW"
	default:
		return "none"
	}
}

// Valid reports whether k is one of the eight catalog variants.
func (k Kind) Valid() bool {
	return k >= KindI && k <= KindSlow
}

// Standard reports whether k belongs to the 7-bag.
func (k Kind) Standard() bool {
	return k >= KindI && k <= KindZ
}

// Cell returns the fill id used for this piece in the grid.
func (k Kind) Cell() Cell {
	return Cell(k)
}

// catalog holds the canonical rotations, indexed by Kind.
// Rotation 0 is the spawn orientation.
var catalog = [...][]Shape{
	KindI: {
		pattern(KindI,
			"....",
			"XXXX",
			"....",
			"...."),
		pattern(KindI,
			"..X.",
			"..X.",
			"..X.",
			"..X."),
	},
	KindJ: {
		pattern(KindJ,
			"X...",
			"XXX.",
			"....",
			"...."),
		pattern(KindJ,
			".XX.",
			".X..",
			".X..",
			"...."),
		pattern(KindJ,
			"....",
			"XXX.",
			"..X.",
			"...."),
		pattern(KindJ,
			".X..",
			".X..",
			"XX..",
			"...."),
	},
	KindL: {
		pattern(KindL,
			"..X.",
			"XXX.",
			"....",
			"...."),
		pattern(KindL,
			".X..",
			".X..",
			".XX.",
			"...."),
		pattern(KindL,
			"....",
			"XXX.",
			"X...",
			"...."),
		pattern(KindL,
			"XX..",
			".X..",
			".X..",
			"...."),
	},
	KindO: {
		pattern(KindO,
			"XX..",
			"XX..",
			"....",
			"...."),
	},
	KindS: {
		pattern(KindS,
			".XX.",
			"XX..",
			"....",
			"...."),
		pattern(KindS,
			".X..",
			".XX.",
			"..X.",
			"...."),
	},
	KindT: {
		pattern(KindT,
			".X..",
			"XXX.",
			"....",
			"...."),
		pattern(KindT,
			".X..",
			".XX.",
			".X..",
			"...."),
		pattern(KindT,
			"....",
			"XXX.",
			".X..",
			"...."),
		pattern(KindT,
			".X..",
			"XX..",
			".X..",
			"...."),
	},
	KindZ: {
		pattern(KindZ,
			"XX..",
			".XX.",
			"....",
			"...."),
		pattern(KindZ,
			"..X.",
			".XX.",
			".X..",
			"...."),
	},
	KindSlow: {
		pattern(KindSlow,
			"X...",
			"....",
			"....",
			"...."),
	},
}

// pattern builds a shape from four rows where 'X' marks a filled cell.
func pattern(k Kind, rows ...string) Shape {
	var s Shape
	for r, row := range rows {
		for c, ch := range row {
			if ch == 'X' {
				s[r][c] = k.Cell()
			}
		}
	}
	return s
}

// Rotations returns a fresh copy of the rotation list for k.
// Unknown kinds yield nil.
func Rotations(k Kind) []Shape {
	if !k.Valid() {
		return nil
	}
	return append([]Shape(nil), catalog[k]...)
}

// RotationCount returns the number of distinct orientations of k.
func RotationCount(k Kind) int {
	if !k.Valid() {
		return 0
	}
	return len(catalog[k])
}

// SpawnShape returns rotation 0 of k.
func SpawnShape(k Kind) Shape {
	if !k.Valid() {
		return Shape{}
	}
	return catalog[k][0]
}

// Blocks returns the number of filled cells in s.
func (s Shape) Blocks() int {
	n := 0
	for r := range ShapeSize {
		for c := range ShapeSize {
			if s[r][c] != Empty {
				n++
			}
		}
	}
	return n
}
