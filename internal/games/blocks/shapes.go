package blocks

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Offset is a block position relative to a piece's anchor.
type Offset struct {
	Row int
	Col int
}

// MarshalJSON encodes the offset as a [row, col] pair.
func (o Offset) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{o.Row, o.Col})
}

// UnmarshalJSON decodes a [row, col] pair.
func (o *Offset) UnmarshalJSON(data []byte) error {
	var pair []int
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("blocks: offset needs 2 values, got %d", len(pair))
	}
	o.Row, o.Col = pair[0], pair[1]
	return nil
}

// Piece is a placeable shape: a color and a set of normalized block offsets.
type Piece struct {
	ID     string   `json:"id"`
	Color  Color    `json:"color"`
	Blocks []Offset `json:"blocks"`
}

// Size returns the number of blocks in the piece.
func (p Piece) Size() int {
	return len(p.Blocks)
}

// Bounds returns the height and width of the piece's bounding box.
func (p Piece) Bounds() (rows, cols int) {
	for _, b := range p.Blocks {
		rows = max(rows, b.Row+1)
		cols = max(cols, b.Col+1)
	}
	return rows, cols
}

// Clone returns a deep copy of the piece.
func (p Piece) Clone() Piece {
	out := p
	out.Blocks = append([]Offset(nil), p.Blocks...)
	return out
}

var (
	errNoBlocks       = errors.New("piece has no blocks")
	errDuplicateBlock = errors.New("piece has duplicate blocks")
	errNotNormalized  = errors.New("piece offsets are not normalized")
	errNoColor        = errors.New("piece has no color")
)

// Validate checks the piece invariants: non-empty, duplicate-free, normalized
// so the minimum row and column are both zero, and colored.
func (p Piece) Validate() error {
	if len(p.Blocks) == 0 {
		return errNoBlocks
	}
	if p.Color == Empty {
		return errNoColor
	}
	if _, ok := colorNames[p.Color]; !ok {
		return fmt.Errorf("piece has invalid color %d", p.Color)
	}
	if hasDuplicates(p.Blocks) {
		return errDuplicateBlock
	}
	minRow, minCol := minOffsets(p.Blocks)
	if minRow != 0 || minCol != 0 {
		return errNotNormalized
	}
	return nil
}

// Template is an immutable catalog entry used to derive pieces.
type Template struct {
	Name   string
	Blocks []Offset
	Weight int
}

func offsets(pairs ...[2]int) []Offset {
	out := make([]Offset, len(pairs))
	for i, p := range pairs {
		out[i] = Offset{Row: p[0], Col: p[1]}
	}
	return out
}

// DefaultTemplates returns the standard weighted shape set.
func DefaultTemplates() []Template {
	return []Template{
		{Name: "single", Weight: 1, Blocks: offsets([2]int{0, 0})},

		{Name: "line2_h", Weight: 2, Blocks: offsets([2]int{0, 0}, [2]int{0, 1})},
		{Name: "line2_v", Weight: 2, Blocks: offsets([2]int{0, 0}, [2]int{1, 0})},

		{Name: "line3_h", Weight: 3, Blocks: offsets([2]int{0, 0}, [2]int{0, 1}, [2]int{0, 2})},
		{Name: "line3_v", Weight: 3, Blocks: offsets([2]int{0, 0}, [2]int{1, 0}, [2]int{2, 0})},
		{Name: "corner", Weight: 3, Blocks: offsets([2]int{0, 0}, [2]int{0, 1}, [2]int{1, 0})},
		{Name: "corner_r", Weight: 3, Blocks: offsets([2]int{0, 0}, [2]int{0, 1}, [2]int{1, 1})},

		{Name: "i_h", Weight: 2, Blocks: offsets([2]int{0, 0}, [2]int{0, 1}, [2]int{0, 2}, [2]int{0, 3})},
		{Name: "i_v", Weight: 2, Blocks: offsets([2]int{0, 0}, [2]int{1, 0}, [2]int{2, 0}, [2]int{3, 0})},
		{Name: "o", Weight: 3, Blocks: offsets([2]int{0, 0}, [2]int{0, 1}, [2]int{1, 0}, [2]int{1, 1})},
		{Name: "t", Weight: 2, Blocks: offsets([2]int{0, 1}, [2]int{1, 0}, [2]int{1, 1}, [2]int{1, 2})},
		{Name: "z", Weight: 2, Blocks: offsets([2]int{0, 0}, [2]int{1, 0}, [2]int{1, 1}, [2]int{2, 1})},
		{Name: "s", Weight: 2, Blocks: offsets([2]int{0, 1}, [2]int{1, 0}, [2]int{1, 1}, [2]int{2, 0})},
		{Name: "l", Weight: 2, Blocks: offsets([2]int{0, 0}, [2]int{1, 0}, [2]int{2, 0}, [2]int{2, 1})},
		{Name: "j", Weight: 2, Blocks: offsets([2]int{0, 1}, [2]int{1, 1}, [2]int{2, 0}, [2]int{2, 1})},

		{Name: "big_l", Weight: 1, Blocks: offsets([2]int{0, 0}, [2]int{0, 1}, [2]int{0, 2}, [2]int{1, 0}, [2]int{2, 0})},
		{Name: "big_l_r", Weight: 1, Blocks: offsets([2]int{0, 0}, [2]int{1, 0}, [2]int{2, 0}, [2]int{0, 1}, [2]int{0, 2})},
		{Name: "plus", Weight: 1, Blocks: offsets([2]int{0, 0}, [2]int{0, 1}, [2]int{0, 2}, [2]int{1, 1}, [2]int{2, 1})},
	}
}

// Rotate turns the offsets 90 degrees clockwise: (r, c) -> (-c, r).
// The result is not normalized.
func Rotate(blocks []Offset) []Offset {
	out := make([]Offset, len(blocks))
	for i, b := range blocks {
		out[i] = Offset{Row: -b.Col, Col: b.Row}
	}
	return out
}

// Normalize shifts the offsets so the minimum row and column are zero.
func Normalize(blocks []Offset) []Offset {
	if len(blocks) == 0 {
		return nil
	}
	minRow, minCol := minOffsets(blocks)
	out := make([]Offset, len(blocks))
	for i, b := range blocks {
		out[i] = Offset{Row: b.Row - minRow, Col: b.Col - minCol}
	}
	return out
}

func minOffsets(blocks []Offset) (minRow, minCol int) {
	minRow, minCol = blocks[0].Row, blocks[0].Col
	for _, b := range blocks[1:] {
		minRow = min(minRow, b.Row)
		minCol = min(minCol, b.Col)
	}
	return minRow, minCol
}

func hasDuplicates(blocks []Offset) bool {
	seen := make(map[Offset]struct{}, len(blocks))
	for _, b := range blocks {
		if _, ok := seen[b]; ok {
			return true
		}
		seen[b] = struct{}{}
	}
	return false
}

// RNG is the random source used by the catalog. *rand.Rand satisfies it,
// so a seeded rand.New(rand.NewSource(seed)) gives reproducible pieces.
type RNG interface {
	Float64() float64
	Intn(n int) int
	Read(p []byte) (n int, err error)
}

// Catalog produces randomized pieces from a fixed set of weighted templates.
type Catalog struct {
	templates   []Template
	palette     []Color
	totalWeight int
	rng         RNG
}

// NewCatalog creates a catalog over the given templates and palette.
// Templates with a non-positive weight are never selected.
func NewCatalog(templates []Template, palette []Color, rng RNG) *Catalog {
	c := &Catalog{
		templates: templates,
		palette:   palette,
		rng:       rng,
	}
	for _, t := range templates {
		if t.Weight > 0 {
			c.totalWeight += t.Weight
		}
	}
	return c
}

// NewDefaultCatalog creates a catalog with DefaultTemplates and Palette.
func NewDefaultCatalog(rng RNG) *Catalog {
	return NewCatalog(DefaultTemplates(), Palette, rng)
}

// Templates returns the catalog entries in selection order.
func (c *Catalog) Templates() []Template {
	return c.templates
}

// Generate produces count independent pieces.
func (c *Catalog) Generate(count int) []Piece {
	pieces := make([]Piece, 0, count)
	for range count {
		pieces = append(pieces, c.next())
	}
	return pieces
}

func (c *Catalog) next() Piece {
	tmpl := c.pick(c.rng.Float64() * float64(c.totalWeight))

	blocks := tmpl.Blocks
	for range c.rng.Intn(4) {
		blocks = Rotate(blocks)
	}

	color := Red
	if len(c.palette) > 0 {
		color = c.palette[c.rng.Intn(len(c.palette))]
	}

	id, err := uuid.NewRandomFromReader(c.rng)
	if err != nil {
		id = uuid.New()
	}

	return Piece{
		ID:     id.String(),
		Color:  color,
		Blocks: Normalize(blocks),
	}
}

// pick walks the templates in order, subtracting each weight from v, and
// returns the first template at which v drops to zero or below.
func (c *Catalog) pick(v float64) Template {
	for _, t := range c.templates {
		if t.Weight <= 0 {
			continue
		}
		v -= float64(t.Weight)
		if v <= 0 {
			return t
		}
	}
	return c.templates[0]
}
