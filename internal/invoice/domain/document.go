package domain

// Document is an abstract, ordered sequence of layout blocks. Rendering an
// invoice produces a Document; turning it into a concrete artifact (text
// page, attachment, on-screen preview) is a separate writer concern, so
// the layout logic stays unit-testable.
type Document struct {
	Blocks []Block `json:"blocks"`
}

type Kind string

const (
	KindHeader Kind = "header" // issuer banner with invoice number and date
	KindParty  Kind = "party"  // biller or recipient address block
	KindTable  Kind = "table"  // line items
	KindBadge  Kind = "badge"  // payment status indicator
	KindTotal  Kind = "total"  // grand total line
	KindNote   Kind = "note"   // free-form footer or due-date line
)

type Tone string

const (
	ToneNeutral  Tone = "neutral"
	TonePositive Tone = "positive"
	ToneNegative Tone = "negative"
)

// Block is a single layout instruction. Only the fields relevant to its
// Kind are populated.
type Block struct {
	Kind    Kind       `json:"kind"`
	Title   string     `json:"title,omitempty"`
	Lines   []string   `json:"lines,omitempty"`
	Columns []string   `json:"columns,omitempty"`
	Rows    [][]string `json:"rows,omitempty"`
	Label   string     `json:"label,omitempty"`
	Value   string     `json:"value,omitempty"`
	Tone    Tone       `json:"tone,omitempty"`
}

// Find returns the first block of the given kind, or false when absent.
func (d Document) Find(kind Kind) (Block, bool) {
	for _, b := range d.Blocks {
		if b.Kind == kind {
			return b, true
		}
	}
	return Block{}, false
}

// FindAll returns every block of the given kind in layout order.
func (d Document) FindAll(kind Kind) []Block {
	var out []Block
	for _, b := range d.Blocks {
		if b.Kind == kind {
			out = append(out, b)
		}
	}
	return out
}
