package domain

// CardKind discriminates card behavior. The label on a card is display-only;
// the kind and value fully determine the effect.
type CardKind string

const (
	CardPoints     CardKind = "POINTS"
	CardBlock      CardKind = "BLOCK"
	CardSteal      CardKind = "STEAL"
	CardDoubleDown CardKind = "DOUBLE_DOWN"
)

// Card is an immutable card value. Name is unique within a deck for
// persistence purposes but carries no semantic weight.
type Card struct {
	ID    int64    `json:"id"`
	Kind  CardKind `json:"kind"`
	Name  string   `json:"name"`
	Value int      `json:"value"`
}
