package models

// PhotoCount selects the instruction body sent to the model.
type PhotoCount int

const (
	OnePhoto PhotoCount = iota + 1
	TwoPhotos
	ThreeOrMorePhotos
)

// PhotoCountOf maps the number of supplied images to a PhotoCount.
// Four or more images behave exactly like three.
func PhotoCountOf(n int) PhotoCount {
	switch {
	case n <= 1:
		return OnePhoto
	case n == 2:
		return TwoPhotos
	default:
		return ThreeOrMorePhotos
	}
}

// IsFinal reports whether the model must give a definitive verdict.
func (p PhotoCount) IsFinal() bool {
	return p >= ThreeOrMorePhotos
}

func (p PhotoCount) String() string {
	switch p {
	case OnePhoto:
		return "one"
	case TwoPhotos:
		return "two"
	case ThreeOrMorePhotos:
		return "three_or_more"
	default:
		return "unknown"
	}
}
