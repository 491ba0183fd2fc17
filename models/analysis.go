package models

// ObjectAnalysisIn is the body of POST /analizza-oggetto.
type ObjectAnalysisIn struct {
	Category string   `json:"tipologia" validate:"omitempty,max=100,category"`
	Brand    string   `json:"marca" validate:"omitempty,max=100"`
	Images   []string `json:"immagini" validate:"dive,required,base64"`
}

// AnalysisResult is the validated assessment returned to the client.
// Percentage is -1 when the photos do not show the declared object.
type AnalysisResult struct {
	Percentage      int     `json:"percentuale"`
	Rationale       string  `json:"motivazione"`
	NeedsMorePhotos bool    `json:"richiedi_altra_foto"`
	RequestedDetail string  `json:"dettaglio_richiesto"`
	EstimatedBrand  *string `json:"marca_stimata,omitempty"`
}

const NotRelevantPercentage = -1

// DefaultCategory applies when tipologia is omitted or blank.
const DefaultCategory = "borsa"

// JSON keys the model must answer with.
const (
	FieldPercentage      = "percentuale"
	FieldRationale       = "motivazione"
	FieldNeedsMorePhotos = "richiedi_altra_foto"
	FieldRequestedDetail = "dettaglio_richiesto"
	FieldEstimatedBrand  = "marca_stimata"
)

// RequiredFields is the key set every reply must carry, in report order.
var RequiredFields = []string{
	FieldPercentage,
	FieldRationale,
	FieldNeedsMorePhotos,
	FieldRequestedDetail,
}

// Clone returns a deep copy so cached results are never shared.
func (r *AnalysisResult) Clone() *AnalysisResult {
	if r == nil {
		return nil
	}
	out := *r
	if r.EstimatedBrand != nil {
		brand := *r.EstimatedBrand
		out.EstimatedBrand = &brand
	}
	return &out
}
