package services

import (
	"bytes"
	"embed"
	"fmt"
	"text/template"

	"fakecheckapi/languageutil"
	"fakecheckapi/models"
)

//go:embed prompts/*.tmpl
var promptFiles embed.FS

var promptTemplates = template.Must(template.ParseFS(promptFiles, "prompts/*.tmpl"))

type promptData struct {
	Category            string
	Brand               string
	Photos              int
	NeedsMorePhotosHint string
	RequestedDetailHint string
}

func templateNameFor(count models.PhotoCount) string {
	switch count {
	case models.OnePhoto:
		return "one_photo.tmpl"
	case models.TwoPhotos:
		return "two_photos.tmpl"
	default:
		return "final_verdict.tmpl"
	}
}

// BuildPrompt renders the instruction for the given category, optional brand
// and number of photos. An empty brand asks the model to infer it.
func BuildPrompt(category, brand string, photos int) (string, error) {
	count := models.PhotoCountOf(photos)
	data := promptData{
		Category:            languageutil.NormalizeLabel(category),
		Brand:               languageutil.DisplayBrand(brand),
		Photos:              photos,
		NeedsMorePhotosHint: "true/false",
		RequestedDetailHint: "stringa (vuota se non necessaria)",
	}
	if count.IsFinal() {
		data.NeedsMorePhotosHint = "false"
		data.RequestedDetailHint = ""
	}

	var buf bytes.Buffer
	if err := promptTemplates.ExecuteTemplate(&buf, templateNameFor(count), data); err != nil {
		return "", fmt.Errorf("failed to render %s prompt: %w", count, err)
	}
	return buf.String(), nil
}
