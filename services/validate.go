package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"fakecheckapi/models"
)

// ParseAnalysisResult decodes a sanitized model reply and checks it against
// the fixed key set. With requireBrand the marca_stimata key is mandatory.
// For a final verdict the follow-up flags are forced off regardless of what
// the model answered.
func ParseAnalysisResult(text string, count models.PhotoCount, requireBrand bool) (*models.AnalysisResult, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text), &fields); err != nil {
		return nil, &MalformedResponseError{Raw: text, Err: err}
	}
	if fields == nil {
		return nil, &MalformedResponseError{Raw: text, Err: errors.New("reply is not a JSON object")}
	}

	for _, key := range models.RequiredFields {
		if _, ok := fields[key]; !ok {
			return nil, &MissingFieldError{Field: key}
		}
	}
	rawBrand, hasBrand := fields[models.FieldEstimatedBrand]
	if requireBrand && !hasBrand {
		return nil, &MissingFieldError{Field: models.FieldEstimatedBrand}
	}

	var result models.AnalysisResult
	var err error
	if result.Percentage, err = decodePercentage(fields[models.FieldPercentage]); err != nil {
		return nil, err
	}
	if err := decodeField(fields, models.FieldRationale, &result.Rationale); err != nil {
		return nil, err
	}
	if err := decodeField(fields, models.FieldNeedsMorePhotos, &result.NeedsMorePhotos); err != nil {
		return nil, err
	}
	if result.RequestedDetail, err = decodeOptionalString(models.FieldRequestedDetail, fields[models.FieldRequestedDetail]); err != nil {
		return nil, err
	}
	if hasBrand {
		brand, err := decodeOptionalString(models.FieldEstimatedBrand, rawBrand)
		if err != nil {
			return nil, err
		}
		result.EstimatedBrand = &brand
	}

	if count.IsFinal() {
		result.NeedsMorePhotos = false
		result.RequestedDetail = ""
	}
	return &result, nil
}

func decodePercentage(raw json.RawMessage) (int, error) {
	var value float64
	if err := json.Unmarshal(raw, &value); err != nil || isJSONNull(raw) {
		return 0, &InvalidFieldError{Field: models.FieldPercentage, Reason: "expected an integer"}
	}
	if value != math.Trunc(value) {
		return 0, &InvalidFieldError{Field: models.FieldPercentage, Reason: fmt.Sprintf("%v is not an integer", value)}
	}
	if value < models.NotRelevantPercentage || value > 100 {
		return 0, &InvalidFieldError{Field: models.FieldPercentage, Reason: fmt.Sprintf("%v is outside [-1, 100]", value)}
	}
	return int(value), nil
}

func decodeField(fields map[string]json.RawMessage, key string, out any) error {
	raw := fields[key]
	if isJSONNull(raw) {
		return &InvalidFieldError{Field: key, Reason: "must not be null"}
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &InvalidFieldError{Field: key, Reason: fmt.Sprintf("wrong type: %s", string(raw))}
	}
	return nil
}

// decodeOptionalString treats null as the empty string.
func decodeOptionalString(key string, raw json.RawMessage) (string, error) {
	if isJSONNull(raw) {
		return "", nil
	}
	var value string
	if err := json.Unmarshal(raw, &value); err != nil {
		return "", &InvalidFieldError{Field: key, Reason: fmt.Sprintf("wrong type: %s", string(raw))}
	}
	return value, nil
}

func isJSONNull(raw json.RawMessage) bool {
	return string(raw) == "null"
}
