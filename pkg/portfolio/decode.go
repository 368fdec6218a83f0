package portfolio

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Format is the encoding of a portfolio document.
type Format int

const (
	// FormatJSON is a JSON document.
	FormatJSON Format = iota
	// FormatYAML is a YAML document.
	FormatYAML
)

// ErrEmptyInput is returned when a document has no content.
var ErrEmptyInput = errors.New("portfolio document is empty")

// ShapeError reports a request payload with a missing or mistyped top-level field.
type ShapeError struct {
	Field   string
	Problem string
}

func (e *ShapeError) Error() (msg string) {
	msg = e.Field + " " + e.Problem
	return msg
}

var collectionKeys = []string{SectionAchievements, SectionProjects, SectionParticipations}

// listFields names the list-valued fields of each record kind.
//
//nolint:gochecknoglobals // lookup table
var listFields = map[string][]string{
	"user":                {"qualities", "skills"},
	SectionAchievements:   {"tags"},
	SectionProjects:       {"technologies", "tags", "teamMembers"},
	SectionParticipations: {"tags"},
}

// DecodeDocument decodes a document leniently: collections and list fields that
// are not arrays are treated as empty, unreadable dates as absent, and a
// mistyped field is coerced or dropped without failing the document.
func DecodeDocument(data []byte, format Format) (doc Document, err error) {
	var tree map[string]interface{}
	tree, err = decodeTree(data, format)
	if err != nil {
		return doc, err
	}

	for _, key := range collectionKeys {
		if _, ok := tree[key].([]interface{}); !ok {
			tree[key] = []interface{}{}
		}
	}

	if _, ok := tree["user"].(map[string]interface{}); !ok {
		delete(tree, "user")
	}
	if _, ok := tree["sections"].(map[string]interface{}); !ok {
		delete(tree, "sections")
	}

	normalizeTree(tree)

	doc, err = decodeNormalized(tree)
	return doc, err
}

// DecodeRequest decodes a server export payload. The user and sections fields
// are required and collections must be arrays or null; violations are returned
// as *ShapeError.
func DecodeRequest(data []byte) (doc Document, err error) {
	var tree map[string]interface{}
	tree, err = decodeTree(data, FormatJSON)
	if err != nil {
		return doc, err
	}

	if _, ok := tree["user"].(map[string]interface{}); !ok {
		err = &ShapeError{Field: "user", Problem: "is required"}
		return doc, err
	}
	if _, ok := tree["sections"].(map[string]interface{}); !ok {
		err = &ShapeError{Field: "sections", Problem: "is required"}
		return doc, err
	}

	for _, key := range collectionKeys {
		value, present := tree[key]
		if !present || value == nil {
			tree[key] = []interface{}{}
			continue
		}
		if _, ok := value.([]interface{}); !ok {
			err = &ShapeError{Field: key, Problem: "must be an array"}
			return doc, err
		}
	}

	normalizeTree(tree)

	doc, err = decodeNormalized(tree)
	return doc, err
}

func decodeTree(data []byte, format Format) (tree map[string]interface{}, err error) {
	if len(bytes.TrimSpace(data)) == 0 {
		err = ErrEmptyInput
		return tree, err
	}

	var root interface{}
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &root)
		if err != nil {
			err = errors.Wrap(err, "failed to parse YAML document")
			return tree, err
		}
	default:
		err = json.Unmarshal(data, &root)
		if err != nil {
			err = errors.Wrap(err, "failed to parse JSON document")
			return tree, err
		}
	}

	var ok bool
	tree, ok = root.(map[string]interface{})
	if !ok {
		err = errors.New("portfolio document must be an object")
		return tree, err
	}

	return tree, err
}

// fieldKind is the JSON type a scalar record field decodes into.
type fieldKind int

const (
	textField fieldKind = iota
	flagField
	countField
)

// scalarFields names the scalar fields of each record kind.
//
//nolint:gochecknoglobals // lookup table
var scalarFields = map[string]map[string]fieldKind{
	"user": {"name": textField, "email": textField, "bio": textField},
	"socialLinks": {
		"github": textField, "linkedin": textField, "twitter": textField,
		"instagram": textField, "website": textField,
	},
	"sections": {
		SectionAchievements: flagField, SectionProjects: flagField, SectionParticipations: flagField,
	},
	SectionAchievements: {
		"title": textField, "position": countField, "eventName": textField, "eventType": textField,
		"isSolo": flagField, "description": textField, "certificateUrl": textField,
	},
	SectionProjects: {
		"name": textField, "description": textField, "isSolo": flagField, "githubUrl": textField,
	},
	SectionParticipations: {
		"title": textField, "eventName": textField, "eventType": textField,
		"isSolo": flagField, "description": textField, "certificateUrl": textField,
	},
	"teamMembers": {"name": textField, "role": textField},
}

// normalizeTree drops non-object records, coerces non-array list fields and
// mistyped scalars, and clears unreadable dates. A field that cannot be
// coerced is removed so only that field is lost.
func normalizeTree(tree map[string]interface{}) {
	pruneUnknown(tree, "document", append([]string{"user", "sections"}, collectionKeys...)...)

	if user, ok := tree["user"].(map[string]interface{}); ok {
		pruneUnknown(user, "user", "socialLinks")
		coerceLists(user, listFields["user"])
		coerceScalars(user, scalarFields["user"])
		if links, isMap := user["socialLinks"].(map[string]interface{}); isMap {
			pruneUnknown(links, "socialLinks")
			coerceScalars(links, scalarFields["socialLinks"])
		} else {
			delete(user, "socialLinks")
		}
	}

	if sections, ok := tree["sections"].(map[string]interface{}); ok {
		pruneUnknown(sections, "sections")
		coerceScalars(sections, scalarFields["sections"])
	}

	for _, key := range collectionKeys {
		items, _ := tree[key].([]interface{})
		kept := make([]interface{}, 0, len(items))
		for _, item := range items {
			record, ok := item.(map[string]interface{})
			if !ok {
				continue
			}
			pruneUnknown(record, key, "eventDate")
			coerceLists(record, listFields[key])
			coerceScalars(record, scalarFields[key])
			coerceDate(record)
			if key == SectionProjects {
				members := keepObjects(record["teamMembers"])
				for _, member := range members {
					fields := member.(map[string]interface{})
					pruneUnknown(fields, "teamMembers")
					coerceScalars(fields, scalarFields["teamMembers"])
				}
				record["teamMembers"] = members
			}
			kept = append(kept, record)
		}
		tree[key] = kept
	}
}

// pruneUnknown removes keys the record kind does not define, so stray values of
// any shape cannot break re-encoding.
func pruneUnknown(record map[string]interface{}, kind string, extra ...string) {
	for field := range record {
		if _, ok := scalarFields[kind][field]; ok {
			continue
		}
		if contains(listFields[kind], field) || contains(extra, field) {
			continue
		}
		delete(record, field)
	}
}

func contains(fields []string, field string) (found bool) {
	for _, f := range fields {
		if f == field {
			return true
		}
	}
	return false
}

// coerceLists replaces non-array list fields with empty lists and keeps only
// the elements that read as text.
func coerceLists(record map[string]interface{}, fields []string) {
	for _, field := range fields {
		items, ok := record[field].([]interface{})
		if !ok {
			record[field] = []interface{}{}
			continue
		}
		if field == "teamMembers" {
			continue
		}
		kept := make([]interface{}, 0, len(items))
		for _, item := range items {
			if text, isText := asText(item); isText {
				kept = append(kept, text)
			}
		}
		record[field] = kept
	}
}

func coerceScalars(record map[string]interface{}, fields map[string]fieldKind) {
	for field, kind := range fields {
		value, present := record[field]
		if !present || value == nil {
			continue
		}

		var coerced interface{}
		var ok bool
		switch kind {
		case textField:
			coerced, ok = asText(value)
		case flagField:
			coerced, ok = asFlag(value)
		case countField:
			coerced, ok = asCount(value)
		}

		if !ok {
			delete(record, field)
			continue
		}
		record[field] = coerced
	}
}

// asText reads strings as is and numbers or booleans in their literal form.
func asText(value interface{}) (text string, ok bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case bool:
		return strconv.FormatBool(v), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case uint64:
		return strconv.FormatUint(v, 10), true
	}
	return text, false
}

// asFlag reads booleans and the strings strconv.ParseBool understands.
func asFlag(value interface{}) (flag bool, ok bool) {
	switch v := value.(type) {
	case bool:
		return v, true
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return flag, false
		}
		return parsed, true
	}
	return flag, false
}

// asCount reads whole numbers, from numbers or decimal strings.
func asCount(value interface{}) (count int64, ok bool) {
	switch v := value.(type) {
	case float64:
		if v != math.Trunc(v) || math.Abs(v) > 1<<53 {
			return count, false
		}
		return int64(v), true
	case int:
		return int64(v), true
	case int64:
		return v, true
	case uint64:
		if v > math.MaxInt64 {
			return count, false
		}
		return int64(v), true
	case string:
		parsed, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return count, false
		}
		return parsed, true
	}
	return count, false
}

// coerceDate clears any eventDate that Date cannot read.
func coerceDate(record map[string]interface{}) {
	value, present := record["eventDate"]
	if !present || value == nil {
		return
	}

	raw, err := json.Marshal(value)
	if err != nil {
		record["eventDate"] = nil
		return
	}

	var d Date
	err = d.UnmarshalJSON(raw)
	if err != nil {
		record["eventDate"] = nil
	}
}

func keepObjects(value interface{}) (kept []interface{}) {
	items, _ := value.([]interface{})
	kept = make([]interface{}, 0, len(items))
	for _, item := range items {
		if _, ok := item.(map[string]interface{}); ok {
			kept = append(kept, item)
		}
	}
	return kept
}

func decodeNormalized(tree map[string]interface{}) (doc Document, err error) {
	var normalized []byte
	normalized, err = json.Marshal(tree)
	if err != nil {
		err = errors.Wrap(err, "failed to re-encode portfolio document")
		return doc, err
	}

	err = json.Unmarshal(normalized, &doc)
	if err != nil {
		err = errors.Wrap(err, "failed to decode portfolio document")
		return doc, err
	}

	return doc, err
}
