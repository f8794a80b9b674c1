package configs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeepMergeJSONNestedMaps(t *testing.T) {
	oldVal := map[string]interface{}{
		"site": map[string]interface{}{
			"name": "Old Name",
			"url":  "https://example.com",
		},
		"spam": map[string]interface{}{"provider": "keyword"},
	}
	newVal := map[string]interface{}{
		"site": map[string]interface{}{"name": "New Name"},
	}

	merged := deepMergeJSON(oldVal, newVal).(map[string]interface{})

	site := merged["site"].(map[string]interface{})
	assert.Equal(t, "New Name", site["name"])
	// Siblings of the patched key survive.
	assert.Equal(t, "https://example.com", site["url"])
	assert.Equal(t, map[string]interface{}{"provider": "keyword"}, merged["spam"])
}

func TestDeepMergeJSONScalarReplaces(t *testing.T) {
	assert.Equal(t, "b", deepMergeJSON("a", "b"))
	assert.Equal(t, float64(2), deepMergeJSON(float64(1), float64(2)))
}

func TestDeepMergeJSONArraysReplaceWhole(t *testing.T) {
	oldVal := []interface{}{"casino", "poker"}
	newVal := []interface{}{"viagra"}
	assert.Equal(t, newVal, deepMergeJSON(oldVal, newVal))
}

func TestDeepMergeJSONTypeMismatchTakesNew(t *testing.T) {
	oldVal := map[string]interface{}{"k": "v"}
	assert.Equal(t, "flat", deepMergeJSON(oldVal, "flat"))
}
