package form

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeValue(t *testing.T) {
	tests := []struct {
		name   string
		input  interface{}
		want   string
		isList bool
	}{
		{"nil", nil, "", false},
		{"string", "hello", "hello", false},
		{"single list collapses", []string{"one"}, "one", false},
		{"multi list", []string{"a", "b"}, "a, b", true},
		{"nested", []interface{}{"a", []interface{}{"b", "c"}}, "a, b, c", true},
		{"number", 42, "42", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NormalizeValue(tt.input)
			assert.Equal(t, tt.isList, v.IsList())
			assert.Equal(t, tt.want, v.String())
		})
	}
}

func TestValueIsEmpty(t *testing.T) {
	assert.True(t, Scalar("").IsEmpty())
	assert.True(t, Scalar("   ").IsEmpty())
	assert.True(t, List([]string{"", " "}).IsEmpty())
	assert.False(t, Scalar("x").IsEmpty())
	assert.False(t, List([]string{"", "x"}).IsEmpty())
}

func TestNewFieldDefaults(t *testing.T) {
	f := NewField(map[string]string{})
	assert.Equal(t, "Field", f.Label())
	assert.Equal(t, TypeText, f.Type())
	assert.False(t, f.Required())
	assert.Equal(t, "", f.Attr("unknown"))
}

func TestNewFieldNormalizesAttrs(t *testing.T) {
	f := NewField(map[string]string{
		"label":    "  <b>Your Name</b>  ",
		"type":     "NAME",
		"required": "1",
	})
	assert.Equal(t, "Your Name", f.Label())
	assert.Equal(t, TypeName, f.Type())
	assert.True(t, f.Required())
}

func TestRequiredFlagSpellings(t *testing.T) {
	for _, raw := range []string{"1", "true", "yes", "required"} {
		f := NewField(map[string]string{"required": raw})
		assert.True(t, f.Required(), raw)
	}
	for _, raw := range []string{"", "0", "false", "no"} {
		f := NewField(map[string]string{"required": raw})
		assert.False(t, f.Required(), raw)
	}
}

func TestFieldOptions(t *testing.T) {
	f := NewField(map[string]string{"type": "select", "options": "Red, Green ,Blue,,"})
	assert.Equal(t, []string{"Red", "Green", "Blue"}, f.Options())
}

func TestValidateRequired(t *testing.T) {
	f := NewField(map[string]string{"label": "Name", "type": "name", "required": "1"})

	f.Value = Scalar("")
	err := f.Validate()
	require.NotNil(t, err)
	assert.Equal(t, "Name", err.Label)

	f.Value = Scalar("Ada")
	assert.Nil(t, f.Validate())
}

func TestValidateEmailShape(t *testing.T) {
	f := NewField(map[string]string{"label": "Email", "type": "email"})

	f.Value = Scalar("not-an-email")
	require.NotNil(t, f.Validate())

	f.Value = Scalar("a@b.com")
	assert.Nil(t, f.Validate())

	// Optional email left empty is fine.
	f.Value = Scalar("")
	assert.Nil(t, f.Validate())
}
