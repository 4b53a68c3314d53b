package schema

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const personSchema = `{
	"type": "object",
	"required": ["name"],
	"properties": {
		"name": {"type": "string"},
		"contact": {
			"type": "object",
			"required": ["email"],
			"properties": {"email": {"type": "string"}}
		}
	}
}`

func TestValidate_Valid(t *testing.T) {
	v := NewValidator()
	err := v.Validate(personSchema, "person.json", []byte(`{"name":"Ada"}`))
	assert.NoError(t, err)
}

func TestValidate_NamesMissingField(t *testing.T) {
	v := NewValidator()

	err := v.Validate(personSchema, "person.json", []byte(`{"name":"Ada","contact":{}}`))
	require.Error(t, err)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	require.Len(t, verr.Fields, 1)
	assert.Equal(t, "contact.email", verr.Fields[0].Field)
	assert.Contains(t, err.Error(), "person.json")
	assert.Contains(t, err.Error(), "contact.email")
}

func TestValidate_MissingRootField(t *testing.T) {
	v := NewValidator()

	err := v.Validate(personSchema, "person.json", []byte(`{}`))
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "name", verr.Fields[0].Field)
}

func TestValidate_WrongType(t *testing.T) {
	v := NewValidator()

	err := v.Validate(personSchema, "person.json", []byte(`{"name":5}`))
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "name", verr.Fields[0].Field)
}

func TestValidate_SchemaFromMap(t *testing.T) {
	v := NewValidator()
	s := map[string]any{
		"type":     "object",
		"required": []string{"id"},
	}

	assert.NoError(t, v.Validate(s, "doc", []byte(`{"id":1}`)))
	assert.Error(t, v.Validate(s, "doc", []byte(`{}`)))
}

func TestDumpErrors_Truncates(t *testing.T) {
	out := dumpErrors([]string{"a", "b", "c", "d", "e"})
	assert.Contains(t, out, "a\n- b\n- c")
	assert.Contains(t, out, "and 2 more")
	assert.NotContains(t, out, "d")
}
