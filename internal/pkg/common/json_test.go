package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSONBytes(t *testing.T) {
	var v struct {
		Name string `json:"name"`
	}
	require.NoError(t, ParseJSONBytes([]byte(`{"name":"quinoa"}`), &v))
	assert.Equal(t, "quinoa", v.Name)
}

func TestParseJSONBytesRejectsTrailingData(t *testing.T) {
	var v map[string]interface{}
	err := ParseJSONBytes([]byte(`{"a":1}{"b":2}`), &v)
	assert.Error(t, err)
}
