package swagger

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

func TestDocIsValidJSON(t *testing.T) {
	doc, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	require.NoError(t, err)

	var parsed struct {
		Info struct {
			Title string `json:"title"`
		} `json:"info"`
		Schemes []string                  `json:"schemes"`
		Paths   map[string]map[string]any `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(doc), &parsed))

	assert.Equal(t, "Scriptify API", parsed.Info.Title)
	assert.Equal(t, []string{"http", "https"}, parsed.Schemes)
	assert.Contains(t, parsed.Paths, "/api/v1/transcriptions")
	assert.Contains(t, parsed.Paths["/api/v1/sessions/{id}"], "patch")
}
