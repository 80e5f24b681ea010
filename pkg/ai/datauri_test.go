package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDataURI(t *testing.T) {
	mime, data, err := ParseDataURI(DataURI("image/jpeg", []byte("jpegbytes")))
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", mime)
	assert.Equal(t, []byte("jpegbytes"), data)

	for _, bad := range []string{
		"https://example.com/a.png",
		"data:image/png,plain",
		"data:image/png;base64",
		"data:image/png;base64,@@@",
	} {
		_, _, err := ParseDataURI(bad)
		assert.Error(t, err, bad)
	}
}

func TestDataURIDefaults(t *testing.T) {
	assert.Equal(t, "data:image/png;base64,", DataURI("", nil))
	assert.True(t, IsDataURI("data:image/png;base64,AA=="))
	assert.False(t, IsDataURI("https://cdn/x.png"))
	assert.Equal(t, ".jpg", Extension("image/jpeg"))
	assert.Equal(t, ".png", Extension("application/octet-stream"))
}
