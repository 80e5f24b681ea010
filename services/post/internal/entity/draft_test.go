package entity

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDraft(t *testing.T) {
	d := NewDraft()
	assert.Equal(t, []Platform{PlatformX}, d.Platforms)
	assert.Empty(t, d.Text)
	assert.Empty(t, d.GeneratedImageRef)
}

func TestTogglePlatform(t *testing.T) {
	d := NewDraft()
	d.Text = "keep me"

	d.TogglePlatform(PlatformDiscord)
	d.TogglePlatform(PlatformFacebook)
	assert.Equal(t, []Platform{PlatformFacebook, PlatformX, PlatformDiscord}, d.Platforms)

	d.TogglePlatform(PlatformX)
	assert.Equal(t, []Platform{PlatformFacebook, PlatformDiscord}, d.Platforms)
	assert.Equal(t, "keep me", d.Text)
}

func TestTogglePlatform_TwiceIsNoOp(t *testing.T) {
	for _, p := range Platforms {
		t.Run(string(p), func(t *testing.T) {
			d := NewDraft()
			d.TogglePlatform(PlatformTikTok)
			before := d.Clone()

			d.TogglePlatform(p)
			d.TogglePlatform(p)
			assert.Equal(t, before, d)
		})
	}
}

func TestPlatformLabel(t *testing.T) {
	d := Draft{Platforms: []Platform{PlatformInstagram, PlatformX}}
	assert.Equal(t, "Instagram, X", d.PlatformLabel())
}

func TestParsePlatform(t *testing.T) {
	p, err := ParsePlatform("youtube")
	require.NoError(t, err)
	assert.Equal(t, PlatformYouTube, p)

	_, err = ParsePlatform("myspace")
	assert.ErrorIs(t, err, ErrUnknownPlatform)
}

func TestDraftClone_Independent(t *testing.T) {
	d := NewDraft()
	d.InlineBrand = &BrandSnapshot{BrandName: "Acme"}

	c := d.Clone()
	c.Platforms[0] = PlatformDiscord
	c.InlineBrand.BrandName = "Other"

	assert.Equal(t, PlatformX, d.Platforms[0])
	assert.Equal(t, "Acme", d.InlineBrand.BrandName)
}

func TestTextLength_CountsRunes(t *testing.T) {
	d := Draft{Text: "héllo 👋"}
	assert.Equal(t, 7, d.TextLength())
}

func TestErrors(t *testing.T) {
	err := fmt.Errorf("submit: %w", NewValidationError(NoBrandSelected, "brand_template_id"))
	assert.True(t, IsValidation(err, NoBrandSelected))
	assert.False(t, IsValidation(err, EmptyContent))
	assert.Equal(t, "submit: Please select a brand template.", err.Error())

	cause := errors.New("db down")
	remote := &RemoteServiceError{Kind: PersistenceFailed, Err: cause}
	assert.True(t, IsRemote(remote, PersistenceFailed))
	assert.ErrorIs(t, remote, cause)
}

func TestBrandSnapshot(t *testing.T) {
	var nilSnap *BrandSnapshot
	assert.True(t, nilSnap.IsZero())
	assert.True(t, (&BrandSnapshot{}).IsZero())

	tpl := BrandTemplate{ID: "t1", BrandName: "Acme", Color: "#FF0000"}
	snap := tpl.Snapshot()
	assert.Equal(t, "t1", snap.TemplateID)
	assert.False(t, snap.IsZero())
}
