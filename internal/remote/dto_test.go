package remote

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"dresscode/internal/domain/outfit"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestUserUploadInferred(t *testing.T) {
	tests := []struct {
		name string
		dto  OutfitDTO
		want bool
	}{
		{"explicit flag", OutfitDTO{IsUserUpload: boolPtr(true)}, true},
		{"explicit false, no marker", OutfitDTO{IsUserUpload: boolPtr(false), ImageURL: strPtr("https://cdn/x.jpg")}, false},
		{"marker in primary url", OutfitDTO{ImageURL: strPtr("https://cdn/user_uploads/x.jpg")}, true},
		{"marker in legacy url", OutfitDTO{ImageURLLegacy: strPtr("https://cdn/USER_UPLOADS/x.jpg")}, true},
		{"marker in gallery", OutfitDTO{Images: []string{"https://cdn/a.jpg", "https://cdn/user_uploads/b.jpg"}}, true},
		{"no signal at all", OutfitDTO{ImageURL: strPtr("https://cdn/catalog/x.jpg")}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.dto.UserUploadInferred())
		})
	}
}

func TestPrimaryImagePrefersModernField(t *testing.T) {
	dto := OutfitDTO{
		ImageURL:       strPtr("modern.jpg"),
		ImageURLLegacy: strPtr("legacy.jpg"),
		Images:         []string{"gallery.jpg"},
	}
	assert.Equal(t, "modern.jpg", dto.PrimaryImage())

	dto.ImageURL = nil
	assert.Equal(t, "legacy.jpg", dto.PrimaryImage())

	dto.ImageURLLegacy = nil
	assert.Equal(t, "gallery.jpg", dto.PrimaryImage())

	dto.Images = nil
	assert.Equal(t, "", dto.PrimaryImage())
}

func TestCollectTagsFlattensFacets(t *testing.T) {
	dto := OutfitDTO{Tags: &OutfitTagsDTO{
		Style:   []string{"casual"},
		Season:  []string{"summer"},
		General: []string{"denim", " "},
	}}
	assert.Equal(t, []string{"denim", "casual", "summer"}, dto.CollectTags())
	assert.Nil(t, OutfitDTO{}.CollectTags())
}

func TestToOutfitMapsFields(t *testing.T) {
	at := time.UnixMilli(1700000000000)
	dto := OutfitDTO{
		ID:     "o1",
		Title:  "Rainy commute",
		Gender: strPtr("female"),
		Tags: &OutfitTagsDTO{
			Style:   []string{"commute", "minimal"},
			Season:  []string{"spring"},
			Weather: []string{"rain"},
		},
		ImageURL: strPtr("https://cdn/user_uploads/o1.jpg"),
	}

	o := dto.ToOutfit("key", 3, 4, true, at)
	assert.Equal(t, "o1", o.ID)
	assert.Equal(t, "key", o.FilterKey)
	assert.Equal(t, outfit.GenderFemale, o.Gender)
	assert.Equal(t, "commute", o.Style)
	assert.Equal(t, "spring", o.Season)
	assert.Equal(t, "rain", o.Weather)
	assert.True(t, o.IsFavorite)
	assert.True(t, o.IsUserUpload)
	assert.Equal(t, 3, o.Page)
	assert.Equal(t, 4, o.IndexInPage)
	assert.Equal(t, at, o.UpdatedAt)
}

func TestToDetailFallsBackToPrimaryImage(t *testing.T) {
	withGallery := OutfitDTO{ID: "a", Images: []string{"1.jpg", "2.jpg"}}
	assert.Equal(t, []string{"1.jpg", "2.jpg"}, withGallery.ToDetail().Images)

	primaryOnly := OutfitDTO{ID: "b", ImageURL: strPtr("only.jpg")}
	assert.Equal(t, []string{"only.jpg"}, primaryOnly.ToDetail().Images)

	bare := OutfitDTO{ID: "c"}
	assert.Empty(t, bare.ToDetail().Images)
}
