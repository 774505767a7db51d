package cloudinary

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildOptimizedImageURL(t *testing.T) {
	url := BuildOptimizedImageURL("demo", "huddle/avatars/7/img_abc", 800)
	assert.Equal(t,
		"https://res.cloudinary.com/demo/image/upload/q_auto,f_auto,w_800,c_fill/huddle/avatars/7/img_abc",
		url)

	url = BuildOptimizedImageURL("demo", "huddle/avatars/7/img_abc", 0)
	assert.Contains(t, url, "w_800", "non-positive width falls back to the default")
}

func TestPublicIDFromURL(t *testing.T) {
	cases := []struct {
		name string
		url  string
		want string
	}{
		{
			"plain delivery url",
			"https://res.cloudinary.com/demo/image/upload/huddle/avatars/7/img_abc.jpg",
			"huddle/avatars/7/img_abc",
		},
		{
			"transformed url",
			"https://res.cloudinary.com/demo/image/upload/q_auto,f_auto,w_800,c_fill/huddle/avatars/7/img_abc",
			"huddle/avatars/7/img_abc",
		},
		{
			"versioned url",
			"https://res.cloudinary.com/demo/image/upload/v1712345678/huddle/avatars/7/img_abc.png",
			"huddle/avatars/7/img_abc",
		},
		{
			"folder starting with v is not a version",
			"https://res.cloudinary.com/demo/image/upload/videos/clip_1.jpg",
			"videos/clip_1",
		},
		{"not a cloudinary url", "https://example.com/some/image.jpg", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, publicIDFromURL(tc.url))
		})
	}
}

func TestOptimizedURLRoundTrip(t *testing.T) {
	// the URL stored after upload must parse back to the asset's public
	// ID so the old avatar can be destroyed on replacement
	publicID := "huddle/avatars/42/img_deadbeef"
	url := BuildOptimizedImageURL("demo", publicID, ImageWidth)
	assert.Equal(t, publicID, publicIDFromURL(url))
}
