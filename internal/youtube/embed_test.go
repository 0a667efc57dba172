package youtube

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConvertToEmbed(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   string
		wantOK bool
	}{
		{"watch url", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", "https://www.youtube.com/embed/dQw4w9WgXcQ", true},
		{"watch url without www", "https://youtube.com/watch?v=dQw4w9WgXcQ", "https://www.youtube.com/embed/dQw4w9WgXcQ", true},
		{"watch url with extra params", "https://www.youtube.com/watch?v=dQw4w9WgXcQ&list=PL123&index=2", "https://www.youtube.com/embed/dQw4w9WgXcQ", true},
		{"watch url with timestamp", "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42", "https://www.youtube.com/embed/dQw4w9WgXcQ?start=42", true},
		{"watch url with v not first", "https://www.youtube.com/watch?feature=share&v=dQw4w9WgXcQ", "https://www.youtube.com/embed/dQw4w9WgXcQ", true},
		{"short url", "https://youtu.be/dQw4w9WgXcQ", "https://www.youtube.com/embed/dQw4w9WgXcQ", true},
		{"short url with timestamp", "https://youtu.be/dQw4w9WgXcQ?t=90", "https://www.youtube.com/embed/dQw4w9WgXcQ?start=90", true},
		{"timestamp with units", "https://youtu.be/dQw4w9WgXcQ?t=1m30s", "https://www.youtube.com/embed/dQw4w9WgXcQ?start=90", true},
		{"mobile host", "https://m.youtube.com/watch?v=dQw4w9WgXcQ", "https://www.youtube.com/embed/dQw4w9WgXcQ", true},
		{"missing scheme", "youtube.com/watch?v=dQw4w9WgXcQ", "https://www.youtube.com/embed/dQw4w9WgXcQ", true},
		{"surrounding whitespace", "  https://youtu.be/dQw4w9WgXcQ  ", "https://www.youtube.com/embed/dQw4w9WgXcQ", true},
		{"embed url unchanged", "https://www.youtube.com/embed/dQw4w9WgXcQ", "https://www.youtube.com/embed/dQw4w9WgXcQ", true},
		{"embed url keeps start", "https://www.youtube.com/embed/dQw4w9WgXcQ?start=90", "https://www.youtube.com/embed/dQw4w9WgXcQ?start=90", true},
		{"embed url drops other params", "https://www.youtube.com/embed/dQw4w9WgXcQ?autoplay=1", "https://www.youtube.com/embed/dQw4w9WgXcQ", true},
		{"other platform passes through", "https://vimeo.com/76979871", "https://vimeo.com/76979871", true},
		{"not a url", "not a url", "", false},
		{"empty", "", "", false},
		{"whitespace only", "   ", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ConvertToEmbed(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConvertToEmbed_Idempotent(t *testing.T) {
	inputs := []string{
		"https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		"https://youtu.be/dQw4w9WgXcQ?t=90",
		"https://vimeo.com/76979871",
	}

	for _, in := range inputs {
		once, ok := ConvertToEmbed(in)
		assert.True(t, ok)
		twice, ok := ConvertToEmbed(once)
		assert.True(t, ok)
		assert.Equal(t, once, twice, in)
	}
}

func TestVideoID(t *testing.T) {
	id, ok := VideoID("https://youtu.be/dQw4w9WgXcQ?t=3")
	assert.True(t, ok)
	assert.Equal(t, "dQw4w9WgXcQ", id)

	id, ok = VideoID("https://www.youtube.com/embed/dQw4w9WgXcQ")
	assert.True(t, ok)
	assert.Equal(t, "dQw4w9WgXcQ", id)

	_, ok = VideoID("https://vimeo.com/76979871")
	assert.False(t, ok)
}
