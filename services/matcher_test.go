package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchGenre(t *testing.T) {
	matcher := NewCategoryMatcher()

	tests := []struct {
		name     string
		keywords []string
		want     string
	}{
		{
			name:     "single genre synonym resolves that genre",
			keywords: []string{"space"},
			want:     "sci-fi",
		},
		{
			name:     "canonical label matches itself",
			keywords: []string{"horror"},
			want:     "horror",
		},
		{
			name:     "multi-word synonym",
			keywords: []string{"science fiction"},
			want:     "sci-fi",
		},
		{
			name:     "case folded before lookup",
			keywords: []string{"Space"},
			want:     "sci-fi",
		},
		{
			name:     "no synonym matches",
			keywords: []string{"giraffe", "spreadsheet"},
			want:     "",
		},
		{
			name:     "empty keyword list",
			keywords: nil,
			want:     "",
		},
		{
			// keywords scan outer, so the first keyword decides even
			// when a later keyword would match an earlier table entry
			name:     "first keyword wins",
			keywords: []string{"ghost", "romance"},
			want:     "horror",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, matcher.MatchGenre(tt.keywords))
		})
	}
}

func TestMatchThemeAndOrigin(t *testing.T) {
	matcher := NewCategoryMatcher()

	assert.Equal(t, "emotional", matcher.MatchTheme([]string{"tearjerker"}))
	assert.Equal(t, "twist", matcher.MatchTheme([]string{"plot twist"}))
	assert.Equal(t, "", matcher.MatchTheme([]string{"ghost"}))

	assert.Equal(t, "korean", matcher.MatchOrigin([]string{"k-drama"}))
	assert.Equal(t, "indian", matcher.MatchOrigin([]string{"bollywood"}))
	assert.Equal(t, "", matcher.MatchOrigin([]string{"space"}))
}

func TestMatchIsIndependentPerDimension(t *testing.T) {
	matcher := NewCategoryMatcher()
	keywords := []string{"alien", "sad", "japan"}

	assert.Equal(t, "sci-fi", matcher.MatchGenre(keywords))
	assert.Equal(t, "emotional", matcher.MatchTheme(keywords))
	assert.Equal(t, "japanese", matcher.MatchOrigin(keywords))
}

func TestMatchGenreOnlyResolvesOneDimension(t *testing.T) {
	matcher := NewCategoryMatcher()
	keywords := []string{"dragons"}

	assert.Equal(t, "fantasy", matcher.MatchGenre(keywords))
	assert.Equal(t, "", matcher.MatchTheme(keywords))
	assert.Equal(t, "", matcher.MatchOrigin(keywords))
}

func TestMatchIsDeterministic(t *testing.T) {
	matcher := NewCategoryMatcher()
	keywords := []string{"thriller", "scary"}

	first := matcher.MatchGenre(keywords)
	for i := 0; i < 50; i++ {
		assert.Equal(t, first, matcher.MatchGenre(keywords))
	}
}
