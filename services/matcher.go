package services

import "strings"

// CategoryMatcher resolves extracted keywords against the synonym tables.
// Each dimension resolves to at most one label: keywords are scanned in
// their extracted order, table entries in declaration order, and the
// first hit wins.
type CategoryMatcher struct {
	genres  SynonymTable
	themes  SynonymTable
	origins SynonymTable
}

func NewCategoryMatcher() *CategoryMatcher {
	return &CategoryMatcher{
		genres:  GenreSynonyms,
		themes:  ThemeSynonyms,
		origins: OriginSynonyms,
	}
}

func (m *CategoryMatcher) MatchGenre(keywords []string) string {
	return matchCategory(keywords, m.genres)
}

func (m *CategoryMatcher) MatchTheme(keywords []string) string {
	return matchCategory(keywords, m.themes)
}

func (m *CategoryMatcher) MatchOrigin(keywords []string) string {
	return matchCategory(keywords, m.origins)
}

func matchCategory(keywords []string, table SynonymTable) string {
	for _, keyword := range keywords {
		folded := strings.ToLower(keyword)
		for _, entry := range table {
			for _, synonym := range entry.Synonyms {
				if folded == synonym {
					return entry.Label
				}
			}
		}
	}
	return ""
}
