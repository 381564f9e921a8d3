package services

import (
	"fmt"
	"strings"

	"github.com/blevesearch/bleve/v2/analysis"
	"github.com/blevesearch/bleve/v2/analysis/lang/en"
	prose "github.com/jdkato/prose/v2"
)

// KeywordExtractor turns raw query text into a deduplicated list of
// lowercase keywords: noun-phrase spans first, then individual
// noun/proper-noun/adjective tokens that are not stop words. Keywords
// keep their left-to-right text order so downstream matching is
// deterministic.
type KeywordExtractor struct {
	stopWords analysis.TokenMap
}

func NewKeywordExtractor() (*KeywordExtractor, error) {
	stopWords := analysis.NewTokenMap()
	if err := stopWords.LoadBytes(en.EnglishStopWords); err != nil {
		return nil, fmt.Errorf("failed to load stop words: %w", err)
	}
	return &KeywordExtractor{stopWords: stopWords}, nil
}

func (e *KeywordExtractor) Extract(query string) ([]string, error) {
	if strings.TrimSpace(query) == "" {
		return nil, nil
	}

	doc, err := prose.NewDocument(query, prose.WithExtraction(false))
	if err != nil {
		return nil, fmt.Errorf("failed to tag query: %w", err)
	}
	tokens := doc.Tokens()

	var keywords []string
	seen := make(map[string]struct{})
	add := func(keyword string) {
		keyword = strings.ToLower(keyword)
		if keyword == "" {
			return
		}
		if _, ok := seen[keyword]; ok {
			return
		}
		seen[keyword] = struct{}{}
		keywords = append(keywords, keyword)
	}

	for _, span := range nounPhrases(tokens) {
		add(span)
	}

	for _, tok := range tokens {
		if !isNounTag(tok.Tag) && !isAdjectiveTag(tok.Tag) {
			continue
		}
		if e.isStopWord(tok.Text) {
			continue
		}
		add(tok.Text)
	}

	return keywords, nil
}

func (e *KeywordExtractor) isStopWord(word string) bool {
	_, ok := e.stopWords[strings.ToLower(word)]
	return ok
}

// nounPhrases collects maximal spans of consecutive adjective/noun
// tokens that end in a noun. Single tokens are excluded; the per-token
// pass picks those up.
func nounPhrases(tokens []prose.Token) []string {
	var spans []string
	start := -1

	flush := func(end int) {
		if start < 0 {
			return
		}
		last := end - 1
		for last >= start && !isNounTag(tokens[last].Tag) {
			last--
		}
		if last > start {
			parts := make([]string, 0, last-start+1)
			for i := start; i <= last; i++ {
				parts = append(parts, tokens[i].Text)
			}
			spans = append(spans, strings.Join(parts, " "))
		}
		start = -1
	}

	for i, tok := range tokens {
		if isNounTag(tok.Tag) || isAdjectiveTag(tok.Tag) {
			if start < 0 {
				start = i
			}
			continue
		}
		flush(i)
	}
	flush(len(tokens))

	return spans
}

// Penn Treebank tags: NN, NNS, NNP, NNPS cover nouns and proper nouns.
func isNounTag(tag string) bool {
	return strings.HasPrefix(tag, "NN")
}

// JJ, JJR, JJS.
func isAdjectiveTag(tag string) bool {
	return strings.HasPrefix(tag, "JJ")
}
