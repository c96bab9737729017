package search

import (
	"strings"

	"github.com/samber/lo"

	"github.com/Zuo-Peng/wa-transcript/internal/parse"
)

type Result struct {
	Index   int // position in the searched slice
	Message parse.Message
	Kind    parse.Kind
	Snippet string
}

type Options struct {
	Query  string
	Author string     // "" = all, case-insensitive exact match otherwise
	Kind   parse.Kind // "" = all
	Limit  int        // 0 = no limit
}

const snippetContext = 30

// makeSnippet extracts a snippet around the first occurrence of query in text.
func makeSnippet(text, query string, contextChars int) string {
	text = strings.ReplaceAll(text, "\n", " ")
	runes := []rune(text)
	if query == "" {
		if len(runes) > contextChars*2 {
			return string(runes[:contextChars*2]) + "..."
		}
		return text
	}

	lower := []rune(strings.ToLower(text))
	qRunes := []rune(strings.ToLower(query))
	runePos := indexRunes(lower, qRunes)
	if runePos < 0 || len(lower) != len(runes) {
		// no match, or lowering changed the rune count; return head
		if len(runes) > contextChars*2 {
			return string(runes[:contextChars*2]) + "..."
		}
		return text
	}

	start := runePos - contextChars
	if start < 0 {
		start = 0
	}
	end := runePos + len(qRunes) + contextChars
	if end > len(runes) {
		end = len(runes)
	}
	prefix := ""
	suffix := ""
	if start > 0 {
		prefix = "..."
	}
	if end < len(runes) {
		suffix = "..."
	}
	// wrap the matched part with markers
	snippet := string(runes[start:runePos]) +
		">>>" + string(runes[runePos:runePos+len(qRunes)]) + "<<<" +
		string(runes[runePos+len(qRunes):end])
	return prefix + snippet + suffix
}

func indexRunes(s, sub []rune) int {
	if len(sub) == 0 {
		return 0
	}
	for i := 0; i+len(sub) <= len(s); i++ {
		match := true
		for j := range sub {
			if s[i+j] != sub[j] {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}

// Match returns the messages whose body or author contains the query,
// in their original order. An empty query matches every message.
func Match(messages []parse.Message, opts Options) []Result {
	query := strings.TrimSpace(opts.Query)
	qLower := strings.ToLower(query)

	results := lo.FilterMap(messages, func(m parse.Message, i int) (Result, bool) {
		if opts.Author != "" && !strings.EqualFold(strings.TrimSpace(m.Author), strings.TrimSpace(opts.Author)) {
			return Result{}, false
		}
		content := parse.Classify(m.Body)
		if opts.Kind != "" && content.Kind != opts.Kind {
			return Result{}, false
		}
		if qLower != "" &&
			!strings.Contains(strings.ToLower(m.Body), qLower) &&
			!strings.Contains(strings.ToLower(m.Author), qLower) {
			return Result{}, false
		}
		return Result{
			Index:   i,
			Message: m,
			Kind:    content.Kind,
			Snippet: makeSnippet(m.Body, query, snippetContext),
		}, true
	})

	if opts.Limit > 0 && len(results) > opts.Limit {
		results = results[:opts.Limit]
	}
	return results
}
