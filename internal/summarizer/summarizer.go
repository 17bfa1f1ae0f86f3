// Package summarizer implements frequency-based extractive summarization.
//
// The algorithm selects the most informative sentences from an article by
// scoring each sentence on the document-wide frequency of its words, with
// stop words excluded from the frequency table. No network calls, no
// randomness: the same input always produces the same summary.
package summarizer

import (
	"regexp"
	"sort"
	"strings"
)

var (
	whitespaceRegex       = regexp.MustCompile(`\s+`)
	sentenceBoundaryRegex = regexp.MustCompile(`([.!?]) (\p{Lu})`)
	wordRegex             = regexp.MustCompile(`[a-z]+(?:'[a-z]+)*`)
)

// sentenceScore pairs a sentence's position with its normalized score.
type sentenceScore struct {
	index int
	score float64
}

// splitSentences splits text into sentences on punctuation boundaries: a
// period, exclamation or question mark followed by whitespace and an
// uppercase letter. Abbreviations like "Mr." are not special-cased and may
// over-split; that is an accepted limitation of the heuristic.
func splitSentences(text string) []string {
	text = whitespaceRegex.ReplaceAllString(strings.TrimSpace(text), " ")
	if text == "" {
		return nil
	}
	marked := sentenceBoundaryRegex.ReplaceAllString(text, "$1\n$2")
	parts := strings.Split(marked, "\n")
	sentences := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			sentences = append(sentences, s)
		}
	}
	return sentences
}

// tokenize lowercases a sentence and extracts word tokens: alphabetic runs
// with apostrophes permitted inside a token. Everything else is a separator.
func tokenize(sentence string) []string {
	return wordRegex.FindAllString(strings.ToLower(sentence), -1)
}

// Summarize reduces text to at most maxSentences sentences, returned in their
// original order and joined by single spaces.
//
// Texts with maxSentences or fewer sentences are returned whole, unranked.
// Longer texts are ranked: every sentence scores the sum of the document-wide
// frequencies of its words divided by its word count, stop words counting
// zero. Ties go to the earlier sentence. maxSentences <= 0 always returns the
// empty string, even when the text itself is empty.
func Summarize(text string, maxSentences int) string {
	if maxSentences <= 0 {
		return ""
	}

	sentences := splitSentences(text)
	if len(sentences) == 0 {
		return ""
	}
	if len(sentences) <= maxSentences {
		return strings.Join(sentences, " ")
	}

	// Document-wide word frequencies, stop words excluded. Each occurrence
	// counts, not each containing sentence.
	freq := make(map[string]int)
	for _, sentence := range sentences {
		for _, word := range tokenize(sentence) {
			if stopWords[word] {
				continue
			}
			freq[word]++
		}
	}

	// Length-normalized scores so long sentences are not favored merely for
	// word count. A sentence with no word tokens scores zero.
	scores := make([]sentenceScore, len(sentences))
	for i, sentence := range sentences {
		words := tokenize(sentence)
		if len(words) == 0 {
			scores[i] = sentenceScore{index: i}
			continue
		}
		sum := 0
		for _, w := range words {
			sum += freq[w]
		}
		scores[i] = sentenceScore{index: i, score: float64(sum) / float64(len(words))}
	}

	ranked := make([]sentenceScore, len(scores))
	copy(ranked, scores)
	sort.SliceStable(ranked, func(a, b int) bool {
		if ranked[a].score != ranked[b].score {
			return ranked[a].score > ranked[b].score
		}
		return ranked[a].index < ranked[b].index
	})

	selected := make([]int, maxSentences)
	for i := 0; i < maxSentences; i++ {
		selected[i] = ranked[i].index
	}
	// Narrative order, never rank order.
	sort.Ints(selected)

	picked := make([]string, len(selected))
	for i, idx := range selected {
		picked[i] = sentences[idx]
	}
	return strings.Join(picked, " ")
}
