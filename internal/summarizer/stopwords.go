package summarizer

// stopWords is a closed set of common English function words excluded from
// the frequency table. They still count toward sentence length when scoring.
var stopWords = map[string]bool{
	"a": true, "an": true, "the": true, "and": true, "or": true,
	"but": true, "if": true, "while": true, "with": true, "for": true,
	"to": true, "of": true, "in": true, "on": true, "at": true,
	"by": true, "from": true, "this": true, "that": true, "these": true,
	"those": true, "is": true, "are": true, "was": true, "were": true,
	"be": true, "been": true, "being": true, "have": true, "has": true,
	"had": true, "do": true, "does": true, "did": true, "will": true,
	"would": true, "shall": true, "should": true, "can": true, "could": true,
	"may": true, "might": true, "must": true, "about": true, "into": true,
	"than": true, "as": true, "it": true, "its": true, "he": true,
	"she": true, "they": true, "them": true, "his": true, "her": true,
	"their": true, "we": true, "you": true, "your": true, "i": true,
	"me": true, "my": true, "mine": true, "ours": true, "ourselves": true,
}
