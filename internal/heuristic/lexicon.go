package heuristic

// Lexicons driving the credibility and pattern scorers. Matching is
// case-insensitive substring search against lowercased input; domain entries
// match inside extracted hostnames, not the body text.

var trustedDomains = []string{
	"bbc.com", "bbc.co.uk", "reuters.com", "ap.org", "apnews.com",
	"npr.org", "pbs.org", "cnn.com", "nytimes.com", "washingtonpost.com",
	"theguardian.com", "wsj.com", "bloomberg.com", "abcnews.go.com",
	"cbsnews.com", "nbcnews.com", "usatoday.com", "time.com",
	"newsweek.com", "economist.com", "ft.com", "latimes.com",
}

var factCheckerDomains = []string{
	"snopes.com", "factcheck.org", "politifact.com", "fullfact.org",
	"checkyourfact.com", "factcheck.afp.com", "leadstories.com",
}

var officialDomains = []string{
	"gov.uk", "gov.ca", "cdc.gov", "who.int", "nasa.gov",
	"nih.gov", "fda.gov", "epa.gov", "state.gov",
}

// agencyPrefixes credit text that opens as a wire-service byline. A mere
// mention of an agency elsewhere in the text earns nothing.
var agencyPrefixes = []string{"bbc", "reuters", "associated press", "ap news"}

var attributionPhrases = []string{"according to", "reported by", "study by"}

var sensationalOpeners = []string{"breaking:", "shocking", "you won't believe"}

var unverifiedPhrases = []string{"insider source", "anonymous tip", "rumor has it"}

var clickbaitPhrases = []string{
	"you won't believe", "shocking truth", "doctors hate him",
	"one weird trick", "this will blow your mind", "secret they don't want",
}

var conspiracyPhrases = []string{
	"mainstream media", "cover up", "they don't want you to know",
	"big pharma", "government conspiracy", "wake up sheeple",
}

var fakeSciencePhrases = []string{
	"scientists baffled", "doctors shocked", "breakthrough discovery",
	"hidden by scientists", "secret research", "banned study",
	"confirms existence", "sudden change", "rare mineral",
}

var sensationalPhrases = []string{
	"breaking", "explosive", "bombshell", "leaked", "exposed",
	"shocking revelation", "insider reveals", "exclusive",
}

var scientificPhrases = []string{
	"peer reviewed", "clinical trial", "published in journal",
	"systematic review", "meta-analysis", "randomized controlled",
}

// debunkedClaimPhrases is the static library behind the fact-check search.
// Each entry stands in for a family of claims repeatedly rated false by
// fact-checking organizations.
var debunkedClaimPhrases = []string{
	"miracle cure", "doctors hate", "secret revealed", "they don't want you to know",
	"banned by government", "suppressed by media", "big pharma conspiracy",
	"scientists discover", "breaking discovery", "hidden truth", "exposed",
	"confirms existence", "sudden climate change", "rare mineral", "alien",
	"government cover up", "conspiracy theorists", "leaked document", "insider reveals",
}

// LexiconCoverage counts the source-reputation entries backing the scorers.
type LexiconCoverage struct {
	TrustedSources  int `json:"trusted_sources"`
	FactCheckers    int `json:"fact_checkers"`
	OfficialSources int `json:"official_sources"`
}

func Coverage() LexiconCoverage {
	return LexiconCoverage{
		TrustedSources:  len(trustedDomains),
		FactCheckers:    len(factCheckerDomains),
		OfficialSources: len(officialDomains),
	}
}
