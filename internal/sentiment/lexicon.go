package sentiment

// Severity identifies a negative keyword tier. Matching walks severities in
// the fixed order strong → moderate → mild; the first tier with a hit wins.
type Severity string

const (
	SeverityStrong   Severity = "strong"
	SeverityModerate Severity = "moderate"
	SeverityMild     Severity = "mild"
)

// severityOrder is the explicit tie-break order for negative matches.
var severityOrder = []Severity{SeverityStrong, SeverityModerate, SeverityMild}

// severityWeights maps a tier to its (score, confidence) pair.
var severityWeights = map[Severity]struct {
	Score      float64
	Confidence float64
}{
	SeverityStrong:   {Score: -0.9, Confidence: 0.95},
	SeverityModerate: {Score: -0.6, Confidence: 0.80},
	SeverityMild:     {Score: -0.3, Confidence: 0.65},
}

// Category is an ordered category rule: the first category whose keyword
// list intersects the matched keywords is assigned.
type Category struct {
	Name     string
	Keywords []string
}

// Lexicon is the immutable keyword configuration driving the scorer.
// Build one with DefaultLexicon (or hand-construct in tests) and pass it to
// NewAnalyzer; analyzers never mutate it.
type Lexicon struct {
	// Negative keywords per language, per severity tier.
	Negative map[string]map[Severity][]string
	// Positive keywords per language.
	Positive map[string][]string
	// Ordered category table shared across languages.
	Categories []Category
	// Fallback language used when a requested language has no entries.
	DefaultLanguage string
}

// DefaultLexicon returns the built-in Turkish/English keyword tables.
func DefaultLexicon() *Lexicon {
	return &Lexicon{
		DefaultLanguage: "tr",
		Negative: map[string]map[Severity][]string{
			"tr": {
				SeverityStrong: {
					"dolandırıcı", "dolandırıcılık", "sahte", "tehlikeli",
					"yasadışı", "suç", "hırsız",
				},
				SeverityModerate: {
					"şikayet", "şikayetvar", "sorun", "problem", "kötü",
					"rezalet", "berbat", "mağdur", "zararlı", "pişman", "kaçın",
				},
				SeverityMild: {
					"kapandı mı", "güvenilir mi", "batık", "iflas", "dava",
					"yasal", "iptal", "iade",
				},
			},
			"en": {
				SeverityStrong: {
					"scam", "fraud", "illegal", "dangerous", "criminal",
				},
				SeverityModerate: {
					"complaint", "worst", "terrible", "awful", "ripoff",
					"avoid", "horrible",
				},
				SeverityMild: {
					"lawsuit", "class action", "shut down", "bankrupt",
					"refund", "cancel",
				},
			},
		},
		Positive: map[string][]string{
			"tr": {
				"en iyi", "tavsiye", "güvenilir", "kaliteli", "başarılı",
				"ödüllü", "popüler", "mükemmel", "harika", "indirim", "kampanya",
			},
			"en": {
				"best", "recommended", "award", "trusted", "top rated",
				"excellent", "popular", "amazing",
			},
		},
		Categories: []Category{
			{Name: "fraud", Keywords: []string{"dolandırıcı", "sahte", "scam", "fraud", "fake"}},
			{Name: "complaint", Keywords: []string{"şikayet", "sorun", "problem", "complaint"}},
			{Name: "legal", Keywords: []string{"dava", "yasal", "lawsuit", "yasadışı"}},
			{Name: "quality", Keywords: []string{"kötü", "berbat", "rezalet", "worst", "terrible"}},
			{Name: "trust", Keywords: []string{"güvenilir mi", "kapandı mı", "batık", "iflas"}},
			{Name: "refund", Keywords: []string{"iade", "iptal", "refund", "cancel"}},
		},
	}
}

// negativeFor returns the negative keyword tiers for language, falling back
// to the default language.
func (l *Lexicon) negativeFor(language string) map[Severity][]string {
	if tiers, ok := l.Negative[language]; ok {
		return tiers
	}
	return l.Negative[l.DefaultLanguage]
}

// positiveFor returns the positive keyword list for language, falling back
// to the default language.
func (l *Lexicon) positiveFor(language string) []string {
	if kws, ok := l.Positive[language]; ok {
		return kws
	}
	return l.Positive[l.DefaultLanguage]
}
