package ledger

import (
	"strings"
	"unicode"

	"github.com/jbrukh/bayesian"

	"github.com/jhoicas/Costbook-api/internal/domain/entity"
)

// CategorySuggester sugiere una categoría para una descripción nueva a partir de los
// movimientos existentes (bayes ingenuo sobre las palabras de la descripción).
type CategorySuggester struct {
	classifier *bayesian.Classifier
	only       string // cuando el historial tiene una sola categoría
}

// Suggestion resultado de la sugerencia. Confident es falso si hubo empate.
type Suggestion struct {
	Category  string
	Confident bool
}

// NewCategorySuggester entrena el clasificador con el historial.
func NewCategorySuggester(records []*entity.LedgerRecord) *CategorySuggester {
	type sample struct {
		words    []string
		category string
	}
	var samples []sample
	seen := make(map[string]bool)
	var classes []bayesian.Class
	for _, r := range records {
		words := Tokenize(r.Description)
		if len(words) == 0 || r.Category == "" {
			continue
		}
		samples = append(samples, sample{words: words, category: r.Category})
		if !seen[r.Category] {
			seen[r.Category] = true
			classes = append(classes, bayesian.Class(r.Category))
		}
	}

	s := &CategorySuggester{}
	switch len(classes) {
	case 0:
		return s
	case 1:
		s.only = string(classes[0])
		return s
	}
	s.classifier = bayesian.NewClassifier(classes...)
	for _, smp := range samples {
		s.classifier.Learn(smp.words, bayesian.Class(smp.category))
	}
	return s
}

// Suggest devuelve la categoría más probable. Sin historial devuelve "其他" sin confianza.
func (s *CategorySuggester) Suggest(description string) Suggestion {
	if s.classifier == nil {
		if s.only != "" {
			return Suggestion{Category: s.only, Confident: false}
		}
		return Suggestion{Category: entity.CategoryOther}
	}
	words := Tokenize(description)
	if len(words) == 0 {
		return Suggestion{Category: entity.CategoryOther}
	}
	_, inx, strict := s.classifier.LogScores(words)
	return Suggestion{Category: string(s.classifier.Classes[inx]), Confident: strict}
}

// Tokenize separa la descripción en palabras en minúsculas. Los ideogramas se toman uno
// por uno porque el chino no separa palabras con espacios.
func Tokenize(text string) []string {
	var out []string
	for _, f := range strings.Fields(strings.ToLower(text)) {
		var latin []rune
		flush := func() {
			if len(latin) > 0 {
				out = append(out, string(latin))
				latin = latin[:0]
			}
		}
		for _, r := range f {
			switch {
			case unicode.Is(unicode.Han, r):
				flush()
				out = append(out, string(r))
			case unicode.IsLetter(r) || unicode.IsDigit(r):
				latin = append(latin, r)
			default:
				flush()
			}
		}
		flush()
	}
	return out
}
