// Package synthesis turns search results into a user-facing answer. Known
// topics get their hand-written template; the extracted page text is
// deliberately ignored there, because curated prose beats noisy layout
// extraction. Unknown topics get an extractive fallback that picks the most
// relevant lines out of the top pages.
package synthesis

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/kangouroukids/kaizen-assistant/internal/concept"
	"github.com/kangouroukids/kaizen-assistant/internal/search"
	"github.com/kangouroukids/kaizen-assistant/pkg/models"
)

// Fixed user-facing messages.
const (
	NotFoundMessage = "Aucune information trouvée dans le manuel Kaizen pour cette question. " +
		"Reformulez votre question ou créez un ticket Freshdesk pour obtenir une aide personnalisée."

	InsufficientInfoMessage = "Les pages trouvées ne contiennent pas assez d'informations exploitables. " +
		"Consultez les pages citées ou créez un ticket Freshdesk pour plus de détails."

	ticketHint = "\n\n💡 Besoin de plus de détails ? Créez un ticket Freshdesk depuis l'assistant."
)

// Fallback section headers, by detected question intent.
const (
	headerProcedure  = "**Procédure :**\n\n"
	headerDefinition = "**Définition :**\n\n"
	headerNavigation = "**Accès dans Kaizen :**\n\n"
	headerGeneral    = "**Informations trouvées :**\n\n"
)

// stepPattern matches numbered procedure lines ("1. ...", "2) ...", "Étape 3").
var stepPattern = regexp.MustCompile(`(?i)^\d+[.)]\s+|^étape\s+\d+`)

// definitionMarkers flag lines that read like a definition. Substring
// matches, same looseness as the rest of the matching in this program.
var definitionMarkers = []string{"est", "permet", "désigne", "correspond"}

// navigationMarkers flag lines that describe a navigation path in the UI.
var navigationMarkers = []string{"onglet", "menu", "bouton", "cliquer", "accéder", "rendez-vous"}

// howMany pages feed the extractive fallback.
const fallbackPages = 3

// Config holds synthesizer tuning.
type Config struct {
	MaxLines   int // lines kept per fallback answer
	MinLineLen int // shorter lines are ignored by the general path
}

// Synthesizer produces answers. It is a pure transformation: no I/O, no
// state beyond configuration.
type Synthesizer struct {
	maxLines   int
	minLineLen int
}

// New creates a synthesizer.
func New(config Config) *Synthesizer {
	maxLines := config.MaxLines
	if maxLines <= 0 {
		maxLines = 6
	}
	minLineLen := config.MinLineLen
	if minLineLen <= 0 {
		minLineLen = 30
	}
	return &Synthesizer{maxLines: maxLines, minLineLen: minLineLen}
}

// Synthesize builds the answer for a query. topicFound selects the template
// path; otherwise the extractive fallback runs over the result text. Empty
// results terminate with the fixed not-found message and no cited pages.
func (s *Synthesizer) Synthesize(query string, topic concept.Topic, topicFound bool, results []models.SearchResult) models.Answer {
	if len(results) == 0 {
		return models.Answer{Text: NotFoundMessage}
	}

	pages := make([]int, len(results))
	for i, r := range results {
		pages[i] = r.Page
	}

	if topicFound {
		// Cited pages come from the search, which may or may not actually
		// discuss the topic. The template text never depends on them.
		return models.Answer{Text: topic.Template, Pages: pages}
	}

	return models.Answer{Text: s.extractive(query, results), Pages: pages}
}

// extractive builds a bulleted answer out of the most relevant lines of the
// top pages. The question intent (how / what / where) picks the line
// selection strategy; each strategy falls through to the scored general
// path when it finds nothing.
func (s *Synthesizer) extractive(query string, results []models.SearchResult) string {
	n := len(results)
	if n > fallbackPages {
		n = fallbackPages
	}
	var texts []string
	for _, r := range results[:n] {
		texts = append(texts, r.Text)
	}
	all := strings.Join(texts, "\n")

	lines := nonEmptyLines(all)
	q := strings.ToLower(query)

	var body string
	switch {
	case containsAny(q, "comment", "créer", "faire", "générer", "generer"):
		body = s.procedure(lines)
	case containsAny(q, "qu'est-ce", "c'est quoi", "définir", "definir"):
		body = s.definition(lines)
	case containsAny(q, "où", "trouver", "accéder"):
		body = s.navigation(lines)
	}

	if body == "" {
		body = s.general(query, lines)
	}
	if body == "" {
		return InsufficientInfoMessage
	}
	return body + ticketHint
}

// procedure collects numbered step lines.
func (s *Synthesizer) procedure(lines []string) string {
	var steps []string
	for _, line := range lines {
		if stepPattern.MatchString(line) {
			steps = append(steps, line)
			if len(steps) == s.maxLines {
				break
			}
		}
	}
	if len(steps) == 0 {
		return ""
	}
	return headerProcedure + bullets(steps)
}

// definition keeps early lines containing a definition marker.
func (s *Synthesizer) definition(lines []string) string {
	var defs []string
	for i, line := range lines {
		if i >= 15 || len(defs) == 4 {
			break
		}
		if utf8.RuneCountInString(line) <= 20 {
			continue
		}
		if containsAny(strings.ToLower(line), definitionMarkers...) {
			defs = append(defs, line)
		}
	}
	if len(defs) == 0 {
		return ""
	}
	return headerDefinition + strings.Join(defs, "\n\n")
}

// navigation keeps lines mentioning UI navigation vocabulary.
func (s *Synthesizer) navigation(lines []string) string {
	var nav []string
	for _, line := range lines {
		if containsAny(strings.ToLower(line), navigationMarkers...) {
			nav = append(nav, line)
			if len(nav) == 5 {
				break
			}
		}
	}
	if len(nav) == 0 {
		return ""
	}
	return headerNavigation + bullets(nav)
}

// general scores each sufficiently long line by the number of query tokens
// (longer than 3 runes) it contains, keeps positive scores, and returns the
// top lines in a stable score order.
func (s *Synthesizer) general(query string, lines []string) string {
	tokens := search.Tokenize(query, 4)
	if len(tokens) == 0 {
		return ""
	}

	type scored struct {
		score int
		line  string
	}
	var relevant []scored
	for _, line := range lines {
		if utf8.RuneCountInString(line) < s.minLineLen {
			continue
		}
		lower := strings.ToLower(line)
		score := 0
		for _, tok := range tokens {
			if strings.Contains(lower, tok) {
				score++
			}
		}
		if score > 0 {
			relevant = append(relevant, scored{score, line})
		}
	}
	if len(relevant) == 0 {
		return ""
	}

	sort.SliceStable(relevant, func(i, j int) bool {
		return relevant[i].score > relevant[j].score
	})
	if len(relevant) > s.maxLines {
		relevant = relevant[:s.maxLines]
	}

	kept := make([]string, len(relevant))
	for i, r := range relevant {
		kept[i] = r.line
	}
	return headerGeneral + bullets(kept)
}

func nonEmptyLines(text string) []string {
	var lines []string
	for _, l := range strings.Split(text, "\n") {
		l = strings.TrimSpace(l)
		if l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func bullets(lines []string) string {
	var b strings.Builder
	for _, l := range lines {
		fmt.Fprintf(&b, "• %s\n", l)
	}
	return strings.TrimRight(b.String(), "\n")
}
