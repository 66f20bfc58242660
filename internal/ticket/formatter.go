// Package ticket renders a question and its search outcome into a Freshdesk
// ticket draft. The draft is a deterministic function of its inputs; the
// only ambient input is the clock, which callers inject.
package ticket

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/kangouroukids/kaizen-assistant/internal/freshdesk"
	"github.com/kangouroukids/kaizen-assistant/internal/render"
	"github.com/kangouroukids/kaizen-assistant/pkg/models"
)

// Placeholder rendered for missing user profile fields. Explicit on
// purpose: a blank field in a support ticket looks like lost data.
const Placeholder = "À compléter"

// Ticket defaults.
const (
	defaultPriority = 2 // Medium
	defaultStatus   = 2 // Open
	subjectPrefix   = "[Kaizen IA] Question : "
	maxSubjectQuery = 80
	excerptLen      = 300
	maxExcerpts     = 3
)

// Tags applied to every auto-generated ticket.
var defaultTags = []string{"kaizen-ia", "documentation", "auto-generated"}

// Draft builds a ticket from a question and the search that answered it.
// profile may be nil.
func Draft(query string, results []models.SearchResult, profile *models.UserProfile, now time.Time) freshdesk.Ticket {
	t := freshdesk.Ticket{
		Subject:     subject(query),
		Description: description(query, results, profile, now),
		Priority:    defaultPriority,
		Status:      defaultStatus,
		Tags:        defaultTags,
	}
	if profile != nil {
		t.Email = profile.Email
		t.Name = profile.Name
	}
	return t
}

// ManualText renders the ticket as plain text for copy-paste when the
// Freshdesk integration is disabled or the submission failed.
func ManualText(t freshdesk.Ticket) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Sujet : %s\n", t.Subject)
	fmt.Fprintf(&b, "Priorité : %d — Statut : %d — Tags : %s\n\n", t.Priority, t.Status, strings.Join(t.Tags, ", "))

	body, err := render.Markdown(t.Description)
	if err != nil {
		body = render.PlainText(t.Description)
	}
	b.WriteString(body)
	b.WriteString("\n")
	return b.String()
}

func subject(query string) string {
	runes := []rune(query)
	if len(runes) > maxSubjectQuery {
		query = string(runes[:maxSubjectQuery])
	}
	return subjectPrefix + query
}

// description is the HTML ticket body: the question, what the automatic
// search found, who asked, and system metadata.
func description(query string, results []models.SearchResult, profile *models.UserProfile, now time.Time) string {
	var b strings.Builder

	b.WriteString("<h2>🔍 Question posée</h2>\n")
	fmt.Fprintf(&b, "<p><strong>%s</strong></p>\n", html.EscapeString(query))

	b.WriteString("<h2>📊 Résultats de recherche automatique</h2>\n")
	if len(results) > 0 {
		fmt.Fprintf(&b, "<p>%d page(s) pertinente(s) trouvée(s) dans le manuel Kaizen.</p>\n", len(results))
		b.WriteString("<h3>Extraits trouvés :</h3>\n<ul>\n")
		for i, r := range results {
			if i == maxExcerpts {
				break
			}
			fmt.Fprintf(&b, "<li><strong>Page %d</strong> (score %d) : %s</li>\n", r.Page, r.Score, html.EscapeString(r.Snippet(excerptLen)))
		}
		b.WriteString("</ul>\n")
	} else {
		b.WriteString("<p><em>Aucun résultat trouvé dans le manuel Kaizen.</em></p>\n")
	}

	b.WriteString("<h2>👤 Informations utilisateur</h2>\n<ul>\n")
	fmt.Fprintf(&b, "<li><strong>Nom :</strong> %s</li>\n", html.EscapeString(orPlaceholder(profileField(profile, func(p *models.UserProfile) string { return p.Name }))))
	fmt.Fprintf(&b, "<li><strong>Email :</strong> %s</li>\n", html.EscapeString(orPlaceholder(profileField(profile, func(p *models.UserProfile) string { return p.Email }))))
	fmt.Fprintf(&b, "<li><strong>Agence :</strong> %s</li>\n", html.EscapeString(orPlaceholder(profileField(profile, func(p *models.UserProfile) string { return p.Agency }))))
	b.WriteString("</ul>\n")

	b.WriteString("<hr>\n<h2>ℹ️ Informations système</h2>\n<ul>\n")
	fmt.Fprintf(&b, "<li><strong>Date :</strong> %s</li>\n", now.Format("02/01/2006 15:04:05"))
	b.WriteString("<li><strong>Source :</strong> Assistant IA Kaizen</li>\n")
	b.WriteString("</ul>\n")
	b.WriteString("<p><em>✅ Ce ticket a été créé automatiquement par l'Assistant IA Kaizen.</em></p>\n")

	return b.String()
}

func profileField(p *models.UserProfile, get func(*models.UserProfile) string) string {
	if p == nil {
		return ""
	}
	return get(p)
}

func orPlaceholder(s string) string {
	if strings.TrimSpace(s) == "" {
		return Placeholder
	}
	return s
}
