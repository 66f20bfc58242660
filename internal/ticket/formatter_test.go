package ticket

import (
	"strings"
	"testing"
	"time"

	"github.com/kangouroukids/kaizen-assistant/pkg/models"
)

var testNow = time.Date(2025, 11, 3, 14, 30, 5, 0, time.UTC)

func TestDraft_Subject(t *testing.T) {
	d := Draft("Comment créer un devis ?", nil, nil, testNow)

	if want := "[Kaizen IA] Question : Comment créer un devis ?"; d.Subject != want {
		t.Errorf("Subject = %q, want %q", d.Subject, want)
	}
}

func TestDraft_SubjectTruncation(t *testing.T) {
	long := strings.Repeat("é", 120)
	d := Draft(long, nil, nil, testNow)

	wantQuery := strings.Repeat("é", 80)
	if d.Subject != "[Kaizen IA] Question : "+wantQuery {
		t.Errorf("Subject kept %d runes of the query, want 80", len([]rune(strings.TrimPrefix(d.Subject, "[Kaizen IA] Question : "))))
	}
}

func TestDraft_Defaults(t *testing.T) {
	d := Draft("question", nil, nil, testNow)

	if d.Priority != 2 || d.Status != 2 {
		t.Errorf("Priority/Status = %d/%d, want 2/2", d.Priority, d.Status)
	}
	wantTags := []string{"kaizen-ia", "documentation", "auto-generated"}
	if len(d.Tags) != len(wantTags) {
		t.Fatalf("Tags = %v, want %v", d.Tags, wantTags)
	}
	for i, tag := range wantTags {
		if d.Tags[i] != tag {
			t.Errorf("Tags = %v, want %v", d.Tags, wantTags)
		}
	}
}

func TestDraft_DescriptionWithResults(t *testing.T) {
	results := []models.SearchResult{
		{Page: 12, Score: 7, Text: "Pour créer un devis, ouvrez l'onglet Devis."},
		{Page: 3, Score: 4, Text: "Les devis validés passent en facturation."},
		{Page: 8, Score: 2, Text: "extrait trois"},
		{Page: 9, Score: 1, Text: "extrait quatre, au-delà de la limite"},
	}
	d := Draft("Comment créer un devis ?", results, nil, testNow)

	if !strings.Contains(d.Description, "4 page(s) pertinente(s)") {
		t.Error("description should report the result count")
	}
	if !strings.Contains(d.Description, "<strong>Page 12</strong> (score 7)") {
		t.Error("description should list the top result with page and score")
	}
	if strings.Contains(d.Description, "au-delà de la limite") {
		t.Error("description should cap excerpts at three")
	}
	if !strings.Contains(d.Description, "03/11/2025 14:30:05") {
		t.Error("description should carry the injected timestamp")
	}
}

func TestDraft_DescriptionNoResults(t *testing.T) {
	d := Draft("question obscure", nil, nil, testNow)

	if !strings.Contains(d.Description, "Aucun résultat trouvé") {
		t.Error("description should state that the search found nothing")
	}
}

func TestDraft_ProfilePlaceholders(t *testing.T) {
	d := Draft("question", nil, nil, testNow)

	if got := strings.Count(d.Description, Placeholder); got != 3 {
		t.Errorf("description has %d placeholders, want 3 (name, email, agency)", got)
	}

	profile := &models.UserProfile{Name: "Marie Dupont", Email: "marie@example.fr"}
	d = Draft("question", nil, profile, testNow)

	if !strings.Contains(d.Description, "Marie Dupont") || !strings.Contains(d.Description, "marie@example.fr") {
		t.Error("description should carry the provided profile fields")
	}
	if got := strings.Count(d.Description, Placeholder); got != 1 {
		t.Errorf("description has %d placeholders, want 1 (missing agency)", got)
	}
	if d.Email != "marie@example.fr" || d.Name != "Marie Dupont" {
		t.Errorf("ticket requester = %q/%q, want the profile values", d.Name, d.Email)
	}
}

func TestDraft_EscapesUserInput(t *testing.T) {
	results := []models.SearchResult{
		{Page: 5, Score: 1, Text: "extrait avec <balise> & esperluette"},
	}
	profile := &models.UserProfile{Name: "<b>Marie</b>", Email: "marie@example.fr"}
	d := Draft("Comment créer un devis <urgent> ?", results, profile, testNow)

	if strings.Contains(d.Description, "<urgent>") || strings.Contains(d.Description, "<b>Marie") {
		t.Errorf("description should escape user-supplied markup:\n%s", d.Description)
	}
	if !strings.Contains(d.Description, "&lt;urgent&gt;") {
		t.Error("query should be HTML-escaped in the description")
	}
	if !strings.Contains(d.Description, "&lt;b&gt;Marie&lt;/b&gt;") {
		t.Error("profile name should be HTML-escaped in the description")
	}
	if !strings.Contains(d.Description, "&lt;balise&gt; &amp; esperluette") {
		t.Error("excerpts should be HTML-escaped in the description")
	}
}

func TestManualText(t *testing.T) {
	results := []models.SearchResult{
		{Page: 12, Score: 7, Text: "Pour créer un devis, ouvrez l'onglet Devis."},
	}
	d := Draft("Comment créer un devis ?", results, nil, testNow)

	text := ManualText(d)

	if !strings.Contains(text, "Sujet : [Kaizen IA] Question : Comment créer un devis ?") {
		t.Error("manual text should start with the subject")
	}
	if strings.Contains(text, "<h2>") || strings.Contains(text, "<li>") {
		t.Errorf("manual text should not contain HTML tags:\n%s", text)
	}
	if !strings.Contains(text, "Question posée") {
		t.Error("manual text should keep the section headings")
	}
	if !strings.Contains(text, "kaizen-ia, documentation, auto-generated") {
		t.Error("manual text should list the tags")
	}
}
