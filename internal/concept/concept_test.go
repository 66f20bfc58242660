package concept

import "testing"

func TestDetect(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantTopic string
		wantFound bool
	}{
		{
			name:      "devis creation",
			query:     "Comment créer un devis ?",
			wantTopic: "devis-creation",
			wantFound: true,
		},
		{
			name:      "devis types wins over the devis catch-all",
			query:     "Quels sont les types de devis ?",
			wantTopic: "devis-types",
			wantFound: true,
		},
		{
			name:      "aici",
			query:     "Qu'est-ce que l'AICI ?",
			wantTopic: "aici-subsidy",
			wantFound: true,
		},
		{
			name:      "invoicing",
			query:     "Comment générer une facture ?",
			wantTopic: "invoicing",
			wantFound: true,
		},
		{
			name:      "contract",
			query:     "Comment créer un contrat de travail ?",
			wantTopic: "contract",
			wantFound: true,
		},
		{
			name:      "e-signature",
			query:     "Comment fonctionne YouSign ?",
			wantTopic: "e-signature",
			wantFound: true,
		},
		{
			name:      "dashboard",
			query:     "Qu'est-ce que le Dashboard ?",
			wantTopic: "dashboard",
			wantFound: true,
		},
		{
			name:      "matching",
			query:     "Comment faire un appariement ?",
			wantTopic: "matching",
			wantFound: true,
		},
		{
			name:      "case insensitive",
			query:     "COMMENT GÉNÉRER UNE FACTURE",
			wantTopic: "invoicing",
			wantFound: true,
		},
		{
			name:      "no match",
			query:     "xyzzyqqq nonsense",
			wantFound: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			topic, found := Detect(tt.query)
			if found != tt.wantFound {
				t.Fatalf("Detect(%q) found = %v, want %v", tt.query, found, tt.wantFound)
			}
			if found && topic.Name != tt.wantTopic {
				t.Errorf("Detect(%q) = %q, want %q", tt.query, topic.Name, tt.wantTopic)
			}
		})
	}
}

func TestDetect_Deterministic(t *testing.T) {
	query := "Comment signer un contrat via YouSign ?"

	first, found := Detect(query)
	if !found {
		t.Fatal("Detect() found no topic")
	}
	for i := 0; i < 10; i++ {
		topic, _ := Detect(query)
		if topic.Name != first.Name {
			t.Fatalf("Detect() call %d = %q, first call = %q", i, topic.Name, first.Name)
		}
	}
	// "contrat" appears before the e-signature keywords in the table, so
	// the contract topic wins this ambiguous query.
	if first.Name != "contract" {
		t.Errorf("Detect() = %q, want %q (table order resolves ambiguity)", first.Name, "contract")
	}
}

func TestTable_Integrity(t *testing.T) {
	seen := make(map[string]bool)
	for _, topic := range Table {
		if topic.Name == "" {
			t.Error("topic with empty name")
		}
		if seen[topic.Name] {
			t.Errorf("duplicate topic %q", topic.Name)
		}
		seen[topic.Name] = true

		if len(topic.Keywords) == 0 {
			t.Errorf("topic %q has no keywords", topic.Name)
		}
		if topic.Template == "" {
			t.Errorf("topic %q has no template", topic.Name)
		}
	}
}
