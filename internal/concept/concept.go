// Package concept classifies a free-text question into one of a fixed set
// of manual topics by keyword sniffing. Each topic carries the hand-written
// answer used when the topic matches, so adding a topic means adding a table
// entry, not a code branch.
package concept

import "strings"

// Topic is one entry of the detection table.
type Topic struct {
	Name     string   // stable identifier, e.g. "devis-creation"
	Keywords []string // lower-case; any substring match of the query wins
	Template string   // canned answer, shown verbatim for this topic
}

// Detect returns the first topic for which any keyword is a substring of
// the lower-cased query. Table order resolves ambiguity: the earlier entry
// wins regardless of keyword specificity. The second return is false when
// no topic matches, which routes synthesis to its extractive fallback.
func Detect(query string) (Topic, bool) {
	q := strings.ToLower(query)
	for _, t := range Table {
		for _, kw := range t.Keywords {
			if strings.Contains(q, kw) {
				return t, true
			}
		}
	}
	return Topic{}, false
}

// Table is the ordered topic list. More specific entries come before the
// ones with catch-all keywords ("devis-types" before "devis-creation"),
// because detection stops at the first match.
var Table = []Topic{
	{
		Name:     "devis-types",
		Keywords: []string{"types de devis", "type de devis", "quels devis", "différents devis", "differents devis"},
		Template: `**Les types de devis dans Kaizen :**

Kaizen distingue trois types de devis selon la prestation demandée par la famille :

1. **Devis garde régulière** : pour une garde récurrente avec un planning hebdomadaire fixe. Le tarif est calculé à partir du volume d'heures mensuel estimé.
2. **Devis garde ponctuelle** : pour une demande occasionnelle (remplacement, vacances scolaires). Le tarif horaire ponctuel s'applique.
3. **Devis périscolaire** : pour les sorties d'école et les mercredis. Le devis intègre les majorations liées aux trajets.

Chaque type de devis applique automatiquement la grille tarifaire de l'agence et fait apparaître le reste à charge après crédit d'impôt.`,
	},
	{
		Name:     "devis-creation",
		Keywords: []string{"devis"},
		Template: `**Créer un devis dans Kaizen :**

1. Ouvrez la fiche de la famille concernée (ou créez-la si elle n'existe pas encore).
2. Dans l'onglet **Devis**, cliquez sur **Nouveau devis**.
3. Sélectionnez le type de prestation (garde régulière, ponctuelle ou périscolaire).
4. Renseignez le planning prévisionnel : jours, horaires et volume d'heures mensuel.
5. Vérifiez la grille tarifaire appliquée ; le reste à charge après crédit d'impôt est calculé automatiquement.
6. Cliquez sur **Générer** pour produire le PDF, puis **Envoyer** pour le transmettre à la famille par email.

Le devis passe au statut « Envoyé » et peut ensuite être transformé en contrat dès acceptation par la famille.`,
	},
	{
		Name:     "aici-subsidy",
		Keywords: []string{"aici", "avance immédiate", "avance immediate", "crédit d'impôt", "credit d'impot", "urssaf"},
		Template: `**L'AICI (Avance Immédiate de Crédit d'Impôt) :**

L'AICI permet aux familles de ne régler que leur reste à charge : l'URSSAF verse directement les 50 % de crédit d'impôt à l'agence.

- **Activation** : la famille doit être inscrite au service Avance Immédiate depuis sa fiche (onglet **Facturation** → **Activer l'AICI**). L'inscription demande le NIR et les coordonnées bancaires de la famille.
- **Fonctionnement** : à chaque facture, Kaizen transmet la demande de paiement à l'URSSAF. La famille dispose de 48 h pour valider sur son espace particulier.
- **Suivi** : l'état des demandes (acceptée, en attente, rejetée) est visible dans l'onglet **AICI** du Dashboard.

En cas de rejet de la demande, la facture repasse automatiquement en prélèvement classique sur le compte de la famille.`,
	},
	{
		Name:     "invoicing",
		Keywords: []string{"facture", "facturation", "facturer"},
		Template: `**Générer une facture dans Kaizen :**

1. Vérifiez d'abord que les heures du mois sont validées dans le planning (les heures non pointées ne sont pas facturables).
2. Ouvrez le menu **Facturation** → **Facturation mensuelle**.
3. Sélectionnez la période et l'agence, puis cliquez sur **Calculer** : Kaizen produit un brouillon par famille.
4. Contrôlez les brouillons signalés en anomalie (heures manquantes, tarif absent).
5. Cliquez sur **Valider la facturation** : les factures sont numérotées, archivées en PDF et envoyées aux familles.

Les familles inscrites à l'AICI sont facturées de leur seul reste à charge ; les autres sont prélevées du montant total.`,
	},
	{
		Name:     "contract",
		Keywords: []string{"contrat"},
		Template: `**Créer un contrat dans Kaizen :**

Un contrat se crée toujours à partir d'un devis accepté ou d'une fiche salarié complète :

- **Contrat de prestation (famille)** : depuis le devis accepté, cliquez sur **Transformer en contrat**. Les conditions du devis (planning, tarifs, durée) sont reprises automatiquement.
- **Contrat de travail (intervenant)** : depuis la fiche salarié, onglet **Contrats** → **Nouveau contrat**. Choisissez le modèle (CDI, CDII, CDD) puis complétez la durée hebdomadaire et le taux horaire.

Dans les deux cas, le contrat généré part en signature électronique via YouSign. Il passe au statut « Actif » une fois toutes les signatures recueillies.`,
	},
	{
		Name:     "e-signature",
		Keywords: []string{"yousign", "signature électronique", "signature electronique", "signer"},
		Template: `**La signature électronique (YouSign) :**

Kaizen envoie les contrats et avenants en signature électronique via YouSign :

1. Depuis le document généré, cliquez sur **Envoyer en signature**.
2. Chaque signataire reçoit un email avec un lien sécurisé et un code SMS de validation.
3. Le suivi des signatures est visible sur le document (statut « En attente », « Signé », « Refusé »).
4. Une fois toutes les signatures recueillies, le document signé est archivé automatiquement dans la fiche concernée.

Une relance automatique part au bout de 72 h sans signature. Le lien expire après 15 jours ; il faut alors renvoyer le document.`,
	},
	{
		Name:     "dashboard",
		Keywords: []string{"dashboard", "tableau de bord"},
		Template: `**Le Dashboard Kaizen :**

Le Dashboard est l'écran d'accueil de l'agence. Il regroupe :

- **Indicateurs du mois** : heures réalisées, chiffre d'affaires facturé, nombre de familles actives et d'intervenants en poste.
- **Alertes** : contrats arrivant à échéance, documents en attente de signature, demandes AICI rejetées, pointages manquants.
- **Raccourcis** : création de devis, de fiche famille et de fiche salarié.

Chaque indicateur est cliquable et ouvre la liste détaillée correspondante. Les chiffres se rafraîchissent chaque nuit ; le bouton **Actualiser** force un recalcul immédiat.`,
	},
	{
		Name:     "matching",
		Keywords: []string{"appariement", "apparier", "matching"},
		Template: `**L'appariement famille / intervenant :**

L'appariement associe une demande de garde à l'intervenant le plus adapté :

1. Ouvrez la demande depuis **Planning** → **Demandes à pourvoir**.
2. Cliquez sur **Rechercher un intervenant** : Kaizen propose les salariés compatibles en croisant disponibilités, secteur géographique, qualifications (agrément petite enfance) et volume d'heures souhaité.
3. Les candidats sont classés par taux de compatibilité ; la fiche de chacun est consultable d'un clic.
4. Sélectionnez l'intervenant puis **Proposer le créneau** : il reçoit une notification et confirme depuis son application mobile.

Une fois la proposition acceptée, le planning de l'intervenant et celui de la famille sont mis à jour automatiquement.`,
	},
	{
		Name:     "family-record",
		Keywords: []string{"fiche famille", "dossier famille", "famille"},
		Template: `**La fiche famille :**

La fiche famille centralise toutes les informations d'un client :

- **Identité** : coordonnées des parents, adresse du domicile de garde, enfants (nom, date de naissance, spécificités).
- **Contrats et devis** : historique complet avec statuts.
- **Facturation** : mode de règlement, inscription AICI, factures émises et règlements reçus.
- **Planning** : gardes passées et à venir, intervenants associés.

Pour créer une fiche : **Familles** → **Nouvelle famille**. Les champs obligatoires sont les coordonnées d'au moins un parent et l'adresse de garde ; sans eux, aucun devis ne peut être émis.`,
	},
	{
		Name:     "employee-record",
		Keywords: []string{"fiche salarié", "fiche salarie", "salarié", "salarie", "intervenant"},
		Template: `**La fiche salarié (intervenant) :**

La fiche salarié regroupe tout le dossier RH d'un intervenant :

- **État civil et coordonnées**, avec les pièces justificatives (pièce d'identité, carte vitale, RIB, diplômes).
- **Disponibilités et secteur** d'intervention, utilisés par l'appariement.
- **Contrats de travail**, avenants et attestations.
- **Compteurs** : heures effectuées, congés acquis, modulation.

Pour créer une fiche : **Salariés** → **Nouveau salarié**. La fiche reste au statut « Incomplète » tant que les pièces obligatoires ne sont pas déposées ; un intervenant incomplet ne peut pas être proposé à l'appariement.`,
	},
	{
		Name:     "scheduling",
		Keywords: []string{"planning", "horaires", "plage"},
		Template: `**Le planning dans Kaizen :**

Le planning se consulte par agence, par famille ou par intervenant (vue semaine ou mois) :

- **Créer une garde** : cliquez sur le créneau souhaité, choisissez la famille et l'intervenant, puis enregistrez. Les conflits d'horaires sont signalés immédiatement.
- **Modifier ou annuler** : ouvrez la garde concernée ; toute modification notifie automatiquement l'intervenant.
- **Pointage** : l'intervenant pointe ses heures depuis l'application mobile ; l'agence valide les pointages en fin de semaine depuis **Planning** → **Heures à valider**.

Seules les heures validées alimentent la facturation et la paie.`,
	},
	{
		Name:     "payment",
		Keywords: []string{"paiement", "prélèvement", "prelevement", "règlement", "reglement"},
		Template: `**Les paiements dans Kaizen :**

- **Prélèvement SEPA** : mode par défaut. Le mandat est signé électroniquement à la création du contrat ; les prélèvements partent le 5 du mois suivant la facturation.
- **Avance Immédiate (AICI)** : l'URSSAF règle directement la part crédit d'impôt, la famille n'est prélevée que du reste à charge.
- **Autres règlements** : virement ou CESU préfinancé, à saisir manuellement depuis la facture (**Enregistrer un règlement**).

Les rejets de prélèvement apparaissent dans **Facturation** → **Impayés**, avec relance par email automatique et possibilité de représenter le prélèvement.`,
	},
	{
		Name:     "tax-filing",
		Keywords: []string{"déclaration", "declaration", "nova", "taxe"},
		Template: `**Les déclarations dans Kaizen :**

Kaizen prépare les déclarations réglementaires de l'activité de services à la personne :

- **Déclaration NOVA** : le tableau statistique trimestriel et annuel (heures, familles, intervenants) s'exporte depuis **Déclarations** → **NOVA**, prêt à être déposé sur l'extranet.
- **Attestations fiscales** : générées chaque année en janvier pour toutes les familles, avec le total des sommes effectivement acquittées l'année précédente. Envoi en masse par email depuis **Déclarations** → **Attestations fiscales**.
- **DSN** : les éléments variables de paie (heures validées, absences) s'exportent vers le logiciel de paie depuis **Déclarations** → **Export paie**.

Les montants déclarés s'appuient exclusivement sur les factures validées et les règlements enregistrés.`,
	},
}
