package search

import "fmt"

// A strategy is one natural-language framing of the same search. Issuing
// several framings concurrently and merging widens coverage: the provider
// surfaces different businesses for "les moins bien notées" than for "les
// plus populaires".
type strategy struct {
	name  string
	angle string
}

var strategies = []strategy{
	{
		name:  "underperformers",
		angle: "Concentre-toi sur les entreprises mal notées (moins de 4 étoiles) ou sans site web : ce sont les meilleures cibles.",
	},
	{
		name:  "popular",
		angle: "Concentre-toi sur les entreprises les plus populaires et les plus connues de la ville.",
	},
	{
		name:  "nearby",
		angle: "Concentre-toi sur les entreprises de proximité, y compris les petites structures peu visibles en ligne.",
	},
}

// buildPrompt assembles the search prompt for one strategy. The grounding
// sentence is included only when the provider actually has a maps tool;
// asking a provider without one to "use Google Maps" invites fabrication.
func buildPrompt(st strategy, query, city string, grounded bool, minResults int) string {
	grounding := ""
	if grounded {
		grounding = "Utilise Google Maps pour vérifier l'existence réelle de chaque entreprise.\n"
	}

	return fmt.Sprintf(`Tu es un assistant de prospection commerciale.
Cherche des entreprises correspondant à cette requête : "%s à %s".
%s%s

IMPORTANT : Génère UNIQUEMENT un tableau JSON strict (sans Markdown, sans texte autour).
Chaque objet du tableau doit avoir cette structure :
{
  "name": "Nom de l'entreprise",
  "address": "Adresse complète (ou null)",
  "rating": 4.5,
  "website": "URL du site (ou null)",
  "phone": "Numéro de téléphone (ou null)",
  "latitude": 48.85,
  "longitude": 2.35
}
Mets null pour toute donnée inconnue, n'invente jamais de coordonnées.
Trouve au moins %d résultats pertinents.`, query, city, grounding, st.angle, minResults)
}

// buildGroundQuery is the Places text query used to backfill a result.
func buildGroundQuery(name, address, city string) string {
	if address != "" {
		return name + " " + address
	}
	return name + " " + city
}
