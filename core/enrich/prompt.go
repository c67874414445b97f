package enrich

import "fmt"

const summaryPromptTemplate = `Tu es un expert en veille technologique. Voici un article sur "%s":

Titre: %s
URL: %s
Description existante: %s

Ta mission: Rédige un résumé professionnel et informatif de 2-3 phrases (maximum 250 caractères) qui:
1. Explique clairement le SUJET principal de l'article
2. Mentionne les informations clés ou les chiffres importants
3. Soit engageant et utile pour un professionnel en veille

Ne commence pas par "Cet article..." ou "Le texte...". Écris directement le résumé factuel.`

// SummaryPrompt builds the summarizer prompt for one article
func SummaryPrompt(topic, title, url, description string) string {
	if description == "" {
		description = "Pas de description"
	}
	return fmt.Sprintf(summaryPromptTemplate, topic, title, url, description)
}
