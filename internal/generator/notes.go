package generator

import (
	"strconv"
	"strings"
)

// Clinical-note templates. Placeholders are substituted with randomly drawn
// vocabulary; the notes are free prose and do not contribute keywords.
var noteTemplates = []string{
	"Paziente presenta {symptoms}. Si consiglia {recommendation}.",
	"Esame obiettivo: {findings}. Diagnosi: {diagnosis}. Terapia: {therapy}.",
	"Controllo di follow-up. Paziente in condizioni {condition}. Proseguire terapia in corso.",
	"Ricovero per {reason}. Durata prevista: {duration} giorni.",
	"Dimissione con {prescription}. Prossimo controllo tra {followup} settimane.",
	"Esami di laboratorio: {lab_results}. Valori nella norma eccetto {exceptions}.",
	"Visita specialistica: {specialist_notes}. Indicata {procedure}.",
}

var findings = []string{
	"obiettività cardiaca nei limiti", "addome trattabile", "torace eupnoico",
}

var conditions = []string{"stabili", "migliorate", "stazionarie"}

var labExceptions = []string{
	"glicemia lievemente elevata", "lieve anemia", "creatinina ai limiti",
}

var specialistOpenings = []string{
	"quadro compatibile con", "si conferma diagnosi di", "da escludere",
}

// clinicalNotes fills a randomly chosen template with randomly drawn
// parameter bindings.
func (g *Generator) clinicalNotes() string {
	template := noteTemplates[g.rng.Intn(len(noteTemplates))]

	replacements := map[string]string{
		"{symptoms}":         strings.Join(g.sampleStrings(symptoms, g.rng.Intn(3)+1), ", "),
		"{recommendation}":   treatments[g.rng.Intn(len(treatments))],
		"{findings}":         findings[g.rng.Intn(len(findings))],
		"{diagnosis}":        diagnoses[g.rng.Intn(len(diagnoses))],
		"{therapy}":          treatments[g.rng.Intn(len(treatments))],
		"{condition}":        conditions[g.rng.Intn(len(conditions))],
		"{reason}":           diagnoses[g.rng.Intn(len(diagnoses))],
		"{duration}":         strconv.Itoa(g.rng.Intn(13) + 2),
		"{prescription}":     treatments[g.rng.Intn(len(treatments))],
		"{followup}":         strconv.Itoa(g.rng.Intn(8) + 1),
		"{lab_results}":      "emocromo, glicemia, creatinina, transaminasi",
		"{exceptions}":       labExceptions[g.rng.Intn(len(labExceptions))],
		"{specialist_notes}": specialistOpenings[g.rng.Intn(len(specialistOpenings))] + " " + diagnoses[g.rng.Intn(len(diagnoses))],
		"{procedure}":        treatments[g.rng.Intn(len(treatments))],
	}

	for placeholder, value := range replacements {
		template = strings.ReplaceAll(template, placeholder, value)
	}
	return template
}
