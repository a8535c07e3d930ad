// --- gradpath-server/ingestion/cleanup.go ---
package ingestion

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"gradpath-server/utils"
)

var (
	// instructorRe marks where a course title trails into an instructor name;
	// the source layout concatenates them with no delimiter.
	instructorRe = regexp.MustCompile(`\b(?:Dra?|MS[cC]|Profa?|Esp)\.`)

	// hourNoteRe marks a parenthesized workload annotation like "(60h)".
	hourNoteRe = regexp.MustCompile(`\(\s*\d+\s*h\s*\)`)

	// leadingTermRe strips term tokens the extractor's line wrapping reinserted
	// at the front of a title span.
	leadingTermRe = regexp.MustCompile(`^(?:\d{4}\.[12]\s*)+`)

	// junkRe matches column-header and footer fragments that echo into title
	// spans, diacritics included.
	junkRe = regexp.MustCompile(`(?i)COMPONENTES? CURRICULAR(?:ES)?|CARGA HOR[AÁ]RIA|ANO/PER[IÍ]ODO|SITUA[CÇ][AÃ]O|DOCENTE|TURMA|NATUREZA`)
)

// junkPhrases is the normalized form of the junkRe vocabulary, used to reject a
// cleaned title that is nothing but boilerplate.
var junkPhrases = []string{
	"COMPONENTE CURRICULAR",
	"COMPONENTES CURRICULARES",
	"CARGA HORARIA",
	"ANO/PERIODO",
	"SITUACAO",
	"DOCENTE",
	"TURMA",
	"NATUREZA",
}

// CleanTitle turns a raw title span into a usable course title. The second
// return is false when the span is boilerplate or too short to be a title; the
// candidate record must then be dropped, not emitted.
func CleanTitle(raw string) (string, bool) {
	t := utils.CollapseSpaces(raw)
	t = leadingTermRe.ReplaceAllString(t, "")

	// Truncate at the first instructor marker or hour annotation, whichever
	// comes first.
	cut := len(t)
	if loc := instructorRe.FindStringIndex(t); loc != nil && loc[0] < cut {
		cut = loc[0]
	}
	if loc := hourNoteRe.FindStringIndex(t); loc != nil && loc[0] < cut {
		cut = loc[0]
	}
	t = t[:cut]

	t = junkRe.ReplaceAllString(t, " ")
	t = strings.Trim(utils.CollapseSpaces(t), "-–: ")

	if utf8.RuneCountInString(t) < 2 {
		return "", false
	}
	if utils.ContainsString(junkPhrases, utils.NormalizeKey(t)) {
		return "", false
	}
	return t, true
}
