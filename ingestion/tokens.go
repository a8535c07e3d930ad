// --- gradpath-server/ingestion/tokens.go ---
package ingestion

import (
	"regexp"

	"gradpath-server/models"
	"gradpath-server/utils"
)

// Field patterns are kept small and separate so each stage of the record scan can
// be tested on its own. The extractor's output interleaves columns and wraps lines
// unpredictably, so none of these assume line structure.
var (
	// termRe anchors a record: "2019.1", "2021.2".
	termRe = regexp.MustCompile(`\d{4}\.[12]`)

	// statusRe matches the transcript's result vocabulary. Longest alternatives
	// first so "REPROVADO POR FALTA" is not cut down to "REPROVADO".
	statusRe = regexp.MustCompile(`REPROVADO POR M[EÉ]DIA E POR FALTAS?|REPROVADO POR FALTAS?|REPROVADO|APROVADO|TRANCADO|DISPENSADO|MATRICULADO|CANCELADO|INCORPORADO`)

	// codeRe: letter-prefixed codes ("BCC101") or the registrar's plain numeric
	// codes, which run five digits or more so they never collide with hour counts.
	codeRe = regexp.MustCompile(`[A-Z]{2,8}\d{2,6}|\d{5,7}`)

	// hoursRe: nominal workload, up to three digits.
	hoursRe = regexp.MustCompile(`\d{1,3}`)

	// gradeRe: decimal grade with comma or dot, a dash placeholder meaning
	// "no grade recorded", or a bare integer grade.
	gradeRe = regexp.MustCompile(`\d{1,2}[.,]\d{1,2}|-{1,6}|\d{1,2}`)

	// categoryRe matches the optional trailing "natureza" column token.
	categoryRe = regexp.MustCompile(`OPTATIV[OA] B[AÁ]SIC[OA]|OPTATIVA LIVRE|OPTATIVA|OBRIGAT[OÓ]RIA|ELETIVA LIVRE|ELETIVA|ATIVIDADE COMPLEMENTAR|COMPLEMENTAR|HUMAN[IÍ]STICA|EXTENS[AÃ]O|ART[IÍ]STICA`)
)

// statusMapping is one row of the fixed status-token table. gradeExpected marks
// statuses whose row carries a numeric result, so a dash placeholder there reads
// as a recorded zero rather than an absent grade.
type statusMapping struct {
	status        models.Status
	withdrawn     bool
	waived        bool
	inProgress    bool
	gradeExpected bool
	known         bool
}

// statusTable maps normalized raw tokens to their record semantics. TRANCADO and
// CANCELADO both mean the attempt never counted; DISPENSADO and INCORPORADO both
// mean credit granted without a grade.
var statusTable = map[string]statusMapping{
	"APROVADO":                         {status: models.StatusApproved, gradeExpected: true, known: true},
	"REPROVADO":                        {status: models.StatusFailed, gradeExpected: true, known: true},
	"REPROVADO POR FALTA":              {status: models.StatusFailed, gradeExpected: true, known: true},
	"REPROVADO POR FALTAS":             {status: models.StatusFailed, gradeExpected: true, known: true},
	"REPROVADO POR MEDIA E POR FALTA":  {status: models.StatusFailed, gradeExpected: true, known: true},
	"REPROVADO POR MEDIA E POR FALTAS": {status: models.StatusFailed, gradeExpected: true, known: true},
	"TRANCADO":                         {status: models.StatusWithdrawn, withdrawn: true, known: true},
	"CANCELADO":                        {status: models.StatusWithdrawn, withdrawn: true, known: true},
	"DISPENSADO":                       {status: models.StatusApproved, waived: true, known: true},
	"INCORPORADO":                      {status: models.StatusApproved, waived: true, known: true},
	"MATRICULADO":                      {status: models.StatusInProgress, inProgress: true, known: true},
}

// mapStatus resolves a raw status token. Tokens outside the table come back as
// the zero mapping (no status, no flags) so one bad row never aborts the parse.
func mapStatus(token string) statusMapping {
	return statusTable[utils.NormalizeKey(token)]
}

// categorySynonyms maps normalized raw "natureza" tokens to categories. The
// registrar files basic electives under the mandatory load, hence that mapping.
var categorySynonyms = map[string]models.Category{
	"OBRIGATORIA":            models.CategoryMandatory,
	"OPTATIVO BASICO":        models.CategoryMandatory,
	"OPTATIVA BASICA":        models.CategoryMandatory,
	"OPTATIVA":               models.CategoryMajorElective,
	"OPTATIVA LIVRE":         models.CategoryFree,
	"ELETIVA LIVRE":          models.CategoryFree,
	"ELETIVA":                models.CategoryOther,
	"HUMANISTICA":            models.CategoryHumanities,
	"EXTENSAO":               models.CategoryExtension,
	"ARTISTICA":              models.CategoryArts,
	"COMPLEMENTAR":           models.CategoryComplementary,
	"ATIVIDADE COMPLEMENTAR": models.CategoryComplementary,
}

// mapCategoryToken resolves a raw category token; unrecognized or absent tokens
// default to mandatory.
func mapCategoryToken(token string) models.Category {
	if cat, ok := categorySynonyms[utils.NormalizeKey(token)]; ok {
		return cat
	}
	return models.CategoryMandatory
}

// fieldScanner walks one record segment left to right, consuming one field token
// at a time. Each next call advances past the match, so field order is enforced
// structurally.
type fieldScanner struct {
	text string
	pos  int
}

func (fs *fieldScanner) next(re *regexp.Regexp) (string, bool) {
	loc := re.FindStringIndex(fs.text[fs.pos:])
	if loc == nil {
		return "", false
	}
	token := fs.text[fs.pos+loc[0] : fs.pos+loc[1]]
	fs.pos += loc[1]
	return token, true
}
