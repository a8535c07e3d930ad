package ingestion

import (
	"reflect"
	"strings"
	"testing"

	"gradpath-server/models"
	"gradpath-server/utils"
)

// fakeCatalog is a synthetic CatalogSource.
type fakeCatalog struct {
	programs map[string]map[string]models.CatalogEntry
}

func (f *fakeCatalog) Lookup(program, code string) (models.CatalogEntry, bool) {
	entry, ok := f.programs[program][code]
	return entry, ok
}

func (f *fakeCatalog) LookupGlobal(code string) (models.CatalogEntry, bool) {
	for _, entries := range f.programs {
		if entry, ok := entries[code]; ok {
			return entry, true
		}
	}
	return models.CatalogEntry{}, false
}

func (f *fakeCatalog) CodeForTitle(title string) (string, bool) {
	key := utils.NormalizeKey(title)
	for _, entries := range f.programs {
		for code, entry := range entries {
			if utils.NormalizeKey(entry.Title) == key {
				return code, true
			}
		}
	}
	return "", false
}

func testCatalog() *fakeCatalog {
	return &fakeCatalog{programs: map[string]map[string]models.CatalogEntry{
		"bcc": {
			"06101": {Code: "06101", Title: "Introdução à Programação", Category: models.CategoryMandatory, Hours: 60},
			"06201": {Code: "06201", Title: "Estruturas de Dados", Category: models.CategoryMandatory, Hours: 60},
			"06202": {Code: "06202", Title: "Banco de Dados", Category: models.CategoryMandatory, Hours: 60},
			"06301": {Code: "06301", Title: "Inteligência Artificial", Category: models.CategoryMajorElective, Hours: 60},
		},
		"bec": {
			"07101": {Code: "07101", Title: "Circuitos Digitais", Category: models.CategoryMandatory, Hours: 60},
			"07102": {Code: "07102", Title: "Física I", Category: models.CategoryMandatory, Hours: 60},
		},
	}}
}

const sampleTranscript = `
Componente Curricular Situação Carga Horária
2019.1 Introdução à Programação Dr. João Silva APROVADO 06101 60 8,5 OBRIGATÓRIA
2019.2 Estruturas de Dados REPROVADO POR FALTA 06201 60 0,0 OBRIGATÓRIA
2020.1 Banco de Dados TRANCADO 06202 60 ----
2020.1 Libras DISPENSADO LET101 60 ----
2020.2 Inteligência Artificial MATRICULADO 06301 60 ---- OPTATIVA
`

func TestParseSampleTranscript(t *testing.T) {
	result := Parse(sampleTranscript, "bcc", testCatalog())

	if len(result.Records) != 5 {
		t.Fatalf("parsed %d records, want 5: %+v", len(result.Records), result.Records)
	}

	r0 := result.Records[0]
	if r0.Term != "2019.1" || r0.Code != "06101" || r0.Title != "Introdução à Programação" {
		t.Errorf("record 0 fields wrong: %+v", r0)
	}
	if r0.Status != models.StatusApproved || r0.Category != models.CategoryMandatory || r0.Hours != 60 {
		t.Errorf("record 0 semantics wrong: %+v", r0)
	}
	if r0.Grade == nil || *r0.Grade != 8.5 {
		t.Errorf("record 0 grade = %v, want 8.5", r0.Grade)
	}

	// Failed by absence: status failed, all flags false, grade as parsed.
	r1 := result.Records[1]
	if r1.Status != models.StatusFailed || r1.Withdrawn || r1.Waived || r1.InProgress {
		t.Errorf("failed-by-absence record wrong: %+v", r1)
	}
	if r1.Grade == nil || *r1.Grade != 0 {
		t.Errorf("failed-by-absence grade = %v, want 0", r1.Grade)
	}

	r2 := result.Records[2]
	if r2.Status != models.StatusWithdrawn || !r2.Withdrawn || r2.Grade != nil {
		t.Errorf("withdrawn record wrong: %+v", r2)
	}

	r3 := result.Records[3]
	if r3.Status != models.StatusApproved || !r3.Waived || r3.Grade != nil {
		t.Errorf("waived record wrong: %+v", r3)
	}

	r4 := result.Records[4]
	if r4.Status != models.StatusInProgress || !r4.InProgress || r4.Grade != nil {
		t.Errorf("in-progress record wrong: %+v", r4)
	}
	if r4.Category != models.CategoryMajorElective {
		t.Errorf("in-progress category = %q, want major elective from catalog", r4.Category)
	}

	if len(result.Advisories) != 0 {
		t.Errorf("unexpected advisories: %v", result.Advisories)
	}
}

func TestParseIdempotent(t *testing.T) {
	cat := testCatalog()
	first := Parse(sampleTranscript, "bcc", cat)
	second := Parse(sampleTranscript, "bcc", cat)
	if !reflect.DeepEqual(first, second) {
		t.Error("parsing the same text twice produced different results")
	}
}

func TestParseCrossProgramRetag(t *testing.T) {
	// Two bec mandatory courses taken by a bcc student: both must be re-tagged
	// other-elective with exactly one advisory.
	text := `
2020.1 Circuitos Digitais APROVADO 07101 60 9,0 OBRIGATÓRIA
2020.2 Física I APROVADO 07102 60 7,5 OBRIGATÓRIA
`
	result := Parse(text, "bcc", testCatalog())
	if len(result.Records) != 2 {
		t.Fatalf("parsed %d records, want 2", len(result.Records))
	}
	for _, rec := range result.Records {
		if rec.Category != models.CategoryOther {
			t.Errorf("record %s category = %q, want other_elective", rec.Code, rec.Category)
		}
	}
	count := 0
	for _, adv := range result.Advisories {
		if adv == AdvisoryCrossProgram {
			count++
		}
	}
	if count != 1 {
		t.Errorf("cross-program advisory surfaced %d times, want exactly 1", count)
	}
}

func TestParseZeroMatchesWarns(t *testing.T) {
	result := Parse("this document has no course rows at all", "bcc", testCatalog())
	if len(result.Records) != 0 {
		t.Fatalf("expected no records, got %d", len(result.Records))
	}
	if !utils.ContainsString(result.Advisories, AdvisoryNoRecords) {
		t.Errorf("missing zero-match advisory, got %v", result.Advisories)
	}
}

func TestParseEmptyInput(t *testing.T) {
	result := Parse("   \n  ", "bcc", testCatalog())
	if len(result.Records) != 0 || len(result.Advisories) != 0 {
		t.Errorf("blank input should yield nothing, got %+v", result)
	}
}

func TestParseDropsUnusableSegments(t *testing.T) {
	// A term anchor with no status token, and one whose title is boilerplate
	// only, must both be dropped without aborting the rest.
	text := `
2019.1 fragmento solto sem situação nenhuma registrada aqui
2019.2 Situação APROVADO 06101 60 8,0
2020.1 Estruturas de Dados APROVADO 06201 60 6,0
`
	result := Parse(text, "bcc", testCatalog())
	if len(result.Records) != 1 {
		t.Fatalf("parsed %d records, want 1: %+v", len(result.Records), result.Records)
	}
	if result.Records[0].Code != "06201" {
		t.Errorf("surviving record = %+v, want 06201", result.Records[0])
	}
}

func TestParseRawCategoryFallback(t *testing.T) {
	tests := []struct {
		name  string
		row   string
		want  models.Category
	}{
		{"basic elective maps to mandatory", "2021.1 Tópicos Básicos APROVADO XYZ901 60 7,0 OPTATIVO BÁSICO", models.CategoryMandatory},
		{"free elective token", "2021.1 Tópicos Livres APROVADO XYZ902 60 7,0 OPTATIVA LIVRE", models.CategoryFree},
		{"unknown token defaults to mandatory", "2021.1 Tópicos Raros APROVADO XYZ903 60 7,0", models.CategoryMandatory},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Parse(tt.row, "bcc", testCatalog())
			if len(result.Records) != 1 {
				t.Fatalf("parsed %d records, want 1", len(result.Records))
			}
			if got := result.Records[0].Category; got != tt.want {
				t.Errorf("category = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMapStatusUnknownToken(t *testing.T) {
	m := mapStatus("SITUAÇÃO INÉDITA")
	if m.known || m.status != models.StatusUnknown || m.withdrawn || m.waived || m.inProgress {
		t.Errorf("unknown token mapping = %+v, want zero mapping", m)
	}
}

func TestStatusFlagsMutuallyExclusive(t *testing.T) {
	result := Parse(sampleTranscript, "bcc", testCatalog())
	for _, rec := range result.Records {
		flags := 0
		for _, f := range []bool{rec.Withdrawn, rec.Waived, rec.InProgress} {
			if f {
				flags++
			}
		}
		if flags > 1 {
			t.Errorf("record %s has %d flags set: %+v", rec.Code, flags, rec)
		}
		if want := models.DeriveStatus(rec.Grade, rec.Withdrawn, rec.Waived, rec.InProgress, rec.Category); rec.Status != want {
			t.Errorf("record %s status %q disagrees with derivation %q", rec.Code, rec.Status, want)
		}
	}
}

func TestParseOutputOrderIsScanOrder(t *testing.T) {
	// Records come out in text order even when terms are not chronological.
	text := `
2021.2 Estruturas de Dados APROVADO 06201 60 6,0
2019.1 Introdução à Programação APROVADO 06101 60 8,0
`
	result := Parse(text, "bcc", testCatalog())
	if len(result.Records) != 2 {
		t.Fatalf("parsed %d records, want 2", len(result.Records))
	}
	if result.Records[0].Term != "2021.2" || result.Records[1].Term != "2019.1" {
		terms := []string{result.Records[0].Term, result.Records[1].Term}
		t.Errorf("scan order broken: %s", strings.Join(terms, ", "))
	}
}
