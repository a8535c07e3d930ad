// --- gradpath-server/ingestion/parser.go ---
package ingestion

import (
	"strconv"
	"strings"

	"gradpath-server/models"
)

// Advisory texts surfaced to the user alongside parsed records.
const (
	AdvisoryNoRecords = "0 courses were recognized in this document; the transcript layout may not be supported"

	AdvisoryCrossProgram = "some courses were tagged as other-elective because they do not belong to your program's catalog — please review them"
)

// CatalogSource is the read-only reference data the parser consults to repair
// missing or ambiguous fields. Satisfied by catalog.Store; tests supply
// synthetic catalogs.
type CatalogSource interface {
	Lookup(program, code string) (models.CatalogEntry, bool)
	LookupGlobal(code string) (models.CatalogEntry, bool)
	CodeForTitle(title string) (string, bool)
}

// Parse scans the extracted transcript text for course records under the given
// active program. Records come back in text-scan order; callers needing
// chronological order must sort by term themselves.
//
// The scan is anchored on term tokens: each segment between consecutive term
// tokens is one candidate record, parsed field by field (title span, status,
// code, hours, grade, optional category). A segment missing any required field
// is dropped silently; per-record anomalies degrade, they never abort the parse.
func Parse(text, program string, source CatalogSource) models.ParseResult {
	result := models.ParseResult{}
	crossProgram := false

	anchors := termRe.FindAllStringIndex(text, -1)
	for i, anchor := range anchors {
		end := len(text)
		if i+1 < len(anchors) {
			end = anchors[i+1][0]
		}
		term := text[anchor[0]:anchor[1]]
		segment := text[anchor[1]:end]

		record, retagged, ok := parseSegment(term, segment, program, source)
		if !ok {
			continue
		}
		if retagged {
			crossProgram = true
		}
		result.Records = append(result.Records, record)
	}

	if crossProgram {
		result.Advisories = append(result.Advisories, AdvisoryCrossProgram)
	}
	if len(result.Records) == 0 && strings.TrimSpace(text) != "" {
		result.Advisories = append(result.Advisories, AdvisoryNoRecords)
	}
	return result
}

// parseSegment reads one candidate record from the text between two term
// anchors. The second return reports whether the cross-program re-tag fired.
func parseSegment(term, segment, program string, source CatalogSource) (models.CourseRecord, bool, bool) {
	var rec models.CourseRecord

	fs := &fieldScanner{text: segment}
	statusTok, ok := fs.next(statusRe)
	if !ok {
		return rec, false, false
	}
	title, ok := CleanTitle(segment[:fs.pos-len(statusTok)])
	if !ok {
		return rec, false, false
	}
	code, ok := fs.next(codeRe)
	if !ok {
		return rec, false, false
	}
	hoursTok, ok := fs.next(hoursRe)
	if !ok {
		return rec, false, false
	}
	hours, err := strconv.Atoi(hoursTok)
	if err != nil || hours < 0 {
		return rec, false, false
	}
	gradeTok, ok := fs.next(gradeRe)
	if !ok {
		return rec, false, false
	}
	categoryTok, _ := fs.next(categoryRe) // optional

	mapping := mapStatus(statusTok)
	category, retagged := inferCategory(code, title, categoryTok, program, source)

	rec = models.CourseRecord{
		Term:       term,
		Code:       code,
		Title:      title,
		Category:   category,
		Hours:      hours,
		Grade:      parseGrade(gradeTok, mapping, category),
		Status:     mapping.status,
		Withdrawn:  mapping.withdrawn,
		Waived:     mapping.waived,
		InProgress: mapping.inProgress,
	}
	return rec, retagged, true
}

// inferCategory resolves a record's requirement category, in priority order:
// active program's catalog by code, then by a code recovered from the title in
// the global catalog, then the cross-program re-tag heuristic, then the raw
// category token. The second return reports the re-tag.
func inferCategory(code, title, rawToken, program string, source CatalogSource) (models.Category, bool) {
	if entry, ok := source.Lookup(program, code); ok {
		return entry.Category, false
	}
	resolved := code
	if recovered, ok := source.CodeForTitle(title); ok {
		resolved = recovered
		if entry, ok := source.Lookup(program, recovered); ok {
			return entry.Category, false
		}
	}
	// A code the global catalog files as mandatory, absent from the active
	// program's own catalog, is very likely another program's course.
	if entry, ok := source.LookupGlobal(resolved); ok && entry.Category == models.CategoryMandatory {
		return models.CategoryOther, true
	}
	return mapCategoryToken(rawToken), false
}

// parseGrade reads the grade token. A dash placeholder means a recorded zero
// when the status expects a numeric result; statuses with genuinely absent
// grades (in progress, withdrawn, waived) and complementary activities leave
// the grade unset.
func parseGrade(token string, mapping statusMapping, category models.Category) *float64 {
	if mapping.inProgress || mapping.withdrawn || mapping.waived || category == models.CategoryComplementary {
		return nil
	}
	if strings.HasPrefix(token, "-") {
		if mapping.gradeExpected {
			zero := 0.0
			return &zero
		}
		return nil
	}
	value, err := strconv.ParseFloat(strings.ReplaceAll(token, ",", "."), 64)
	if err != nil || value < 0 || value > 10 {
		return nil
	}
	return &value
}
