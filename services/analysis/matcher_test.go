package analysis

import (
	"reflect"
	"testing"

	"caseflow/models"
)

var registry = []models.BankPattern{
	{BankName: "Alpha", Codes: []string{"ALP-1", "ALP-2", "SHARED"}},
	{BankName: "Beta", Codes: []string{"BET-9", "SHARED"}},
	{BankName: "Gamma", Codes: []string{"GAM"}},
}

func TestMatchPage_LiteralSubstrings(t *testing.T) {
	got := MatchPage("ref ALP-2 and xxBET-9yy", registry)
	want := []models.BankMatch{
		{BankName: "Alpha", MatchedCodes: []string{"ALP-2"}},
		{BankName: "Beta", MatchedCodes: []string{"BET-9"}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("MatchPage = %+v, want %+v", got, want)
	}
}

func TestMatchPage_CaseSensitive(t *testing.T) {
	if got := MatchPage("alp-1 gam", registry); len(got) != 0 {
		t.Fatalf("expected no matches for lower-case text, got %+v", got)
	}
}

func TestMatchPage_OverlappingCodesReportedForEveryBank(t *testing.T) {
	got := MatchPage("SHARED", registry)
	if len(got) != 2 || got[0].BankName != "Alpha" || got[1].BankName != "Beta" {
		t.Fatalf("expected both banks to report SHARED, got %+v", got)
	}
}

func TestMatchPage_EmptyCodeNeverMatches(t *testing.T) {
	got := MatchPage("anything", []models.BankPattern{{BankName: "Empty", Codes: []string{""}}})
	if len(got) != 0 {
		t.Fatalf("empty code should not match, got %+v", got)
	}
}

func TestMatchPages_OneResultPerPage(t *testing.T) {
	pages := []string{"nothing here", "GAM on page two", ""}
	got := MatchPages(pages, registry)
	if len(got) != 3 {
		t.Fatalf("expected 3 page results, got %d", len(got))
	}
	for i, r := range got {
		if r.Page != i+1 {
			t.Fatalf("page %d numbered %d", i, r.Page)
		}
		if r.Matches == nil {
			t.Fatalf("page %d matches should be empty, not nil", r.Page)
		}
	}
	if len(got[0].Matches) != 0 || len(got[1].Matches) != 1 || len(got[2].Matches) != 0 {
		t.Fatalf("unexpected results %+v", got)
	}
}

func TestMatchPages_Idempotent(t *testing.T) {
	pages := []string{"ALP-1 SHARED", "BET-9"}
	first := MatchPages(pages, registry)
	second := MatchPages(pages, registry)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("re-analysis differs: %+v vs %+v", first, second)
	}
}
