package ai

import (
	"context"
	"errors"
	"net/url"
	"reflect"
	"strings"
	"testing"

	"caseflow/models"
)

func TestParseExtraction(t *testing.T) {
	reply := "Here you go:\n```json\n{\"Business Name\": \"Acme LLC\", \"EIN\": \"12-3456789\", \"Merchant's Name\": \"Jane Roe\", \"SSN last 4\": \"1234\", \"Additional Entities\": [\"Acme Holdings\", \"John Roe\"]}\n```\nDone."
	fields, err := ParseExtraction(reply)
	if err != nil {
		t.Fatalf("ParseExtraction: %v", err)
	}
	want := models.ExtractedFields{
		BusinessName:       "Acme LLC",
		EIN:                "12-3456789",
		MerchantName:       "Jane Roe",
		SSNLast4:           "1234",
		AdditionalEntities: models.EntityList{"Acme Holdings", "John Roe"},
	}
	if !reflect.DeepEqual(fields, want) {
		t.Fatalf("fields = %+v, want %+v", fields, want)
	}
}

func TestParseExtraction_EntitiesAsString(t *testing.T) {
	reply := "```json\n{\"Additional Entities\": \"A Corp, B Corp\"}\n```"
	fields, err := ParseExtraction(reply)
	if err != nil {
		t.Fatalf("ParseExtraction: %v", err)
	}
	if !reflect.DeepEqual([]string(fields.AdditionalEntities), []string{"A Corp", "B Corp"}) {
		t.Fatalf("entities = %v", fields.AdditionalEntities)
	}
}

func TestParseExtraction_NumericValues(t *testing.T) {
	reply := "```json\n{\"Business Name\": \"Acme\", \"EIN\": 123456789, \"Merchant's Name\": null, \"SSN last 4\": 1234, \"Additional Entities\": [\"B Corp\", 42, true]}\n```"
	fields, err := ParseExtraction(reply)
	if err != nil {
		t.Fatalf("ParseExtraction: %v", err)
	}
	if fields.EIN != "123456789" || fields.SSNLast4 != "1234" || fields.MerchantName != "" || fields.BusinessName != "Acme" {
		t.Fatalf("unexpected fields %+v", fields)
	}
	if !reflect.DeepEqual([]string(fields.AdditionalEntities), []string{"B Corp", "42", "true"}) {
		t.Fatalf("entities = %v", fields.AdditionalEntities)
	}

	q, _ := url.ParseQuery(strings.SplitN(BuildRedirectURL("/requests/new", fields), "?", 2)[1])
	if q.Get("ein") != "123456789" || q.Get("ssn") != "1234" {
		t.Fatalf("numeric values lost in redirect: %v", q)
	}
}

func TestParseExtraction_ValidJSONNotAnObject(t *testing.T) {
	fields, err := ParseExtraction("```json\n[1, 2]\n```")
	if err != nil {
		t.Fatalf("well-formed JSON must not fail: %v", err)
	}
	if fields.BusinessName != "" || len(fields.AdditionalEntities) != 0 {
		t.Fatalf("expected empty fields, got %+v", fields)
	}
}

func TestParseExtraction_Malformed(t *testing.T) {
	for _, reply := range []string{
		`{"Business Name": "no fence"}`,
		"```\n{\"Business Name\": \"unlabelled\"}\n```",
		"```json\n{not json}\n```",
	} {
		if _, err := ParseExtraction(reply); !errors.Is(err, ErrMalformedAIResponse) {
			t.Fatalf("reply %q: expected ErrMalformedAIResponse, got %v", reply, err)
		}
	}
}

func TestBuildRedirectURL(t *testing.T) {
	got := BuildRedirectURL("/requests/new", models.ExtractedFields{
		BusinessName:       "Acme & Sons",
		EIN:                "12-3",
		AdditionalEntities: models.EntityList{"X", "Y"},
	})
	u, err := url.Parse(got)
	if err != nil {
		t.Fatalf("parse %q: %v", got, err)
	}
	if u.Path != "/requests/new" {
		t.Fatalf("path = %q", u.Path)
	}
	q := u.Query()
	if q.Get("businessName") != "Acme & Sons" || q.Get("ein") != "12-3" || q.Get("additionalEntities") != "X, Y" {
		t.Fatalf("unexpected query %v", q)
	}
	if !strings.Contains(BuildRedirectURL("/new?x=1", models.ExtractedFields{}), "/new?x=1&") {
		t.Fatalf("existing query should be extended")
	}
}

type fakeGenerator struct {
	reply  string
	err    error
	calls  int
	gotKey string
	docs   int
}

func (g *fakeGenerator) Generate(ctx context.Context, apiKey, prompt string, docs ...Document) (string, error) {
	g.calls++
	g.gotKey = apiKey
	g.docs = len(docs)
	return g.reply, g.err
}

type fakeKeys string

func (k fakeKeys) AIKey(ctx context.Context) (string, error) { return string(k), nil }

type fakeFiles map[string][]byte

func (f fakeFiles) ReadAll(ctx context.Context, id string) (*models.StoredFile, []byte, error) {
	data, ok := f[id]
	if !ok {
		return nil, nil, errors.New("file not found")
	}
	return &models.StoredFile{ID: id}, data, nil
}

func TestExtract_Success(t *testing.T) {
	gen := &fakeGenerator{reply: "```json\n{\"Business Name\": \"Acme\"}\n```"}
	svc := &ExtractionService{
		Generator:   gen,
		Keys:        fakeKeys("settings-key"),
		Files:       fakeFiles{"p": []byte("%PDF-a"), "c": []byte("%PDF-b")},
		FallbackKey: "env-key",
		CreatePath:  "/requests/new",
	}
	res, err := svc.Extract(context.Background(), "p", "c")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if gen.gotKey != "settings-key" || gen.docs != 2 {
		t.Fatalf("generator called with key %q and %d docs", gen.gotKey, gen.docs)
	}
	if !strings.HasPrefix(res.RedirectURL, "/requests/new?") || !strings.Contains(res.RedirectURL, "businessName=Acme") {
		t.Fatalf("unexpected redirect %q", res.RedirectURL)
	}
}

func TestExtract_FallbackKey(t *testing.T) {
	gen := &fakeGenerator{reply: "```json\n{}\n```"}
	svc := &ExtractionService{Generator: gen, Keys: fakeKeys(""), Files: fakeFiles{"p": nil, "c": nil}, FallbackKey: "env-key"}
	if _, err := svc.Extract(context.Background(), "p", "c"); err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if gen.gotKey != "env-key" {
		t.Fatalf("expected fallback key, got %q", gen.gotKey)
	}

	svc.FallbackKey = ""
	if _, err := svc.Extract(context.Background(), "p", "c"); !errors.Is(err, ErrAIKeyMissing) {
		t.Fatalf("expected ErrAIKeyMissing, got %v", err)
	}
}

func TestExtract_MalformedResponseHasNoRedirect(t *testing.T) {
	svc := &ExtractionService{
		Generator:   &fakeGenerator{reply: "Sorry, I cannot help with that."},
		Files:       fakeFiles{"p": nil, "c": nil},
		FallbackKey: "k",
	}
	res, err := svc.Extract(context.Background(), "p", "c")
	if !errors.Is(err, ErrMalformedAIResponse) || res != nil {
		t.Fatalf("expected malformed error and no result, got %+v, %v", res, err)
	}
}

func TestExtract_MissingFileSkipsModel(t *testing.T) {
	gen := &fakeGenerator{}
	svc := &ExtractionService{Generator: gen, Files: fakeFiles{"p": nil}, FallbackKey: "k"}
	if _, err := svc.Extract(context.Background(), "p", "missing"); err == nil {
		t.Fatalf("expected error for missing contract")
	}
	if gen.calls != 0 {
		t.Fatalf("model should not be called when a file is missing")
	}
}
