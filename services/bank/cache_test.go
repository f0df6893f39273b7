package bank

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"caseflow/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	m := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: m.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return m, client
}

func codesOf(t *testing.T, svc *DefaultBankService, bankName string) []string {
	t.Helper()
	patterns, err := svc.Patterns(context.Background())
	if err != nil {
		t.Fatalf("Patterns: %v", err)
	}
	for _, p := range patterns {
		if p.BankName == bankName {
			return p.Codes
		}
	}
	return nil
}

func TestPatternsServedFromCache(t *testing.T) {
	m, client := newTestRedis(t)
	repo := newMemBankRepo()
	svc := &DefaultBankService{Repo: repo, Cache: client}
	ctx := context.Background()

	created, err := svc.CreateBank(ctx, models.BankInput{BankName: "Alpha", CodesText: "A1"})
	if err != nil {
		t.Fatalf("CreateBank: %v", err)
	}
	if got := codesOf(t, svc, "Alpha"); !reflect.DeepEqual(got, []string{"A1"}) {
		t.Fatalf("codes = %v", got)
	}
	if !m.Exists(patternCacheKey) {
		t.Fatalf("snapshot was not cached")
	}

	// A change made behind the service is not seen until the snapshot expires.
	changed := *created
	changed.Codes = []string{"A2"}
	_ = repo.Replace(ctx, &changed)
	if got := codesOf(t, svc, "Alpha"); !reflect.DeepEqual(got, []string{"A1"}) {
		t.Fatalf("expected cached codes, got %v", got)
	}

	m.FastForward(patternCacheTTL)
	if got := codesOf(t, svc, "Alpha"); !reflect.DeepEqual(got, []string{"A2"}) {
		t.Fatalf("expected fresh codes after expiry, got %v", got)
	}
}

func TestPatternsInvalidatedOnEveryWrite(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"bankName": "Alpha", "codes": "SHEET"}]`))
	}))
	defer srv.Close()

	m, client := newTestRedis(t)
	svc := &DefaultBankService{Repo: newMemBankRepo(), Cache: client, SheetURL: srv.URL, HTTPClient: srv.Client()}
	ctx := context.Background()

	created, err := svc.CreateBank(ctx, models.BankInput{BankName: "Alpha", CodesText: "A1"})
	if err != nil {
		t.Fatalf("CreateBank: %v", err)
	}
	_ = codesOf(t, svc, "Alpha")

	if _, err := svc.UpdateBank(ctx, created.ID, models.BankInput{BankName: "Alpha", CodesText: "A2"}); err != nil {
		t.Fatalf("UpdateBank: %v", err)
	}
	if m.Exists(patternCacheKey) {
		t.Fatalf("update did not drop the snapshot")
	}
	if got := codesOf(t, svc, "Alpha"); !reflect.DeepEqual(got, []string{"A2"}) {
		t.Fatalf("codes after update = %v", got)
	}

	if _, err := svc.ImportFromSheet(ctx); err != nil {
		t.Fatalf("ImportFromSheet: %v", err)
	}
	if got := codesOf(t, svc, "Alpha"); !reflect.DeepEqual(got, []string{"SHEET"}) {
		t.Fatalf("codes after import = %v", got)
	}

	if _, err := svc.CreateBank(ctx, models.BankInput{BankName: "Beta", CodesText: "B1"}); err != nil {
		t.Fatalf("CreateBank: %v", err)
	}
	if got := codesOf(t, svc, "Beta"); !reflect.DeepEqual(got, []string{"B1"}) {
		t.Fatalf("codes after create = %v", got)
	}

	if err := svc.DeleteBank(ctx, created.ID); err != nil {
		t.Fatalf("DeleteBank: %v", err)
	}
	if got := codesOf(t, svc, "Alpha"); got != nil {
		t.Fatalf("deleted bank still served: %v", got)
	}
}

// failingUpsertRepo fails the upsert of one bank name.
type failingUpsertRepo struct {
	*memBankRepo
	failName string
}

func (r *failingUpsertRepo) UpsertByName(ctx context.Context, bank *models.BankAgencyCode) error {
	if bank.BankName == r.failName {
		return errors.New("write failed")
	}
	return r.memBankRepo.UpsertByName(ctx, bank)
}

func TestPartialImportInvalidatesSnapshot(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"bankName": "Alpha", "codes": "NEW"}, {"bankName": "Beta", "codes": "B1"}]`))
	}))
	defer srv.Close()

	_, client := newTestRedis(t)
	repo := &failingUpsertRepo{memBankRepo: newMemBankRepo(), failName: "Beta"}
	svc := &DefaultBankService{Repo: repo, Cache: client, SheetURL: srv.URL, HTTPClient: srv.Client()}
	ctx := context.Background()

	if _, err := svc.CreateBank(ctx, models.BankInput{BankName: "Alpha", CodesText: "OLD"}); err != nil {
		t.Fatalf("CreateBank: %v", err)
	}
	if got := codesOf(t, svc, "Alpha"); !reflect.DeepEqual(got, []string{"OLD"}) {
		t.Fatalf("codes = %v", got)
	}

	summary, err := svc.ImportFromSheet(ctx)
	if err == nil {
		t.Fatalf("expected import error")
	}
	if summary.Imported != 1 {
		t.Fatalf("expected one imported row, got %+v", summary)
	}
	if got := codesOf(t, svc, "Alpha"); !reflect.DeepEqual(got, []string{"NEW"}) {
		t.Fatalf("rows written before the failure must be visible, got %v", got)
	}
}

// racingRepo runs a registry write while the snapshot is being read.
type racingRepo struct {
	*memBankRepo
	onGetAll func()
}

func (r *racingRepo) GetAll(ctx context.Context) ([]models.BankAgencyCode, error) {
	out, err := r.memBankRepo.GetAll(ctx)
	if r.onGetAll != nil {
		hook := r.onGetAll
		r.onGetAll = nil
		hook()
	}
	return out, err
}

func TestSnapshotRacedByWriteIsNotCached(t *testing.T) {
	m, client := newTestRedis(t)
	repo := &racingRepo{memBankRepo: newMemBankRepo()}
	svc := &DefaultBankService{Repo: repo, Cache: client}
	ctx := context.Background()

	created, err := svc.CreateBank(ctx, models.BankInput{BankName: "Alpha", CodesText: "OLD"})
	if err != nil {
		t.Fatalf("CreateBank: %v", err)
	}
	repo.onGetAll = func() {
		if _, err := svc.UpdateBank(ctx, created.ID, models.BankInput{BankName: "Alpha", CodesText: "NEW"}); err != nil {
			t.Errorf("UpdateBank: %v", err)
		}
	}

	// The racing read still answers with what it saw.
	if got := codesOf(t, svc, "Alpha"); !reflect.DeepEqual(got, []string{"OLD"}) {
		t.Fatalf("codes = %v", got)
	}
	if m.Exists(patternCacheKey) {
		t.Fatalf("stale snapshot was written back")
	}
	if got := codesOf(t, svc, "Alpha"); !reflect.DeepEqual(got, []string{"NEW"}) {
		t.Fatalf("next analysis must see the write, got %v", got)
	}
}

func TestPatternsFallBackWhenRedisIsDown(t *testing.T) {
	// Nothing listens on the discard port.
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:9", DialTimeout: 100 * time.Millisecond, MaxRetries: -1})
	defer client.Close()
	svc := &DefaultBankService{Repo: newMemBankRepo(), Cache: client}
	if _, err := svc.CreateBank(context.Background(), models.BankInput{BankName: "Alpha", CodesText: "A1"}); err != nil {
		t.Fatalf("CreateBank: %v", err)
	}
	if got := codesOf(t, svc, "Alpha"); !reflect.DeepEqual(got, []string{"A1"}) {
		t.Fatalf("codes = %v", got)
	}
}
