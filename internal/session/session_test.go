package session

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
)

func TestNewToken_UniqueAndURLSafe(t *testing.T) {
	a, err := NewToken()
	if err != nil {
		t.Fatal(err)
	}
	b, _ := NewToken()
	if a == b {
		t.Fatal("tokens collide")
	}
	if len(a) != 43 || strings.ContainsAny(a, "+/=") {
		t.Fatalf("token %q is not 32 bytes of raw base64url", a)
	}
	if len(hashToken(a)) != 64 {
		t.Fatalf("hash length = %d", len(hashToken(a)))
	}
}

func TestMemoryStore_Lifecycle(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	tok, exp, err := s.Create(ctx, "u-1", time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	if !exp.After(time.Now()) {
		t.Fatalf("expiry %v not in future", exp)
	}
	uid, err := s.Lookup(ctx, tok)
	if err != nil || uid != "u-1" {
		t.Fatalf("Lookup = %q, %v", uid, err)
	}
	if _, err := s.Lookup(ctx, "bogus"); !errors.Is(err, ErrNoSession) {
		t.Fatalf("bogus err = %v", err)
	}
	if err := s.Destroy(ctx, tok); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Lookup(ctx, tok); !errors.Is(err, ErrNoSession) {
		t.Fatalf("after destroy err = %v", err)
	}
}

func TestMemoryStore_Expiry(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return base }

	tok, _, _ := s.Create(ctx, "u-1", time.Minute)
	s.Create(ctx, "u-2", time.Hour)

	s.now = func() time.Time { return base.Add(2 * time.Minute) }
	if _, err := s.Lookup(ctx, tok); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expired lookup err = %v", err)
	}

	s.Create(ctx, "u-3", -time.Second)
	n, _ := s.PurgeExpired(ctx)
	if n != 1 {
		t.Fatalf("purged %d, want 1", n)
	}
}

func TestSQLStore_CreateStoresHashOnly(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	s := NewSQLStore(sqlx.NewDb(db, "mysql"))

	hashArg := sqlmock.AnyArg()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO sessions (token_hash, user_id, expires_at) VALUES (?, ?, ?)`)).
		WithArgs(hashArg, "u-1", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	tok, _, err := s.Create(context.Background(), "u-1", time.Hour)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT user_id FROM sessions WHERE token_hash = ? AND expires_at > ?`)).
		WithArgs(hashToken(tok), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow("u-1"))

	uid, err := s.Lookup(context.Background(), tok)
	if err != nil || uid != "u-1" {
		t.Fatalf("Lookup = %q, %v", uid, err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func TestSQLStore_LookupMissing(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()
	s := NewSQLStore(sqlx.NewDb(db, "mysql"))

	mock.ExpectQuery(`FROM sessions`).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}))

	if _, err := s.Lookup(context.Background(), "nope"); !errors.Is(err, ErrNoSession) {
		t.Fatalf("err = %v, want ErrNoSession", err)
	}
}

func TestSQLStore_DestroyAndPurge(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()
	s := NewSQLStore(sqlx.NewDb(db, "mysql"))

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM sessions WHERE token_hash = ?`)).
		WithArgs(hashToken("tok")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM sessions WHERE expires_at <= ?`)).
		WillReturnResult(sqlmock.NewResult(0, 4))

	if err := s.Destroy(context.Background(), "tok"); err != nil {
		t.Fatal(err)
	}
	n, err := s.PurgeExpired(context.Background())
	if err != nil || n != 4 {
		t.Fatalf("PurgeExpired = %d, %v", n, err)
	}
}

func TestRedisStore_ConnectionErrorIsNotNoSession(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer rdb.Close()
	s := NewRedisStore(rdb, "")

	if s.key("t") != "session:"+hashToken("t") {
		t.Fatalf("key = %q", s.key("t"))
	}
	_, err := s.Lookup(context.Background(), "t")
	if err == nil || errors.Is(err, ErrNoSession) {
		t.Fatalf("err = %v, want a transport error", err)
	}
}

func TestCookie_SetTokenClear(t *testing.T) {
	c := Cookie{Name: "sid"}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/login", nil)
	c.Set(rec, req, "abc", time.Now().Add(time.Hour))

	set := rec.Result().Cookies()
	if len(set) != 1 || set[0].Name != "sid" || !set[0].HttpOnly || set[0].SameSite != http.SameSiteLaxMode {
		t.Fatalf("unexpected cookie %+v", set)
	}
	if set[0].MaxAge < 3590 || set[0].MaxAge > 3600 {
		t.Fatalf("MaxAge = %d, want about one hour from expires", set[0].MaxAge)
	}

	req2 := httptest.NewRequest(http.MethodGet, "/api/user", nil)
	req2.AddCookie(set[0])
	if tok, ok := c.Token(req2); !ok || tok != "abc" {
		t.Fatalf("Token = %q, %v", tok, ok)
	}

	rec = httptest.NewRecorder()
	c.Clear(rec, req)
	if got := rec.Result().Cookies(); len(got) != 1 || got[0].MaxAge >= 0 {
		t.Fatalf("cookie not cleared: %+v", got)
	}

	if _, ok := (Cookie{}).Token(httptest.NewRequest(http.MethodGet, "/", nil)); ok {
		t.Fatal("token reported without cookie")
	}
}
