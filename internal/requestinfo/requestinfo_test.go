package requestinfo

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

const chromeMac = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 " +
	"(KHTML, like Gecko) Chrome/124.0.6367.91 Safari/537.36"

func TestEnrich(t *testing.T) {
	var got *RequestInfo
	h := Enrich(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = FromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "203.0.113.9:51234"
	req.Header.Set("User-Agent", chromeMac)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	h.ServeHTTP(httptest.NewRecorder(), req)

	if got == nil {
		t.Fatal("RequestInfo missing from context")
	}
	if got.UA.Browser != "Chrome" {
		t.Errorf("browser = %q", got.UA.Browser)
	}
	if got.UA.Device != "Desktop" {
		t.Errorf("device = %q", got.UA.Device)
	}
	if got.UA.PrimaryLang != "en-us" {
		t.Errorf("lang = %q", got.UA.PrimaryLang)
	}
	if got.Geo.IP.String() != "203.0.113.9" || got.Geo.CountryISO != "" {
		t.Errorf("geo = %+v", got.Geo)
	}
}

func TestClientIP_BareAddress(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "198.51.100.7"
	if ip := clientIP(req); ip.String() != "198.51.100.7" {
		t.Fatalf("ip = %v", ip)
	}
}

func TestPrimaryLang(t *testing.T) {
	cases := map[string]string{
		"":               "",
		"fr-CA,fr;q=0.8": "fr-ca",
		"es;q=0.9, en":   "es",
	}
	for in, want := range cases {
		if got := primaryLang(in); got != want {
			t.Errorf("primaryLang(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestOpenGeo_EmptyPathDisabled(t *testing.T) {
	if err := OpenGeo(""); err != nil {
		t.Fatal(err)
	}
	if err := OpenGeo("/nonexistent/GeoLite2-Country.mmdb"); err == nil {
		t.Fatal("expected error for missing database")
	}
	CloseGeo()
}
