package head

import (
	"strings"
	"testing"
)

func TestBuilder(t *testing.T) {
	b := New()
	b.SetTitle("PCG <Transit>")
	b.Description(`Civil "rights" & outreach`)
	b.Meta(`<meta charset="utf-8">`)
	b.Meta(`<meta charset="utf-8">`)
	b.Link(`<link rel="icon" href="/favicon.ico">`)

	if got := string(b.Title()); got != "<title>PCG &lt;Transit&gt;</title>" {
		t.Errorf("title = %q", got)
	}
	metas := string(b.Metas())
	if strings.Count(metas, "charset") != 1 {
		t.Errorf("meta not deduplicated: %s", metas)
	}
	if !strings.Contains(metas, `content="Civil &#34;rights&#34; &amp; outreach"`) {
		t.Errorf("description not escaped: %s", metas)
	}
	if string(b.Links()) != `<link rel="icon" href="/favicon.ico">` {
		t.Errorf("links = %s", b.Links())
	}
}

func TestJSONLDEscapesScriptClose(t *testing.T) {
	b := New()
	if err := b.JSONLD(map[string]string{"name": "</script><b>"}); err != nil {
		t.Fatal(err)
	}
	out := string(b.JSON())
	if strings.Count(out, "</script>") != 1 {
		t.Fatalf("payload escaped the script element: %s", out)
	}
	if New().JSON() != "" {
		t.Fatal("empty builder rendered JSON-LD")
	}
}
