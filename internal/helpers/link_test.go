package helpers

import (
	"net/url"
	"strings"
	"testing"

	"xui-sub-bot/internal/models"
)

func TestVlessLink_TLSWebsocket(t *testing.T) {
	client := &models.Client{ID: "11111111-2222-4333-8444-555555555555"}
	inbound := &models.Inbound{
		ID:     1,
		Port:   443,
		Remark: "Frankfurt 1",
		StreamSettings: `{"network":"ws","security":"tls",` +
			`"tlsSettings":{"serverName":"vpn.example.com","alpn":["h2","http/1.1"]},` +
			`"wsSettings":{"path":"/ray"}}`,
	}

	link := VlessLink(client, inbound, "vpn.example.com")

	wantPrefix := "vless://11111111-2222-4333-8444-555555555555@vpn.example.com:443?"
	if !strings.HasPrefix(link, wantPrefix) {
		t.Fatalf("link %q lacks prefix %q", link, wantPrefix)
	}
	if !strings.HasSuffix(link, "#Frankfurt%201") {
		t.Errorf("link %q should end with the percent-encoded remark", link)
	}

	parsed, err := url.Parse(link)
	if err != nil {
		t.Fatalf("link does not parse: %v", err)
	}

	query := parsed.Query()
	for key, want := range map[string]string{
		"type":       "ws",
		"encryption": "none",
		"security":   "tls",
		"sni":        "vpn.example.com",
		"fp":         "chrome",
		"alpn":       "h2,http/1.1",
		"path":       "/ray",
	} {
		if got := query.Get(key); got != want {
			t.Errorf("query[%s] = %q, want %q", key, got, want)
		}
	}
}

func TestVlessLink_NoSecurity(t *testing.T) {
	client := &models.Client{ID: "aaaa"}
	inbound := &models.Inbound{
		Port:           8080,
		Tag:            "inbound-8080",
		StreamSettings: `{"network":"tcp","security":"none"}`,
	}

	link := VlessLink(client, inbound, "1.2.3.4")

	parsed, err := url.Parse(link)
	if err != nil {
		t.Fatalf("link does not parse: %v", err)
	}

	query := parsed.Query()
	if got := query.Get("security"); got != "none" {
		t.Errorf("query[security] = %q, want none", got)
	}
	if got := query.Get("type"); got != "tcp" {
		t.Errorf("query[type] = %q, want tcp", got)
	}
	for _, key := range []string{"sni", "fp", "alpn"} {
		if query.Has(key) {
			t.Errorf("query must not carry %s when security is none", key)
		}
	}
	if !strings.HasSuffix(link, "#inbound-8080") {
		t.Errorf("link %q should fall back to the tag for its name", link)
	}
}

func TestVlessLink_ConfiguredFingerprint(t *testing.T) {
	client := &models.Client{ID: "bbbb"}
	inbound := &models.Inbound{
		Port:           443,
		Remark:         "r",
		StreamSettings: `{"network":"tcp","security":"tls","tlsSettings":{"serverName":"s.example","fingerprint":"firefox"}}`,
	}

	link := VlessLink(client, inbound, "s.example")
	query, _ := url.ParseQuery(strings.SplitN(strings.SplitN(link, "?", 2)[1], "#", 2)[0])
	if got := query.Get("fp"); got != "firefox" {
		t.Errorf("query[fp] = %q, want firefox", got)
	}
}

func TestVlessLink_DefaultLabelAndMalformedStream(t *testing.T) {
	client := &models.Client{ID: "cccc"}
	inbound := &models.Inbound{Port: 443, StreamSettings: "{broken"}

	link := VlessLink(client, inbound, "host")
	if !strings.HasSuffix(link, "#XUI_VPN") {
		t.Errorf("link %q should fall back to the default label", link)
	}

	parsed, err := url.Parse(link)
	if err != nil {
		t.Fatalf("link does not parse: %v", err)
	}
	if got := parsed.Query().Get("type"); got != "tcp" {
		t.Errorf("malformed stream settings should degrade to tcp, got %q", got)
	}
}
