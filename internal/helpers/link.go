package helpers

import (
	"fmt"
	"net/url"
	"strings"

	"xui-sub-bot/internal/constants"
	"xui-sub-bot/internal/models"
)

// VlessLink builds a vless:// connection URI for a client hosted on the given
// inbound. The query always carries the transport type and encryption=none;
// TLS inbounds additionally expose sni/fp/alpn.
func VlessLink(client *models.Client, inbound *models.Inbound, host string) string {
	stream := inbound.DecodeStreamSettings()

	params := url.Values{}
	params.Set("type", stream.Network)
	params.Set("encryption", "none")
	params.Set("security", stream.Security)

	switch stream.Network {
	case "ws":
		if stream.WS.Path != "" {
			params.Set("path", stream.WS.Path)
		}
		if stream.WS.Host != "" {
			params.Set("host", stream.WS.Host)
		}
	case "grpc":
		if stream.GRPC.ServiceName != "" {
			params.Set("serviceName", stream.GRPC.ServiceName)
		}
	}

	if stream.Security == "tls" {
		if stream.TLS.ServerName != "" {
			params.Set("sni", stream.TLS.ServerName)
		}
		params.Set("fp", tlsFingerprint(stream))
		if len(stream.TLS.Alpn) > 0 {
			params.Set("alpn", strings.Join(stream.TLS.Alpn, ","))
		}
	}

	name := inbound.DisplayName()
	if name == "" {
		name = constants.DefaultLinkLabel
	}

	return fmt.Sprintf("vless://%s@%s:%d?%s#%s",
		client.ID, host, inbound.Port, params.Encode(), url.PathEscape(name))
}

// tlsFingerprint picks the configured uTLS fingerprint, tolerating both
// places panel versions store it, with a chrome default.
func tlsFingerprint(stream models.StreamSettings) string {
	if stream.TLS.Fingerprint != "" {
		return stream.TLS.Fingerprint
	}
	if stream.TLS.Settings.Fingerprint != "" {
		return stream.TLS.Settings.Fingerprint
	}
	return constants.DefaultFingerprint
}
