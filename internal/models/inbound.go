package models

import "encoding/json"

// Inbound represents a panel-side listener definition
type Inbound struct {
	ID             int          `json:"id"`
	Up             int64        `json:"up"`
	Down           int64        `json:"down"`
	Total          int64        `json:"total"`
	Remark         string       `json:"remark"`
	Enable         bool         `json:"enable"`
	ExpiryTime     int64        `json:"expiryTime"`
	ClientStats    []ClientStat `json:"clientStats"`
	Listen         string       `json:"listen"`
	Port           int          `json:"port"`
	Protocol       string       `json:"protocol"`
	Settings       string       `json:"settings"`
	StreamSettings string       `json:"streamSettings"`
	Tag            string       `json:"tag"`
}

// ClientStat represents per-client traffic counters as reported by the panel
type ClientStat struct {
	ID         int        `json:"id"`
	InboundID  int        `json:"inboundId"`
	Enable     bool       `json:"enable"`
	Email      string     `json:"email"`
	Up         int64      `json:"up"`
	Down       int64      `json:"down"`
	ExpiryTime int64      `json:"expiryTime"`
	Total      int64      `json:"total"`
	TgID       TelegramID `json:"tgId,omitempty"`
}

// DecodeSettings parses the inbound's embedded client list. A parse failure
// means the inbound contributes no clients; callers decide whether to skip it.
func (i *Inbound) DecodeSettings() (*InboundSettings, error) {
	var settings InboundSettings
	if err := json.Unmarshal([]byte(i.Settings), &settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

// StreamSettings is the decoded transport/security configuration of an inbound
type StreamSettings struct {
	Network  string `json:"network"`
	Security string `json:"security"`
	TLS      struct {
		ServerName  string   `json:"serverName"`
		Fingerprint string   `json:"fingerprint"`
		Alpn        []string `json:"alpn"`
		Settings    struct {
			Fingerprint string `json:"fingerprint"`
		} `json:"settings"`
	} `json:"tlsSettings"`
	WS struct {
		Path string `json:"path"`
		Host string `json:"host"`
	} `json:"wsSettings"`
	GRPC struct {
		ServiceName string `json:"serviceName"`
	} `json:"grpcSettings"`
}

// DecodeStreamSettings parses the inbound's transport configuration. An empty
// or malformed value yields a tcp/none default rather than an error, so link
// generation degrades instead of failing.
func (i *Inbound) DecodeStreamSettings() StreamSettings {
	stream := StreamSettings{Network: "tcp", Security: "none"}
	if i.StreamSettings == "" {
		return stream
	}
	if err := json.Unmarshal([]byte(i.StreamSettings), &stream); err != nil {
		return StreamSettings{Network: "tcp", Security: "none"}
	}
	if stream.Network == "" {
		stream.Network = "tcp"
	}
	if stream.Security == "" {
		stream.Security = "none"
	}
	return stream
}

// DisplayName returns the inbound's human-readable name
func (i *Inbound) DisplayName() string {
	if i.Remark != "" {
		return i.Remark
	}
	return i.Tag
}
