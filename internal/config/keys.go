package config

import (
	"os"
	"strings"
)

// ValueSource represents where a setting comes from.
type ValueSource string

const (
	SourceEnv     ValueSource = "env"
	SourceConfig  ValueSource = "config"
	SourceDefault ValueSource = "default"
)

// UserAgentStatus describes the identification header sent to EDGAR.
type UserAgentStatus struct {
	Source     ValueSource `json:"source"`
	HasContact bool        `json:"has_contact"` // an e-mail address is present
	Masked     string      `json:"masked"`
}

// CheckUserAgent reports where the User-Agent came from and whether it
// carries the contact address EDGAR asks for.
func CheckUserAgent(cfg *Config) UserAgentStatus {
	ua := cfg.SEC.UserAgent
	status := UserAgentStatus{
		HasContact: strings.Contains(ua, "@"),
		Masked:     maskContact(ua),
	}

	switch {
	case os.Getenv(envPrefix+"_SEC_USER_AGENT") != "":
		status.Source = SourceEnv
	case strings.Contains(ua, "admin@example.com"):
		status.Source = SourceDefault
	default:
		status.Source = SourceConfig
	}
	return status
}

// maskContact hides the local part of any e-mail address in s,
// e.g. "app jane.doe@corp.com" -> "app j***@corp.com".
func maskContact(s string) string {
	fields := strings.Fields(s)
	for i, f := range fields {
		at := strings.Index(f, "@")
		if at <= 0 {
			continue
		}
		prefix := strings.TrimLeft(f[:at], "(<")
		lead := f[:len(f[:at])-len(prefix)]
		if prefix == "" {
			continue
		}
		fields[i] = lead + prefix[:1] + "***" + f[at:]
	}
	return strings.Join(fields, " ")
}
