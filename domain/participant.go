// Package domain contains core concepts of the chat bot.
// This file defines the identity of a chat participant.
// No runtime, network, or UI logic should be added here.
package domain

import (
	"fmt"
	"strings"
	"time"
)

const (
	// RoleHostDomain is the network domain under which role vhosts are assigned,
	// e.g. rat.fuelrats.com or admin.fuelrats.com.
	RoleHostDomain = "fuelrats.com"
	// OversightVHost is a vhost assigned by hand that never follows the role pattern.
	OversightVHost = "i.see.all"
)

// Identity is the fully resolved identity of a participant, as answered by the
// connection's WHOIS lookup.
type Identity struct {
	Nick        string
	User        string
	Host        string
	RealName    string
	Account     string
	Identified  bool
	Oper        bool
	Secure      bool
	Away        bool
	AwayMessage string
	Idle        time.Duration
	Server      string
	ServerInfo  string
}

// Mask renders the identity as nick!user@host.
func (i Identity) Mask() string {
	return fmt.Sprintf("%s!%s@%s", i.Nick, i.User, i.Host)
}

// LoggedIn reports whether the participant is authenticated to a services account.
func (i Identity) LoggedIn() bool {
	return i.Account != ""
}

// VHost returns the role vhost of the participant, if any.
func (i Identity) VHost() (string, bool) {
	return ProcessVHost(i.Host)
}

// ProcessVHost reduces a hostname to its role vhost: any label in front of
// <role>.fuelrats.com is dropped, so "potato.rat.fuelrats.com" becomes
// "rat.fuelrats.com". OversightVHost is returned as is.
// Hosts outside RoleHostDomain have no role vhost.
func ProcessVHost(host string) (string, bool) {
	host = strings.ToLower(strings.TrimSuffix(host, "."))
	if host == OversightVHost || strings.HasSuffix(host, "."+OversightVHost) {
		return OversightVHost, true
	}
	if !strings.HasSuffix(host, "."+RoleHostDomain) {
		return "", false
	}
	labels := strings.Split(host, ".")
	role := labels[len(labels)-3:]
	if role[0] == "" {
		return "", false
	}
	return strings.Join(role, "."), true
}
