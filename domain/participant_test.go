package domain_test

import (
	"chat-bot/domain"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestProcessVHost_Role_Hosts(t *testing.T) {
	roleHosts := []string{
		"recruit.fuelrats.com",
		"rat.fuelrats.com",
		"dispatch.fuelrats.com",
		"overseer.fuelrats.com",
		"op.fuelrats.com",
		"techrat.fuelrats.com",
		"netadmin.fuelrats.com",
		"admin.fuelrats.com",
	}
	for _, expected := range roleHosts {
		for _, label := range []string{"potato.", "Orbital.", ""} {
			t.Run(label+expected, func(t *testing.T) {
				req := require.New(t)

				// When the host is reduced to its role vhost
				vhost, ok := domain.ProcessVHost(label + expected)

				// Then the leading label is dropped
				req.True(ok)
				req.Equal(expected, vhost)
			})
		}
	}
}

func TestProcessVHost_Special_Cases(t *testing.T) {
	tests := []struct {
		name     string
		host     string
		expected string
		ok       bool
	}{
		{"Oversight vhost", "i.see.all", "i.see.all", true},
		{"Cloaked oversight vhost", "orange.i.see.all", "i.see.all", true},
		{"Foreign host", "wonder.land", "", false},
		{"Bare domain", "fuelrats.com", "", false},
		{"Empty role label", ".fuelrats.com", "", false},
		{"Empty host", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			vhost, ok := domain.ProcessVHost(tt.host)
			req.Equal(tt.ok, ok)
			req.Equal(tt.expected, vhost)
		})
	}
}

func TestIdentity_Fields(t *testing.T) {
	tests := []domain.Identity{
		{
			Nick: "unit_test", User: "White", Host: "recruit.fuelrats.com", RealName: "WhiteStrips",
			Account: "WhiteStrips", Secure: true,
			Server: "irc.fuelrats.com", ServerInfo: "Fuel Rats IRC Server",
		},
		{
			Nick: "unit_test", User: "AwesomeAdmin", Host: "admin.fuelrats.com", RealName: "you know",
			Account: "AwesomeAdmin", Identified: true, Oper: true, Secure: true,
			Away: true, AwayMessage: "brb", Idle: 90 * time.Second,
			Server: "irc.fuelrats.com", ServerInfo: "Fuel Rats IRC Server",
		},
	}
	for _, identity := range tests {
		t.Run(identity.User, func(t *testing.T) {
			req := require.New(t)

			req.Equal("unit_test!"+identity.User+"@"+identity.Host, identity.Mask())
			req.True(identity.LoggedIn())

			vhost, ok := identity.VHost()
			req.True(ok)
			req.Equal(identity.Host, vhost)
		})
	}

	req := require.New(t)
	req.False(domain.Identity{Nick: "guest"}.LoggedIn())
}
