package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGateway_StrictMode(t *testing.T) {
	gateway := New(ModeStrict)

	assert.True(t, gateway.IsAllowed("fluxon-nodes-base.httpRequest"))
	assert.True(t, gateway.IsAllowed("fluxon-nodes-ai.agent"))
	assert.False(t, gateway.IsAllowed("community-nodes.browser.chromium"))
	assert.False(t, gateway.IsAllowed("acme-nodes.custom"))
}

func TestGateway_PermissiveMode(t *testing.T) {
	gateway := New(ModePermissive)

	assert.True(t, gateway.IsAllowed("community-nodes.browser.chromium"))
	assert.True(t, gateway.IsAllowed("fluxon-nodes-base.httpRequest"))
}

func TestGateway_AlternativesFor(t *testing.T) {
	gateway := New(ModeStrict)

	alternatives := gateway.AlternativesFor("community-nodes.browser.chromium")
	assert.Equal(t, []string{"fluxon-nodes-base.httpRequest"}, alternatives)

	alternatives = gateway.AlternativesFor("community-nodes.router.weighted")
	assert.Equal(t, []string{"fluxon-nodes-base.if", "fluxon-nodes-base.switch"}, alternatives)
}

func TestGateway_AlternativesFor_Unmapped(t *testing.T) {
	gateway := New(ModeStrict)

	assert.Empty(t, gateway.AlternativesFor("acme-nodes.obscure"))
}

func TestGateway_CustomAlternatives(t *testing.T) {
	gateway := NewWithAlternatives(ModeStrict, map[string][]string{
		"acme-nodes.":      {"fluxon-nodes-base.set"},
		"acme-nodes.http.": {"fluxon-nodes-base.httpRequest"},
	})

	// The more specific mapping wins.
	assert.Equal(t,
		[]string{"fluxon-nodes-base.httpRequest"},
		gateway.AlternativesFor("acme-nodes.http.client"))
	assert.Equal(t,
		[]string{"fluxon-nodes-base.set"},
		gateway.AlternativesFor("acme-nodes.reshape"))
}

func TestIsFirstParty(t *testing.T) {
	assert.True(t, IsFirstParty("fluxon-nodes-base.webhook"))
	assert.True(t, IsFirstParty("fluxon-nodes-ai.toolCode"))
	assert.False(t, IsFirstParty("community-nodes.webhook"))
}
