package form

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderPassFirstInstanceWins(t *testing.T) {
	pass := NewRenderPass()
	host := testHost()

	first := formBlock(map[string]string{"subject": "First"})
	second := formBlock(map[string]string{"subject": "Second"})

	a := Parse(pass, first, host)
	require.NotNil(t, a)
	assert.Equal(t, "First", a.Subject)

	// Same logical id, different content: suppressed.
	b := Parse(pass, second, host)
	assert.Nil(t, b)

	// The remembered instance stays authoritative.
	assert.Same(t, a, pass.Active(host.LogicalID()))
}

func TestRenderPassIdenticalReparse(t *testing.T) {
	pass := NewRenderPass()
	host := testHost()
	block := formBlock(map[string]string{"subject": "Hello"})

	a := Parse(pass, block, host)
	b := Parse(pass, block, host)
	require.NotNil(t, a)
	// A byte-identical re-evaluation returns the same instance; the field
	// registry is not rebuilt.
	assert.Same(t, a, b)
}

func TestRenderPassDistinctIDs(t *testing.T) {
	pass := NewRenderPass()

	pageHost := testHost()
	widgetHost := testHost()
	widgetHost.WidgetID = "w1"

	a := Parse(pass, formBlock(map[string]string{"subject": "Page"}), pageHost)
	b := Parse(pass, formBlock(map[string]string{"subject": "Widget"}), widgetHost)
	require.NotNil(t, a)
	require.NotNil(t, b)
	assert.NotSame(t, a, b)
	assert.Equal(t, "Page", a.Subject)
	assert.Equal(t, "Widget", b.Subject)
}

func TestRenderPassIsolation(t *testing.T) {
	host := testHost()
	block := formBlock(nil)

	// A fresh pass carries nothing over from a previous one.
	a := Parse(NewRenderPass(), block, host)
	b := Parse(NewRenderPass(), block, host)
	require.NotNil(t, a)
	require.NotNil(t, b)
	assert.NotSame(t, a, b)
}

func TestActiveUnknownID(t *testing.T) {
	assert.Nil(t, NewRenderPass().Active("page-404"))
}
