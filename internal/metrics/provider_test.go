package metrics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProvider(t *testing.T) {
	provider, err := NewProvider("vault_test")
	require.NoError(t, err)
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	assert.Equal(t, "vault_test", provider.Namespace())
	assert.NotNil(t, provider.MeterProvider())

	output := scrape(t, provider)
	assert.Contains(t, output, "go_goroutines")
	assert.Regexp(t, `target_info\{[^}]*service_name="vault_test"`, output)
}

func TestNewProvider_EmptyNamespace(t *testing.T) {
	provider, err := NewProvider("")
	require.NoError(t, err)

	assert.Regexp(t, `target_info\{[^}]*service_name="estimatevault"`, scrape(t, provider))
}

func TestNewProvider_IsolatedRegistries(t *testing.T) {
	first, err := NewProvider("vault_test")
	require.NoError(t, err)
	second, err := NewProvider("vault_test")
	require.NoError(t, err)

	assert.NotSame(t, first.registry, second.registry)
}

func TestProvider_Shutdown(t *testing.T) {
	provider, err := NewProvider("vault_test")
	require.NoError(t, err)

	assert.NoError(t, provider.Shutdown(context.Background()))

	var nilProvider *Provider
	assert.NoError(t, nilProvider.Shutdown(context.Background()))
	assert.NoError(t, (&Provider{}).Shutdown(context.Background()))
}
