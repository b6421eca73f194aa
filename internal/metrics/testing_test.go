package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProvider(t *testing.T, namespace string) *Provider {
	t.Helper()
	provider, err := NewProvider(namespace)
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, provider.Shutdown(context.Background()))
	})
	return provider
}

// scrape returns the Prometheus exposition of the provider's registry.
func scrape(t *testing.T, provider *Provider) string {
	t.Helper()
	w := httptest.NewRecorder()
	provider.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	return w.Body.String()
}

// assertMetricLine matches a sample by name, a partial label pattern and value. The exporter
// adds OTel scope labels, so labels are matched loosely.
func assertMetricLine(t *testing.T, output, name, labels, value string) {
	t.Helper()
	assert.Regexp(t, name+`\{[^}]*`+labels+`[^}]*\} `+value, output)
}
