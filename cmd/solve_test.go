package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nfcsim/gocascade/internal/cascade"
	"github.com/nfcsim/gocascade/internal/nuclide"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultRequest() *cascade.Request {
	return &cascade.Request{
		FeedQty:       cascade.Unconstrained,
		ProductQty:    cascade.Unconstrained,
		MaxSWU:        cascade.Unconstrained,
		Process:       cascade.Centrifuge,
		Gamma235:      1.4,
		InitEnriching: -1,
		InitStripping: -1,
	}
}

func TestLoadRequestFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "request.yaml")
	content := `feed_composition:
  "922350000": 0.00711
  "922380000": 0.99289
target_product_assay: 0.05
target_tails_assay: 0.0025
process: diffusion
product_qty: 500
use_integer_stages: true
n_init_enriching: 20
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	req := defaultRequest()
	require.NoError(t, loadRequestFile(path, req))

	assert.InDelta(t, 0.00711, req.Feed[nuclide.U235], 1e-12)
	assert.InDelta(t, 0.99289, req.Feed[nuclide.U238], 1e-12)
	assert.InDelta(t, 0.05, req.TargetProductAssay, 1e-12)
	assert.InDelta(t, 0.0025, req.TargetTailsAssay, 1e-12)
	assert.Equal(t, cascade.Diffusion, req.Process)
	assert.InDelta(t, 500.0, req.ProductQty, 1e-12)
	assert.True(t, req.UseIntegerStages)
	assert.False(t, req.UseDownblending)
	assert.InDelta(t, 20.0, req.InitEnriching, 1e-12)

	// Fields absent from the file keep their defaults.
	assert.Equal(t, cascade.Unconstrained, req.FeedQty)
	assert.Equal(t, cascade.Unconstrained, req.MaxSWU)
	assert.InDelta(t, 1.4, req.Gamma235, 1e-12)
	assert.Equal(t, -1.0, req.InitStripping)
}

func TestLoadRequestFileBadNuclide(t *testing.T) {
	path := filepath.Join(t.TempDir(), "request.yaml")
	content := `feed_composition:
  "uranium": 1.0
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	err := loadRequestFile(path, defaultRequest())
	assert.Error(t, err)
}

func TestLoadRequestFileMissing(t *testing.T) {
	err := loadRequestFile(filepath.Join(t.TempDir(), "absent.yaml"), defaultRequest())
	assert.Error(t, err)
}
