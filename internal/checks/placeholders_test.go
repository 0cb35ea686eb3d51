package checks_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quenchcheck/quench/internal/adapters/config"
	"github.com/quenchcheck/quench/internal/checks"
)

func TestPlaceholders_FindsSkippedTests(t *testing.T) {
	ctx := newCheckContext(t, map[string]string{
		"lib_test.go": "func TestThing(t *testing.T) {\n\tt.Skip(\"later\")\n}\n",
		"app.test.js": "it.todo('write this')\n",
	}, nil, nil)

	result := checks.NewPlaceholders().Run(ctx)

	assert.False(t, result.Passed)
	require.Len(t, result.Violations, 2)
	assert.Equal(t, "app.test.js", result.Violations[0].File)
	assert.Equal(t, 1, result.Violations[0].Line)
	assert.Equal(t, "lib_test.go", result.Violations[1].File)
	assert.Equal(t, 2, result.Violations[1].Line)
	assert.Equal(t, "placeholder", result.Violations[0].Kind)
	assert.Equal(t, 2, result.Metrics["placeholders"])
}

func TestPlaceholders_OnlyScansTestFiles(t *testing.T) {
	// The same marker in production code is not a placeholder test.
	ctx := newCheckContext(t, map[string]string{
		"helper.go": "// call t.Skip( when conditions are unmet\n",
	}, nil, nil)

	result := checks.NewPlaceholders().Run(ctx)

	assert.True(t, result.Passed)
	assert.Equal(t, 0, result.Metrics["placeholders"])
}

func TestPlaceholders_PythonAndGoMarkers(t *testing.T) {
	ctx := newCheckContext(t, map[string]string{
		"test_api.py": "@unittest.skip\ndef test_api():\n    pass\n",
	}, nil, nil)

	result := checks.NewPlaceholders().Run(ctx)

	assert.False(t, result.Passed)
	require.Len(t, result.Violations, 1)
	assert.Equal(t, "test_api.py", result.Violations[0].File)
	assert.Equal(t, 1, result.Violations[0].Line)
}

func TestPlaceholders_CanBeDisabled(t *testing.T) {
	cfg := config.Default()
	cfg.Checks.Placeholders.Enabled = false

	for _, c := range checks.All(cfg) {
		assert.NotEqual(t, "placeholders", c.Name())
	}
}
