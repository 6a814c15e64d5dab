package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

// writeConfig points both providers at servers that always fail, so the plan
// is built from defaults and fallback prices.
func writeConfig(t *testing.T) string {
	t.Helper()
	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))
	t.Cleanup(down.Close)

	registryPath, err := filepath.Abs("../../configs/activity-registry.json")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "config.yaml")
	body := fmt.Sprintf(`registry_path: %s
apis:
  openweather:
    base_url: %s
    timeout: 2000
  agmarknet:
    base_url: %s
    timeout: 2000
`, registryPath, down.URL, down.URL)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestRecommend_Text(t *testing.T) {
	out, err := execute(t, "recommend", "--config", writeConfig(t),
		"--location", "Pune", "--land-type", "Wet", "--area", "2", "--budget", "medium",
		"--preferred-crop", "rice")
	require.NoError(t, err)

	assert.Contains(t, out, "Weather")
	assert.Contains(t, out, "Recommended Crop")
	assert.Contains(t, out, "Budget Plan")
	assert.Contains(t, out, "Risk Assessment")
}

func TestRecommend_JSON(t *testing.T) {
	out, err := execute(t, "recommend", "--config", writeConfig(t),
		"--location", "Pune", "--land-type", "dry", "--area", "1.5", "--budget", "low",
		"--format", "json")
	require.NoError(t, err)

	var result map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Contains(t, result, "plan")
	assert.Contains(t, result, "signals")
	assert.NotContains(t, result, "preferredCropSuitable")
}

func TestRecommend_InvalidInput(t *testing.T) {
	_, err := execute(t, "recommend", "--config", writeConfig(t),
		"--location", "Pune", "--land-type", "marsh", "--area", "0", "--budget", "medium")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid farmer input")
}

func TestRecommend_BadFormat(t *testing.T) {
	_, err := execute(t, "recommend", "--format", "yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--format")
}

func TestRegistryValidate(t *testing.T) {
	out, err := execute(t, "registry", "validate", "--path", "../../configs/activity-registry.json")
	require.NoError(t, err)
	assert.Contains(t, out, "Registry validation passed (7 activities)")
}

func TestRegistryValidate_Broken(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registry.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"version":"1","activities":[
		{"id":"a","taskType":"x","timeout":"soon"},
		{"id":"a","taskType":"x","timeout":"5s"}]}`), 0o644))

	_, err := execute(t, "registry", "validate", "--path", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "registry validation failed")
}

func TestRegistryList(t *testing.T) {
	out, err := execute(t, "registry", "list", "--path", "../../configs/activity-registry.json")
	require.NoError(t, err)
	assert.Contains(t, out, "fetch-weather")
	assert.Contains(t, out, "send-plan-notification")
}
