package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"venue-intelligence/internal/common/validation"
)

func TestDefault_HasEveryVenueWorker(t *testing.T) {
	reg, err := Default()
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{
		"validate-event-requirement",
		"search-venues",
		"rank-venues",
		"filter-venues",
		"analyze-venue",
		"build-plan-summary",
	}, reg.TaskTypes())

	a, ok := reg.Find("analyze-venue")
	require.True(t, ok)
	assert.Equal(t, "venue.analysis.analyze", a.ID)
	assert.Contains(t, a.ErrorCodes, "ANALYSIS_UNAVAILABLE")
}

func TestInputSchema_ValidatesRequirement(t *testing.T) {
	reg, err := Default()
	require.NoError(t, err)
	schema, err := reg.InputSchema("validate-event-requirement")
	require.NoError(t, err)

	ok, err := validation.ValidateJSON(schema, []byte(`{"eventRequirement":{"city":"Mumbai","eventType":"Conference","attendeeCount":150,"budgetTotal":1000000}}`))
	require.NoError(t, err)
	assert.True(t, ok.Valid, ok.GetErrorMessages())

	bad, err := validation.ValidateJSON(schema, []byte(`{"eventRequirement":{"city":"  ","eventType":"Conference","attendeeCount":0,"budgetTotal":1000000,"preferredVenueType":"Rooftop"}}`))
	require.NoError(t, err)
	assert.False(t, bad.Valid)
	assert.Len(t, bad.Errors, 3)

	_, err = reg.InputSchema("send-fax")
	assert.Error(t, err)
}

func TestParse_RejectsBadTaskTypes(t *testing.T) {
	_, err := Parse([]byte(`{"activities":[{"id":"a","taskType":"RankVenues"}]}`))
	assert.Error(t, err)

	_, err = Parse([]byte(`{"activities":[{"id":"a","taskType":"rank-venues"},{"id":"b","taskType":"rank-venues"}]}`))
	assert.ErrorContains(t, err, "duplicate")

	_, err = Parse([]byte(`not json`))
	assert.Error(t, err)
}

func TestLoadRegistry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "activities.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"version":"2","activities":[{"id":"x","taskType":"rank-venues"}]}`), 0o600))

	reg, err := LoadRegistry(path)
	require.NoError(t, err)
	assert.Equal(t, "2", reg.Version)

	_, err = LoadRegistry(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
