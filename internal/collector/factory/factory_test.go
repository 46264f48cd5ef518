package factory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobharvest/internal/config"
	"jobharvest/internal/logging"
	"jobharvest/pkg/utils"
)

func TestNewSupportedSources(t *testing.T) {
	cfg := &config.Config{}
	logger := logging.GetGlobalLogger()

	for _, source := range SupportedSources() {
		coll, err := New(source, cfg, logger)
		require.NoError(t, err, "source %q", source)
		assert.Equal(t, source, coll.Name())
	}
}

func TestNewUnknownSource(t *testing.T) {
	coll, err := New("monster", &config.Config{}, logging.GetGlobalLogger())
	assert.Nil(t, coll)

	var customErr *utils.CustomError
	require.ErrorAs(t, err, &customErr)
	assert.Contains(t, customErr.Message, "monster")
}
