package engines

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"competition-service/apperr"
)

func TestRegistryResolvesRegisteredSport(t *testing.T) {
	reg := Default()

	engine, err := reg.Resolve(SportBadminton)

	require.NoError(t, err)
	assert.Equal(t, SportBadminton, engine.SportCode())
	assert.Equal(t, 3, engine.DefaultParts())
}

func TestRegistryFailsOnUnknownSport(t *testing.T) {
	reg := Default()

	_, err := reg.Resolve("CURLING")

	require.Error(t, err)
	assert.Equal(t, apperr.CodeUnsupportedSport, apperr.CodeOf(err))
	assert.Equal(t, apperr.KindInvalid, apperr.KindOf(err))
}

func TestRegistryPanicsOnDuplicateRegistration(t *testing.T) {
	assert.Panics(t, func() {
		NewRegistry(NewBadmintonEngine(), NewBadmintonEngine())
	})
}
