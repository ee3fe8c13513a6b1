package initializers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"techscreen-backend/config"
)

func TestInitAllServicesRequiresJWTSecret(t *testing.T) {
	conf := new(config.Configuration)
	conf.Database.Driver = "sqlite"
	conf.Database.SqlitePath = "file::memory:"
	conf.LLM.Provider = "mock"

	services, err := InitAllServices(context.Background(), conf)
	require.Error(t, err)
	require.Nil(t, services)
	require.Contains(t, err.Error(), "JWT_SECRET")
}
