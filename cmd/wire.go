package cmd

import (
	"fmt"
	"strings"
	"time"

	tomlrepo "github.com/bnema/meetroom-cli/internal/adapters/repo/toml"
	"github.com/bnema/meetroom-cli/internal/application"
	"github.com/bnema/meetroom-cli/internal/logging"
	"github.com/bnema/meetroom-cli/internal/ports"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

const (
	envPrefix   = "MEETROOM"
	logLevelKey = "log.level"
	logJSONKey  = "log.json"
)

type app struct {
	meetings *application.MeetingService
	logger   zerolog.Logger
	now      func() time.Time
}

func wireApp() (*app, error) {
	config := viper.New()
	config.SetEnvPrefix(envPrefix)
	config.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	config.AutomaticEnv()
	logConfig := logging.DefaultConfig()
	config.SetDefault(logLevelKey, logConfig.Level)
	config.SetDefault(logJSONKey, logConfig.JSON)

	repo, err := tomlrepo.NewRepository(config)
	if err != nil {
		return nil, fmt.Errorf("wire meeting repository: %w", err)
	}

	logConfig.Level = config.GetString(logLevelKey)
	logConfig.JSON = config.GetBool(logJSONKey)
	logger := logging.New(logConfig)
	logger.Debug().Str("meetings_path", repo.Path()).Msg("wired meeting repository")

	clock := ports.SystemClock{}

	return &app{
		meetings: application.NewMeetingService(repo, clock),
		logger:   logger,
		now:      clock.Now,
	}, nil
}
