package metrics

import (
	"github.com/DataDog/datadog-go/v5/statsd"
	"github.com/rs/zerolog/log"
)

const namespace = "click_counter."

// New returns a DogStatsD client for addr, or a no-op client when addr is empty.
func New(addr, appName string) (statsd.ClientInterface, error) {
	if addr == "" {
		log.Debug().Msg("STATSD_ADDR not set, metrics disabled")
		return &statsd.NoOpClient{}, nil
	}
	return statsd.New(addr,
		statsd.WithNamespace(namespace),
		statsd.WithTags([]string{"service:" + appName}),
	)
}
