package redis

const (
	defaultStream = "prediction-requests"
	defaultGroup  = "prediction-group"
)

// StreamConfig locates the Redis stream and consumer group to read from.
// Empty Stream or Group fall back to the service defaults; Consumer should
// be unique per worker instance (the hostname works well).
type StreamConfig struct {
	Addr     string
	Password string
	Stream   string
	Group    string
	Consumer string
}

func (c StreamConfig) withDefaults() StreamConfig {
	out := c
	if out.Stream == "" {
		out.Stream = defaultStream
	}
	if out.Group == "" {
		out.Group = defaultGroup
	}
	return out
}
