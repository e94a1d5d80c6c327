package config

// RocketMQConfig 事件总线配置，关注/拉黑/入群等领域事件经由它投递
type RocketMQConfig struct {
	NameServer []string `yaml:"nameserver"`
	Producer   Producer `yaml:"producer"`
	Consumer   Consumer `yaml:"consumer"`
}

type Producer struct {
	Group string `yaml:"group"`
	Retry int    `yaml:"retry"`
}

type Consumer struct {
	Group string `yaml:"group"`
}

func ProvideRocketMQConfig(cfg *Config) *RocketMQConfig {
	return cfg.RocketMQ
}
