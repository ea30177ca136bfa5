package config

type Config struct {
	EnvConfig *EnvConfig
}

func NewConfig() *Config {
	envConfig := LoadEnvConfig()
	if err := envConfig.Validate(); err != nil {
		panic("Invalid configuration: " + err.Error())
	}
	return &Config{
		EnvConfig: envConfig,
	}
}
