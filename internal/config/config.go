package config

import "time"

type Config struct {
	Environment Environment
	Log         Log
	HTTP        HTTPServer
	BaseURL     string `env:"BASE_URL"`
	DatabaseURL string `env:"DATABASE_URL"`
	// Driver selects the gorm dialect: "mysql" or "sqlite".
	DatabaseDriver string `env:"DATABASE_DRIVER" envDefault:"mysql"`

	Storage Storage `envPrefix:"STORAGE_"`
	Stripe  Stripe  `envPrefix:"STRIPE_"`
	Paypal  Paypal  `envPrefix:"PAYPAL_"`
	Jobs    Jobs    `envPrefix:"JOBS_"`
}

type Storage struct {
	Bucket       string `env:"BUCKET"`
	Endpoint     string `env:"ENDPOINT"`
	Region       string `env:"REGION" envDefault:"us-east-1"`
	AccessKey    string `env:"ACCESS_KEY"`
	SecretKey    string `env:"SECRET_KEY"`
	UsePathStyle bool   `env:"USE_PATH_STYLE" envDefault:"true"`
}

type Stripe struct {
	SecretKey     string `env:"SECRET_KEY"`
	WebhookSecret string `env:"WEBHOOK_SECRET"`
}

type Paypal struct {
	BaseApiURL   string `env:"BASE_API_URL" envDefault:"https://api-m.sandbox.paypal.com"`
	ClientID     string `env:"CLIENT_ID"`
	ClientSecret string `env:"CLIENT_SECRET"`
	WebhookID    string `env:"WEBHOOK_ID"`
}

type Jobs struct {
	// How often the expired-session sweep runs.
	TokenPruneInterval time.Duration `env:"TOKEN_PRUNE_INTERVAL" envDefault:"24h"`
}

type Environment struct {
	Name string `env:"ENVIRONMENT" envDefault:"development"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type HTTPServer struct {
	Host string `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port string `env:"HTTP_PORT" envDefault:"8080"`
}
