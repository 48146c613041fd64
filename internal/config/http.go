package config

type HTTP struct {
	Port    uint32 `env:"HTTP_PORT" envDefault:"8000"`
	Swagger bool   `env:"HTTP_SWAGGER" envDefault:"true"`

	AllowedOrigins []string `env:"HTTP_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000,http://127.0.0.1:3000,https://shop-navy-beta.vercel.app"`

	// RateLimit is the number of requests a client IP may make per minute. Zero disables it.
	RateLimit int `env:"HTTP_RATE_LIMIT" envDefault:"600"`
}
