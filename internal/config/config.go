package config

import "time"

type Config struct {
	Environment Environment
	Log         Log
	HTTP        HTTPServer
	BaseURL     string `env:"BASE_URL"`
	DatabaseURL string `env:"DATABASE_URL"`
	SQLitePath  string `env:"SQLITE_PATH" envDefault:"storefront.db"`

	Auth      Auth      `envPrefix:"AUTH_"`
	Paypal    Paypal    `envPrefix:"PAYPAL_"`
	BrainTree Braintree `envPrefix:"BRAINTREE_"`
	Redis     Redis     `envPrefix:"REDIS_"`
	Pricing   Pricing   `envPrefix:"PRICING_"`
}

type Paypal struct {
	BaseApiURL   string `env:"BASE_API_URL" envDefault:"https://api-m.sandbox.paypal.com"`
	ClientID     string `env:"CLIENT_ID"`
	ClientSecret string `env:"CLIENT_SECRET"`
	WebhookID    string `env:"WEBHOOK_ID"`
}

type Braintree struct {
	Environment string `env:"ENVIRONMENT"`
	MerchantID  string `env:"MERCHANT_ID"`
	PublicKey   string `env:"PUBLIC_KEY"`
	PrivateKey  string `env:"PRIVATE_KEY"`
}

type Auth struct {
	JWTSecret    string        `env:"JWT_SECRET"`
	TokenTTL     time.Duration `env:"TOKEN_TTL" envDefault:"720h"`
	CookieName   string        `env:"COOKIE_NAME" envDefault:"jwt"`
	CookieSecure bool          `env:"COOKIE_SECURE" envDefault:"false"`
}

type Redis struct {
	Addr     string        `env:"ADDR"`
	Password string        `env:"PASSWORD"`
	CacheTTL time.Duration `env:"CACHE_TTL" envDefault:"10m"`
}

// Pricing drives the server-side quote used by cart checkout: flat-rate
// shipping waived above a threshold, tax as a fraction of the items price.
type Pricing struct {
	TaxRate          float64 `env:"TAX_RATE" envDefault:"0.15"`
	FlatShipping     float64 `env:"FLAT_SHIPPING" envDefault:"10"`
	FreeShippingOver float64 `env:"FREE_SHIPPING_OVER" envDefault:"100"`
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
