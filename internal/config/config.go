package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
	RabbitMQ RabbitMQConfig `mapstructure:"rabbitmq" validate:"required"`
	Redis    RedisConfig    `mapstructure:"redis"`

	Notifications NotificationsConfig `mapstructure:"notifications" validate:"required"`
}

// NotifierConfig holds the settings of the notification consumer process.
type NotifierConfig struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	RabbitMQ RabbitMQConfig `mapstructure:"rabbitmq" validate:"required"`
	Redis    RedisConfig    `mapstructure:"redis"    validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`

	ReadTimeoutSeconds  int `mapstructure:"read_timeout_seconds"  validate:"gte=0"`
	WriteTimeoutSeconds int `mapstructure:"write_timeout_seconds" validate:"gte=0"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL          string `mapstructure:"url"            validate:"required,url"`
	MaxOpenConns int    `mapstructure:"max_open_conns" validate:"gte=0"`
	MaxIdleConns int    `mapstructure:"max_idle_conns" validate:"gte=0"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret"             validate:"required,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0"`
	BCryptCost           int    `mapstructure:"bcrypt_cost"            validate:"gte=4,lte=31"`
}

// RabbitMQConfig holds the broker connection used for task notifications.
type RabbitMQConfig struct {
	URL   string `mapstructure:"url"   validate:"required,url"`
	Queue string `mapstructure:"queue" validate:"required"`
	// PublishTimeoutSeconds bounds a single publish attempt.
	PublishTimeoutSeconds int `mapstructure:"publish_timeout_seconds" validate:"gt=0"`
}

// Notification transports.
const (
	TransportRabbitMQ = "rabbitmq"
	TransportMemory   = "memory"
)

// NotificationsConfig selects how the API server delivers task notifications.
// With TransportMemory they are written straight to the Redis inbox and no
// broker is used.
type NotificationsConfig struct {
	Transport string `mapstructure:"transport" validate:"required,oneof=rabbitmq memory"`
	// InboxLimit caps the number of notifications returned per request.
	InboxLimit int `mapstructure:"inbox_limit" validate:"gt=0"`
}

// RedisConfig holds the notification inbox store. The API server reads it;
// the notification consumer writes it.
type RedisConfig struct {
	Addr      string `mapstructure:"addr"       validate:"required"`
	Password  string `mapstructure:"password"`
	DB        int    `mapstructure:"db"         validate:"gte=0"`
	InboxSize int    `mapstructure:"inbox_size" validate:"gte=0"`
}
