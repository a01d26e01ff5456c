// server/config/config.go
package config

import (
	"errors"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// --- Sub-structs mirroring the YAML layout ---

type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowedOrigins"`
}

type MongoConfig struct {
	URI                       string `mapstructure:"uri"`
	DBName                    string `mapstructure:"dbName"`
	PurchaseRequestCollection string `mapstructure:"purchaseRequestCollection"`
	SupplyInputCollection     string `mapstructure:"supplyInputCollection"`
	SeedFixtures              bool   `mapstructure:"seedFixtures"`
}

type JWTConfig struct {
	Secret     string `mapstructure:"secret"`
	Expiration string `mapstructure:"expiration"`
}

type S3Config struct {
	Bucket           string `mapstructure:"bucket"`
	Region           string `mapstructure:"region"`
	AccessKeyID      string `mapstructure:"accessKeyID"`
	SecretAccessKey  string `mapstructure:"secretAccessKey"`
	CloudFrontDomain string `mapstructure:"cloudFrontDomain"`
}

type RedisConfig struct {
	Addr           string `mapstructure:"addr"`
	Password       string `mapstructure:"password"`
	DB             int    `mapstructure:"db"`
	ViewTTLSeconds int    `mapstructure:"viewTTLSeconds"`
}

type SupplyConfig struct {
	SimulatedLatencyMs int `mapstructure:"simulatedLatencyMs"`
}

type RateLimitConfig struct {
	Rate string `mapstructure:"rate"`
}

// --- Root config ---

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Mongo     MongoConfig     `mapstructure:"mongo"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	S3        S3Config        `mapstructure:"s3"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Supply    SupplyConfig    `mapstructure:"supply"`
	RateLimit RateLimitConfig `mapstructure:"rateLimit"`
}

// LoadConfig reads config.yaml from path, then overrides it with
// environment variables. A .env file in the working directory is loaded
// first when present.
func LoadConfig(path string) (config Config, err error) {
	if err = godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return
	}
	err = nil

	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowedOrigins", []string{"http://localhost:5173"})
	v.SetDefault("mongo.uri", "mongodb://localhost:27017")
	v.SetDefault("mongo.dbName", "pr_tracker")
	v.SetDefault("mongo.purchaseRequestCollection", "purchaseRequests")
	v.SetDefault("mongo.supplyInputCollection", "supplyInputs")
	v.SetDefault("mongo.seedFixtures", true)
	v.SetDefault("jwt.expiration", "24h")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.viewTTLSeconds", 300)
	v.SetDefault("supply.simulatedLatencyMs", 0)
	v.SetDefault("rateLimit.rate", "60-M")

	v.AutomaticEnv()
	v.BindEnv("server.port", "SERVER_PORT")
	v.BindEnv("server.environment", "APP_ENV")
	v.BindEnv("mongo.uri", "MONGO_URI")
	v.BindEnv("mongo.dbName", "MONGO_DBNAME")
	v.BindEnv("mongo.purchaseRequestCollection", "MONGO_PURCHASE_REQUEST_COLLECTION")
	v.BindEnv("mongo.supplyInputCollection", "MONGO_SUPPLY_INPUT_COLLECTION")
	v.BindEnv("mongo.seedFixtures", "MONGO_SEED_FIXTURES")
	v.BindEnv("jwt.secret", "JWT_SECRET")
	v.BindEnv("jwt.expiration", "JWT_EXPIRATION")
	v.BindEnv("s3.bucket", "S3_BUCKET")
	v.BindEnv("s3.region", "S3_REGION")
	v.BindEnv("s3.accessKeyID", "S3_ACCESS_KEY_ID")
	v.BindEnv("s3.secretAccessKey", "S3_SECRET_ACCESS_KEY")
	v.BindEnv("s3.cloudFrontDomain", "S3_CLOUDFRONT_DOMAIN")
	v.BindEnv("redis.addr", "REDIS_ADDR")
	v.BindEnv("redis.password", "REDIS_PASSWORD")
	v.BindEnv("redis.db", "REDIS_DB")
	v.BindEnv("redis.viewTTLSeconds", "REDIS_VIEW_TTL_SECONDS")
	v.BindEnv("supply.simulatedLatencyMs", "SUPPLY_SIMULATED_LATENCY_MS")
	v.BindEnv("rateLimit.rate", "RATE_LIMIT")

	// A missing config.yaml is fine; env and defaults still apply.
	err = v.ReadInConfig()
	if err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return
		}
		err = nil
	}

	err = v.Unmarshal(&config)
	return
}
