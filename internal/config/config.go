package config

import (
	"github.com/ZilDuck/nft-test-market/internal/log"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"math/big"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Env       string
	Debug     bool
	LogPath   string
	SentryDsn string

	Network         string
	Collection      string
	FillerCards     int
	HttpHost        string
	HttpPort        string
	CsrfKey         string
	SecureCookie    bool
	NotificationTtl time.Duration
	ShutdownTimeout time.Duration
	IpfsGateway     string

	Marketplace MarketplaceConfig
	Wallet      WalletConfig
}

type MarketplaceConfig struct {
	Url      string
	ApiKey   string
	Timeout  int
	RetryMax int
}

type WalletConfig struct {
	Url     string
	Timeout int
	Debug   bool
}

func Init(name string) {
	if err := godotenv.Load(".env"); err != nil {
		zap.L().With(zap.Error(err)).Warn("No .env file loaded")
	}

	initLogger(name)
}

func initLogger(name string) {
	cfg := Get()
	log.NewLogger(cfg.LogPath, cfg.Debug, cfg.SentryDsn)
	zap.L().With(zap.String("app", name), zap.String("env", cfg.Env)).Debug("Logger initialised")
}

func Get() *Config {
	return &Config{
		Env:             getString("ENV", ""),
		Debug:           getBool("DEBUG", false),
		LogPath:         getString("LOG_PATH", "./var/market.log"),
		SentryDsn:       getString("SENTRY_DSN", ""),
		Network:         getString("NETWORK", "rinkeby"),
		Collection:      getString("COLLECTION", "garden-pictures"),
		FillerCards:     getInt("FILLER_CARDS", 5),
		HttpHost:        getString("HTTP_HOST", "127.0.0.1"),
		HttpPort:        getString("HTTP_PORT", "8080"),
		CsrfKey:         getString("CSRF_KEY", ""),
		SecureCookie:    getBool("SECURE_COOKIE", false),
		NotificationTtl: getDuration("NOTIFICATION_TTL", 5),
		ShutdownTimeout: getDuration("SHUTDOWN_TIMEOUT", 5),
		IpfsGateway:     getString("IPFS_GATEWAY", "https://ipfs.io/ipfs/"),
		Marketplace: MarketplaceConfig{
			Url:      getString("MARKETPLACE_URL", ""),
			ApiKey:   getString("MARKETPLACE_API_KEY", ""),
			Timeout:  getInt("MARKETPLACE_TIMEOUT", 30),
			RetryMax: getInt("MARKETPLACE_RETRY_MAX", 0),
		},
		Wallet: WalletConfig{
			Url:     getString("WALLET_URL", ""),
			Timeout: getInt("WALLET_TIMEOUT", 120),
			Debug:   getBool("WALLET_DEBUG", false),
		},
	}
}

func getString(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}

	return defaultValue
}

func getInt(key string, defaultValue int) int {
	valStr := getString(key, "")
	val, _, err := big.ParseFloat(valStr, 10, 0, big.ToNearestEven)
	if err != nil {
		return defaultValue
	}

	intVal, _ := val.Int64()
	return int(intVal)
}

func getBool(key string, defaultValue bool) bool {
	valStr := getString(key, "")
	if val, err := strconv.ParseBool(valStr); err == nil {
		return val
	}

	return defaultValue
}

// getDuration reads a number of seconds.
func getDuration(key string, defaultSeconds int) time.Duration {
	return time.Duration(getInt(key, defaultSeconds)) * time.Second
}
