package cmd

import "time"

type Config struct {
	HTTPPort           string
	DBHost             string
	DBPort             string
	DBUser             string
	DBPassword         string
	DBName             string
	DBSslMode          string
	CustomerServiceURL string
	CatalogServiceURL  string
	RemoteCallTimeout  time.Duration
	RedisAddr          string
	BranchCacheTTL     time.Duration
	AmqpURL            string
}
