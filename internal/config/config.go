package config

import (
	"time"

	pkgconfig "github.com/Skotchmaster/chalher_shop/pkg/config"
	pkgredis "github.com/Skotchmaster/chalher_shop/pkg/redis"
)

type StoreAPI struct {
	ServiceName    string `split_words:"true" default:"storeapi"`
	ServerPort     string `split_words:"true" default:"8080"`
	DatabaseURL    string `split_words:"true"`
	StoreJWTSecret string `envconfig:"STORE_JWT_SECRET"`
	KafkaBrokers   string `split_words:"true"`
	ESURL          string `envconfig:"ES_URL"`
	ESUser         string `envconfig:"ES_USER"`
	ESPassword     string `envconfig:"ES_PASSWORD"`
	ESIndex        string `envconfig:"ES_INDEX" default:"products"`
	SeedCatalog    bool   `split_words:"true"`
	LogLevel       string `split_words:"true" default:"info"`
}

func LoadStoreAPI() (*StoreAPI, error) {
	var cfg StoreAPI
	if err := pkgconfig.Process(&cfg); err != nil {
		return nil, err
	}
	if err := pkgconfig.NonEmpty(cfg.DatabaseURL, "DATABASE_URL"); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *StoreAPI) Brokers() []string {
	return pkgconfig.CSV(c.KafkaBrokers)
}

const (
	KVFile   = "file"
	KVRedis  = "redis"
	KVMemory = "memory"
)

type Storefront struct {
	StoreURL       string `split_words:"true"`
	StoreAPIKey    string `envconfig:"STORE_API_KEY"`
	KVBackend      string `envconfig:"KV_BACKEND" default:"file"`
	StateFile      string `split_words:"true"`
	KVNamespace    string `envconfig:"KV_NAMESPACE" default:"chalher"`
	Redis          pkgredis.Config
	LogLevel       string        `split_words:"true" default:"warn"`
	RequestTimeout time.Duration `split_words:"true" default:"5s"`
}

func LoadStorefront() (*Storefront, error) {
	var cfg Storefront
	if err := pkgconfig.Process(&cfg); err != nil {
		return nil, err
	}
	if err := pkgconfig.NonEmpty(cfg.StoreURL, "STORE_URL"); err != nil {
		return nil, err
	}
	if err := pkgconfig.OneOf(cfg.KVBackend, "KV_BACKEND", KVFile, KVRedis, KVMemory); err != nil {
		return nil, err
	}
	if cfg.KVBackend == KVRedis {
		if err := pkgconfig.NonEmpty(cfg.Redis.URL, "REDIS_URL"); err != nil {
			return nil, err
		}
	}
	return &cfg, nil
}
