package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/fr-str/env"
)

var (
	// dumps
	DUMP_DIR     = env.Get("GUARANTOR_DUMP_DIR", "")
	ALWAYS_CHECK = boolean(env.Get("GUARANTOR_ALWAYS_CHECK", "true"), true)
	DB_PATH      = env.Get("GUARANTOR_DB_PATH", filepath.Join(os.TempDir(), "guarantor", "dumps.db"))
	RETENTION    = duration(env.Get("GUARANTOR_RETENTION", "168h"), 7*24*time.Hour)
	PRUNE_EVERY  = duration(env.Get("GUARANTOR_PRUNE_EVERY", "1h"), time.Hour)
	HTTP_ADDR    = env.Get("GUARANTOR_HTTP_ADDR", ":58008")

	// minio
	MINIO_HOST              = env.Get("MINIO_HOST", "")
	MINIO_ACCESS_KEY_ID     = env.Get("MINIO_ACCESS_KEY_ID", "")
	MINIO_SECRET_ACCESS_KEY = env.Get("MINIO_SECRET_ACCESS_KEY", "")
	MINIO_DUMP_BUCKET_NAME  = env.Get("MINIO_DUMP_BUCKET_NAME", "dumps")

	// discord
	DISCORD_TOKEN         = env.Get("DISCORD_TOKEN", "")
	DISCORD_WEBHOOK_ID    = env.Get("DISCORD_WEBHOOK_ID", "")
	DISCORD_WEBHOOK_TOKEN = env.Get("DISCORD_WEBHOOK_TOKEN", "")
)

func boolean(s string, def bool) bool {
	v, err := strconv.ParseBool(s)
	if err != nil {
		return def
	}
	return v
}

func duration(s string, def time.Duration) time.Duration {
	v, err := time.ParseDuration(s)
	if err != nil || v <= 0 {
		return def
	}
	return v
}

func MinioEnabled() bool {
	return MINIO_HOST != ""
}

func DiscordEnabled() bool {
	return DISCORD_WEBHOOK_ID != "" && DISCORD_WEBHOOK_TOKEN != ""
}

func init() {
	dirs := []string{
		filepath.Dir(DB_PATH),
	}
	if DUMP_DIR != "" {
		dirs = append(dirs, DUMP_DIR)
	}

	for _, dir := range dirs {
		if _, err := os.Stat(dir); !os.IsNotExist(err) {
			continue
		}

		err := os.MkdirAll(dir, 0o755)
		if err != nil {
			panic(err)
		}
	}
}
