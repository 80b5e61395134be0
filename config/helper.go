package config

import (
	"log"
	"os"
	"strconv"
)

func getInt32Env(key string, fallback int32) int32 {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		if i, err := toInt32(value); err == nil {
			return i
		}
		log.Printf("Invalid int32 for %s, using fallback", key)
	}
	return fallback
}

func getBoolEnv(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
		log.Printf("Invalid bool for %s, using fallback", key)
	}
	return fallback
}

func toInt32(s string) (int32, error) {
	i, err := strconv.ParseInt(s, 10, 32)
	return int32(i), err
}
