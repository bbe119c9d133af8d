package utils

import (
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
)

// lookupEnv falls back to defaultValue when key is unset or does not parse.
func lookupEnv[T any](key string, defaultValue T, parse func(string) (T, error)) T {
	raw, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}

	value, err := parse(raw)
	if err != nil {
		logrus.WithError(err).WithField("key", key).Warn("invalid environment value, using default")
		return defaultValue
	}
	return value
}

func GetEnvString(key, defaultValue string) string {
	return lookupEnv(key, defaultValue, func(raw string) (string, error) { return raw, nil })
}

func GetEnvInt(key string, defaultValue int) int {
	return lookupEnv(key, defaultValue, strconv.Atoi)
}

func GetEnvBool(key string, defaultValue bool) bool {
	return lookupEnv(key, defaultValue, strconv.ParseBool)
}
