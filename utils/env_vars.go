package utils

import (
	"log"
	"os"
	"strconv"
)

type envTypes interface {
	string | int | bool | float64
}

// GetEnv reads an environment variable, falling back to defaultValue when it
// is unset or empty. The value is parsed to the type of defaultValue.
func GetEnv[T envTypes](name string, defaultValue T) T {
	raw, ok := os.LookupEnv(name)
	if !ok || raw == "" {
		return defaultValue
	}
	value, err := parseEnv[T](name, raw)
	if err != nil {
		log.Fatalf("environment variable %s is not valid: %v", name, err)
	}
	return value
}

// GetRequiredEnv reads an environment variable and exits if it is missing.
func GetRequiredEnv[T envTypes](name string) T {
	raw, ok := os.LookupEnv(name)
	if !ok || raw == "" {
		log.Fatalf("%s environment variable is required", name)
	}
	value, err := parseEnv[T](name, raw)
	if err != nil {
		log.Fatalf("environment variable %s is not valid: %v", name, err)
	}
	return value
}

func parseEnv[T envTypes](name, raw string) (T, error) {
	var out T
	switch ptr := any(&out).(type) {
	case *string:
		*ptr = raw
	case *int:
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return out, err
		}
		*ptr = parsed
	case *bool:
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			return out, err
		}
		*ptr = parsed
	case *float64:
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return out, err
		}
		*ptr = parsed
	}
	return out, nil
}
