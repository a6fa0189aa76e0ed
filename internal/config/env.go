package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

var durationType = reflect.TypeOf(time.Duration(0))

// LoadEnv overrides config fields from the environment variables named in
// their `env` struct tags. Unset variables leave the field untouched.
func LoadEnv(config *AppConfig) error {
	sections := []any{
		&config.App,
		&config.Database,
		&config.Server,
		&config.JWT,
		&config.Logging,
		&config.CORS,
		&config.Notice,
	}

	applied := make([]string, 0, 8)
	for _, section := range sections {
		names, err := applyStructEnv(section)
		if err != nil {
			return err
		}
		applied = append(applied, names...)
	}

	// Names only; values may be secrets
	log.Debug().Strs("variables", applied).Msg("Environment overrides applied")

	return nil
}

// processStructEnv processes environment variables for a struct
func processStructEnv(s any) error {
	_, err := applyStructEnv(s)
	return err
}

// applyStructEnv sets every tagged field of the struct s points to and
// returns the names of the variables that were present.
func applyStructEnv(s any) ([]string, error) {
	val := reflect.ValueOf(s).Elem()
	typ := val.Type()

	var applied []string
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		fieldVal := val.Field(i)

		envName := field.Tag.Get("env")
		if envName == "" || !fieldVal.CanSet() {
			continue
		}

		envValue, exists := os.LookupEnv(envName)
		if !exists {
			continue
		}

		if err := setField(fieldVal, envValue); err != nil {
			return nil, fmt.Errorf("invalid value for %s: %w", envName, err)
		}
		applied = append(applied, envName)
	}

	return applied, nil
}

// setField parses raw into fieldVal according to its kind.
// Durations use time.ParseDuration and string slices are comma separated.
func setField(fieldVal reflect.Value, raw string) error {
	if fieldVal.Type() == durationType {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return err
		}
		fieldVal.SetInt(int64(d))
		return nil
	}

	switch fieldVal.Kind() {
	case reflect.String:
		fieldVal.SetString(raw)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(raw, 10, fieldVal.Type().Bits())
		if err != nil {
			return err
		}
		fieldVal.SetInt(n)

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(raw, 10, fieldVal.Type().Bits())
		if err != nil {
			return err
		}
		fieldVal.SetUint(n)

	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return err
		}
		fieldVal.SetBool(b)

	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(raw, fieldVal.Type().Bits())
		if err != nil {
			return err
		}
		fieldVal.SetFloat(f)

	case reflect.Slice:
		if fieldVal.Type().Elem().Kind() != reflect.String {
			return fmt.Errorf("unsupported slice type %s", fieldVal.Type())
		}
		items := make([]string, 0, strings.Count(raw, ",")+1)
		for _, item := range strings.Split(raw, ",") {
			if item = strings.TrimSpace(item); item != "" {
				items = append(items, item)
			}
		}
		fieldVal.Set(reflect.ValueOf(items))

	default:
		return fmt.Errorf("unsupported field type %s", fieldVal.Type())
	}

	return nil
}
