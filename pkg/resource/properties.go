package resource

import (
	"bytes"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/spf13/viper"
)

var (
	properties = viper.New()
	envPattern = regexp.MustCompile(`\$\{([^:}]+)(?::([^}]*))?}`)
)

// Init loads application properties from a YAML file and resolves ${ENV:default} placeholders
func Init(filepath string) error {
	v := viper.New()
	v.SetConfigFile(filepath)
	v.SetConfigType("yml")

	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("fail to read properties %s: %w", filepath, err)
	}
	return load(v)
}

// InitFromBytes loads application properties from an in-memory YAML document
func InitFromBytes(content []byte) error {
	v := viper.New()
	v.SetConfigType("yml")

	if err := v.ReadConfig(bytes.NewReader(content)); err != nil {
		return fmt.Errorf("fail to read properties: %w", err)
	}
	return load(v)
}

func load(source *viper.Viper) error {
	resolved := make(map[string]any)
	parsePropertiesMap("", source.AllSettings(), resolved)

	target := viper.New()
	for key, value := range resolved {
		target.Set(key, value)
	}
	properties = target
	return nil
}

// parsePropertiesMap reads recursively the YAML file
func parsePropertiesMap(prefix string, data map[string]any, result map[string]any) {
	for key, value := range data {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}

		switch v := value.(type) {
		case string:
			result[fullKey] = resolveEnvVariable(v)
		case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64, bool:
			result[fullKey] = v
		case []any:
			result[fullKey] = v
		case map[string]any:
			parsePropertiesMap(fullKey, v, result)
		case nil:
			result[fullKey] = ""
		}
	}
}

// resolveEnvVariable replaces every ${NAME:default} occurrence with the environment value or its default
func resolveEnvVariable(value string) string {
	return envPattern.ReplaceAllStringFunc(value, func(match string) string {
		groups := envPattern.FindStringSubmatch(match)
		if envValue, exists := os.LookupEnv(groups[1]); exists {
			return envValue
		}
		return groups[2]
	})
}

func Get(key string) any {
	return properties.Get(key)
}

func IsSet(key string) bool {
	return properties.IsSet(key)
}

func GetString(key string) string {
	return properties.GetString(key)
}

// GetStringOrDefault returns the trimmed value of key, or defaultValue when it is empty
func GetStringOrDefault(key, defaultValue string) string {
	value := strings.TrimSpace(properties.GetString(key))
	if value == "" {
		return defaultValue
	}
	return value
}

func GetBool(key string) bool {
	return properties.GetBool(key)
}

func GetDuration(key string) time.Duration {
	return properties.GetDuration(key)
}

func GetInt(key string) int {
	return properties.GetInt(key)
}

// GetList splits a comma separated property into trimmed items. YAML sequences
// are accepted as well. A blank property yields no items, but empty items
// inside a list are kept so callers can reject them.
func GetList(key string) []string {
	raw := properties.Get(key)
	var items []string

	switch v := raw.(type) {
	case []any:
		for _, item := range v {
			items = append(items, fmt.Sprint(item))
		}
	case []string:
		items = v
	default:
		value := properties.GetString(key)
		if strings.TrimSpace(value) == "" {
			return []string{}
		}
		items = strings.Split(value, ",")
	}

	result := make([]string, 0, len(items))
	for _, item := range items {
		result = append(result, strings.TrimSpace(item))
	}
	return result
}
