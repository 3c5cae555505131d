package configs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/viper"

	"lindas-hydro/pkg/msg"
	"lindas-hydro/pkg/resource"
)

type EnvConfig struct {
	ApplicationName    string
	DotEnvPath         string
	PropertiesFilePath string
	MessagesFilePath   string
}

var Env *EnvConfig

// Load populates the environment from .env, then loads application properties and messages.
// Files missing on disk fall back to the embedded copies.
func Load() error {
	env := viper.New()
	env.AutomaticEnv()

	dotEnvPath := getStringOrDefault(env, "DOTENV_PATH", ".env")
	if err := LoadDotEnv(dotEnvPath); err != nil {
		return err
	}

	Env = &EnvConfig{
		ApplicationName:    getStringOrDefault(env, "APPLICATION_NAME", "lindas-hydro"),
		DotEnvPath:         dotEnvPath,
		PropertiesFilePath: getStringOrDefault(env, "PROPERTIES_FILE_PATH", "configs/application.yml"),
		MessagesFilePath:   getStringOrDefault(env, "MESSAGES_FILE_PATH", "configs/messages.yml"),
	}

	if err := loadFileOrDefault(Env.PropertiesFilePath, DefaultProperties, resource.Init, resource.InitFromBytes); err != nil {
		return err
	}
	return loadFileOrDefault(Env.MessagesFilePath, DefaultMessages, msg.Init, msg.InitFromBytes)
}

// LoadDotEnv copies KEY=VALUE pairs from a dotenv file into the process environment.
// Variables already set win and a missing file is not an error. Keys are upper-cased.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("fail to read dotenv %s: %w", path, err)
	}

	for _, key := range v.AllKeys() {
		name := strings.ToUpper(key)
		if _, exists := os.LookupEnv(name); exists {
			continue
		}
		if err := os.Setenv(name, v.GetString(key)); err != nil {
			return fmt.Errorf("fail to set %s: %w", name, err)
		}
	}
	return nil
}

func loadFileOrDefault(path string, fallback []byte, fromFile func(string) error, fromBytes func([]byte) error) error {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return fromBytes(fallback)
	}
	return fromFile(path)
}

func getStringOrDefault(v *viper.Viper, key, defaultValue string) string {
	value := v.GetString(key)
	if value == "" {
		return defaultValue
	}
	return value
}
