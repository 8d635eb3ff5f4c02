/*
 * Copyright 2022 Medicines Discovery Catapult
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *     http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package lib

import (
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const configFlag = "config"

// BaseConfig holds the settings every binary shares. Binaries embed it with
// `mapstructure:",squash"` so its keys sit at the top level of their yml.
type BaseConfig struct {
	LogLevel      string `mapstructure:"log_level"`
	LogFile       string `mapstructure:"log_file"`
	LogMaxSize    int    `mapstructure:"log_max_size"`
	LogMaxBackups int    `mapstructure:"log_max_backups"`
}

// BaseDefaults are the defaults for BaseConfig keys. A binary's own defaults take
// precedence over them.
func BaseDefaults() map[string]interface{} {
	return map[string]interface{}{
		"log_level":       "info",
		"log_file":        "",
		"log_max_size":    100, // megabytes
		"log_max_backups": 3,
	}
}

/**
	InitializeConfig fills targetStruct and sets up logging for a binary.

	Values are resolved, highest first, from env vars, the yml config file, defaultConfig
	and BaseDefaults. The config file is defaultPath unless --config names another one; a
	missing file is not an error. Env vars are the upper cased key with "." replaced by "_"
	(AUDIT_REDIS_HOST for audit.redis.host) and only apply to keys known from the file or
	the defaults.
**/
func InitializeConfig(defaultPath string, defaultConfig map[string]interface{}, targetStruct interface{}) error {
	configFile, err := configFilePath(defaultPath)
	if err != nil {
		return err
	}

	v, err := newViper(configFile, defaultConfig)
	if err != nil {
		return err
	}

	var bc BaseConfig
	if err := v.Unmarshal(&bc); err != nil {
		return err
	}
	if err := bc.ConfigureLogging(); err != nil {
		return err
	}

	return v.Unmarshal(targetStruct)
}

// configFilePath returns the absolute path of the config file, taken from the
// --config flag when it is given.
func configFilePath(defaultPath string) (string, error) {
	if pflag.Lookup(configFlag) == nil {
		pflag.String(configFlag, defaultPath, "The config file path.")
	}
	pflag.Parse()

	path, err := pflag.CommandLine.GetString(configFlag)
	if err != nil {
		return "", err
	}
	return filepath.Abs(path)
}

func newViper(configFile string, defaultConfig map[string]interface{}) (*viper.Viper, error) {
	v := viper.New()
	for k, val := range BaseDefaults() {
		v.SetDefault(k, val)
	}
	for k, val := range defaultConfig {
		v.SetDefault(k, val)
	}

	v.SetConfigName(strings.TrimSuffix(filepath.Base(configFile), filepath.Ext(configFile)))
	v.AddConfigPath(filepath.Dir(configFile))
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	err := v.ReadInConfig()
	if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		log.Warn().Str("path", configFile).Msg("no config file, default settings applied")
	} else if err != nil {
		return nil, err
	}
	return v, nil
}
