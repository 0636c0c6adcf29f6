package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/temirov/codeprompt/internal/utils"
)

// ApplicationConfiguration holds optional defaults read from codeprompt.yaml.
// Flags set explicitly on the command line always override these values.
type ApplicationConfiguration struct {
	Encoding string   `mapstructure:"encoding"`
	Template string   `mapstructure:"template"`
	Exclude  []string `mapstructure:"exclude"`
	Include  []string `mapstructure:"include"`
}

// LoadApplicationConfiguration reads the application configuration file from
// the working directory. A missing file yields the zero configuration.
func LoadApplicationConfiguration(workingDirectory string) (ApplicationConfiguration, error) {
	if workingDirectory == "" {
		currentDirectory, workingDirectoryError := os.Getwd()
		if workingDirectoryError != nil {
			return ApplicationConfiguration{}, fmt.Errorf("determine working directory: %w", workingDirectoryError)
		}
		workingDirectory = currentDirectory
	}

	configurationFilePath := filepath.Join(workingDirectory, utils.ConfigFileName)
	if _, statError := os.Stat(configurationFilePath); statError != nil {
		if errors.Is(statError, os.ErrNotExist) {
			return ApplicationConfiguration{}, nil
		}
		return ApplicationConfiguration{}, fmt.Errorf("checking %s: %w", configurationFilePath, statError)
	}

	viperInstance := viper.New()
	viperInstance.SetConfigFile(configurationFilePath)
	viperInstance.SetConfigType("yaml")

	if readError := viperInstance.ReadInConfig(); readError != nil {
		return ApplicationConfiguration{}, fmt.Errorf("reading %s: %w", configurationFilePath, readError)
	}

	var configuration ApplicationConfiguration
	if unmarshalError := viperInstance.Unmarshal(&configuration); unmarshalError != nil {
		return ApplicationConfiguration{}, fmt.Errorf("parsing %s: %w", configurationFilePath, unmarshalError)
	}
	return configuration, nil
}
