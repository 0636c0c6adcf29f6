// Package utils contains general helper functions used across the codeprompt tool.
package utils

const (
	// GitIgnoreFileName is the name of the Git ignore file loaded from the traversal root.
	GitIgnoreFileName = ".gitignore"
	// ConfigFileName is the optional application configuration file looked up in the working directory.
	ConfigFileName = "codeprompt.yaml"
	// LoggerInitializationFailedMessageFormat reports a failure to build the application logger.
	LoggerInitializationFailedMessageFormat = "failed to initialize logger: %v"
	// ApplicationExecutionFailedMessage reports a fatal application error.
	ApplicationExecutionFailedMessage = "application execution failed"
)
