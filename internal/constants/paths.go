package constants

// Log file names.
const (
	// CLILogFileName is the name of the CLI log file.
	// This file is located in ~/.task/logs/task.log
	CLILogFileName = "task.log"
)

// Configuration file names.
const (
	// GlobalConfigName is the name of the global configuration file.
	// This file is located in the TaskHome directory.
	GlobalConfigName = "config.yaml"

	// ProjectConfigName is the name of the project configuration file.
	// It is looked up in the working directory and then in every parent.
	ProjectConfigName = ".taskrc.yaml"
)
