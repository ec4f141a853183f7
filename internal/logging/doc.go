// Package logger provides structured logging for yubivault CLI commands.
//
// The logger supports multiple verbosity levels controlled by command-line
// flags. Output is formatted with semantic prefixes and colors.
//
// # Verbosity Levels
//
// Logging behavior is controlled by two flags:
//
//   - --verbose: Shows info messages
//   - --debug: Shows all messages including debug details
//
// Without flags, only warnings and errors are shown.
//
// # Log Methods
//
//	Logger.Infof()           // Shown with --verbose or --debug
//	Logger.Debugf()          // Shown only with --debug
//	Logger.Warnf()           // Always shown
//	Logger.WarnfAlways()     // Always shown (critical warnings, explicit at call sites)
//	Logger.Errorf()          // Always shown
//	Logger.ErrorfAndReturn() // Logs the error and returns it for RunE
//
// # Usage
//
// Create a logger with the desired verbosity:
//
//	log := Logger{Verbose: verbose, Debug: debug}
//	log.Infof("Encrypting entry for %s", service)
//
// Commands typically create a logger in their PersistentPreRun and
// pass it to internal functions.
package logger
