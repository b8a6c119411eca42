// Package logging constructs the slog loggers used across MyMark.
//
// Loggers write to stdout and, when a log directory is configured, to a
// mymark.log file as well. The console format uses slog's text handler;
// json switches to the JSON handler for machine consumption.
package logging
