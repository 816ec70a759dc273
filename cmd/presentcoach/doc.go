// Command presentcoach analyzes presentation videos and serves the analysis
// API.
//
// `presentcoach analyze` runs one analysis in-process and prints the report;
// `presentcoach serve` hosts the HTTP API. The report, config and deps
// subcommands inspect stored results, configuration and external tools.
package main
