// Command foodata runs the FooData chain from the command line and reports
// how each stage resolved.
//
//	foodata run                                  # all lookups succeed
//	foodata run --fail get_another_data          # a known fault becomes a kind
//	foodata run --fail get_some_data --unexpected # an unknown fault escapes
//	foodata kinds                                # list the failure kinds
//
// Configuration is read from config.yml (see package config) and FOODATA_*
// environment variables.
package main
