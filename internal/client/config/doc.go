// Package config loads runtime configuration for the contactbook CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file (see parseFile) selected via flags: -c or -config.
//     Files ending in .yaml or .yml are read as YAML, anything else as JSON.
//  3. Environment variables prefixed with CONTACTBOOK_ (see parseEnv).
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string     GraphQL endpoint of the contact service
//	-d string     path of the local SQLite cache
//	-p int        page size used when fetching contacts
//	-t duration   timeout of a single remote request
//
// # File schema
//
// Durations use timex.Duration, so values can be either strings like "3s" or
// integer nanoseconds:
//
//	{
//	  "endpoint": "https://wpe-hiring.tokopedia.net/graphql",
//	  "cache_path": "contacts.db",
//	  "page_size": 10,
//	  "request_timeout": "10s",
//	  "notify_timeout": "3s",
//	  "log_level": "info",
//	  "log_format": "text",
//	  "log_file": ""
//	}
//
// Environment
//
//	CONTACTBOOK_ENDPOINT, CONTACTBOOK_CACHE_PATH, CONTACTBOOK_PAGE_SIZE,
//	CONTACTBOOK_REQUEST_TIMEOUT, CONTACTBOOK_NOTIFY_TIMEOUT,
//	CONTACTBOOK_LOG_LEVEL, CONTACTBOOK_LOG_FORMAT, CONTACTBOOK_LOG_FILE
package config
