// Package config provides application configuration loaded from
// environment variables (prefix HOMEPULSE) and an optional config.yaml,
// plus centralized path resolution for the data, web and logs directories.
package config
