// Listingrec - Marketplace Listing Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/listingrec

/*
Package config loads and validates service configuration.

Configuration is layered with Koanf, lowest priority first:

 1. Struct defaults (defaultConfig)
 2. A YAML file: CONFIG_PATH, else config.yaml / config.yml in the working
    directory, else /etc/listingrec/config.yaml
 3. Environment variables, mapped explicitly (see envTransformFunc)

A .env file in the working directory is loaded into the process environment
before step 3, so it behaves like real environment variables.

Example config.yaml:

	server:
	  port: 8080
	history:
	  backend: redis
	  redis:
	    addr: redis:6379
	recommend:
	  counter_scope: user
	  self_exclusion: anchor

Environment variables use flat names, for example HTTP_PORT, DUCKDB_PATH,
HISTORY_BACKEND, REDIS_ADDR, RECOMMEND_COUNTER_SCOPE and CORS_ORIGINS
(comma-separated).
*/
package config
