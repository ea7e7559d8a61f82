// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: connection string (required)
  - DatabaseType: "sqlite" (default) or "postgres"
  - OwnerKeySalt: Secret for owner key HMAC (required)
  - DefaultOwnerID: owner used when a request names none (default: 1)
  - EnvFile: .env file loaded before the environment is read

# CLI Flags

	-p              Server port
	-d              Database URL
	-t              Database type
	-owner-salt     Owner key salt
	-default-owner  Default owner id
	-env            Env file (default: .env)

# Environment Variables

Flags fall back to environment variables:

	PORT             → -p
	DATABASE_URL     → -d
	DATABASE_TYPE    → -t
	OWNER_KEY_SALT   → -owner-salt
	DEFAULT_OWNER_ID → -default-owner

CLI flags take precedence over environment variables, and variables already
present in the environment take precedence over the env file.
*/
package cliparse
