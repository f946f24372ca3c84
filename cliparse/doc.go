// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	if err := cliparse.LoadEnvFile(); err != nil {
		log.Fatal(err)
	}
	cfg, err := cliparse.ParseFlags(os.Args[1:])

LoadEnvFile reads a .env file if there is one. It never overrides a
variable that is already set.

# CLI Flags and Environment Variables

Each flag falls back to an environment variable, then to a default:

	-p                 PORT                  3000
	-token             SLACK_BOT_TOKEN       (required)
	-signing-secret    SLACK_SIGNING_SECRET  (required)
	-slack-api-url     SLACK_API_URL         Slack default
	-d                 DATABASE_URL          journal disabled
	-t                 DATABASE_TYPE         sqlite
	-journal-salt      JOURNAL_SALT          (required with DATABASE_URL)
	-id-scheme         POLL_ID_SCHEME        counter
	-bot-name          BOT_NAME              Polls
	-delivery-timeout  DELIVERY_TIMEOUT      10s
	-log-level         LOG_LEVEL             info
	-log-format        LOG_FORMAT            text

CLI flags take precedence over environment variables.

# Validation

ParseFlags returns an error if a required value is missing or a value is
outside its allowed set (database type, ID scheme, log level and format).
*/
package cliparse
