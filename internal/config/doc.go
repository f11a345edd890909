// Package config loads the service settings.
//
// Settings are layered, later sources winning:
//
//  1. configuration/base.yaml
//  2. configuration/{local,production}.yaml, chosen by APP_ENVIRONMENT (default local)
//  3. APP_* environment variables, named after the YAML path:
//     APP_APPLICATION_PORT, APP_DATABASE_HOST, APP_EMAIL_CLIENT_AUTHORIZATION_TOKEN, ...
//
// The loaded settings are validated before they are returned.
package config
