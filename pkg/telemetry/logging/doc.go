// Package logging builds the engine's structured loggers on log/slog.
//
// # Usage
//
//	logger, err := logging.New(logging.Config{
//	    Level:         "info",
//	    Format:        "json",
//	    RedactSecrets: true,
//	})
//	if err != nil {
//	    return err
//	}
//	logger.Info("ai provider validated",
//	    "provider", "openai",
//	    "credential", cred, // logged as "***"
//	)
//
// # Secret redaction
//
// With RedactSecrets enabled the handler replaces the value of any attribute
// whose key looks like a secret (credential, api_key, token, password, secret,
// authorization) with the masking engine's redact output "***". String values
// that carry a bearer token or an "sk-" style API key are redacted as well.
//
// # Context fields
//
// Actor, environment and operation identifiers stored on a context with
// WithActor, WithEnvironment and WithOperation are added to every record
// logged through the *Context methods.
package logging
