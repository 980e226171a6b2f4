// Package credential resolves integration credentials by name from
// environment variables and secret files.
//
// A Resolver tries its sources in order and caches hits for a short TTL.
// A credential no source has resolves to nil, which the integration
// validators report as "credential missing". Credential values are never
// logged; names are logged redacted.
//
//	r := credential.NewResolver(
//		[]credential.Source{credential.NewEnvSource(""), credential.NewFileSource("/run/secrets")},
//		credential.WithTTL(time.Minute),
//	)
//	key, err := r.Resolve(ctx, "openai-api-key")
package credential
