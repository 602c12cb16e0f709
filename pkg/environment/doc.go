// Package environment names the deployment the process runs in and carries
// it through request contexts.
//
// Environment is a typed string with the values Development, Staging and
// Production. Parse accepts the full names and the short aliases "dev",
// "stage" and "prod", and Environment implements encoding.TextUnmarshaler so
// an env-tagged config field decodes it directly.
//
// Middleware attaches the configured environment to every request context;
// FromContext, IsProduction and IsDevelopment read it back:
//
//	r := chi.NewRouter()
//	r.Use(environment.Middleware(cfg.Env))
//
//	if environment.IsProduction(ctx) {
//		// long-lived cache headers
//	}
//
// Missing values yield the zero Environment ("").
package environment
