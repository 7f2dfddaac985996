// Package remote implements the translation service client over HTTP.
//
// Three endpoints are used:
//
//   - POST /api/At.Locazy/user/i18n/long-polling returns the manifest: per
//     language the files that hold its translations.
//   - GET /{pathPrefix}/{fileName} downloads one translation file.
//   - POST /api/At.Locazy/cli/terms/upload submits flat key/value pairs.
//
// Any non-2xx status or a body whose code is not zero is returned as an
// *APIError. The client does not retry.
//
// # Usage
//
//	client := remote.New(cfg.Remote, log)
//	sources, err := client.FetchManifest(ctx)
package remote
