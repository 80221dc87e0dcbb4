// Package services implements read-only clients for the music metadata providers used to enrich the catalog.
//
// # Providers
//
//   - [LastFMService] : artist search, artist info, top albums and top tracks (Last.fm API 2.0)
//   - [BandsintownService] : artist profile image and upcoming events
//   - [AudioDBService] : artist biography, discography and per-album detail (TheAudioDB)
//
// [Gateway] bundles the three clients, built from [shared.CredentialsConfig] by [NewGateway].
//
// # Failure Handling
//
// Enrichment is best effort. Every public method returns only its result shape: nil, "" or the
// supplied fallback when anything goes wrong. Failures are logged with a category instead:
//   - configuration : credentials missing ([shared.ErrMissingCredentials]), logged at error level
//   - transport : network or read failure ([shared.ErrServiceUnavailable])
//   - status : non-2xx response ([*StatusError])
//   - provider : error payload delivered with a 2xx status ([*ProviderError])
//   - empty : blank body ([shared.ErrEmptyResponse])
//   - malformed : body is not the expected JSON ([shared.ErrMalformedResponse])
//
// [LastFMService.RawArtistInfo] is the exception: it returns errors so the HTTP passthrough
// can map them to status codes.
//
// No call retries and no timeout is imposed beyond the caller's [context.Context] and the
// supplied [http.Client].
//
// # Images
//
// [IsKnownPlaceholder] recognizes the stock images Last.fm serves for artists without a photo and
// [PreferredImage] picks the first real image from a list of candidates.
package services
