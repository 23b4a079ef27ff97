// Package kojioka is a client for the Kojioka music API.
//
// The API exposes three read-only operations, each mapped to one method:
//
//   - [Client.FetchStream]: GET /get-stream?q=, stream information for a
//     title or a YouTube, SoundCloud or Spotify URL
//   - [Client.SearchTrack]: GET /search?q=, metadata for the best match
//   - [Client.Status]: GET /status, service health
//
// # Usage
//
//	client, err := kojioka.NewClient()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	resp, err := client.FetchStream(ctx, "https://youtu.be/dQw4w9WgXcQ")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(resp)
//
// # Responses
//
// A [Response] is the body exactly as the service sent it. The client never
// reshapes it; use [Response.Decode] to read it into a struct of your own.
//
// # Errors
//
// Every failure is one of:
//
//   - *errors.Error with ErrCodeInvalidArgument: the query was empty, no
//     request was sent
//   - *errors.APIError: the service answered with a non-2xx status
//   - *errors.NetworkError: no response was obtained
//
// Failures are logged at error level before they are returned. Only network
// errors are retried, and only when [WithRetry] is given.
//
// # Concurrency
//
// A Client is immutable after construction and safe for concurrent use.
package kojioka
