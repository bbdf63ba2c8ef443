// Package scraper fetches an existing sign-up page over HTTP.
//
// The fetched document must carry the event selector and name input the
// registration handler works with; "event-roster init --from URL" uses it to
// adopt a page that is already published somewhere else.
package scraper
