// Package web serves the passport admin browser UI.
//
// Pages are rendered server-side from the remote passport API. The only
// state this process keeps is the login session holding the API token.
package web
