package fetcher

import "net/http"

type errStatusNotOK int

func (e errStatusNotOK) Error() string {
	return "non-2xx HTTP status code: " + http.StatusText(int(e))
}

type errMalformedJSON string

func (e errMalformedJSON) Error() string {
	return "malformed JSON response body from: " + string(e)
}
