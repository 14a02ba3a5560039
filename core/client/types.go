package client

// ParseRequest is the JSON body posted to the parse endpoint.
type ParseRequest struct {
	Source string `json:"source"`
}

// Response is the body returned by the parse service on success.
//
// The wire key "erros" is spelled as the server sends it. Whether a non-empty
// Erros alongside a 2xx status is a failure is left to the caller: the client
// returns it as data.
type Response struct {
	Erros     string `json:"erros"`
	Evaluated string `json:"evaluated"`
}
