/*
Package server implements the IPC and HTTP surfaces for next-word
prediction.

The primary surface is msgpack over stdin/stdout. Clients send a request
with an ID and the raw phrase; the server answers with the ranked words,
a count, and the time taken in microseconds.

Send a prediction request:

	{"id": "req_001", "t": "thank you for the", "l": 5}

Receive ranked words:

	{"id": "req_001", "w": [{"w": "last", "r": 1}, {"w": "great", "r": 2}], "c": 2, "t": 145}

Three outcomes share the wire format: a ranked non-empty word list; an
empty list with count 0 (valid input, no prediction found at any
order); and an error frame carrying a code, 400 for input the
normalizer rejected and 500 for a corpus or frequency-table failure.
The caller can therefore render a different message for each.

A small HTTP facade (see http.go) exposes the same three outcomes as JSON
for front ends that prefer a request per button press over a pipe.
*/
package server

// PredictRequest - minimal prediction request
type PredictRequest struct {
	ID    string `msgpack:"id"`
	Text  string `msgpack:"t"`
	Limit int    `msgpack:"l,omitempty"`
}

// RankedWord - one predicted word with its rank (1 = most probable)
type RankedWord struct {
	Word string `msgpack:"w"`
	Rank uint16 `msgpack:"r"`
}

// PredictResponse - prediction response
type PredictResponse struct {
	ID        string       `msgpack:"id"`
	Words     []RankedWord `msgpack:"w"`
	Count     int          `msgpack:"c"`
	TimeTaken int64        `msgpack:"t"`
}

// PredictError holds basic error information for prediction requests
type PredictError struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
