package config

import "github.com/levelfourab/s2-go/types"

// AppendRecord is a record to append to a stream.
type AppendRecord struct {
	// Headers are name-value pairs for the record, kept in order.
	Headers []Header `json:"headers"`
	// Body of the record.
	Body []byte `json:"body"`
}

// Header is a name-value pair of a record.
type Header struct {
	Name  []byte `json:"name"`
	Value []byte `json:"value"`
}

// Canonical converts the record to the service representation. Limits on
// size and content are enforced by the service.
func (r AppendRecord) Canonical() types.AppendRecord {
	var headers []types.Header
	if r.Headers != nil {
		headers = make([]types.Header, len(r.Headers))
		for i, h := range r.Headers {
			headers[i] = h.Canonical()
		}
	}

	return types.AppendRecord{
		Headers: headers,
		Body:    r.Body,
	}
}

// Canonical converts the header to the service representation.
func (h Header) Canonical() types.Header {
	return types.Header{
		Name:  h.Name,
		Value: h.Value,
	}
}
