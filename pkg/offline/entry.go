package offline

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// entry is a stored response.
type entry struct {
	Status int         `json:"status"`
	Header http.Header `json:"header"`
	Body   []byte      `json:"body"`
}

func (e entry) marshal() ([]byte, error) {
	return json.Marshal(e)
}

func unmarshalEntry(data []byte) (entry, error) {
	var e entry
	err := json.Unmarshal(data, &e)
	return e, err
}

// response rebuilds an *http.Response for req. status tags the response with
// the X-Cache header.
func (e entry) response(req *http.Request, status string) *http.Response {
	h := e.Header.Clone()
	if h == nil {
		h = make(http.Header)
	}
	h.Set(CacheStatusHeader, status)
	return &http.Response{
		Status:        fmt.Sprintf("%d %s", e.Status, http.StatusText(e.Status)),
		StatusCode:    e.Status,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        h,
		Body:          io.NopCloser(bytes.NewReader(e.Body)),
		ContentLength: int64(len(e.Body)),
		Request:       req,
	}
}

// readEntry drains and closes resp, keeping at most limit body bytes. It
// reports false when the body was larger than limit.
func readEntry(resp *http.Response, limit int64) (entry, bool, error) {
	defer resp.Body.Close()
	body, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return entry{}, false, err
	}
	e := entry{Status: resp.StatusCode, Header: resp.Header.Clone(), Body: body}
	if int64(len(body)) > limit {
		rest, err := io.ReadAll(resp.Body)
		if err != nil {
			return entry{}, false, err
		}
		e.Body = append(e.Body, rest...)
		return e, false, nil
	}
	return e, true, nil
}
