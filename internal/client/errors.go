package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var ErrNotFound = errors.New("client: task not found")

// NetworkError is a request that never produced an HTTP response.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("client: %s: network: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// StoreError is a response the store answered with a non-2xx status, or a
// 2xx body that could not be decoded.
type StoreError struct {
	Op     string
	Status int
	Body   string
}

func (e *StoreError) Error() string {
	msg := e.message()
	if msg == "" {
		return fmt.Sprintf("client: %s: store returned %d", e.Op, e.Status)
	}
	return fmt.Sprintf("client: %s: store returned %d: %s", e.Op, e.Status, msg)
}

func (e *StoreError) Is(target error) bool {
	return target == ErrNotFound && e.Status == http.StatusNotFound
}

// message prefers the "error" field of a JSON body.
func (e *StoreError) message() string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal([]byte(e.Body), &payload); err == nil && strings.TrimSpace(payload.Error) != "" {
		return payload.Error
	}
	return e.Body
}
