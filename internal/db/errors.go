package db

import "errors"

// ErrNotFound is returned when a requested document does not exist.
// Repositories translate the datastore's NotFound status into this
// sentinel so services never import grpc codes.
var ErrNotFound = errors.New("document not found")
