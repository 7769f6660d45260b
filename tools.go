//go:build tools

package tools

// This file tracks CLI tools used during development.
// It is not compiled into the binary.
//
// - github.com/matryer/moq: regenerates the *_mock_test.go files from their //go:generate lines
// - github.com/pressly/goose/v3/cmd/goose: creates files under internal/adapter/postgres/migrations
