// Package binder extracts uploaded files from multipart/form-data
// requests into in-memory FileUpload values, plus a streaming variant
// for spooled handling of larger bodies.
package binder
