// Package loader parses the three JSON input documents (DAG, topology,
// schedule) into the in-memory records of internal/model. Every failure
// here is a fatal input error: the file is missing, the JSON is malformed,
// or the documents are internally inconsistent. Nothing is retried.
package loader
