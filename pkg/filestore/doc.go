// Package filestore persists wake word sample audio outside the relational
// store. Two backends share one interface: a local filesystem tree for
// single-node deployments and S3-compatible object storage for everything
// else. Keys follow wake_word/<wake word name>/<file name> on both backends.
package filestore
