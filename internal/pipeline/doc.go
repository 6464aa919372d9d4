// Package pipeline implements the shared batch machinery: file discovery,
// the bounded worker pool, completion-order result logging, and the
// orchestration that ties them together.
//
// The image and signal pipelines differ only in the [Pipeline] bundle they
// hand to [Run]: a name, the recognized input extensions, and the per-file
// [Transform]. Everything else — job submission, failure isolation, the
// processing log, the run summary — is shared.
package pipeline
