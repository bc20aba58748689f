// Package linker assembles a structured resume from a document's tokens.
//
// [LinkEntities] is the single entry point of the structuring core. It
// buckets tokens into sections, applies the contact fallback, runs every
// field extractor on its bucket and validates the result:
//
//	resume, err := linker.LinkEntities(doc, nil)
//	if err != nil {
//	    log.Fatal(err) // a date escaped normalization
//	}
//
// Token embeddings, when supplied, only add a "token_embeddings=<n>" note to
// the resume metadata. They never change extracted content.
package linker
