// Package inference attaches contextual embeddings to resume tokens.
//
// Layout-aware models accept a bounded number of tokens per call, so each
// page is split into overlapping windows ([Chunk]) and every window is sent
// to an [Embedder]. Tokens covered by two windows keep the vector from the
// first one, so [Predictor.Predict] returns at most one embedding per token
// in document order.
//
// [RemoteEmbedder] posts words and normalized boxes to an HTTP model
// server:
//
//	e := inference.NewRemoteEmbedder("http://localhost:8000/embed", nil, logger)
//	embeddings, err := inference.NewPredictor(e, inference.DefaultConfig(), logger).Predict(ctx, doc)
//
// The structuring core only counts these embeddings; they are recorded in
// the resume's meta notes.
package inference
