// Package refine optionally rewrites a first-pass resume tree with a
// language model.
//
// The first pass is always sanitized into the canonical schema; that
// baseline is what [Refiner.Refine] returns whenever refinement is
// disabled, the backend fails or answers nothing, or the answer does not
// parse or validate. Backends are caller-owned handles:
//
//	backend, err := refine.NewGeminiBackend(ctx, apiKey, "gemini-1.5-flash", logger)
//	if err != nil {
//	    return err
//	}
//	defer backend.Close()
//
//	r := refine.New(backend, refine.DefaultConfig(), logger)
//	tree, err := r.Refine(ctx, resume.ToMap(), doc.RawText)
//
// [HTTPBackend] posts {"prompt": ...} to a text-generation endpoint and
// reads "output" or "response" from a JSON reply, or the raw body
// otherwise.
package refine
