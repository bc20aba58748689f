package sections

import "github.com/tsawler/resumeparser/model"

// Buckets maps each section label to its tokens in encounter order
type Buckets map[Label][]model.Token

// Get returns the tokens for label, or nil
func (b Buckets) Get(label Label) []model.Token {
	return b[label]
}

// Len returns the total number of bucketed tokens
func (b Buckets) Len() int {
	n := 0
	for _, toks := range b {
		n += len(toks)
	}
	return n
}

// Labels returns the labels that hold at least one token, in output order
func (b Buckets) Labels() []Label {
	var out []Label
	for _, label := range Labels() {
		if len(b[label]) > 0 {
			out = append(out, label)
		}
	}
	return out
}
