// Package sections splits a resume's token stream into labeled sections.
//
// Detection is a single left-to-right pass over the tokens driven by an
// explicit state machine. The state is the current [Label], starting at
// [OtherSections]. A token whose lower-cased text, with surrounding colons
// trimmed, exactly equals a heading keyword moves the machine to that
// keyword's label and is discarded. Every other token is appended to the
// bucket of the current label.
//
// Matching is single-token and exact. "Education" or "SKILLS:" switch
// state; "Work Experience" switches on "Experience" alone, and a sentence
// that happens to contain the word "tools" switches too.
//
//	buckets := sections.DetectDocument(doc)
//	for _, tok := range buckets.Get(sections.Education) {
//	    fmt.Println(tok.Text)
//	}
package sections
