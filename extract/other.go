package extract

import (
	"github.com/tsawler/resumeparser/model"
	"github.com/tsawler/resumeparser/schema"
)

// OtherLabel labels the catch-all section entry
const OtherLabel = "other"

// Other joins every unclaimed token into a single catch-all entry
func Other(tokens []model.Token) []schema.OtherSection {
	text := JoinTokens(tokens)
	if text == "" {
		return []schema.OtherSection{}
	}
	return []schema.OtherSection{{Label: OtherLabel, Content: text}}
}
