package config

const (
	// MaxHeadlineLength is the maximum accepted headline length. Platforms
	// truncate far earlier; this bounds storage and abuse, not quality.
	MaxHeadlineLength = 200

	// MaxBodyLength is the maximum accepted body text length. YouTube
	// descriptions are the longest supported placement at 5000 characters.
	MaxBodyLength = 5000

	// MaxCTALength is the maximum accepted call-to-action length.
	MaxCTALength = 100

	// MaxContextEntries bounds the free-form context map so a request
	// cannot smuggle arbitrary payloads into storage.
	MaxContextEntries = 20
)
