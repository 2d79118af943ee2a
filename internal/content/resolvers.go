package content

import "github.com/wayfarer-games/sitegen/internal/markdown"

// FieldResolver yields a candidate value for one post field, or "" to defer to the next.
type FieldResolver func(src Source) string

// Chain is an ordered list of resolvers; the first non-empty result wins.
type Chain []FieldResolver

// Resolve runs the chain against src.
func (c Chain) Resolve(src Source) string {
	for _, fn := range c {
		if v := fn(src); v != "" {
			return v
		}
	}
	return ""
}

// TitleChain: manifest override, front-matter title, first # heading, file name.
func TitleChain() Chain {
	return Chain{
		func(src Source) string { return src.Descriptor.Title },
		MetaField("title"),
		func(src Source) string { return StripSourceExt(markdown.FirstHeading(src.Document.Body)) },
		func(src Source) string { return StripSourceExt(src.Descriptor.File) },
	}
}

// SummaryChain: manifest override, front-matter summary, truncated plain-text body.
// The derived summary skips a leading level-one heading, which is the post title.
func SummaryChain() Chain {
	return Chain{
		func(src Source) string { return src.Descriptor.Summary },
		MetaField("summary"),
		func(src Source) string {
			return markdown.Truncate(markdown.PlainText(markdown.StripLeadingTitle(src.Document.Body)), SummaryLimit)
		},
	}
}

// DateChain: manifest override, front-matter date. Posts may be undated.
func DateChain() Chain {
	return Chain{
		func(src Source) string { return src.Descriptor.Date },
		MetaField("date"),
	}
}

// MetaField resolves a front-matter key.
func MetaField(key string) FieldResolver {
	return func(src Source) string { return src.Document.Get(key) }
}
